package gateway

import (
	"bytes"
	"net/http"
)

// recorder captures the router's response so it can be re-wrapped into the
// gateway envelope.
type recorder struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newRecorder() *recorder {
	return &recorder{
		header: make(http.Header),
		status: http.StatusOK,
	}
}

func (r *recorder) Header() http.Header {
	return r.header
}

func (r *recorder) WriteHeader(code int) {
	r.status = code
}

func (r *recorder) Write(b []byte) (int, error) {
	return r.body.Write(b)
}
