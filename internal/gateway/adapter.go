// Package gateway adapts API Gateway proxy events to the HTTP router and
// back. It exists so the same handlers serve both the standalone server
// and the Lambda deployment.
package gateway

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// CORS values injected into every envelope. The origin is reflected from
// the inbound request so credentialed browsers accept it.
const (
	allowMethods = "GET,PUT,POST,DELETE,OPTIONS"
	allowHeaders = "Content-Type,Authorization"
)

// Adapter translates between proxy events and the internal router.
type Adapter struct {
	handler http.Handler
}

// New creates an adapter around the router.
func New(handler http.Handler) *Adapter {
	return &Adapter{handler: handler}
}

// Handle serves one proxy event. The handler's response status, headers
// and body are re-wrapped into the gateway envelope; Set-Cookie headers
// move to the multi-value channel because the gateway drops repeated
// single-value headers.
func (a *Adapter) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req, err := a.buildRequest(ctx, event)
	if err != nil {
		slog.Error("Failed to build request from event", "error", err.Error())
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusBadRequest,
			Body:       `{"message":"malformed event"}`,
		}, nil
	}

	rec := newRecorder()
	a.handler.ServeHTTP(rec, req)

	resp := events.APIGatewayProxyResponse{
		StatusCode:        rec.status,
		Headers:           map[string]string{},
		MultiValueHeaders: map[string][]string{},
		Body:              rec.body.String(),
	}

	for name, values := range rec.header {
		if strings.EqualFold(name, "Set-Cookie") {
			resp.MultiValueHeaders["Set-Cookie"] = values
			continue
		}
		if len(values) > 0 {
			resp.Headers[name] = values[0]
		}
	}

	resp.Headers["Content-Type"] = "application/json"
	resp.Headers["Access-Control-Allow-Origin"] = headerValue(event, "Origin")
	resp.Headers["Access-Control-Allow-Credentials"] = "true"
	resp.Headers["Access-Control-Allow-Headers"] = allowHeaders
	resp.Headers["Access-Control-Allow-Methods"] = allowMethods

	return resp, nil
}

func (a *Adapter) buildRequest(ctx context.Context, event events.APIGatewayProxyRequest) (*http.Request, error) {
	query := url.Values{}
	for k, v := range event.QueryStringParameters {
		query.Set(k, v)
	}
	for k, vs := range event.MultiValueQueryStringParameters {
		for _, v := range vs {
			query.Add(k, v)
		}
	}

	u := url.URL{Path: event.Path, RawQuery: query.Encode()}

	var body string
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, err
		}
		body = string(decoded)
	} else {
		body = event.Body
	}

	req, err := http.NewRequestWithContext(ctx, event.HTTPMethod, u.String(), strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	for k, v := range event.Headers {
		req.Header.Set(k, v)
	}
	for k, vs := range event.MultiValueHeaders {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("Content-Type") == "" && body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// headerValue looks up an event header case-insensitively.
func headerValue(event events.APIGatewayProxyRequest, name string) string {
	for k, v := range event.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	for k, vs := range event.MultiValueHeaders {
		if strings.EqualFold(k, name) && len(vs) > 0 {
			return vs[0]
		}
	}
	return ""
}
