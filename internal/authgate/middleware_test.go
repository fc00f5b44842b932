package authgate

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"

	"purepoker-community/internal/token"
)

func newGuardedRouter(validateURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Middleware(nil, validateURL))
	r.POST("/guarded", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func TestMiddleware_NoCookieRejectsWithoutCall(t *testing.T) {
	var calls atomic.Int64
	validator := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer validator.Close()

	r := newGuardedRouter(validator.URL)

	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if calls.Load() != 0 {
		t.Errorf("validator called %d times for a cookieless request", calls.Load())
	}
}

func TestMiddleware_ValidTokenPasses(t *testing.T) {
	validator := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(token.CookieName)
		if err != nil || cookie.Value != "session-token" {
			t.Errorf("validator did not receive the relayed cookie: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer validator.Close()

	r := newGuardedRouter(validator.URL)

	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: token.CookieName, Value: "session-token"})
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestMiddleware_RejectedTokenRejects(t *testing.T) {
	validator := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer validator.Close()

	r := newGuardedRouter(validator.URL)

	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: token.CookieName, Value: "bad-token"})
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestMiddleware_ValidatorDownRejects(t *testing.T) {
	validator := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	validator.Close() // URL is now unreachable

	r := newGuardedRouter(validator.URL)

	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: token.CookieName, Value: "session-token"})
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
