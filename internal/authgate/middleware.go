// Package authgate guards routes behind an external token-validation
// service. The gate itself never interprets the token; it only relays the
// cookie and trusts the validator's status code.
package authgate

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"purepoker-community/internal/token"
)

// Middleware rejects requests whose token cookie is missing or fails
// validation against validateURL. A missing cookie is rejected without an
// outbound call.
func Middleware(client *http.Client, validateURL string) gin.HandlerFunc {
	if client == nil {
		client = http.DefaultClient
	}

	return func(c *gin.Context) {
		cookie, err := c.Request.Cookie(token.CookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, validateURL, nil)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		req.AddCookie(cookie)

		resp, err := client.Do(req)
		if err != nil {
			slog.Warn("Token validation call failed", "url", validateURL, "error", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		c.Next()
	}
}
