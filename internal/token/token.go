// Package token signs and verifies the session cookie value. The cookie
// carries an HS256 JWT referencing a server-side session record, so a
// stolen signing key alone is not enough to mint a usable token.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie the token travels in, both on login responses
// and on requests to the validation endpoint.
const CookieName = "pure-poker-token"

var (
	// ErrInvalidToken is returned for malformed, mis-signed or expired tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the signed contents of the session cookie.
type Claims struct {
	SessionID string `json:"sid"`
	UserID    string `json:"uid"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

// Signer issues and parses session tokens with a shared secret.
type Signer struct {
	secret []byte
}

// NewSigner creates a Signer from the configured secret key.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Issue signs a token for the given session.
func (s *Signer) Issue(sessionID, userID, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		SessionID: sessionID,
		UserID:    userID,
		Username:  username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry and returns the claims.
func (s *Signer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
