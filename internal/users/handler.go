package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"purepoker-community/internal/token"
)

// Handler exposes the auth endpoints.
type Handler struct {
	svc Service
}

// NewHandler creates a users handler.
func NewHandler(svc Service) *Handler { return &Handler{svc: svc} }

// POST /auth/register
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username, email and password are required"})
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, ErrUsernameExists):
		c.JSON(http.StatusConflict, gin.H{"message": "username already taken"})
		return
	case errors.Is(err, ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"message": "email already registered"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to register"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// POST /auth/login sets the session cookie on success.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
		return
	}

	user, signed, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to log in"})
		return
	}

	c.SetCookie(token.CookieName, signed, int(SessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged in", "user": user})
}

// POST /auth/validate is the endpoint the auth gate calls. Responds 200 for
// a valid token cookie, 401 otherwise.
func (h *Handler) Validate(c *gin.Context) {
	cookie, err := c.Cookie(token.CookieName)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	sess, err := h.svc.Validate(c.Request.Context(), cookie)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": sess.UserID, "username": sess.Username})
}

// POST /auth/logout
func (h *Handler) Logout(c *gin.Context) {
	cookie, err := c.Cookie(token.CookieName)
	if err == nil {
		// Best effort; an already-dead session is still a logout.
		_ = h.svc.Logout(c.Request.Context(), cookie)
	}

	c.SetCookie(token.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
