package posts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"purepoker-community/internal/reactions"
)

// Handler exposes the post endpoints.
type Handler struct {
	svc       Service
	reactions reactions.Service
}

// NewHandler creates a posts handler.
func NewHandler(svc Service, reactionSvc reactions.Service) *Handler {
	return &Handler{svc: svc, reactions: reactionSvc}
}

func postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid post id"})
		return 0, false
	}
	return id, true
}

// GET /posts
func (h *Handler) List(c *gin.Context) {
	posts, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// POST /posts
func (h *Handler) Create(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "author and content are required"})
		return
	}

	post, err := h.svc.Create(c.Request.Context(), req.Author, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create post"})
		return
	}
	c.JSON(http.StatusCreated, post)
}

// GET /posts/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.svc.Get(c.Request.Context(), id)
	if errors.Is(err, ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to get post"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// PUT /posts/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}

	post, err := h.svc.Update(c.Request.Context(), id, req)
	if errors.Is(err, ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post modified!", "post": post})
}

// POST /posts/:id/like toggles by record presence.
func (h *Handler) Like(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "user_id is required"})
		return
	}

	exists, err := h.svc.Exists(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to like post"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	res, err := h.reactions.Apply(c.Request.Context(), req.UserID, reactions.PostTarget(id), nil)
	if errors.Is(err, reactions.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user_id"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to like post"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// DELETE /posts/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	err := h.svc.Delete(c.Request.Context(), id)
	if errors.Is(err, ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
