package comments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"purepoker-community/internal/posts"
	"purepoker-community/internal/reactions"
)

// Handler exposes the comment endpoints.
type Handler struct {
	svc       Service
	posts     posts.Service
	reactions reactions.Service
}

// NewHandler creates a comments handler. The posts service is needed to
// reject comments on posts that do not exist.
func NewHandler(svc Service, postSvc posts.Service, reactionSvc reactions.Service) *Handler {
	return &Handler{svc: svc, posts: postSvc, reactions: reactionSvc}
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return 0, false
	}
	return id, true
}

// GET /posts/:id/comments
func (h *Handler) ListByPost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	comments, err := h.svc.ListByPost(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list comments"})
		return
	}
	c.JSON(http.StatusOK, comments)
}

// POST /posts/:id/comments
func (h *Handler) Create(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "author and content are required"})
		return
	}

	exists, err := h.posts.Exists(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create comment"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	comment, err := h.svc.Create(c.Request.Context(), id, req.Author, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create comment"})
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// POST /comments/:id/like is an idempotent set by the like flag.
func (h *Handler) Like(c *gin.Context) {
	id, ok := parseID(c, "id")
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
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to like comment"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		return
	}

	res, err := h.reactions.Apply(c.Request.Context(), req.UserID, reactions.CommentTarget(id), &req.Like)
	if errors.Is(err, reactions.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user_id"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to like comment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": res.Action, "likes": res.Count, "liked": res.Liked})
}

// DELETE /comments/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	err := h.svc.Delete(c.Request.Context(), id)
	if errors.Is(err, ErrCommentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete comment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
