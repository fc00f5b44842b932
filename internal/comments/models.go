package comments

import "time"

// Comment is a threaded reply on a post. Likes is derived from reaction
// rows. UpdatedAt refreshes on every mutation.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommentRequest is the body for POST /posts/:id/comments. The post
// reference comes from the route.
type CreateCommentRequest struct {
	Author  string `json:"author" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// LikeRequest is the body for POST /comments/:id/like. Unlike the post
// endpoint, the like flag is the desired state: the operation is an
// idempotent set.
type LikeRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Like   bool   `json:"like"`
}
