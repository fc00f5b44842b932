package posts

import "time"

// Post is a community post. Likes is derived from reaction rows; it is
// never stored on the post itself.
type Post struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePostRequest is the body for POST /posts.
type CreatePostRequest struct {
	Author  string `json:"author" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// UpdatePostRequest is the body for PUT /posts/:id. The likes field is
// accepted for compatibility with older clients but no longer honored now
// that the count is derived.
type UpdatePostRequest struct {
	Likes *int64 `json:"likes,omitempty"`
}

// LikeRequest is the body for POST /posts/:id/like. The endpoint toggles on
// record presence; a like flag sent by older clients is not consulted.
type LikeRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Like   *bool  `json:"like,omitempty"`
}
