package reactions

import "time"

// TargetKind identifies the entity a reaction points at.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// Target is the (kind, id) pair a reaction applies to. A reaction always
// references exactly one post or one comment, never both.
type Target struct {
	Kind TargetKind
	ID   int64
}

// PostTarget builds a post target.
func PostTarget(id int64) Target { return Target{Kind: TargetPost, ID: id} }

// CommentTarget builds a comment target.
func CommentTarget(id int64) Target { return Target{Kind: TargetComment, ID: id} }

// Reaction is a single user's like on a target.
type Reaction struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	PostID    *int64    `json:"post_id,omitempty"`
	CommentID *int64    `json:"comment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Result reports the outcome of applying a reaction, including the
// recomputed authoritative count for the target.
type Result struct {
	Liked  bool   `json:"liked"`
	Action string `json:"action"`
	Count  int64  `json:"likes"`
}

// Actions reported by toggle mode.
const (
	ActionLiked   = "liked"
	ActionUnliked = "unliked"
)

// Actions reported by set mode.
const (
	ActionAdded     = "Like added"
	ActionExists    = "Like already exists"
	ActionRemoved   = "Like removed"
	ActionNotExists = "Like does not exist"
)
