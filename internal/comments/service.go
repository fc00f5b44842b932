package comments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"purepoker-community/internal/database"
)

var (
	// ErrCommentNotFound is returned when a comment id does not resolve.
	ErrCommentNotFound = errors.New("comment not found")
)

// Service handles business logic for comments.
type Service interface {
	ListByPost(ctx context.Context, postID int64) ([]Comment, error)
	Create(ctx context.Context, postID int64, author, content string) (*Comment, error)
	Delete(ctx context.Context, commentID int64) error
	Exists(ctx context.Context, commentID int64) (bool, error)
}

type service struct {
	db database.Service
}

// NewService creates a comments service.
func NewService(db database.Service) Service {
	return &service{db: db}
}

func (s *service) ListByPost(ctx context.Context, postID int64) ([]Comment, error) {
	const q = `
		SELECT c.id, c.post_id, c.author, c.content, c.created_at, c.updated_at, COUNT(r.id)
		FROM comments c
		LEFT JOIN reactions r ON r.comment_id = c.id
		WHERE c.post_id = $1
		GROUP BY c.id
		ORDER BY c.id
	`

	rows, err := s.db.Query(ctx, q, postID)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	out := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Author, &c.Content, &c.CreatedAt, &c.UpdatedAt, &c.Likes); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, postID int64, author, content string) (*Comment, error) {
	const q = `
		INSERT INTO comments (post_id, author, content, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	c := &Comment{PostID: postID, Author: author, Content: content}
	if err := s.db.QueryRow(ctx, q, postID, author, content).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	slog.Info("Comment created", "comment_id", c.ID, "post_id", c.PostID)
	return c, nil
}

// Delete removes a comment and any reactions targeting it, in one
// transaction.
func (s *service) Delete(ctx context.Context, commentID int64) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete comment: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM reactions WHERE comment_id = $1`, commentID); err != nil {
		return fmt.Errorf("delete comment reactions: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("delete comment %d: %w", commentID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCommentNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete comment: %w", err)
	}

	slog.Info("Comment deleted", "comment_id", commentID)
	return nil
}

func (s *service) Exists(ctx context.Context, commentID int64) (bool, error) {
	const q = `SELECT 1 FROM comments WHERE id = $1`

	var one int
	err := s.db.QueryRow(ctx, q, commentID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check comment: %w", err)
	}
	return true, nil
}
