package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"purepoker-community/internal/database"
)

var (
	// ErrPostNotFound is returned when a post id does not resolve.
	ErrPostNotFound = errors.New("post not found")
)

// Service handles business logic for posts. Every read annotates posts
// with the derived like count.
type Service interface {
	List(ctx context.Context) ([]Post, error)
	Create(ctx context.Context, author, content string) (*Post, error)
	Get(ctx context.Context, postID int64) (*Post, error)
	Update(ctx context.Context, postID int64, req UpdatePostRequest) (*Post, error)
	Delete(ctx context.Context, postID int64) error
	Exists(ctx context.Context, postID int64) (bool, error)
}

type service struct {
	db database.Service
}

// NewService creates a posts service.
func NewService(db database.Service) Service {
	return &service{db: db}
}

func (s *service) List(ctx context.Context) ([]Post, error) {
	const q = `
		SELECT p.id, p.author, p.content, p.created_at, COUNT(r.id)
		FROM posts p
		LEFT JOIN reactions r ON r.post_id = p.id
		GROUP BY p.id
		ORDER BY p.id
	`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	out := []Post{}
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Author, &p.Content, &p.CreatedAt, &p.Likes); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, author, content string) (*Post, error) {
	const q = `
		INSERT INTO posts (author, content, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	p := &Post{Author: author, Content: content}
	if err := s.db.QueryRow(ctx, q, author, content).Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	slog.Info("Post created", "post_id", p.ID, "author", p.Author)
	return p, nil
}

func (s *service) Get(ctx context.Context, postID int64) (*Post, error) {
	const q = `
		SELECT p.id, p.author, p.content, p.created_at, COUNT(r.id)
		FROM posts p
		LEFT JOIN reactions r ON r.post_id = p.id
		WHERE p.id = $1
		GROUP BY p.id
	`

	p := &Post{}
	err := s.db.QueryRow(ctx, q, postID).Scan(&p.ID, &p.Author, &p.Content, &p.CreatedAt, &p.Likes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

// Update is a narrow placeholder: it resolves the post and returns its
// current representation. The only writable field older clients sent was
// the stored likes counter, which no longer exists.
func (s *service) Update(ctx context.Context, postID int64, req UpdatePostRequest) (*Post, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if req.Likes != nil {
		slog.Debug("Ignoring stored likes update, count is derived", "post_id", postID)
	}
	return post, nil
}

// Delete removes a post together with its comments and all reactions
// targeting the post or those comments, in one transaction.
func (s *service) Delete(ctx context.Context, postID int64) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete post: %w", err)
	}
	defer tx.Rollback(ctx)

	steps := []string{
		`DELETE FROM reactions WHERE comment_id IN (SELECT id FROM comments WHERE post_id = $1)`,
		`DELETE FROM reactions WHERE post_id = $1`,
		`DELETE FROM comments WHERE post_id = $1`,
	}
	for _, q := range steps {
		if _, err := tx.Exec(ctx, q, postID); err != nil {
			return fmt.Errorf("cascade delete post %d: %w", postID, err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", postID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPostNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete post: %w", err)
	}

	slog.Info("Post deleted", "post_id", postID)
	return nil
}

func (s *service) Exists(ctx context.Context, postID int64) (bool, error) {
	const q = `SELECT 1 FROM posts WHERE id = $1`

	var one int
	err := s.db.QueryRow(ctx, q, postID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check post: %w", err)
	}
	return true, nil
}
