package reactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"purepoker-community/internal/database"
)

// Store persists reactions. Insert relies on the storage layer's unique
// constraint over (user, target) so concurrent duplicates collapse to a
// no-op instead of racing.
type Store interface {
	Insert(ctx context.Context, userID string, target Target) (bool, error)
	Delete(ctx context.Context, userID string, target Target) (bool, error)
	Exists(ctx context.Context, userID string, target Target) (bool, error)
	Count(ctx context.Context, target Target) (int64, error)
}

type pgStore struct {
	db database.Service
}

// NewStore creates a Postgres-backed reaction store.
func NewStore(db database.Service) Store {
	return &pgStore{db: db}
}

// column maps the target kind to its reactions column. Kinds come from the
// two package constructors, never from request input.
func column(target Target) string {
	if target.Kind == TargetComment {
		return "comment_id"
	}
	return "post_id"
}

func (s *pgStore) Insert(ctx context.Context, userID string, target Target) (bool, error) {
	q := fmt.Sprintf(`
		INSERT INTO reactions (user_id, %s, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, %s) DO NOTHING
	`, column(target), column(target))

	tag, err := s.db.Exec(ctx, q, userID, target.ID, time.Now())
	if err != nil {
		return false, fmt.Errorf("insert reaction: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *pgStore) Delete(ctx context.Context, userID string, target Target) (bool, error) {
	q := fmt.Sprintf(`DELETE FROM reactions WHERE user_id = $1 AND %s = $2`, column(target))

	tag, err := s.db.Exec(ctx, q, userID, target.ID)
	if err != nil {
		return false, fmt.Errorf("delete reaction: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *pgStore) Exists(ctx context.Context, userID string, target Target) (bool, error) {
	q := fmt.Sprintf(`SELECT 1 FROM reactions WHERE user_id = $1 AND %s = $2 LIMIT 1`, column(target))

	var one int
	err := s.db.QueryRow(ctx, q, userID, target.ID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reaction exists: %w", err)
	}
	return true, nil
}

func (s *pgStore) Count(ctx context.Context, target Target) (int64, error) {
	q := fmt.Sprintf(`SELECT COUNT(*) FROM reactions WHERE %s = $1`, column(target))

	var cnt int64
	if err := s.db.QueryRow(ctx, q, target.ID).Scan(&cnt); err != nil {
		return 0, fmt.Errorf("count reactions: %w", err)
	}
	return cnt, nil
}

// ValidUserID reports whether the supplied user id parses as a UUID.
func ValidUserID(userID string) bool {
	_, err := uuid.Parse(userID)
	return err == nil
}
