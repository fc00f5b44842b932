package database

import (
	"context"
	"fmt"
	"log/slog"
)

// Schema statements are idempotent so they can run at every startup.
// Reactions target exactly one of a post or a comment; the unique indexes
// make repeated likes from the same user a storage-level no-op.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR(255) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id BIGSERIAL PRIMARY KEY,
		author VARCHAR(255) NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id BIGSERIAL PRIMARY KEY,
		post_id BIGINT NOT NULL REFERENCES posts(id),
		author VARCHAR(255) NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS reactions (
		id BIGSERIAL PRIMARY KEY,
		user_id UUID NOT NULL,
		post_id BIGINT REFERENCES posts(id),
		comment_id BIGINT REFERENCES comments(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT reactions_one_target CHECK ((post_id IS NULL) <> (comment_id IS NULL)),
		CONSTRAINT reactions_user_post_key UNIQUE (user_id, post_id),
		CONSTRAINT reactions_user_comment_key UNIQUE (user_id, comment_id)
	)`,
	`CREATE INDEX IF NOT EXISTS comments_post_id_idx ON comments (post_id)`,
	`CREATE INDEX IF NOT EXISTS reactions_post_id_idx ON reactions (post_id)`,
	`CREATE INDEX IF NOT EXISTS reactions_comment_id_idx ON reactions (comment_id)`,
}

// Migrate applies the schema statements in order.
func (s *service) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	slog.Info("Database schema ensured")
	return nil
}
