// Package users implements account provisioning and the session lifecycle
// behind the token-validation endpoint.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"purepoker-community/internal/database"
	"purepoker-community/internal/session"
	"purepoker-community/internal/token"
)

// SessionTTL is how long a login stays valid.
const SessionTTL = 24 * time.Hour

var (
	// ErrUsernameExists is returned when the username is already taken.
	ErrUsernameExists = errors.New("username already taken")
	// ErrEmailExists is returned when the email is already registered.
	ErrEmailExists = errors.New("email already registered")
	// ErrInvalidCredentials is returned on unknown username or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service defines account and session operations.
type Service interface {
	Register(ctx context.Context, username, email, password string) (*User, error)
	Login(ctx context.Context, username, password string) (*User, string, error)
	Validate(ctx context.Context, tokenString string) (*session.Session, error)
	Logout(ctx context.Context, tokenString string) error
}

type service struct {
	db       database.Service
	sessions session.Manager
	signer   *token.Signer
}

// NewService creates a users service.
func NewService(db database.Service, sessions session.Manager, signer *token.Signer) Service {
	return &service{db: db, sessions: sessions, signer: signer}
}

func (s *service) Register(ctx context.Context, username, email, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	const q = `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`

	u := &User{ID: uuid.New().String(), Username: username, Email: email}
	err = s.db.QueryRow(ctx, q, u.ID, username, email, string(hash)).Scan(&u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "users_username_key") {
			return nil, ErrUsernameExists
		}
		if isUniqueViolation(err, "users_email_key") {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	slog.Info("User registered", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// Login verifies the password, creates a session and returns a signed
// token for the session cookie.
func (s *service) Login(ctx context.Context, username, password string) (*User, string, error) {
	const q = `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username = $1
	`

	u := &User{}
	err := s.db.QueryRow(ctx, q, username).Scan(&u.ID, &u.Username, &u.Email, &u.passwordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, u.ID, u.Username, SessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	signed, err := s.signer.Issue(sess.ID, u.ID, u.Username, SessionTTL)
	if err != nil {
		return nil, "", err
	}

	slog.Info("User logged in", "user_id", u.ID, "username", u.Username)
	return u, signed, nil
}

// Validate checks the token signature and confirms the referenced session
// still exists.
func (s *service) Validate(ctx context.Context, tokenString string) (*session.Session, error) {
	claims, err := s.signer.Parse(tokenString)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != claims.UserID {
		return nil, session.ErrInvalidSession
	}
	return sess, nil
}

func (s *service) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.signer.Parse(tokenString)
	if err != nil {
		return err
	}
	return s.sessions.Delete(ctx, claims.SessionID)
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}
