// Package session provides server-side session records with TTL-based
// expiration. The record is referenced by id from the signed cookie; the
// store backend is Redis in production and in-process memory otherwise.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound is returned when a session is not found.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when a session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrInvalidSession is returned when session data cannot be decoded.
	ErrInvalidSession = errors.New("invalid session")
)

// Manager defines session management operations.
type Manager interface {
	Create(ctx context.Context, userID, username string, maxAge time.Duration) (*Session, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

type manager struct {
	store Store
}

// NewManager creates a session manager over the given store.
func NewManager(store Store) Manager {
	return &manager{store: store}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (m *manager) Create(ctx context.Context, userID, username string, maxAge time.Duration) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(maxAge),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	if err := m.store.Set(ctx, sessionKey(sess.ID), string(data), maxAge); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

func (m *manager) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := m.store.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, ErrSessionNotFound
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, ErrInvalidSession
	}

	if time.Now().After(sess.ExpiresAt) {
		m.store.Delete(ctx, sessionKey(sessionID))
		return nil, ErrSessionExpired
	}
	return &sess, nil
}

func (m *manager) Delete(ctx context.Context, sessionID string) error {
	return m.store.Delete(ctx, sessionKey(sessionID))
}
