package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestManager_CreateAndGet(t *testing.T) {
	mgr := NewManager(NewMemoryStore())

	sess, err := mgr.Create(context.Background(), "user-1", "ann", time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("session id not assigned")
	}

	got, err := mgr.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != "user-1" || got.Username != "ann" {
		t.Errorf("got = %+v", got)
	}
}

func TestManager_GetUnknown(t *testing.T) {
	mgr := NewManager(NewMemoryStore())

	_, err := mgr.Get(context.Background(), "no-such-session")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestManager_ExpiredSession(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store)

	sess, err := mgr.Create(context.Background(), "user-1", "ann", time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Rewrite the stored record with an expiry in the past; the manager
	// must treat it as expired even though the store still returns it.
	expired := *sess
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	data, err := json.Marshal(&expired)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := store.Set(context.Background(), "session:"+sess.ID, string(data), time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	_, err = mgr.Get(context.Background(), sess.ID)
	if !errors.Is(err, ErrSessionExpired) {
		t.Errorf("error = %v, want ErrSessionExpired", err)
	}
}

func TestManager_Delete(t *testing.T) {
	mgr := NewManager(NewMemoryStore())

	sess, err := mgr.Create(context.Background(), "user-1", "ann", time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := mgr.Delete(context.Background(), sess.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := mgr.Get(context.Background(), sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error after delete = %v, want ErrSessionNotFound", err)
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	store := NewMemoryStore()

	if err := store.Set(context.Background(), "k", "v", -time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := store.Get(context.Background(), "k"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("error = %v, want ErrKeyNotFound for expired key", err)
	}
}
