package token

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	signer := NewSigner("test-secret")

	signed, err := signer.Issue("sess-1", "user-1", "ann", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := signer.Parse(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.SessionID != "sess-1" || claims.UserID != "user-1" || claims.Username != "ann" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	signed, err := NewSigner("secret-a").Issue("sess-1", "user-1", "ann", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewSigner("secret-b").Parse(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestParse_Expired(t *testing.T) {
	signer := NewSigner("test-secret")

	signed, err := signer.Issue("sess-1", "user-1", "ann", -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := signer.Parse(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestParse_Garbage(t *testing.T) {
	if _, err := NewSigner("test-secret").Parse("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}
