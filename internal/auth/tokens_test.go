package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndValidateRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", 30*time.Minute)

	token, err := manager.Issue(42, 0)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	userID, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user id 42, got %d", userID)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager := NewTokenManager("test-secret", 30*time.Minute)

	token, err := manager.Issue(7, time.Nanosecond)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", 30*time.Minute)
	verifier := NewTokenManager("secret-two", 30*time.Minute)

	token, err := issuer.Issue(7, 0)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := verifier.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret", 30*time.Minute)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := manager.Validate(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", raw, err)
		}
	}
}
