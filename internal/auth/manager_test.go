package auth

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "tokens.db"))
	if err != nil {
		t.Fatalf("failed to open token store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewManager(store, "admin", "secret")
}

func TestLogin(t *testing.T) {
	m := newTestManager(t)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"valid credentials", "admin", "secret", false},
		{"wrong password", "admin", "wrong", true},
		{"wrong username", "root", "secret", true},
		{"empty credentials", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := m.Login(tt.username, tt.password)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCredentials) {
					t.Fatalf("expected ErrInvalidCredentials, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if token == "" {
				t.Fatal("expected a token")
			}
			ok, err := m.Validate(token)
			if err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			if !ok {
				t.Error("freshly issued token should validate")
			}
		})
	}
}

func TestTokensAreUnique(t *testing.T) {
	m := newTestManager(t)
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		token, err := m.Login("admin", "secret")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if seen[token] {
			t.Fatal("token issued twice")
		}
		seen[token] = true
	}
}

func TestValidateUnknownToken(t *testing.T) {
	m := newTestManager(t)
	ok, err := m.Validate("never-issued")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if ok {
		t.Error("unknown token must not validate")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "tokens.db"))
	if err != nil {
		t.Fatalf("failed to open token store: %v", err)
	}
	defer store.Close()
	m := NewManager(store, "admin", "secret")

	if err := store.Put("stale", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	ok, err := m.Validate("stale")
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if ok {
		t.Error("expired token must not validate")
	}
	// Expired tokens are purged on first sight.
	if _, err := store.Get("stale"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired token should be deleted, got %v", err)
	}
}

func TestRevoke(t *testing.T) {
	m := newTestManager(t)
	token, err := m.Login("admin", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := m.Revoke(token); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	ok, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if ok {
		t.Error("revoked token must not validate")
	}
}

func TestTokensSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.db")

	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("failed to open token store: %v", err)
	}
	token, err := NewManager(store, "admin", "secret").Login("admin", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	store.Close()

	store, err = OpenStore(path)
	if err != nil {
		t.Fatalf("failed to reopen token store: %v", err)
	}
	defer store.Close()
	ok, err := NewManager(store, "admin", "secret").Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !ok {
		t.Error("token should survive a store reopen")
	}
}
