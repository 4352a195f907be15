package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

const (
	tokenLength = 32
	tokenTTL    = 24 * time.Hour
)

// ErrInvalidCredentials is returned when the username or password is wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Manager checks credentials and manages bearer tokens.
type Manager struct {
	store    *TokenStore
	username string
	password string
}

// NewManager creates a Manager for the configured single user.
func NewManager(store *TokenStore, username, password string) *Manager {
	return &Manager{
		store:    store,
		username: username,
		password: password,
	}
}

// Login checks the credentials and, on success, issues a new bearer token.
func (m *Manager) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(m.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) == 1
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}

	token, err := generateRandomToken(tokenLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	if err := m.store.Put(token, time.Now().Add(tokenTTL)); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

// Validate reports whether the token exists and has not expired. Expired
// tokens are removed from the store.
func (m *Manager) Validate(token string) (bool, error) {
	expiresAt, err := m.store.Get(token)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if time.Now().After(expiresAt) {
		_ = m.store.Delete(token)
		return false, nil
	}
	return true, nil
}

// Revoke invalidates a token.
func (m *Manager) Revoke(token string) error {
	return m.store.Delete(token)
}

// generateRandomToken generates a URL-safe random token string.
func generateRandomToken(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
