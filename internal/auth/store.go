// Package auth implements single-user bearer-token authentication for the
// HTTP API. Tokens are random, expiring and persisted in a bbolt database
// so sessions survive restarts.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketTokens = "tokens"

// ErrNotFound is returned when a token is not in the store.
var ErrNotFound = errors.New("token not found")

// TokenStore persists bearer tokens with their expiry time.
type TokenStore struct {
	db *bolt.DB
}

// OpenStore opens (or creates) the token database.
func OpenStore(dbPath string) (*TokenStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create token database directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open token database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketTokens))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create token bucket: %w", err)
	}

	return &TokenStore{db: db}, nil
}

// Close closes the database.
func (s *TokenStore) Close() error {
	return s.db.Close()
}

// Put stores a token with its expiration time.
func (s *TokenStore) Put(token string, expiresAt time.Time) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketTokens))
		return b.Put([]byte(token), []byte(strconv.FormatInt(expiresAt.Unix(), 10)))
	})
}

// Get returns a token's expiration time.
func (s *TokenStore) Get(token string) (time.Time, error) {
	var expiresAt time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketTokens))
		v := b.Get([]byte(token))
		if v == nil {
			return ErrNotFound
		}
		unix, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return fmt.Errorf("corrupt token record: %w", err)
		}
		expiresAt = time.Unix(unix, 0)
		return nil
	})
	return expiresAt, err
}

// Delete removes a token.
func (s *TokenStore) Delete(token string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketTokens))
		return b.Delete([]byte(token))
	})
}
