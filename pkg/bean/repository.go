package bean

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileRepository is the append-only store for one transaction file.
//
// Records are only ever appended, never rewritten or reordered. Concurrent
// appends from the same process are serialized by an internal mutex; the
// host must ensure a single writing process per file.
type FileRepository struct {
	mu   sync.Mutex
	path string
}

// NewFileRepository creates a repository for the given transaction file.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Path returns the backing file path.
func (r *FileRepository) Path() string {
	return r.path
}

// EnsureInitialized creates the backing file with a header comment block if
// it does not exist yet. Calling it on an existing file is a no-op, so the
// header is never duplicated and existing records are never touched.
func (r *FileRepository) EnsureInitialized() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ensureInitializedLocked()
}

func (r *FileRepository) ensureInitializedLocked() error {
	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat transaction file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("failed to create transaction directory: %w", err)
	}

	header := fmt.Sprintf("; Transaction records\n; Created: %s\n", time.Now().Format(DateLayout))
	if err := os.WriteFile(r.path, []byte(header), 0644); err != nil {
		return fmt.Errorf("failed to create transaction file: %w", err)
	}
	return nil
}

// Append writes one complete record to the end of the file as a single
// write. The file is opened and released per call; failures are returned to
// the caller so "written" and "not written" stay distinguishable.
func (r *FileRepository) Append(record string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureInitializedLocked(); err != nil {
		return err
	}

	if len(record) == 0 || record[len(record)-1] != '\n' {
		record += "\n"
	}

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open transaction file for appending: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(record); err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}
	return nil
}
