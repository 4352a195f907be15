// Package pathutil provides centralized path management for the ledger
// files and databases.
package pathutil

import (
	"os"
	"path/filepath"
)

// PathResolver manages paths under the ledger root: the read-only main
// declarations file, the per-year append-only transaction files and the
// agent's databases.
type PathResolver struct {
	ledgerRoot   string
	mainPath     string
	databasePath string
	tokenDBPath  string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// LedgerRoot is the root directory for all ledger files.
	LedgerRoot string
	// MainPath is the read-only declarations file. Defaults to
	// {LedgerRoot}/main.beancount.
	MainPath string
	// DatabasePath is the posting history database. Defaults to
	// {LedgerRoot}/.agent/history.db.
	DatabasePath string
	// TokenDBPath is the auth token database. Defaults to
	// {LedgerRoot}/.agent/tokens.db.
	TokenDBPath string
}

// New creates a new PathResolver with the given configuration.
func New(config Config) *PathResolver {
	mainPath := config.MainPath
	if mainPath == "" {
		mainPath = filepath.Join(config.LedgerRoot, "main.beancount")
	}

	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(config.LedgerRoot, ".agent", "history.db")
	}

	tokenDBPath := config.TokenDBPath
	if tokenDBPath == "" {
		tokenDBPath = filepath.Join(config.LedgerRoot, ".agent", "tokens.db")
	}

	return &PathResolver{
		ledgerRoot:   config.LedgerRoot,
		mainPath:     mainPath,
		databasePath: dbPath,
		tokenDBPath:  tokenDBPath,
	}
}

// GetLedgerRoot returns the ledger root directory.
func (p *PathResolver) GetLedgerRoot() string {
	return p.ledgerRoot
}

// GetMainPath returns the read-only main declarations file path.
func (p *PathResolver) GetMainPath() string {
	return p.mainPath
}

// GetDatabasePath returns the posting history database path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// GetTokenDBPath returns the auth token database path.
func (p *PathResolver) GetTokenDBPath() string {
	return p.tokenDBPath
}

// GetTransactionPath returns the append-only transaction file for a year.
// Example: {root}/2026/transactions.beancount
func (p *PathResolver) GetTransactionPath(year string) string {
	return filepath.Join(p.ledgerRoot, year, "transactions.beancount")
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return p.EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
