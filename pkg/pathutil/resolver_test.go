package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	p := New(Config{LedgerRoot: "/data/ledger"})

	if got := p.GetMainPath(); got != filepath.Join("/data/ledger", "main.beancount") {
		t.Errorf("GetMainPath = %q", got)
	}
	if got := p.GetDatabasePath(); got != filepath.Join("/data/ledger", ".agent", "history.db") {
		t.Errorf("GetDatabasePath = %q", got)
	}
	if got := p.GetTokenDBPath(); got != filepath.Join("/data/ledger", ".agent", "tokens.db") {
		t.Errorf("GetTokenDBPath = %q", got)
	}
	if got := p.GetTransactionPath("2026"); got != filepath.Join("/data/ledger", "2026", "transactions.beancount") {
		t.Errorf("GetTransactionPath = %q", got)
	}
}

func TestExplicitPathsWin(t *testing.T) {
	p := New(Config{
		LedgerRoot:   "/data/ledger",
		MainPath:     "/elsewhere/main.beancount",
		DatabasePath: "/var/db/history.db",
		TokenDBPath:  "/var/db/tokens.db",
	})

	if got := p.GetMainPath(); got != "/elsewhere/main.beancount" {
		t.Errorf("GetMainPath = %q", got)
	}
	if got := p.GetDatabasePath(); got != "/var/db/history.db" {
		t.Errorf("GetDatabasePath = %q", got)
	}
	if got := p.GetTokenDBPath(); got != "/var/db/tokens.db" {
		t.Errorf("GetTokenDBPath = %q", got)
	}
}

func TestEnsureParentDir(t *testing.T) {
	root := t.TempDir()
	p := New(Config{LedgerRoot: root})

	file := filepath.Join(root, "2026", "transactions.beancount")
	if err := p.EnsureParentDir(file); err != nil {
		t.Fatalf("EnsureParentDir failed: %v", err)
	}
	info, err := os.Stat(filepath.Dir(file))
	if err != nil || !info.IsDir() {
		t.Errorf("parent directory was not created: %v", err)
	}

	if p.FileExists(file) {
		t.Error("FileExists should be false for a missing file")
	}
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if !p.FileExists(file) {
		t.Error("FileExists should be true after writing")
	}
}
