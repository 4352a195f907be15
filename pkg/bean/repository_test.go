package bean

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

func TestEnsureInitialized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2026", "transactions.beancount")
	repo := NewFileRepository(path)

	if err := repo.EnsureInitialized(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read transaction file: %v", err)
	}
	if !strings.HasPrefix(string(first), "; Transaction records\n; Created: ") {
		t.Errorf("unexpected header: %q", first)
	}

	// A second call must not rewrite the file.
	if err := repo.EnsureInitialized(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read transaction file: %v", err)
	}
	if string(first) != string(second) {
		t.Error("EnsureInitialized rewrote an existing file")
	}
}

func TestAppendPreservesExistingRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.beancount")
	repo := NewFileRepository(path)

	txn1, err := NewSimpleTransaction("2026-01-15", "肯德基", "午餐", "Expenses:Food:Lunch", "Assets:Cash:WeChat", decimal.RequireFromString("25.00"), "CNY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	txn2, err := NewSimpleTransaction("2026-01-16", "全家", "零食", "Expenses:Food:Snack", "Assets:Cash:Alipay", decimal.RequireFromString("9.50"), "CNY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Append(txn1.Render()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Append(txn2.Render()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, diags, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Txn.Payee != "肯德基" || entries[1].Txn.Payee != "全家" {
		t.Errorf("records out of order: %+v", entries)
	}
}

func TestAppendConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.beancount")
	repo := NewFileRepository(path)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			txn, err := NewSimpleTransaction("2026-01-15", "p", "n", "Expenses:Food:Lunch", "Assets:Cash:WeChat", decimal.RequireFromString("1.00"), "CNY")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if err := repo.Append(txn.Render()); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	entries, diags, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("interleaved records corrupted the file: %v", diags)
	}
	if len(entries) != n {
		t.Errorf("expected %d entries, got %d", n, len(entries))
	}
}
