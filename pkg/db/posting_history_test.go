package db

import (
	"path/filepath"
	"testing"
)

func openTestHistory(t *testing.T) *PostingHistory {
	t.Helper()
	conn, err := Open(filepath.Join(t.TempDir(), ".agent", "history.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewPostingHistory(conn)
}

func testRecord(date, payee, txnType string) PostingRecord {
	return PostingRecord{
		TxnDate:       date,
		Payee:         payee,
		Narration:     payee,
		TxnType:       txnType,
		DebitAccount:  "Expenses:Food:Lunch",
		CreditAccount: "Assets:Cash:WeChat",
		Amount:        "25.00",
		Currency:      "CNY",
		LedgerFile:    "2026/transactions.beancount",
	}
}

func TestRecordAndRecent(t *testing.T) {
	h := openTestHistory(t)

	for _, r := range []PostingRecord{
		testRecord("2026-01-10", "公司", "income"),
		testRecord("2026-01-15", "肯德基", "expense"),
		testRecord("2026-01-16", "全家", "expense"),
	} {
		if err := h.Record(r); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	records, err := h.Recent(2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Newest first.
	if records[0].Payee != "全家" || records[1].Payee != "肯德基" {
		t.Errorf("unexpected order: %q, %q", records[0].Payee, records[1].Payee)
	}
	if records[0].Amount != "25.00" || records[0].Currency != "CNY" {
		t.Errorf("unexpected record fields: %+v", records[0])
	}
	if records[0].RecordedAt.IsZero() {
		t.Error("recorded_at was not set")
	}
}

func TestSummary(t *testing.T) {
	h := openTestHistory(t)

	empty, err := h.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if empty.Total != 0 || empty.FirstDate != "" || empty.LastDate != "" {
		t.Errorf("unexpected empty summary: %+v", empty)
	}

	for _, r := range []PostingRecord{
		testRecord("2026-01-10", "公司", "income"),
		testRecord("2026-01-15", "肯德基", "expense"),
		testRecord("2026-01-16", "全家", "expense"),
	} {
		if err := h.Record(r); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	s, err := h.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if s.Total != 3 || s.ExpenseCount != 2 || s.IncomeCount != 1 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if s.FirstDate != "2026-01-10" || s.LastDate != "2026-01-16" {
		t.Errorf("unexpected date range: %+v", s)
	}
}
