package db

import (
	"database/sql"
	"fmt"
	"time"
)

// PostingRecord is one audited ledger append.
type PostingRecord struct {
	ID            int64
	TxnDate       string
	Payee         string
	Narration     string
	TxnType       string
	DebitAccount  string
	CreditAccount string
	Amount        string
	Currency      string
	LedgerFile    string
	RecordedAt    time.Time
}

// PostingSummary aggregates the history for display.
type PostingSummary struct {
	Total        int64
	ExpenseCount int64
	IncomeCount  int64
	FirstDate    string
	LastDate     string
}

// PostingHistory manages posting history operations.
type PostingHistory struct {
	conn *Connection
}

// NewPostingHistory creates a new PostingHistory instance.
func NewPostingHistory(conn *Connection) *PostingHistory {
	return &PostingHistory{conn: conn}
}

// Record stores one appended transaction in the history.
func (h *PostingHistory) Record(record PostingRecord) error {
	query := `
		INSERT INTO posting_history
			(txn_date, payee, narration, txn_type, debit_account, credit_account, amount, currency, ledger_file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := h.conn.Exec(query,
		record.TxnDate,
		record.Payee,
		record.Narration,
		record.TxnType,
		record.DebitAccount,
		record.CreditAccount,
		record.Amount,
		record.Currency,
		record.LedgerFile,
	)
	if err != nil {
		return fmt.Errorf("failed to record posting: %w", err)
	}
	return nil
}

// Recent returns the most recently recorded postings, newest first.
func (h *PostingHistory) Recent(limit int) ([]PostingRecord, error) {
	query := `
		SELECT id, txn_date, payee, narration, txn_type, debit_account, credit_account, amount, currency, ledger_file, recorded_at
		FROM posting_history
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := h.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query posting history: %w", err)
	}
	defer rows.Close()

	var records []PostingRecord
	for rows.Next() {
		var r PostingRecord
		if err := rows.Scan(
			&r.ID,
			&r.TxnDate,
			&r.Payee,
			&r.Narration,
			&r.TxnType,
			&r.DebitAccount,
			&r.CreditAccount,
			&r.Amount,
			&r.Currency,
			&r.LedgerFile,
			&r.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan posting record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posting history: %w", err)
	}
	return records, nil
}

// Summary returns aggregate counts over the whole history.
func (h *PostingHistory) Summary() (PostingSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN txn_type = 'expense' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN txn_type = 'income' THEN 1 ELSE 0 END), 0),
			COALESCE(MIN(txn_date), ''),
			COALESCE(MAX(txn_date), '')
		FROM posting_history
	`

	var s PostingSummary
	err := h.conn.QueryRow(query).Scan(&s.Total, &s.ExpenseCount, &s.IncomeCount, &s.FirstDate, &s.LastDate)
	if err != nil && err != sql.ErrNoRows {
		return PostingSummary{}, fmt.Errorf("failed to summarize posting history: %w", err)
	}
	return s, nil
}
