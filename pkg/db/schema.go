package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Posting history table
-- One row per transaction appended to the ledger store. This is an audit
-- mirror; the ledger file remains the source of truth.
CREATE TABLE IF NOT EXISTS posting_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    txn_date TEXT NOT NULL,            -- YYYY-MM-DD
    payee TEXT NOT NULL DEFAULT '',
    narration TEXT NOT NULL DEFAULT '',
    txn_type TEXT NOT NULL,            -- 'expense' or 'income'
    debit_account TEXT NOT NULL,
    credit_account TEXT NOT NULL,
    amount TEXT NOT NULL,              -- decimal string, two fractional digits
    currency TEXT NOT NULL,
    ledger_file TEXT NOT NULL,         -- transaction file the record went to
    recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_posting_history_date
    ON posting_history(txn_date);

CREATE INDEX IF NOT EXISTS idx_posting_history_type
    ON posting_history(txn_type);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
