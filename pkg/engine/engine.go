package engine

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/beancount-agent/pkg/bean"
	"github.com/shunichi-ikebuchi/beancount-agent/pkg/catalog"
	"github.com/shunichi-ikebuchi/beancount-agent/pkg/db"
)

// Engine is the ledger posting and balance aggregation facade. It is
// stateless across calls except for the append-only store's on-disk
// content; balance queries re-read the store every time.
type Engine struct {
	catalog  *catalog.Catalog
	store    *bean.FileRepository
	mainPath string
	currency string
	history  *db.PostingHistory // optional audit mirror, may be nil
}

// New creates an engine over the read-only main ledger file and the
// append-only transaction repository.
func New(cat *catalog.Catalog, store *bean.FileRepository, mainPath, currency string, history *db.PostingHistory) *Engine {
	return &Engine{
		catalog:  cat,
		store:    store,
		mainPath: mainPath,
		currency: currency,
		history:  history,
	}
}

// Currency returns the engine's reporting currency.
func (e *Engine) Currency() string {
	return e.currency
}

// Resolve maps a fact to its (credit, debit) account pair. Expenses debit
// the category account and credit the funding instrument; income debits the
// instrument and credits the category. Unmapped values land on the catalog
// fallbacks, so every well-typed fact resolves.
func (e *Engine) Resolve(f Fact) (creditAccount, debitAccount string) {
	if f.TransactionType == TypeIncome {
		return e.catalog.ResolveIncome(f.Category),
			e.catalog.ResolvePayment(f.PaymentMethod, f.BankName, f.CardLastFour)
	}
	return e.catalog.ResolvePayment(f.PaymentMethod, f.BankName, f.CardLastFour),
		e.catalog.ResolveExpense(f.Category)
}

// RenderTransaction resolves and formats the fact without appending it.
func (e *Engine) RenderTransaction(f Fact) (string, error) {
	if err := f.Validate(); err != nil {
		return "", fmt.Errorf("invalid transaction fact: %w", err)
	}
	credit, debit := e.Resolve(f)
	txn, err := bean.NewSimpleTransaction(f.Date, f.Merchant, f.Description, debit, credit, f.Amount, e.currency)
	if err != nil {
		return "", fmt.Errorf("failed to build transaction: %w", err)
	}
	return txn.Render(), nil
}

// PostTransaction validates the fact, resolves it to a balanced two-posting
// transaction and appends it to the store. The append either fully succeeds
// or reports an error; it is never retried here, since a retry after a
// partial failure could duplicate the record.
func (e *Engine) PostTransaction(f Fact) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("invalid transaction fact: %w", err)
	}

	credit, debit := e.Resolve(f)
	txn, err := bean.NewSimpleTransaction(f.Date, f.Merchant, f.Description, debit, credit, f.Amount, e.currency)
	if err != nil {
		return fmt.Errorf("failed to build transaction: %w", err)
	}

	if err := e.store.Append(txn.Render()); err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}

	if e.history != nil {
		record := db.PostingRecord{
			TxnDate:       txn.Date,
			Payee:         txn.Payee,
			Narration:     txn.Narration,
			TxnType:       f.TransactionType,
			DebitAccount:  debit,
			CreditAccount: credit,
			Amount:        f.Amount.StringFixed(2),
			Currency:      e.currency,
			LedgerFile:    e.store.Path(),
		}
		if err := e.history.Record(record); err != nil {
			// The ledger append already succeeded; the audit mirror must
			// not turn a written transaction into a reported failure.
			slog.Warn("failed to record posting history", "error", err)
		}
	}
	return nil
}

// load reads the main declarations file plus the transaction store.
func (e *Engine) load() ([]bean.Entry, []bean.ParseError, error) {
	paths := []string{e.mainPath}
	if e.store != nil {
		if err := e.store.EnsureInitialized(); err != nil {
			return nil, nil, err
		}
		paths = append(paths, e.store.Path())
	}
	return bean.Load(paths...)
}

// ListAccounts returns the sorted declared accounts from the ledger store,
// along with any parse diagnostics encountered while loading it.
func (e *Engine) ListAccounts() ([]string, []bean.ParseError, error) {
	entries, diags, err := e.load()
	if err != nil {
		return nil, diags, err
	}
	return bean.Accounts(entries), diags, nil
}

// Balances replays the whole store and returns per-account roll-up balances
// in the given currency. Parse diagnostics are returned alongside the
// balances, never silently dropped.
func (e *Engine) Balances(currency string) (map[string]decimal.Decimal, []bean.ParseError, error) {
	if currency == "" {
		currency = e.currency
	}
	entries, diags, err := e.load()
	if err != nil {
		return nil, diags, err
	}
	return bean.Balances(entries, currency), diags, nil
}

// CatalogSnapshot returns the static catalog for client option population.
func (e *Engine) CatalogSnapshot() catalog.Snapshot {
	return e.catalog.Snapshot()
}
