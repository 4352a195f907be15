// Package bean implements the Beancount ledger engine: the record model,
// textual formatting, the append-only file store, the parser and balance
// aggregation over the parsed entries.
package bean

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used by every ledger record.
const DateLayout = "2006-01-02"

// Account roots recognized by the engine. Every account id is a
// colon-delimited path rooted in one of these.
var accountRoots = map[string]bool{
	"Assets":      true,
	"Liabilities": true,
	"Income":      true,
	"Expenses":    true,
	"Equity":      true,
}

// ValidAccount reports whether name is a well-formed account id:
// non-empty colon-delimited segments under one of the five roots.
func ValidAccount(name string) bool {
	segments := strings.Split(name, ":")
	if !accountRoots[segments[0]] {
		return false
	}
	for _, s := range segments {
		if s == "" {
			return false
		}
	}
	return true
}

// Posting is one signed amount applied to one account.
type Posting struct {
	Account  string
	Amount   decimal.Decimal
	Currency string
}

// Transaction is a dated, balanced set of postings recorded under a payee
// and a narration.
type Transaction struct {
	Date      string // YYYY-MM-DD
	Payee     string
	Narration string
	Postings  []Posting
}

// Open is an account-declaration directive from the main ledger file.
type Open struct {
	Date       string
	Account    string
	Currencies []string
}

// Entry is one parsed ledger entry. Exactly one of the fields is set.
type Entry struct {
	Open *Open
	Txn  *Transaction
}

// NewSimpleTransaction builds the two-posting transaction used for every
// recorded fact: +amount on the debit account, -amount on the credit account.
// The narration defaults to the payee when empty.
func NewSimpleTransaction(date, payee, narration, debitAccount, creditAccount string, amount decimal.Decimal, currency string) (Transaction, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return Transaction{}, fmt.Errorf("invalid transaction date %q: %w", date, err)
	}
	if !ValidAccount(debitAccount) {
		return Transaction{}, fmt.Errorf("invalid debit account %q", debitAccount)
	}
	if !ValidAccount(creditAccount) {
		return Transaction{}, fmt.Errorf("invalid credit account %q", creditAccount)
	}
	if debitAccount == creditAccount {
		return Transaction{}, fmt.Errorf("debit and credit accounts must differ, got %q", debitAccount)
	}
	if !amount.IsPositive() {
		return Transaction{}, fmt.Errorf("transaction amount must be positive, got %s", amount)
	}
	if currency == "" {
		return Transaction{}, fmt.Errorf("currency is required")
	}
	if narration == "" {
		narration = payee
	}
	return Transaction{
		Date:      date,
		Payee:     payee,
		Narration: narration,
		Postings: []Posting{
			{Account: debitAccount, Amount: amount, Currency: currency},
			{Account: creditAccount, Amount: amount.Neg(), Currency: currency},
		},
	}, nil
}

// Balanced reports whether the postings sum to zero in every currency.
func (t Transaction) Balanced() bool {
	sums := make(map[string]decimal.Decimal)
	for _, p := range t.Postings {
		sums[p.Currency] = sums[p.Currency].Add(p.Amount)
	}
	for _, sum := range sums {
		if !sum.IsZero() {
			return false
		}
	}
	return true
}
