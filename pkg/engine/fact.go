// Package engine ties the catalog, the formatter and the ledger store into
// the request-scoped operations exposed to callers: post a transaction,
// list accounts, compute balances, describe the catalog.
package engine

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/beancount-agent/pkg/bean"
)

// Transaction types accepted in a fact.
const (
	TypeExpense = "expense"
	TypeIncome  = "income"
)

var lastFourRe = regexp.MustCompile(`^\d{4}$`)

// Fact is the structured transaction fact produced by an external
// classifier (or typed in by the user). It is consumed once, never mutated.
type Fact struct {
	Date            string          `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	Merchant        string          `json:"merchant"`
	PaymentMethod   string          `json:"payment_method"`
	BankName        string          `json:"bank_name,omitempty"`
	CardLastFour    string          `json:"card_last_four,omitempty"`
	TransactionType string          `json:"transaction_type"`
	Category        string          `json:"category,omitempty"`
	Description     string          `json:"description,omitempty"`
}

// Validate checks the field shapes of the fact. It does not judge how the
// fact was derived, and it never rejects unknown instruments or categories;
// those resolve through the catalog fallbacks.
func (f Fact) Validate() error {
	if _, err := time.Parse(bean.DateLayout, f.Date); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", f.Date)
	}
	if !f.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", f.Amount)
	}
	if f.TransactionType != TypeExpense && f.TransactionType != TypeIncome {
		return fmt.Errorf("invalid transaction_type %q: expected %q or %q", f.TransactionType, TypeExpense, TypeIncome)
	}
	if f.PaymentMethod == "" {
		return fmt.Errorf("payment_method is required")
	}
	if f.CardLastFour != "" && !lastFourRe.MatchString(f.CardLastFour) {
		return fmt.Errorf("invalid card_last_four %q: expected four digits", f.CardLastFour)
	}
	return nil
}
