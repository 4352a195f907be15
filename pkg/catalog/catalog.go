// Package catalog holds the static account catalog: the versioned tables
// that map payment instruments, bank cards and categories to fully-qualified
// Beancount account ids, with an explicit fallback chain for every lookup.
package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shunichi-ikebuchi/beancount-agent/pkg/bean"
)

// PaymentMethod maps one payment instrument to its account.
type PaymentMethod struct {
	Value   string `yaml:"value" json:"value"`
	Label   string `yaml:"label" json:"label"`
	Account string `yaml:"account" json:"account"`
}

// BankCard maps one (bank code, last-four) pair to its account. The first
// card listed for a bank is that bank's default account.
type BankCard struct {
	Bank     string `yaml:"bank" json:"bank"`
	BankName string `yaml:"bank_name" json:"bank_name"`
	LastFour string `yaml:"last_four" json:"last_four"`
	Account  string `yaml:"account" json:"account"`
}

// Category maps one expense or income category to its account.
type Category struct {
	Value   string `yaml:"value" json:"value"`
	Label   string `yaml:"label" json:"label"`
	Account string `yaml:"account" json:"account"`
	Group   string `yaml:"group,omitempty" json:"group,omitempty"`
}

// Liability is a liability account exposed for client display.
type Liability struct {
	Value   string `yaml:"value" json:"value"`
	Label   string `yaml:"label" json:"label"`
	Account string `yaml:"account" json:"account"`
}

// Fallbacks are the designated catch-all accounts used when no specific
// mapping rule matches an input. Lookups never fail; they land here.
type Fallbacks struct {
	BankAccount    string `yaml:"bank_account" json:"bank_account"`
	AssetAccount   string `yaml:"asset_account" json:"asset_account"`
	ExpenseAccount string `yaml:"expense_account" json:"expense_account"`
	IncomeAccount  string `yaml:"income_account" json:"income_account"`
}

// Snapshot is the full structured catalog description, consumed by clients
// to populate their option lists. It is also the on-disk YAML schema for a
// user-supplied catalog file.
type Snapshot struct {
	PaymentMethods    []PaymentMethod `yaml:"payment_methods" json:"payment_methods"`
	BankCards         []BankCard      `yaml:"bank_cards" json:"bank_cards"`
	ExpenseCategories []Category      `yaml:"expense_categories" json:"expense_categories"`
	IncomeCategories  []Category      `yaml:"income_categories" json:"income_categories"`
	LiabilityAccounts []Liability     `yaml:"liability_accounts" json:"liability_accounts"`
	Fallbacks         Fallbacks       `yaml:"fallbacks" json:"-"`
}

type bankCardKey struct {
	Bank     string
	LastFour string
}

// Catalog resolves transaction facts to account ids. It is immutable after
// construction; every lookup is a pure function of its inputs.
type Catalog struct {
	snapshot Snapshot

	payments     map[string]string
	bankCards    map[bankCardKey]string
	bankDefaults map[string]string
	expenses     map[string]string
	incomes      map[string]string
}

// New builds a catalog from a snapshot and validates its internal
// consistency. Inconsistent tables are fatal here, never at request time.
func New(snapshot Snapshot) (*Catalog, error) {
	c := &Catalog{
		snapshot:     snapshot,
		payments:     make(map[string]string),
		bankCards:    make(map[bankCardKey]string),
		bankDefaults: make(map[string]string),
		expenses:     make(map[string]string),
		incomes:      make(map[string]string),
	}

	for _, m := range snapshot.PaymentMethods {
		if err := checkAccount("payment method", m.Value, m.Account); err != nil {
			return nil, err
		}
		c.payments[m.Value] = m.Account
	}
	for _, card := range snapshot.BankCards {
		if err := checkAccount("bank card", card.Bank+":"+card.LastFour, card.Account); err != nil {
			return nil, err
		}
		bank := strings.ToUpper(card.Bank)
		c.bankCards[bankCardKey{Bank: bank, LastFour: card.LastFour}] = card.Account
		if _, ok := c.bankDefaults[bank]; !ok {
			c.bankDefaults[bank] = card.Account
		}
	}
	for _, cat := range snapshot.ExpenseCategories {
		if err := checkAccount("expense category", cat.Value, cat.Account); err != nil {
			return nil, err
		}
		c.expenses[cat.Value] = cat.Account
	}
	for _, cat := range snapshot.IncomeCategories {
		if err := checkAccount("income category", cat.Value, cat.Account); err != nil {
			return nil, err
		}
		c.incomes[cat.Value] = cat.Account
	}

	for _, l := range snapshot.LiabilityAccounts {
		if err := checkAccount("liability account", l.Value, l.Account); err != nil {
			return nil, err
		}
	}

	fb := snapshot.Fallbacks
	for name, account := range map[string]string{
		"bank fallback":    fb.BankAccount,
		"asset fallback":   fb.AssetAccount,
		"expense fallback": fb.ExpenseAccount,
		"income fallback":  fb.IncomeAccount,
	} {
		if err := checkAccount(name, "", account); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Load reads a catalog snapshot from a YAML file and builds the catalog
// from it. Fallback accounts missing from the file keep the defaults.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	snapshot := Snapshot{Fallbacks: defaultSnapshot.Fallbacks}
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	return New(snapshot)
}

// Default builds the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultSnapshot)
	if err != nil {
		// The built-in tables are fixed; failing to build them is a
		// programming error.
		panic(err)
	}
	return c
}

func checkAccount(kind, key, account string) error {
	if account == "" {
		return fmt.Errorf("catalog %s %q has no account", kind, key)
	}
	if !bean.ValidAccount(account) {
		return fmt.Errorf("catalog %s %q has malformed account %q", kind, key, account)
	}
	return nil
}

// ResolvePayment resolves a payment instrument to its asset (or liability)
// account. For bank-card payments the precedence is exact (bank, last-four)
// match, then the bank's default account, then the generic bank fallback.
// A bank-card payment with no bank at all cannot name even a bank subtree,
// so it resolves to the asset fallback, same as an unknown instrument.
func (c *Catalog) ResolvePayment(method, bankCode, cardLastFour string) string {
	if method == BankCardMethod {
		if bankCode == "" {
			return c.snapshot.Fallbacks.AssetAccount
		}
		bank := strings.ToUpper(bankCode)
		if account, ok := c.bankCards[bankCardKey{Bank: bank, LastFour: cardLastFour}]; ok {
			return account
		}
		if account, ok := c.bankDefaults[bank]; ok {
			return account
		}
		return c.snapshot.Fallbacks.BankAccount
	}
	if account, ok := c.payments[method]; ok {
		return account
	}
	return c.snapshot.Fallbacks.AssetAccount
}

// ResolveExpense resolves an expense category by exact match, falling back
// to the designated misc expense leaf.
func (c *Catalog) ResolveExpense(category string) string {
	if account, ok := c.expenses[category]; ok {
		return account
	}
	return c.snapshot.Fallbacks.ExpenseAccount
}

// ResolveIncome resolves an income category by exact match, falling back to
// the designated other income leaf.
func (c *Catalog) ResolveIncome(category string) string {
	if account, ok := c.incomes[category]; ok {
		return account
	}
	return c.snapshot.Fallbacks.IncomeAccount
}

// Snapshot returns the structured catalog description for client display.
func (c *Catalog) Snapshot() Snapshot {
	return c.snapshot
}

// ListedAccounts returns the ordered, de-duplicated set of every account id
// the catalog can resolve to, including the fallbacks.
func (c *Catalog) ListedAccounts() []string {
	seen := make(map[string]bool)
	collect := func(account string) { seen[account] = true }

	for _, account := range c.payments {
		collect(account)
	}
	for _, account := range c.bankCards {
		collect(account)
	}
	for _, account := range c.expenses {
		collect(account)
	}
	for _, account := range c.incomes {
		collect(account)
	}
	for _, l := range c.snapshot.LiabilityAccounts {
		collect(l.Account)
	}
	fb := c.snapshot.Fallbacks
	collect(fb.BankAccount)
	collect(fb.AssetAccount)
	collect(fb.ExpenseAccount)
	collect(fb.IncomeAccount)

	accounts := make([]string, 0, len(seen))
	for a := range seen {
		accounts = append(accounts, a)
	}
	sort.Strings(accounts)
	return accounts
}
