package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/beancount-agent/pkg/bean"
	"github.com/shunichi-ikebuchi/beancount-agent/pkg/catalog"
)

const testMainLedger = `option "title" "Personal Ledger"
option "operating_currency" "CNY"

2020-01-01 open Assets:Cash:WeChat CNY
2020-01-01 open Assets:Cash:Alipay CNY
2020-01-01 open Assets:Bank:CCB:0388 CNY
2020-01-01 open Assets:Bank:BOC:8735 CNY
2020-01-01 open Expenses:Food:Lunch CNY
2020-01-01 open Expenses:Other:Misc CNY
2020-01-01 open Income:Salary CNY
`

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "main.beancount")
	if err := os.WriteFile(mainPath, []byte(testMainLedger), 0o644); err != nil {
		t.Fatalf("failed to write main ledger: %v", err)
	}
	store := bean.NewFileRepository(filepath.Join(dir, "2026", "transactions.beancount"))
	return New(catalog.Default(), store, mainPath, "CNY", nil)
}

func TestResolve(t *testing.T) {
	eng := newTestEngine(t)

	tests := []struct {
		name       string
		fact       Fact
		wantCredit string
		wantDebit  string
	}{
		{
			name:       "wechat lunch expense",
			fact:       Fact{TransactionType: TypeExpense, PaymentMethod: "微信", Category: "午餐"},
			wantCredit: "Assets:Cash:WeChat",
			wantDebit:  "Expenses:Food:Lunch",
		},
		{
			name:       "salary to bank card",
			fact:       Fact{TransactionType: TypeIncome, PaymentMethod: catalog.BankCardMethod, BankName: "CCB", CardLastFour: "0388", Category: "工资"},
			wantCredit: "Income:Salary",
			wantDebit:  "Assets:Bank:CCB:0388",
		},
		{
			name:       "unknown category lands on misc",
			fact:       Fact{TransactionType: TypeExpense, PaymentMethod: "支付宝", Category: "外卖"},
			wantCredit: "Assets:Cash:Alipay",
			wantDebit:  "Expenses:Other:Misc",
		},
		{
			name:       "unknown card falls to bank default",
			fact:       Fact{TransactionType: TypeExpense, PaymentMethod: catalog.BankCardMethod, BankName: "BOC", CardLastFour: "9999", Category: "午餐"},
			wantCredit: "Assets:Bank:BOC:8735",
			wantDebit:  "Expenses:Food:Lunch",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			credit, debit := eng.Resolve(tt.fact)
			if credit != tt.wantCredit || debit != tt.wantDebit {
				t.Errorf("Resolve() = (%q, %q), expected (%q, %q)", credit, debit, tt.wantCredit, tt.wantDebit)
			}
		})
	}
}

func TestPostTransactionAndBalances(t *testing.T) {
	eng := newTestEngine(t)

	facts := []Fact{
		{
			Date:            "2026-01-10",
			Amount:          decimal.RequireFromString("8000.00"),
			Merchant:        "公司",
			PaymentMethod:   catalog.BankCardMethod,
			BankName:        "CCB",
			CardLastFour:    "0388",
			TransactionType: TypeIncome,
			Category:        "工资",
		},
		{
			Date:            "2026-01-15",
			Amount:          decimal.RequireFromString("25.00"),
			Merchant:        "肯德基",
			PaymentMethod:   "微信",
			TransactionType: TypeExpense,
			Category:        "午餐",
		},
	}
	for _, f := range facts {
		if err := eng.PostTransaction(f); err != nil {
			t.Fatalf("PostTransaction failed: %v", err)
		}
	}

	balances, diags, err := eng.Balances("")
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}

	checks := []struct {
		account string
		want    string
	}{
		{"Expenses:Food:Lunch", "25.00"},
		{"Expenses", "25.00"},
		{"Assets:Cash:WeChat", "-25.00"},
		{"Assets:Bank:CCB:0388", "8000.00"},
		{"Assets", "7975.00"},
		{"Income:Salary", "-8000.00"},
		{"Assets:Cash:Alipay", "0.00"}, // declared, never posted
	}
	for _, c := range checks {
		got, ok := balances[c.account]
		if !ok {
			t.Errorf("account %q missing from balances", c.account)
			continue
		}
		if got.StringFixed(2) != c.want {
			t.Errorf("balance[%q] = %s, expected %s", c.account, got.StringFixed(2), c.want)
		}
	}
}

func TestPostTransactionRejectsInvalidFacts(t *testing.T) {
	eng := newTestEngine(t)

	tests := []struct {
		name string
		fact Fact
	}{
		{"bad date", Fact{Date: "15/01/2026", Amount: decimal.RequireFromString("25"), PaymentMethod: "微信", TransactionType: TypeExpense}},
		{"zero amount", Fact{Date: "2026-01-15", PaymentMethod: "微信", TransactionType: TypeExpense}},
		{"negative amount", Fact{Date: "2026-01-15", Amount: decimal.RequireFromString("-5"), PaymentMethod: "微信", TransactionType: TypeExpense}},
		{"bad type", Fact{Date: "2026-01-15", Amount: decimal.RequireFromString("25"), PaymentMethod: "微信", TransactionType: "transfer"}},
		{"missing method", Fact{Date: "2026-01-15", Amount: decimal.RequireFromString("25"), TransactionType: TypeExpense}},
		{"bad last four", Fact{Date: "2026-01-15", Amount: decimal.RequireFromString("25"), PaymentMethod: catalog.BankCardMethod, BankName: "BOC", CardLastFour: "87x5", TransactionType: TypeExpense}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := eng.PostTransaction(tt.fact); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	// Nothing may have reached the store.
	balances, _, err := eng.Balances("")
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}
	for account, amount := range balances {
		if !amount.IsZero() {
			t.Errorf("rejected facts leaked into the store: %s = %s", account, amount)
		}
	}
}

func TestRenderTransaction(t *testing.T) {
	eng := newTestEngine(t)
	fact := Fact{
		Date:            "2026-01-15",
		Amount:          decimal.RequireFromString("25.00"),
		Merchant:        "肯德基",
		PaymentMethod:   "微信",
		TransactionType: TypeExpense,
		Category:        "午餐",
		Description:     "午餐",
	}
	got, err := eng.RenderTransaction(fact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "\n2026-01-15 * \"肯德基\" \"午餐\"\n  Expenses:Food:Lunch  25.00 CNY\n  Assets:Cash:WeChat  -25.00 CNY\n"
	if got != want {
		t.Errorf("RenderTransaction() = %q, expected %q", got, want)
	}

	// Render must not touch the store.
	if _, err := os.Stat(filepath.Join(filepath.Dir(eng.mainPath), "2026", "transactions.beancount")); !os.IsNotExist(err) {
		t.Error("RenderTransaction created the transaction file")
	}
}

func TestListAccounts(t *testing.T) {
	eng := newTestEngine(t)
	accounts, diags, err := eng.ListAccounts()
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	if len(accounts) != strings.Count(testMainLedger, " open ") {
		t.Errorf("accounts = %v", accounts)
	}
	for i := 1; i < len(accounts); i++ {
		if accounts[i-1] >= accounts[i] {
			t.Errorf("accounts not sorted: %q before %q", accounts[i-1], accounts[i])
		}
	}
}

func TestBalancesSurfaceDiagnostics(t *testing.T) {
	eng := newTestEngine(t)
	if err := eng.store.EnsureInitialized(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := eng.store.Append("2026-01-15 * \"bad\"\n  Expenses:Food:Lunch  25.00 CNY\n  Assets:Cash:WeChat  -20.00 CNY\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, diags, err := eng.Balances("CNY")
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}
	if len(diags) == 0 {
		t.Error("unbalanced record should surface as a diagnostic")
	}
}
