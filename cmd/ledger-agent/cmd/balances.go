package cmd

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/beancount-agent/pkg/config"
)

var balancesCurrency string

// balancesCmd represents the balances command.
var balancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "Show per-account roll-up balances",
	Long: `Replay the ledger and print the balance of every account,
including the roll-up balances of ancestor accounts.

Example:
  ledger-agent balances
  ledger-agent balances --currency CNY`,
	Run: runBalances,
}

func init() {
	balancesCmd.Flags().StringVar(&balancesCurrency, "currency", "", "reporting currency (default from config)")
}

func runBalances(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	eng, cleanup, err := buildEngine(cfg)
	exitOnError(err, "failed to initialize ledger engine")
	defer cleanup()

	balances, diags, err := eng.Balances(balancesCurrency)
	exitOnError(err, "failed to compute balances")

	for _, d := range diags {
		slog.Warn("ledger parse diagnostic", "error", d.Error())
	}

	accounts := make([]string, 0, len(balances))
	for account := range balances {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)

	currency := balancesCurrency
	if currency == "" {
		currency = cfg.Ledger.Currency
	}
	for _, account := range accounts {
		fmt.Printf("%-40s %12s %s\n", account, balances[account].StringFixed(2), currency)
	}
}
