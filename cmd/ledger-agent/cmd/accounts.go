package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/beancount-agent/pkg/config"
)

// accountsCmd represents the accounts command.
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List declared accounts",
	Long: `List the accounts declared in the ledger, sorted.

Example:
  ledger-agent accounts`,
	Run: runAccounts,
}

func runAccounts(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	eng, cleanup, err := buildEngine(cfg)
	exitOnError(err, "failed to initialize ledger engine")
	defer cleanup()

	accounts, diags, err := eng.ListAccounts()
	exitOnError(err, "failed to list accounts")

	for _, d := range diags {
		slog.Warn("ledger parse diagnostic", "error", d.Error())
	}
	for _, account := range accounts {
		fmt.Println(account)
	}
}
