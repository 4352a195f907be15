// Package cmd provides CLI commands for ledger-agent.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/beancount-agent/pkg/bean"
	"github.com/shunichi-ikebuchi/beancount-agent/pkg/catalog"
	"github.com/shunichi-ikebuchi/beancount-agent/pkg/config"
	"github.com/shunichi-ikebuchi/beancount-agent/pkg/db"
	"github.com/shunichi-ikebuchi/beancount-agent/pkg/engine"
	"github.com/shunichi-ikebuchi/beancount-agent/pkg/pathutil"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ledger-agent",
	Short: "Personal double-entry bookkeeping on Beancount files",
	Long: `ledger-agent maintains a personal double-entry accounting ledger
stored as plain-text Beancount files.

It accepts structured transaction facts (from the CLI or from the
AI bill classifier), resolves them into balanced postings through the
account catalog, appends them to the append-only transaction file and
answers account and balance queries by replaying the ledger.

Example:
  ledger-agent serve
  ledger-agent post --amount 25.00 --method 微信 --category 午餐
  ledger-agent balances`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logging
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(balancesCmd)
	rootCmd.AddCommand(statsCmd)
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}

// buildCatalog loads the YAML catalog override when configured, otherwise
// the built-in tables.
func buildCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Ledger.CatalogPath != "" {
		return catalog.Load(cfg.Ledger.CatalogPath)
	}
	return catalog.Default(), nil
}

// buildEngine wires the catalog, the current year's transaction repository
// and the posting history into an engine. The returned cleanup closes the
// history database; callers must invoke it.
func buildEngine(cfg *config.Config) (*engine.Engine, func(), error) {
	cat, err := buildCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}

	paths := pathutil.New(pathutil.Config{
		LedgerRoot:   cfg.Ledger.Root,
		MainPath:     cfg.Ledger.MainPath,
		DatabasePath: cfg.Ledger.DBPath,
		TokenDBPath:  cfg.Ledger.TokenDBPath,
	})

	year := time.Now().Format("2006")
	store := bean.NewFileRepository(paths.GetTransactionPath(year))

	conn, err := db.Open(paths.GetDatabasePath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open posting history: %w", err)
	}

	history := db.NewPostingHistory(conn)
	e := engine.New(cat, store, paths.GetMainPath(), cfg.Ledger.Currency, history)
	cleanup := func() {
		if err := conn.Close(); err != nil {
			slog.Error("failed to close posting history", "error", err)
		}
	}
	return e, cleanup, nil
}
