package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/beancount-agent/pkg/config"
	"github.com/shunichi-ikebuchi/beancount-agent/pkg/db"
	"github.com/shunichi-ikebuchi/beancount-agent/pkg/pathutil"
)

var statsRecent int

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show posting history statistics",
	Long: `Show statistics from the posting history database: how many
transactions have been recorded, their date range, and the most recent
entries.

Example:
  ledger-agent stats
  ledger-agent stats --recent 20`,
	Run: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsRecent, "recent", 10, "number of recent postings to show")
}

func runStats(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	paths := pathutil.New(pathutil.Config{
		LedgerRoot:   cfg.Ledger.Root,
		MainPath:     cfg.Ledger.MainPath,
		DatabasePath: cfg.Ledger.DBPath,
	})

	conn, err := db.Open(paths.GetDatabasePath())
	exitOnError(err, "failed to open posting history")
	defer conn.Close()

	history := db.NewPostingHistory(conn)

	summary, err := history.Summary()
	exitOnError(err, "failed to summarize posting history")

	fmt.Printf("Recorded postings: %d (%d expense, %d income)\n", summary.Total, summary.ExpenseCount, summary.IncomeCount)
	if summary.Total > 0 {
		fmt.Printf("Date range: %s .. %s\n", summary.FirstDate, summary.LastDate)
	}

	records, err := history.Recent(statsRecent)
	exitOnError(err, "failed to load recent postings")

	if len(records) > 0 {
		fmt.Println("\nRecent postings:")
		for _, r := range records {
			fmt.Printf("  %s  %8s %s  %-30s %s\n", r.TxnDate, r.Amount, r.Currency, r.DebitAccount, r.Payee)
		}
	}
}
