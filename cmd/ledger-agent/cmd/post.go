package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/beancount-agent/internal/vlm"
	"github.com/shunichi-ikebuchi/beancount-agent/pkg/config"
	"github.com/shunichi-ikebuchi/beancount-agent/pkg/engine"
)

var (
	postDate     string
	postAmount   string
	postMerchant string
	postMethod   string
	postBank     string
	postLastFour string
	postType     string
	postCategory string
	postDesc     string
	postText     string
	postDryRun   bool
)

// postCmd represents the post command.
var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post one transaction to the ledger",
	Long: `Post one transaction to the append-only transaction file.

The fact can be given field by field, or as a free-text note with --text,
which is sent through the AI classifier first.

Example:
  ledger-agent post --amount 25.00 --method 微信 --category 午餐 --merchant 肯德基
  ledger-agent post --text "昨天微信买午餐25块"
  ledger-agent post --amount 8000 --type income --method 银行卡 --bank CCB --last-four 0388 --category 工资`,
	Run: runPost,
}

func init() {
	postCmd.Flags().StringVar(&postDate, "date", "", "transaction date (YYYY-MM-DD, default today)")
	postCmd.Flags().StringVar(&postAmount, "amount", "", "amount, e.g. 25.00")
	postCmd.Flags().StringVar(&postMerchant, "merchant", "", "merchant name")
	postCmd.Flags().StringVar(&postMethod, "method", "", "payment method (支付宝/微信/银行卡/现金)")
	postCmd.Flags().StringVar(&postBank, "bank", "", "bank code (CCB/BOC/ICBC)")
	postCmd.Flags().StringVar(&postLastFour, "last-four", "", "card last four digits")
	postCmd.Flags().StringVar(&postType, "type", "expense", "transaction type (expense/income)")
	postCmd.Flags().StringVar(&postCategory, "category", "", "category, e.g. 午餐")
	postCmd.Flags().StringVar(&postDesc, "description", "", "narration (defaults to merchant)")
	postCmd.Flags().StringVar(&postText, "text", "", "free text note, parsed by the classifier")
	postCmd.Flags().BoolVar(&postDryRun, "dry-run", false, "print the record without writing it")
}

func runPost(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	var fact engine.Fact
	if postText != "" {
		if err := cfg.Validate([]string{"vlm", "apiKey"}); err != nil {
			exitOnError(err, "classifier not configured")
		}
		client, err := vlm.New(cmd.Context(), cfg.VLM.APIKey, cfg.VLM.Model)
		exitOnError(err, "failed to create classifier client")

		fact, err = client.ParseText(cmd.Context(), postText)
		exitOnError(err, "failed to parse note")
		slog.Info("classifier parsed note",
			"date", fact.Date,
			"amount", fact.Amount,
			"method", fact.PaymentMethod,
			"category", fact.Category,
		)
	} else {
		fact, err = factFromFlags()
		exitOnError(err, "invalid transaction")
	}

	eng, cleanup, err := buildEngine(cfg)
	exitOnError(err, "failed to initialize ledger engine")
	defer cleanup()

	if postDryRun {
		record, err := eng.RenderTransaction(fact)
		exitOnError(err, "failed to render transaction")
		fmt.Print(record)
		return
	}

	exitOnError(eng.PostTransaction(fact), "failed to post transaction")

	credit, debit := eng.Resolve(fact)
	fmt.Printf("Posted %s %s: %s -> %s\n", fact.Amount.StringFixed(2), eng.Currency(), credit, debit)
}

func factFromFlags() (engine.Fact, error) {
	if postAmount == "" {
		return engine.Fact{}, fmt.Errorf("--amount is required (or use --text)")
	}
	amount, err := decimal.NewFromString(postAmount)
	if err != nil {
		return engine.Fact{}, fmt.Errorf("invalid amount %q: %w", postAmount, err)
	}

	date := postDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	fact := engine.Fact{
		Date:            date,
		Amount:          amount,
		Merchant:        postMerchant,
		PaymentMethod:   postMethod,
		BankName:        postBank,
		CardLastFour:    postLastFour,
		TransactionType: postType,
		Category:        postCategory,
		Description:     postDesc,
	}
	if err := fact.Validate(); err != nil {
		return engine.Fact{}, err
	}
	return fact, nil
}
