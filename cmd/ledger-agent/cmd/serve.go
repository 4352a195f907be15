package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/beancount-agent/internal/api"
	"github.com/shunichi-ikebuchi/beancount-agent/internal/auth"
	"github.com/shunichi-ikebuchi/beancount-agent/internal/fava"
	"github.com/shunichi-ikebuchi/beancount-agent/internal/vlm"
	"github.com/shunichi-ikebuchi/beancount-agent/pkg/config"
	"github.com/shunichi-ikebuchi/beancount-agent/pkg/pathutil"
)

var startFava bool

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the accounting agent HTTP server",
	Long: `Run the HTTP server exposing the accounting API:

- POST /api/login            issue a bearer token
- POST /api/logout           revoke the presented token
- POST /api/parse/image      classify a bill screenshot into a fact
- POST /api/parse/text       classify a free-text note into a fact
- POST /api/transaction      resolve, format and append a transaction
- GET  /api/balance          per-account roll-up balances
- GET  /api/accounts         declared accounts
- GET  /api/config/accounts  the account catalog for clients
- /api/fava/*, /fava/*       fava control and reverse proxy

Example:
  ledger-agent serve
  ledger-agent serve --with-fava`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&startFava, "with-fava", false, "start fava on server startup")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	if err := cfg.Validate(
		[]string{"server", "addr"},
		[]string{"server", "username"},
		[]string{"server", "password"},
		[]string{"ledger", "root"},
		[]string{"ledger", "currency"},
	); err != nil {
		exitOnError(err, "invalid configuration")
	}

	eng, cleanup, err := buildEngine(cfg)
	exitOnError(err, "failed to initialize ledger engine")
	defer cleanup()

	paths := pathutil.New(pathutil.Config{
		LedgerRoot:  cfg.Ledger.Root,
		MainPath:    cfg.Ledger.MainPath,
		TokenDBPath: cfg.Ledger.TokenDBPath,
	})

	tokenStore, err := auth.OpenStore(paths.GetTokenDBPath())
	exitOnError(err, "failed to open token store")
	defer func() {
		if err := tokenStore.Close(); err != nil {
			slog.Error("failed to close token store", "error", err)
		}
	}()
	authManager := auth.NewManager(tokenStore, cfg.Server.Username, cfg.Server.Password)

	var classifier api.Classifier
	if cfg.VLM.APIKey != "" {
		client, err := vlm.New(cmd.Context(), cfg.VLM.APIKey, cfg.VLM.Model)
		exitOnError(err, "failed to create classifier client")
		classifier = client
	} else {
		slog.Warn("GEMINI_API_KEY not set, classifier endpoints disabled")
	}

	favaManager := fava.NewManager(cfg.Fava.Command, paths.GetMainPath())
	if startFava {
		if err := favaManager.Start(cfg.Fava.Port); err != nil {
			slog.Error("failed to start fava", "error", err)
		}
	}
	defer func() {
		if err := favaManager.Stop(); err != nil {
			slog.Error("failed to stop fava", "error", err)
		}
	}()

	router := api.NewRouter(api.Options{
		Engine:     eng,
		Auth:       authManager,
		Classifier: classifier,
		Fava:       favaManager,
		FavaPort:   cfg.Fava.Port,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Serve until interrupted, then drain connections.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting accounting agent server", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
