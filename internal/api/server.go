package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shunichi-ikebuchi/beancount-agent/internal/auth"
	"github.com/shunichi-ikebuchi/beancount-agent/internal/fava"
	"github.com/shunichi-ikebuchi/beancount-agent/pkg/engine"
)

// Options bundles the collaborators of the HTTP API.
type Options struct {
	Engine     *engine.Engine
	Auth       *auth.Manager
	Classifier Classifier // may be nil
	Fava       *fava.Manager
	FavaPort   int
}

// NewRouter builds the chi router with all routes and middleware.
func NewRouter(opts Options) http.Handler {
	authHandler := NewAuthHandler(opts.Auth)
	parseHandler := NewParseHandler(opts.Classifier)
	ledgerHandler := NewLedgerHandler(opts.Engine)
	favaHandler := NewFavaHandler(opts.Fava, opts.FavaPort)

	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Login endpoint (no authentication required).
	r.Post("/api/login", authHandler.Login)

	// API endpoints (authentication required).
	r.Route("/api", func(r chi.Router) {
		r.Use(AuthMiddleware(opts.Auth))

		r.Post("/logout", authHandler.Logout)

		r.Post("/parse/image", parseHandler.ParseImage)
		r.Post("/parse/text", parseHandler.ParseText)

		r.Post("/transaction", ledgerHandler.CreateTransaction)
		r.Get("/balance", ledgerHandler.GetBalance)
		r.Get("/accounts", ledgerHandler.GetAccounts)
		r.Get("/config/accounts", ledgerHandler.GetAccountConfig)

		r.Route("/fava", func(r chi.Router) {
			r.Post("/start", favaHandler.Start)
			r.Post("/stop", favaHandler.Stop)
			r.Get("/status", favaHandler.Status)
		})
	})

	// Fava reverse proxy (authentication required).
	r.Route("/fava", func(r chi.Router) {
		r.Use(AuthMiddleware(opts.Auth))
		r.Handle("/*", opts.Fava.Proxy())
	})

	// Health check endpoint.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
