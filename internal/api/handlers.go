package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/shunichi-ikebuchi/beancount-agent/internal/auth"
	"github.com/shunichi-ikebuchi/beancount-agent/internal/fava"
	"github.com/shunichi-ikebuchi/beancount-agent/pkg/engine"
)

// Classifier is the boundary to the external vision/language classifier.
type Classifier interface {
	ParseImage(ctx context.Context, image []byte, mimeType string) (engine.Fact, error)
	ParseText(ctx context.Context, text string) (engine.Fact, error)
}

// LoginRequest is the credential payload for POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ImageParseRequest carries a base64-encoded bill screenshot.
type ImageParseRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mime_type,omitempty"`
}

// TextParseRequest carries a free-text bookkeeping note.
type TextParseRequest struct {
	Text string `json:"text"`
}

// TransactionResponse reports the outcome of posting a transaction.
type TransactionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BalanceResponse maps account ids to their rolled-up balance in the
// reporting currency. Parse diagnostics are surfaced, not swallowed.
type BalanceResponse struct {
	Balances map[string]float64 `json:"balances"`
	Errors   []string           `json:"errors,omitempty"`
}

// AccountsResponse lists the declared accounts.
type AccountsResponse struct {
	Accounts []string `json:"accounts"`
	Errors   []string `json:"errors,omitempty"`
}

// AuthHandler handles login.
type AuthHandler struct {
	manager *auth.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(manager *auth.Manager) *AuthHandler {
	return &AuthHandler{manager: manager}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	token, err := h.manager.Login(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid username or password")
		return
	}
	if err != nil {
		slog.Error("login failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{AccessToken: token, TokenType: "bearer"})
}

// Logout handles POST /api/logout. It revokes the presented bearer token;
// the auth middleware has already verified it.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing bearer token")
		return
	}
	if err := h.manager.Revoke(parts[1]); err != nil {
		slog.Error("logout failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to revoke token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Logged out"})
}

// ParseHandler handles classifier requests.
type ParseHandler struct {
	classifier Classifier
}

// NewParseHandler creates a new ParseHandler. The classifier may be nil
// when no API key is configured; parsing then answers 503.
func NewParseHandler(classifier Classifier) *ParseHandler {
	return &ParseHandler{classifier: classifier}
}

// ParseImage handles POST /api/parse/image.
func (h *ParseHandler) ParseImage(w http.ResponseWriter, r *http.Request) {
	if h.classifier == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "unavailable", "Classifier is not configured")
		return
	}

	var req ImageParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "image must be base64-encoded")
		return
	}

	fact, err := h.classifier.ParseImage(r.Context(), image, req.MimeType)
	if err != nil {
		slog.Error("image parse failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to parse image")
		return
	}
	writeJSON(w, http.StatusOK, fact)
}

// ParseText handles POST /api/parse/text.
func (h *ParseHandler) ParseText(w http.ResponseWriter, r *http.Request) {
	if h.classifier == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "unavailable", "Classifier is not configured")
		return
	}

	var req TextParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "text is required")
		return
	}

	fact, err := h.classifier.ParseText(r.Context(), req.Text)
	if err != nil {
		slog.Error("text parse failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to parse text")
		return
	}
	writeJSON(w, http.StatusOK, fact)
}

// LedgerHandler handles ledger operations.
type LedgerHandler struct {
	engine *engine.Engine
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(e *engine.Engine) *LedgerHandler {
	return &LedgerHandler{engine: e}
}

// CreateTransaction handles POST /api/transaction.
func (h *LedgerHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var fact engine.Fact
	if err := json.NewDecoder(r.Body).Decode(&fact); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if err := fact.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.engine.PostTransaction(fact); err != nil {
		slog.Error("failed to post transaction", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to save transaction")
		return
	}
	writeJSON(w, http.StatusOK, TransactionResponse{Success: true, Message: "Transaction saved successfully"})
}

// GetBalance handles GET /api/balance.
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	currency := r.URL.Query().Get("currency")
	balances, diags, err := h.engine.Balances(currency)
	if err != nil {
		slog.Error("failed to compute balances", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to get balance")
		return
	}

	resp := BalanceResponse{Balances: make(map[string]float64, len(balances))}
	for account, amount := range balances {
		resp.Balances[account] = amount.InexactFloat64()
	}
	for _, d := range diags {
		resp.Errors = append(resp.Errors, d.Error())
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetAccounts handles GET /api/accounts.
func (h *LedgerHandler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, diags, err := h.engine.ListAccounts()
	if err != nil {
		slog.Error("failed to list accounts", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to get accounts")
		return
	}

	resp := AccountsResponse{Accounts: accounts}
	for _, d := range diags {
		resp.Errors = append(resp.Errors, d.Error())
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetAccountConfig handles GET /api/config/accounts. Clients use the
// snapshot to populate their option lists, so values stay aligned with the
// declared accounts.
func (h *LedgerHandler) GetAccountConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.CatalogSnapshot())
}

// FavaHandler controls the fava process.
type FavaHandler struct {
	manager     *fava.Manager
	defaultPort int
}

// NewFavaHandler creates a new FavaHandler.
func NewFavaHandler(manager *fava.Manager, defaultPort int) *FavaHandler {
	return &FavaHandler{manager: manager, defaultPort: defaultPort}
}

// Start handles POST /api/fava/start.
func (h *FavaHandler) Start(w http.ResponseWriter, r *http.Request) {
	port := h.defaultPort
	if s := r.URL.Query().Get("port"); s != "" {
		p, err := strconv.Atoi(s)
		if err != nil || p <= 0 || p > 65535 {
			writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid port")
			return
		}
		port = p
	}

	if err := h.manager.Start(port); err != nil {
		slog.Error("failed to start fava", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to start fava")
		return
	}

	_, url := h.manager.Status()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Fava started successfully",
		"url":     url,
	})
}

// Stop handles POST /api/fava/stop.
func (h *FavaHandler) Stop(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Stop(); err != nil {
		slog.Error("failed to stop fava", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to stop fava")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Fava stopped successfully"})
}

// Status handles GET /api/fava/status.
func (h *FavaHandler) Status(w http.ResponseWriter, r *http.Request) {
	state, url := h.manager.Status()
	body := map[string]any{
		"running": state == fava.StateRunning,
		"state":   state.String(),
	}
	if url != "" {
		body["url"] = url
	}
	writeJSON(w, http.StatusOK, body)
}
