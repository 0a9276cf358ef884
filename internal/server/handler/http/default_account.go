package http

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/ContactKeeper/internal/models"
)

// DefaultAccountService defines the operations required by DefaultAccountHandler.
type DefaultAccountService interface {
	DefaultGoogleAccount(ctx context.Context) (models.Account, bool)
	SetDefaultAccount(ctx context.Context, account models.AccountWithDataSet) error
	ClearDefaultAccount(ctx context.Context) error
}

// DefaultAccountHandler serves the default Google account.
type DefaultAccountHandler struct {
	DefaultAccountService DefaultAccountService
	Log                   *zap.Logger
}

// Get handles GET /api/accounts/default. It answers 204 when there is no
// Google account to default to.
func (h *DefaultAccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, ok := h.DefaultAccountService.DefaultGoogleAccount(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// Set handles PUT /api/accounts/default. The account does not have to be
// registered; a stale default is ignored when resolving.
func (h *DefaultAccountHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req models.AccountWithDataSet
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Type == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.DefaultAccountService.SetDefaultAccount(r.Context(), req); err != nil {
		logError(h.Log, r, "failed to store default account", err)
		http.Error(w, "failed to store default account", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /api/accounts/default.
func (h *DefaultAccountHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.DefaultAccountService.ClearDefaultAccount(r.Context()); err != nil {
		logError(h.Log, r, "failed to clear default account", err)
		http.Error(w, "failed to clear default account", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
