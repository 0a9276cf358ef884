// Package http provides HTTP handlers for the account registry and the
// default-account decision.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/ContactKeeper/internal/middleware"
	"github.com/atinyakov/ContactKeeper/internal/models"
	"github.com/atinyakov/ContactKeeper/internal/service"
)

// AccountService defines the registry operations required by AccountHandler.
type AccountService interface {
	ListAccounts(ctx context.Context, accountTypes ...string) ([]models.Account, error)
	AddAccount(ctx context.Context, account models.AccountWithDataSet) error
	RemoveAccount(ctx context.Context, account models.Account) (bool, error)
}

// AccountHandler handles HTTP requests for the account registry.
type AccountHandler struct {
	AccountService AccountService
	// Log receives server-side failures; nil disables logging.
	Log *zap.Logger
}

// List handles GET /api/accounts. Repeated "type" query parameters select
// several account types; none selects Google accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.AccountService.ListAccounts(r.Context(), r.URL.Query()["type"]...)
	if err != nil {
		logError(h.Log, r, "failed to list accounts", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// Add handles POST /api/accounts with a JSON account body.
func (h *AccountHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.AccountWithDataSet
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err := h.AccountService.AddAccount(r.Context(), req)
	switch {
	case errors.Is(err, service.ErrInvalidAccount):
		http.Error(w, "invalid account", http.StatusBadRequest)
		return
	case err != nil:
		logError(h.Log, r, "failed to save account", err)
		http.Error(w, "failed to save account", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, req.Account())
}

// Remove handles DELETE /api/accounts/{type}/{name}. Both segments may be
// percent-encoded, so names such as "x@y.com" or "a/b" can be addressed.
func (h *AccountHandler) Remove(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		http.Error(w, "invalid account", http.StatusBadRequest)
		return
	}
	accountType, err := url.PathUnescape(chi.URLParam(r, "type"))
	if err != nil {
		http.Error(w, "invalid account", http.StatusBadRequest)
		return
	}
	account := models.Account{Name: name, Type: accountType}

	removed, err := h.AccountService.RemoveAccount(r.Context(), account)
	switch {
	case errors.Is(err, service.ErrInvalidAccount):
		http.Error(w, "invalid account", http.StatusBadRequest)
		return
	case err != nil:
		logError(h.Log, r, "failed to remove account", err, zap.String("account", account.Name))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	case !removed:
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// logError records a handler failure tagged with the request id assigned by
// middleware.WithRequestLogging.
func logError(log *zap.Logger, r *http.Request, msg string, err error, fields ...zap.Field) {
	if log == nil {
		return
	}
	fields = append(fields,
		zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
		zap.Error(err),
	)
	log.Error(msg, fields...)
}
