package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/atinyakov/ContactKeeper/internal/models"
)

// ErrReadOnlyPreferences is returned by writes when no PreferenceWriter is configured.
var ErrReadOnlyPreferences = errors.New("preference store is read-only")

// AccountSource enumerates registered accounts.
type AccountSource interface {
	// AccountsByType returns all accounts of the given type in registration order.
	AccountsByType(ctx context.Context, accountType string) ([]models.Account, error)
}

// PreferenceSource reads stored preference values.
type PreferenceSource interface {
	// GetString returns the value stored under key, or defaultValue when none is stored.
	GetString(ctx context.Context, key, defaultValue string) (string, error)
}

// PreferenceWriter stores preference values.
type PreferenceWriter interface {
	SetString(ctx context.Context, key, value string) error
}

// OutcomeRecorder observes resolution decisions, e.g. for metrics.
type OutcomeRecorder interface {
	Record(outcome models.Outcome)
}

// DefaultAccountService resolves the default Google account from an account
// source and a stored preference.
type DefaultAccountService struct {
	accounts AccountSource
	prefs    PreferenceSource
	key      string
	log      *zap.Logger
	recorder OutcomeRecorder
}

// NewDefaultAccountService constructs a DefaultAccountService. key is the
// preference key holding the stringified default account. logger and
// recorder may be nil.
func NewDefaultAccountService(
	accounts AccountSource,
	prefs PreferenceSource,
	key string,
	logger *zap.Logger,
	recorder OutcomeRecorder,
) *DefaultAccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAccountService{
		accounts: accounts,
		prefs:    prefs,
		key:      key,
		log:      logger,
		recorder: recorder,
	}
}

// DefaultGoogleAccount returns the default Google account, or false when no
// Google account is registered. Failures of either collaborator are logged
// and treated as "no accounts" or "no preference".
func (s *DefaultAccountService) DefaultGoogleAccount(ctx context.Context) (models.Account, bool) {
	accounts, err := s.accounts.AccountsByType(ctx, models.GoogleAccountType)
	if err != nil {
		s.log.Warn("failed to list accounts", zap.Error(err))
		accounts = nil
	}

	return s.ResolveFrom(ctx, accounts)
}

// ResolveFrom picks the default Google account among accounts, which the
// caller has already fetched, using the stored preference.
func (s *DefaultAccountService) ResolveFrom(ctx context.Context, accounts []models.Account) (models.Account, bool) {
	account, outcome := ResolveDefaultGoogleAccountWithOutcome(accounts, s.preference(ctx, accounts))
	if s.recorder != nil {
		s.recorder.Record(outcome)
	}
	s.log.Debug("resolved default account",
		zap.String("outcome", string(outcome)),
		zap.String("name", account.Name))

	return account, outcome != models.OutcomeNone
}

// preference is only read when a Google account is present.
func (s *DefaultAccountService) preference(ctx context.Context, accounts []models.Account) *string {
	if len(filterGoogle(accounts)) == 0 {
		return nil
	}
	value, err := s.prefs.GetString(ctx, s.key, "")
	if err != nil {
		s.log.Warn("failed to read default account preference",
			zap.String("key", s.key), zap.Error(err))
		return nil
	}
	if value == "" {
		return nil
	}
	return &value
}

// SetDefaultAccount stores account as the default.
func (s *DefaultAccountService) SetDefaultAccount(ctx context.Context, account models.AccountWithDataSet) error {
	return s.write(ctx, account.Stringify())
}

// ClearDefaultAccount forgets the stored default.
func (s *DefaultAccountService) ClearDefaultAccount(ctx context.Context) error {
	return s.write(ctx, "")
}

func (s *DefaultAccountService) write(ctx context.Context, value string) error {
	w, ok := s.prefs.(PreferenceWriter)
	if !ok {
		return ErrReadOnlyPreferences
	}
	if err := w.SetString(ctx, s.key, value); err != nil {
		return fmt.Errorf("store default account: %w", err)
	}
	return nil
}
