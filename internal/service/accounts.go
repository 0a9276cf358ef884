package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/atinyakov/ContactKeeper/internal/models"
)

// ErrInvalidAccount is returned when an account lacks a name or a type.
var ErrInvalidAccount = errors.New("account name and type are required")

// AccountRepository defines the persistence operations
// required by the account service.
type AccountRepository interface {
	AccountSource
	// AccountsByTypes returns accounts of any of the given types in registration order.
	AccountsByTypes(ctx context.Context, accountTypes []string) ([]models.Account, error)
	// AddAccount registers or revives an account.
	AddAccount(ctx context.Context, account models.AccountWithDataSet) error
	// RemoveAccount unregisters an account, reporting whether it existed.
	RemoveAccount(ctx context.Context, account models.Account) (bool, error)
}

// AccountService implements account registry operations by delegating
// to an AccountRepository.
type AccountService struct {
	repo AccountRepository
}

// NewAccountService constructs a new AccountService using the provided repository.
func NewAccountService(repo AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

// AccountsByType implements AccountSource.
func (s *AccountService) AccountsByType(ctx context.Context, accountType string) ([]models.Account, error) {
	return s.repo.AccountsByType(ctx, accountType)
}

// ListAccounts returns the accounts of the given types. No types means
// Google accounts only.
func (s *AccountService) ListAccounts(ctx context.Context, accountTypes ...string) ([]models.Account, error) {
	switch len(accountTypes) {
	case 0:
		return s.repo.AccountsByType(ctx, models.GoogleAccountType)
	case 1:
		return s.repo.AccountsByType(ctx, accountTypes[0])
	default:
		return s.repo.AccountsByTypes(ctx, accountTypes)
	}
}

// AddAccount validates and registers an account.
func (s *AccountService) AddAccount(ctx context.Context, account models.AccountWithDataSet) error {
	if account.Name == "" || account.Type == "" {
		return ErrInvalidAccount
	}
	if err := s.repo.AddAccount(ctx, account); err != nil {
		return fmt.Errorf("add account %s: %w", account, err)
	}
	return nil
}

// RemoveAccount unregisters an account. It reports false when the account
// was not registered.
func (s *AccountService) RemoveAccount(ctx context.Context, account models.Account) (bool, error) {
	if account.Name == "" || account.Type == "" {
		return false, ErrInvalidAccount
	}
	return s.repo.RemoveAccount(ctx, account)
}
