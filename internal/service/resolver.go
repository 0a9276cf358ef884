// Package service provides account business logic, delegating persistence
// to narrow source and writer interfaces.
package service

import (
	"github.com/atinyakov/ContactKeeper/internal/models"
)

// ResolveDefaultGoogleAccount picks the account a contacts editor should
// pre-select. It returns false when accounts holds no Google account.
func ResolveDefaultGoogleAccount(accounts []models.Account, storedPreference *string) (models.Account, bool) {
	account, outcome := ResolveDefaultGoogleAccountWithOutcome(accounts, storedPreference)
	return account, outcome != models.OutcomeNone
}

// ResolveDefaultGoogleAccountWithOutcome is ResolveDefaultGoogleAccount that
// also reports which branch decided. Neither accounts nor storedPreference
// is modified.
func ResolveDefaultGoogleAccountWithOutcome(accounts []models.Account, storedPreference *string) (models.Account, models.Outcome) {
	google := filterGoogle(accounts)
	if len(google) == 0 {
		return models.Account{}, models.OutcomeNone
	}
	first := google[0]

	if storedPreference == nil || *storedPreference == "" {
		return first, models.OutcomeNoPreference
	}
	candidate, err := models.UnstringifyAccount(*storedPreference)
	if err != nil {
		return first, models.OutcomeInvalidPreference
	}
	if candidate.Type != models.GoogleAccountType {
		return first, models.OutcomeForeignType
	}
	for _, a := range google {
		if a.Name == candidate.Name {
			return a, models.OutcomePreferred
		}
	}
	return first, models.OutcomeUnknownName
}

func filterGoogle(accounts []models.Account) []models.Account {
	var google []models.Account
	for _, a := range accounts {
		if a.Type == models.GoogleAccountType {
			google = append(google, a)
		}
	}
	return google
}
