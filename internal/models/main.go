// Package models defines the core data structures for accounts and their
// stored preference form.
package models

// GoogleAccountType is the account type managed by the Google provider.
const GoogleAccountType = "com.google"

// Account identifies an external credential registered on a device.
type Account struct {
	// Name is the account name, usually an email address.
	Name string `json:"name"`
	// Type is the provider tag that manages the account.
	Type string `json:"type"`
}

// Outcome describes which branch produced a default-account decision.
type Outcome string

const (
	// OutcomePreferred means the stored preference named an existing account.
	OutcomePreferred Outcome = "preferred"
	// OutcomeNoPreference means nothing was stored.
	OutcomeNoPreference Outcome = "fallback_no_preference"
	// OutcomeInvalidPreference means the stored value could not be parsed.
	OutcomeInvalidPreference Outcome = "fallback_invalid_preference"
	// OutcomeForeignType means the stored account is not a Google account.
	OutcomeForeignType Outcome = "fallback_foreign_type"
	// OutcomeUnknownName means the stored account is no longer registered.
	OutcomeUnknownName Outcome = "fallback_unknown_name"
	// OutcomeNone means there were no Google accounts to choose from.
	OutcomeNone Outcome = "none"
)
