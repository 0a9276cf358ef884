package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/ContactKeeper/internal/models"
)

const testKey = "contact_editor_default_account_key"

type mockAccountSource struct {
	AccountsByTypeFunc func(ctx context.Context, accountType string) ([]models.Account, error)
}

func (m *mockAccountSource) AccountsByType(ctx context.Context, accountType string) ([]models.Account, error) {
	if m.AccountsByTypeFunc == nil {
		return nil, nil
	}
	return m.AccountsByTypeFunc(ctx, accountType)
}

type mockPrefs struct {
	GetStringFunc func(ctx context.Context, key, defaultValue string) (string, error)
}

func (m *mockPrefs) GetString(ctx context.Context, key, defaultValue string) (string, error) {
	if m.GetStringFunc == nil {
		return defaultValue, nil
	}
	return m.GetStringFunc(ctx, key, defaultValue)
}

type mockWritablePrefs struct {
	mockPrefs
	SetStringFunc func(ctx context.Context, key, value string) error
}

func (m *mockWritablePrefs) SetString(ctx context.Context, key, value string) error {
	return m.SetStringFunc(ctx, key, value)
}

type outcomeLog []models.Outcome

func (o *outcomeLog) Record(outcome models.Outcome) { *o = append(*o, outcome) }

func googleAccounts(ctx context.Context, accountType string) ([]models.Account, error) {
	if accountType != models.GoogleAccountType {
		return nil, nil
	}
	return testAccounts, nil
}

func storedPreference(name, accountType string) func(context.Context, string, string) (string, error) {
	return func(ctx context.Context, key, defaultValue string) (string, error) {
		return models.NewAccountWithDataSet(name, accountType).Stringify(), nil
	}
}

// defaultAccountName mirrors how a contacts editor consumes the service.
func defaultAccountName(t *testing.T, accounts AccountSource, prefs PreferenceSource) *string {
	t.Helper()
	svc := NewDefaultAccountService(accounts, prefs, testKey, zap.NewNop(), nil)
	account, ok := svc.DefaultGoogleAccount(context.Background())
	if !ok {
		return nil
	}
	return &account.Name
}

func TestDefaultGoogleAccount_NoAccounts(t *testing.T) {
	assert.Nil(t, defaultAccountName(t, &mockAccountSource{}, &mockPrefs{}))
}

func TestDefaultGoogleAccount_NoAccounts_DefaultPreferenceSet(t *testing.T) {
	prefs := &mockPrefs{GetStringFunc: storedPreference("name1", models.GoogleAccountType)}
	assert.Nil(t, defaultAccountName(t, &mockAccountSource{}, prefs))
}

func TestDefaultGoogleAccount_NoDefaultAccountPreferenceSet(t *testing.T) {
	got := defaultAccountName(t, &mockAccountSource{AccountsByTypeFunc: googleAccounts}, &mockPrefs{})
	require.NotNil(t, got)
	assert.Equal(t, "name1", *got)
}

func TestDefaultGoogleAccount_DefaultAccountPreferenceSet(t *testing.T) {
	prefs := &mockPrefs{GetStringFunc: storedPreference("name2", models.GoogleAccountType)}
	got := defaultAccountName(t, &mockAccountSource{AccountsByTypeFunc: googleAccounts}, prefs)
	require.NotNil(t, got)
	assert.Equal(t, "name2", *got)
}

func TestDefaultGoogleAccount_DefaultAccountPreferenceSet_NonGoogleAccountType(t *testing.T) {
	prefs := &mockPrefs{GetStringFunc: storedPreference("name3", "type3")}
	got := defaultAccountName(t, &mockAccountSource{AccountsByTypeFunc: googleAccounts}, prefs)
	require.NotNil(t, got)
	assert.Equal(t, "name1", *got)
}

func TestDefaultGoogleAccount_DefaultAccountPreferenceSet_UnknownName(t *testing.T) {
	prefs := &mockPrefs{GetStringFunc: storedPreference("name4", models.GoogleAccountType)}
	got := defaultAccountName(t, &mockAccountSource{AccountsByTypeFunc: googleAccounts}, prefs)
	require.NotNil(t, got)
	assert.Equal(t, "name1", *got)
}

func TestDefaultGoogleAccount_ReadsConfiguredKey(t *testing.T) {
	var gotKey, gotDefault string
	prefs := &mockPrefs{GetStringFunc: func(ctx context.Context, key, defaultValue string) (string, error) {
		gotKey, gotDefault = key, defaultValue
		return defaultValue, nil
	}}
	var outcomes outcomeLog
	svc := NewDefaultAccountService(&mockAccountSource{AccountsByTypeFunc: googleAccounts}, prefs, testKey, nil, &outcomes)

	_, ok := svc.DefaultGoogleAccount(context.Background())

	assert.True(t, ok)
	assert.Equal(t, testKey, gotKey)
	assert.Equal(t, "", gotDefault)
	assert.Equal(t, outcomeLog{models.OutcomeNoPreference}, outcomes)
}

func TestDefaultGoogleAccount_AccountSourceErrorDegrades(t *testing.T) {
	accounts := &mockAccountSource{AccountsByTypeFunc: func(ctx context.Context, accountType string) ([]models.Account, error) {
		return testAccounts, errors.New("registry down")
	}}
	var outcomes outcomeLog
	svc := NewDefaultAccountService(accounts, &mockPrefs{}, testKey, zap.NewNop(), &outcomes)

	_, ok := svc.DefaultGoogleAccount(context.Background())

	assert.False(t, ok)
	assert.Equal(t, outcomeLog{models.OutcomeNone}, outcomes)
}

func TestDefaultGoogleAccount_PreferenceErrorDegrades(t *testing.T) {
	prefs := &mockPrefs{GetStringFunc: func(ctx context.Context, key, defaultValue string) (string, error) {
		return models.NewAccountWithDataSet("name2", models.GoogleAccountType).Stringify(), errors.New("read failed")
	}}
	got := defaultAccountName(t, &mockAccountSource{AccountsByTypeFunc: googleAccounts}, prefs)
	require.NotNil(t, got)
	assert.Equal(t, "name1", *got)
}

func TestSetDefaultAccount(t *testing.T) {
	stored := map[string]string{}
	prefs := &mockWritablePrefs{SetStringFunc: func(ctx context.Context, key, value string) error {
		stored[key] = value
		return nil
	}}
	prefs.GetStringFunc = func(ctx context.Context, key, defaultValue string) (string, error) {
		if v, ok := stored[key]; ok {
			return v, nil
		}
		return defaultValue, nil
	}
	svc := NewDefaultAccountService(&mockAccountSource{AccountsByTypeFunc: googleAccounts}, prefs, testKey, nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.SetDefaultAccount(ctx, models.NewAccountWithDataSet("name2", models.GoogleAccountType)))
	account, ok := svc.DefaultGoogleAccount(ctx)
	require.True(t, ok)
	assert.Equal(t, "name2", account.Name)

	require.NoError(t, svc.ClearDefaultAccount(ctx))
	assert.Equal(t, "", stored[testKey])
	account, _ = svc.DefaultGoogleAccount(ctx)
	assert.Equal(t, "name1", account.Name)
}

func TestSetDefaultAccount_Errors(t *testing.T) {
	ctx := context.Background()
	account := models.NewAccountWithDataSet("name2", models.GoogleAccountType)

	readOnly := NewDefaultAccountService(&mockAccountSource{}, &mockPrefs{}, testKey, nil, nil)
	assert.ErrorIs(t, readOnly.SetDefaultAccount(ctx, account), ErrReadOnlyPreferences)

	wantErr := errors.New("write failed")
	prefs := &mockWritablePrefs{SetStringFunc: func(ctx context.Context, key, value string) error {
		return wantErr
	}}
	failing := NewDefaultAccountService(&mockAccountSource{}, prefs, testKey, nil, nil)
	assert.ErrorIs(t, failing.SetDefaultAccount(ctx, account), wantErr)
}

func TestResolveFrom_UsesGivenAccounts(t *testing.T) {
	accounts := &mockAccountSource{AccountsByTypeFunc: func(ctx context.Context, accountType string) ([]models.Account, error) {
		t.Fatal("account source must not be queried")
		return nil, nil
	}}
	prefs := &mockPrefs{GetStringFunc: storedPreference("name2", models.GoogleAccountType)}
	var outcomes outcomeLog
	svc := NewDefaultAccountService(accounts, prefs, testKey, zap.NewNop(), &outcomes)

	account, ok := svc.ResolveFrom(context.Background(), testAccounts)

	require.True(t, ok)
	assert.Equal(t, models.Account{Name: "name2", Type: models.GoogleAccountType}, account)
	assert.Equal(t, outcomeLog{models.OutcomePreferred}, outcomes)
}

func TestResolveFrom_NoGoogleAccountsSkipsPreference(t *testing.T) {
	reads := 0
	prefs := &mockPrefs{GetStringFunc: func(ctx context.Context, key, defaultValue string) (string, error) {
		reads++
		return defaultValue, nil
	}}
	var outcomes outcomeLog
	svc := NewDefaultAccountService(&mockAccountSource{}, prefs, testKey, nil, &outcomes)

	_, ok := svc.ResolveFrom(context.Background(), []models.Account{{Name: "name3", Type: "type3"}})

	assert.False(t, ok)
	assert.Zero(t, reads)
	assert.Equal(t, outcomeLog{models.OutcomeNone}, outcomes)
}
