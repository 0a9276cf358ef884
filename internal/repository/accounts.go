// Package repository provides PostgreSQL persistence for the account
// registry and the preference store.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/atinyakov/ContactKeeper/internal/models"
)

// PostgresAccountRepository implements the account registry using a PostgreSQL database.
type PostgresAccountRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAccountRepository creates a new PostgresAccountRepository with the given database connection.
// db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresAccountRepository(db *sql.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{DB: db}
}

// AccountsByType returns the registered accounts of the given type in
// registration order.
func (r *PostgresAccountRepository) AccountsByType(ctx context.Context, accountType string) ([]models.Account, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT name, type FROM accounts
		WHERE type = $1 AND removed = false
		ORDER BY created_at, name
	`, accountType)
	if err != nil {
		return nil, fmt.Errorf("AccountsByType: %w", err)
	}
	return scanAccounts(rows)
}

// AccountsByTypes is AccountsByType for several types at once. Ordering is
// by registration across all requested types.
func (r *PostgresAccountRepository) AccountsByTypes(ctx context.Context, accountTypes []string) ([]models.Account, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT name, type FROM accounts
		WHERE type = ANY($1) AND removed = false
		ORDER BY created_at, name
	`, pq.Array(accountTypes))
	if err != nil {
		return nil, fmt.Errorf("AccountsByTypes: %w", err)
	}
	return scanAccounts(rows)
}

func scanAccounts(rows *sql.Rows) ([]models.Account, error) {
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.Name, &a.Type); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return accounts, nil
}

// AddAccount registers an account. Re-adding a removed account revives it
// with a fresh registration time.
func (r *PostgresAccountRepository) AddAccount(ctx context.Context, account models.AccountWithDataSet) error {
	var dataSet sql.NullString
	if account.DataSet != nil {
		dataSet = sql.NullString{String: *account.DataSet, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO accounts (name, type, data_set, created_at, removed)
		VALUES ($1, $2, $3, $4, false)
		ON CONFLICT (name, type) DO UPDATE SET
			data_set = EXCLUDED.data_set,
			created_at = CASE WHEN accounts.removed THEN EXCLUDED.created_at ELSE accounts.created_at END,
			removed = false,
			removed_at = NULL
	`, account.Name, account.Type, dataSet, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("AddAccount: %w", err)
	}
	return nil
}

// RemoveAccount marks an account removed. It reports false when no
// registered account matched.
func (r *PostgresAccountRepository) RemoveAccount(ctx context.Context, account models.Account) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE accounts SET removed = true, removed_at = $3
		WHERE name = $1 AND type = $2 AND removed = false
	`, account.Name, account.Type, time.Now().Unix())
	if err != nil {
		return false, fmt.Errorf("RemoveAccount: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("RemoveAccount: %w", err)
	}
	return n > 0, nil
}
