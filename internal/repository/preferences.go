package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PostgresPreferenceRepository is a key-value preference store backed by PostgreSQL.
type PostgresPreferenceRepository struct {
	DB *sql.DB
}

// NewPostgresPreferenceRepository creates a new PostgresPreferenceRepository using the provided *sql.DB.
func NewPostgresPreferenceRepository(db *sql.DB) *PostgresPreferenceRepository {
	return &PostgresPreferenceRepository{DB: db}
}

// GetString returns the value stored under key, or defaultValue if the key
// has never been set.
func (r *PostgresPreferenceRepository) GetString(ctx context.Context, key, defaultValue string) (string, error) {
	var value string
	err := r.DB.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE key = $1`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return defaultValue, nil
	}
	if err != nil {
		return defaultValue, fmt.Errorf("GetString %q: %w", key, err)
	}
	return value, nil
}

// SetString stores value under key, replacing any previous value.
func (r *PostgresPreferenceRepository) SetString(ctx context.Context, key, value string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("SetString %q: %w", key, err)
	}
	return nil
}
