package db

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSchema(t *testing.T) {
	tables := regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS accounts") +
		".*" + regexp.QuoteMeta("PRIMARY KEY (name, type)") +
		".*" + regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS accounts_type_idx ON accounts (type, created_at)") +
		".*" + regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS preferences")

	t.Run("success", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer sqlDB.Close()

		mock.ExpectExec(tables).WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, createSchema(sqlDB))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer sqlDB.Close()

		dbErr := errors.New("permission denied")
		mock.ExpectExec(tables).WillReturnError(dbErr)

		err = createSchema(sqlDB)
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		assert.Contains(t, err.Error(), "create schema")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
