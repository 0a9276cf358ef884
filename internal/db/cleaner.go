package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartRemovedAccountCleaner purges accounts that were removed more than
// retention ago, once per interval, until ctx is cancelled.
func StartRemovedAccountCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cleanRemovedAccounts(ctx, db, retention, log)
			}
		}
	}()
}

func cleanRemovedAccounts(ctx context.Context, db *sql.DB, retention time.Duration, log *zap.Logger) {
	cutoff := time.Now().Add(-retention).Unix()
	res, err := db.ExecContext(ctx, `
        DELETE FROM accounts
         WHERE removed = true
           AND removed_at < $1
    `, cutoff)
	if err != nil {
		log.Error("failed to clean removed accounts", zap.Error(err))
		return
	}
	if rows, _ := res.RowsAffected(); rows > 0 {
		log.Info("cleaned removed accounts", zap.Int64("removed", rows))
	}
}
