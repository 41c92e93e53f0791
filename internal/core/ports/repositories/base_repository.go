package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager is implemented by repositories whose mutations must run
// under an explicit transaction, such as certificate signing.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits the transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back the transaction. Rolling back a committed
	// transaction is harmless, so callers may defer it.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
