package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager exposes explicit transaction control so services can
// group repository calls into a single atomic unit.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// RepositoryWithTx marks repositories that can participate in caller
// managed transactions.
type RepositoryWithTx interface {
	TransactionManager
}
