package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque executor handle. Repositories accept nil (pool path) or an
// infra-defined transaction handle (pgx.Tx for Postgres).
type Tx interface{}

// NoTX marks the non-transactional path at call sites.
var NoTX Tx

// TransactionManager executes fn inside one database transaction, passing the
// transaction handle through tx so several repository calls commit or roll
// back as a single unit. Keep this interface small and stable.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
