package dbmetrics

import (
	"context"
	"database/sql"
)

// DBExecutor is the query surface shared by *sql.DB, *sql.Tx and the metrics wrappers.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor is a DBExecutor bound to an open transaction.
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// TxBeginner starts transactions. Implemented by both *sql.DB (via SQLBeginner)
// and the metrics-wrapped DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}

type txContextKey struct{}

// WithExecutor stores the transaction executor in the context so repositories
// called inside a transaction manager callback run on the same transaction.
func WithExecutor(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// GetExecutor returns the transaction executor carried by the context,
// falling back to the given default when no transaction is active.
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txContextKey{}).(TxExecutor); ok {
		return tx
	}
	return fallback
}

// IsInTransaction reports whether the context carries an active transaction.
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txContextKey{}).(TxExecutor)
	return ok
}

// SQLBeginner adapts *sql.DB to the TxBeginner interface.
type SQLBeginner struct {
	DB *sql.DB
}

func (b *SQLBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	return b.DB.BeginTx(ctx, opts)
}
