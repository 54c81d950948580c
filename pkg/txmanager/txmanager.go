package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/open2agenda/booking-service/pkg/dbmetrics"
)

const serializationFailureCode = "40001"

// maxRetries bounds the automatic retry of serializable transactions that
// lose a serialization conflict.
const maxRetries = 3

// ErrTransaction wraps begin/commit/rollback failures.
var ErrTransaction = errors.New("txmanager: transaction error")

// TransactionManager runs callbacks inside database transactions. The
// transaction executor is carried through the context so repositories used in
// the callback transparently join the transaction.
type TransactionManager struct {
	beginner dbmetrics.TxBeginner
}

// NewTransactionManager creates a manager over any TxBeginner (*sql.DB via
// dbmetrics.SQLBeginner, or the metrics-wrapped DB).
func NewTransactionManager(beginner dbmetrics.TxBeginner) *TransactionManager {
	return &TransactionManager{beginner: beginner}
}

// Do runs fn in a transaction with the default isolation level.
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable runs fn in a SERIALIZABLE transaction, retrying a bounded
// number of times on serialization conflicts.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = m.run(ctx, opts, fn)
		if !isSerializationFailure(err) {
			return err
		}
	}
	return err
}

// DoReadOnly runs fn in a read-only transaction.
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	tx, err := m.beginner.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithExecutor(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w: rollback after %w: %v", ErrTransaction, err, rbErr)
		}
		return err
	}

	// Serialization conflicts can surface at COMMIT, not only inside fn.
	// Keep the driver error in the chain so the retry loop sees it.
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrTransaction, err)
	}
	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == serializationFailureCode
	}
	return false
}
