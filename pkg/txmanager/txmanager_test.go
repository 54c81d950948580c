package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open2agenda/booking-service/pkg/dbmetrics"
)

var errRepoExec = errors.New("repository: failed to execute query")

type fakeTx struct {
	commitErr error

	commits   int
	rollbacks int
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.commits++
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rollbacks++
	return nil
}

type fakeBeginner struct {
	begins int
	txs    []*fakeTx

	// commitErrs[i] is the commit error of the i-th transaction.
	commitErrs []error
}

func (b *fakeBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{}
	if b.begins < len(b.commitErrs) {
		tx.commitErr = b.commitErrs[b.begins]
	}
	b.begins++
	b.txs = append(b.txs, tx)
	return tx, nil
}

func serializationErr() *pq.Error {
	return &pq.Error{Code: "40001"}
}

func TestDoSerializable_RetriesRepositoryWrappedConflict(t *testing.T) {
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		if calls < 3 {
			// Same wrapping shape the storage repositories use.
			return fmt.Errorf("%w: GetByTenantWithFilter - execute query: %w", errRepoExec, serializationErr())
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, beginner.begins)
	assert.Equal(t, 1, beginner.txs[0].rollbacks)
	assert.Equal(t, 1, beginner.txs[2].commits)
}

func TestDoSerializable_GivesUpAfterMaxRetries(t *testing.T) {
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return fmt.Errorf("%w: execute update: %w", errRepoExec, serializationErr())
	})

	require.Error(t, err)
	assert.Equal(t, maxRetries, calls)

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestDoSerializable_OtherErrorsNotRetried(t *testing.T) {
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	wantErr := errors.New("slot is no longer available")
	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, beginner.txs[0].rollbacks)
}

func TestDoSerializable_CommitConflictRetried(t *testing.T) {
	beginner := &fakeBeginner{commitErrs: []error{serializationErr(), nil}}
	manager := NewTransactionManager(beginner)

	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, beginner.begins)
	assert.Equal(t, 1, beginner.txs[1].commits)
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	err := manager.Do(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, beginner.txs[0].commits)
	assert.Zero(t, beginner.txs[0].rollbacks)
}
