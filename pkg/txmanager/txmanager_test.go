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

	"github.com/avtoagent/STO-BookingService/pkg/dbmetrics"
)

type fakeTx struct {
	commits   int
	rollbacks int
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) Commit() error {
	t.commits++
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rollbacks++
	return nil
}

type fakeBeginner struct {
	tx     *fakeTx
	begins int
}

func (b *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begins++
	return b.tx, nil
}

func TestDoSerializable_Success(t *testing.T) {
	tx := &fakeTx{}
	beginner := &fakeBeginner{tx: tx}
	m := NewTransactionManager(beginner)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, beginner.begins)
	assert.Equal(t, 1, tx.commits)
}

// Ошибка сериализации должна распознаваться и через цепочку обёрток,
// как её возвращают репозитории (%w поверх ошибки драйвера)
func TestDoSerializable_RetriesOnWrappedSerializationFailure(t *testing.T) {
	tx := &fakeTx{}
	beginner := &fakeBeginner{tx: tx}
	m := NewTransactionManager(beginner)

	errExec := errors.New("card.repository: failed to execute query")
	driverErr := &pq.Error{Code: pq.ErrorCode(pgSerializationFailure)}

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return fmt.Errorf("%w: Create - execute insert: %w", errExec, driverErr)
	})

	require.Error(t, err)
	assert.Equal(t, maxSerializableRetries, calls)
	assert.Equal(t, maxSerializableRetries, beginner.begins)
	assert.Equal(t, maxSerializableRetries, tx.rollbacks)
	assert.ErrorIs(t, err, errExec)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pgSerializationFailure, string(pqErr.Code))
}

func TestDoSerializable_RetrySucceedsAfterConflict(t *testing.T) {
	tx := &fakeTx{}
	beginner := &fakeBeginner{tx: tx}
	m := NewTransactionManager(beginner)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return fmt.Errorf("update failed: %w", &pq.Error{Code: pq.ErrorCode(pgSerializationFailure)})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, tx.commits)
	assert.Equal(t, 1, tx.rollbacks)
}

func TestDoSerializable_NoRetryOnOtherErrors(t *testing.T) {
	tx := &fakeTx{}
	beginner := &fakeBeginner{tx: tx}
	m := NewTransactionManager(beginner)

	errBusiness := errors.New("slot not available")

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return errBusiness
	})

	require.ErrorIs(t, err, errBusiness)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, tx.rollbacks)
}
