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

	"github.com/nlukyanov/consultant-booking/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr error
}

func (fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (f fakeTx) Commit() error {
	return f.commitErr
}

func (fakeTx) Rollback() error {
	return nil
}

type fakeBeginner struct {
	commitErr error
	begun     int
}

func (f *fakeBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	f.begun++
	return fakeTx{commitErr: f.commitErr}, nil
}

// repoShapedConflict строит ошибку в том виде, в каком она приходит из
// репозитория через usecase: pq-ошибка, дважды обёрнутая через %w
func repoShapedConflict(code pq.ErrorCode) error {
	execErr := fmt.Errorf("repository: failed to execute query: %w", &pq.Error{Code: code})
	return fmt.Errorf("usecase: failed to get bookings: %w", execErr)
}

// Конфликт сериализации, возникший в запросе внутри транзакции (а не на
// коммите), повторяется и после исчерпания попыток превращается в
// ErrSerializationFailure
func TestDoSerializable_StatementConflictRetried(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{})

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return repoShapedConflict("40001")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, maxSerializableRetries, attempts)
}

func TestDoSerializable_SucceedsAfterConflict(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{})

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return repoShapedConflict("40001")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDoSerializable_OtherErrorNotRetried(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{})
	boom := errors.New("boom")

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}

func TestDoSerializable_CommitConflictRetried(t *testing.T) {
	beginner := &fakeBeginner{commitErr: &pq.Error{Code: "40001"}}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, maxSerializableRetries, beginner.begun)
}

func TestIsSerializationFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"голая pq 40001", &pq.Error{Code: "40001"}, true},
		{"голая pq 40P01", &pq.Error{Code: "40P01"}, true},
		{"обёрнутая в два слоя", repoShapedConflict("40001"), true},
		{"deadlock в два слоя", repoShapedConflict("40P01"), true},
		{"другой код pq", &pq.Error{Code: "23505"}, false},
		{"не pq", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSerializationFailure(tt.err))
		})
	}
}
