package transactor

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock"
	"github.com/stretchr/testify/require"
)

func TestPgxTransactorCommit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "mock pool must be created")
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM refresh_tokens").WithArgs("user-id").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	trx := NewPgx(mock)

	err = trx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		_, err := trx.Executor(ctx).Exec(ctx, "DELETE FROM refresh_tokens WHERE user_id = $1", "user-id")
		return err
	})
	require.NoError(t, err, "transaction must be committed")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxTransactorRollback(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "mock pool must be created")
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	fnErr := errors.New("business failure")
	trx := NewPgx(mock)

	err = trx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return fnErr
	})
	require.ErrorIs(t, err, fnErr, "original error must be returned after rollback")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxTransactorNested(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "mock pool must be created")
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	trx := NewPgx(mock)
	err = trx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return trx.WithinTransaction(ctx, func(ctx context.Context) error {
			return nil
		})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet(), "nested call must join outer transaction")
}

func TestPgxBeginFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "mock pool must be created")
	defer mock.Close()

	beginErr := errors.New("connection refused")
	mock.ExpectBegin().WillReturnError(beginErr)

	called := false
	err = NewPgx(mock).WithinTransaction(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, beginErr, "begin error must be wrapped")
	require.False(t, called, "function must not run without transaction")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPassthrough(t *testing.T) {
	ctx := context.Background()
	fnErr := errors.New("business failure")

	err := Passthrough.WithinTransaction(ctx, func(got context.Context) error {
		require.Equal(t, ctx, got, "context must be passed as is")
		return fnErr
	})
	require.ErrorIs(t, err, fnErr)
}
