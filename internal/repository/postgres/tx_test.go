package postgres

import (
	"context"
	"errors"
	"testing"

	"wordtrainer/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestTxManager_RunInTx_Commit(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTxManager(db)
	repo := NewWordRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM translations").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM user_word_settings").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM words").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return repo.RemoveWord(ctx, 1)
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RunInTx_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTxManager(db)
	repo := NewWordRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO user_word_settings").
		WithArgs(int64(42), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	failure := errors.New("boom")
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := repo.HideWord(ctx, 42, 9); err != nil {
			return err
		}
		return failure
	})

	assert.ErrorIs(t, err, failure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RunInTx_BeginError(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTxManager(db)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	called := false
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RunInTx_CommitError(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RunInTx_RollbackOnPanic(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
			panic("unexpected")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
