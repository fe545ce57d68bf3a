package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"wordtrainer/internal/domain"

	"github.com/jmoiron/sqlx"
)

// Querier is the common subset of *sqlx.DB and *sqlx.Tx used by the repos
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

type txCtxKey struct{}

func withTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

// querierFromCtx returns the transaction stored in ctx, or db when there is none
func querierFromCtx(ctx context.Context, db *sqlx.DB) Querier {
	if tx, ok := ctx.Value(txCtxKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}

// TxManager implements repository.TxManager.
// Nested RunInTx calls start independent transactions, so callers must not nest.
type TxManager struct {
	db *sqlx.DB
}

// NewTxManager creates a new transaction manager
func NewTxManager(db *sqlx.DB) *TxManager {
	return &TxManager{db: db}
}

// RunInTx executes fn within a transaction.
// It commits when fn succeeds, rolls back when fn fails or panics.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w: %w", domain.ErrStorage, err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %w: %w (original error: %v)", domain.ErrStorage, rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w: %w", domain.ErrStorage, err)
	}

	return nil
}
