package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/upb/project-manager/repositories"
)

type txKey struct{}

// Querier is the subset of *sql.DB and *sql.Tx the repositories use.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager opens read-committed transactions on a DB.
type TxManager struct {
	db     *DB
	logger *zap.Logger
}

func NewTransactionManager(db *DB, logger *zap.Logger) repositories.TransactionManager {
	return &TxManager{db: db, logger: logger}
}

// Begin starts a transaction whose Context routes repository calls through it.
//
// When ctx already carries a transaction the returned handle joins it:
// its Commit and Rollback are no-ops and the outer owner decides.
func (m *TxManager) Begin(ctx context.Context) (repositories.Transaction, error) {
	if outer, ok := txFromContext(ctx); ok {
		return &Tx{sqlTx: outer.sqlTx, ctx: ctx, logger: m.logger, joined: true}, nil
	}

	sqlTx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	tx := &Tx{sqlTx: sqlTx, logger: m.logger}
	tx.ctx = context.WithValue(ctx, txKey{}, tx)
	m.logger.Debug("transaction started")
	return tx, nil
}

// InTransaction commits when fn returns nil and rolls back otherwise.
func (m *TxManager) InTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Transaction) error) (err error) {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// Rollback after Commit is a no-op, so this also covers panics.
		if rbErr := tx.Rollback(); rbErr != nil && err != nil {
			err = errors.Join(err, rbErr)
		}
	}()

	if err = fn(tx.Context(), tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Tx is a database transaction bound to a context.
type Tx struct {
	sqlTx  *sql.Tx
	ctx    context.Context
	logger *zap.Logger
	joined bool
	done   bool
}

func (t *Tx) Commit() error {
	if t.joined || t.done {
		return nil
	}
	t.done = true
	if err := t.sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	t.logger.Debug("transaction committed")
	return nil
}

func (t *Tx) Rollback() error {
	if t.joined || t.done {
		return nil
	}
	t.done = true
	if err := t.sqlTx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	t.logger.Debug("transaction rolled back")
	return nil
}

func (t *Tx) Context() context.Context {
	return t.ctx
}

func txFromContext(ctx context.Context) (*Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*Tx)
	return tx, ok
}

// conn returns the transaction carried by ctx, or the pool.
func conn(ctx context.Context, db *DB) Querier {
	if tx, ok := txFromContext(ctx); ok {
		return tx.sqlTx
	}
	return db.DB
}
