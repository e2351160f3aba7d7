package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/upb/project-manager/repositories"
)

// WithTransactionResult runs fn inside a transaction and returns its result.
//
// fn receives the transaction's context; repository calls made with it join
// the transaction. The transaction commits when fn returns nil and rolls
// back otherwise, including when fn panics. A failed rollback is joined to
// fn's error so callers can still match the original cause.
func WithTransactionResult[T any](ctx context.Context, txMgr repositories.TransactionManager, fn func(ctx context.Context, tx repositories.Transaction) (T, error)) (_ T, err error) {
	var zero T

	tx, err := txMgr.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("failed to begin transaction: %w", err)
	}

	finished := false
	defer func() {
		if finished {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && err != nil {
			err = errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
		}
	}()

	result, err := fn(tx.Context(), tx)
	if err != nil {
		return zero, err
	}

	finished = true
	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}
