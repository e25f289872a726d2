// Package dbx holds the small database plumbing the repositories share: the
// DBTX handle interface and a transaction wrapper. Repositories take a DBTX
// so the same code runs against the pool or inside a transaction.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the slice of database/sql the repositories need. Both *sql.DB and
// *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx opens a transaction, calls fn with the transactional handle, and
// commits on success. An error or panic from fn rolls back; panics are
// rethrown after the rollback.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := rm.Accounts(tx)
//	    return repo.Insert(ctx, account)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
