package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ssis-api/internal/querybuilder"
)

// QueryObserver receives the duration of every statement a repository runs.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// DB bundles the connection pool with the SQL dialect it speaks.
type DB struct {
	*sqlx.DB
	dialect  querybuilder.Dialect
	observer QueryObserver
}

// NewDB wraps db. The dialect must match db's driver.
func NewDB(db *sqlx.DB, dialect querybuilder.Dialect) *DB {
	return &DB{DB: db, dialect: dialect}
}

// WithObserver returns a copy of d that reports statement timings to o.
func (d *DB) WithObserver(o QueryObserver) *DB {
	clone := *d
	clone.observer = o
	return &clone
}

// Dialect returns the dialect statements are rendered in.
func (d *DB) Dialect() querybuilder.Dialect { return d.dialect }

type txKey struct{}

// WithinTx runs fn inside one transaction. Repositories called with the ctx
// handed to fn join that transaction; a nested WithinTx reuses it. The
// transaction commits when fn returns nil and rolls back otherwise.
func (d *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := d.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (d *DB) conn(ctx context.Context) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return d.DB
}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*sqlx.Tx)
	return ok
}

func (d *DB) observe(label string, start time.Time) {
	if d.observer != nil {
		d.observer.ObserveDBQuery(label, time.Since(start))
	}
}
