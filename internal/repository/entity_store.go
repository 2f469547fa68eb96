package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ssis-api/internal/querybuilder"
)

// entityStore binds a querybuilder.Table to one row type. Every method runs
// exactly one statement.
type entityStore[T any] struct {
	db     *DB
	table  *querybuilder.Table
	values func(T) []interface{}
}

func (s *entityStore[T]) list(ctx context.Context, params querybuilder.Params) ([]T, error) {
	defer s.db.observe(s.table.Name()+".list", time.Now())

	query, args := s.table.SelectStatement(s.table.Plan(params), s.db.dialect)
	rows := make([]T, 0)
	if err := sqlx.SelectContext(ctx, s.db.conn(ctx), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", s.table.Name(), err)
	}
	return rows, nil
}

func (s *entityStore[T]) count(ctx context.Context, params querybuilder.Params) (int, error) {
	defer s.db.observe(s.table.Name()+".count", time.Now())

	query, args := s.table.CountStatement(s.table.Plan(params), s.db.dialect)
	var total int
	if err := sqlx.GetContext(ctx, s.db.conn(ctx), &total, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", s.table.Name(), err)
	}
	return total, nil
}

func (s *entityStore[T]) find(ctx context.Context, key string) (*T, error) {
	defer s.db.observe(s.table.Name()+".find", time.Now())

	var row T
	if err := sqlx.GetContext(ctx, s.db.conn(ctx), &row, s.table.FindStatement(s.db.dialect), key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find %s %s: %w", s.table.Name(), key, err)
	}
	return &row, nil
}

// exists share-locks the row when called inside a transaction so it cannot be
// deleted before the caller's write commits.
func (s *entityStore[T]) exists(ctx context.Context, key string) (bool, error) {
	defer s.db.observe(s.table.Name()+".exists", time.Now())

	var one int
	err := sqlx.GetContext(ctx, s.db.conn(ctx), &one, s.table.ExistsStatement(s.db.dialect, inTx(ctx)), key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	default:
		return false, fmt.Errorf("check %s %s: %w", s.table.Name(), key, err)
	}
}

func (s *entityStore[T]) create(ctx context.Context, row T) error {
	defer s.db.observe(s.table.Name()+".create", time.Now())

	if _, err := s.db.conn(ctx).ExecContext(ctx, s.table.InsertStatement(s.db.dialect), s.values(row)...); err != nil {
		switch classify(err) {
		case uniqueViolation:
			return fmt.Errorf("create %s: %w", s.table.Name(), ErrDuplicateKey)
		case foreignKeyViolation:
			return fmt.Errorf("create %s: %w", s.table.Name(), ErrMissingReference)
		}
		return fmt.Errorf("create %s: %w", s.table.Name(), err)
	}
	return nil
}

// update applies the allow-listed subset of updates. An empty subset issues no
// statement and reports false.
func (s *entityStore[T]) update(ctx context.Context, key string, updates map[string]interface{}) (bool, error) {
	assignment, _ := s.table.Assign(updates)
	if assignment.Empty() {
		return false, nil
	}

	defer s.db.observe(s.table.Name()+".update", time.Now())

	query, args := s.table.UpdateStatement(key, assignment, s.db.dialect)
	res, err := s.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		switch classify(err) {
		case foreignKeyViolation:
			return false, fmt.Errorf("update %s %s: %w", s.table.Name(), key, ErrMissingReference)
		case uniqueViolation:
			return false, fmt.Errorf("update %s %s: %w", s.table.Name(), key, ErrDuplicateKey)
		}
		return false, fmt.Errorf("update %s %s: %w", s.table.Name(), key, err)
	}
	return affected(res)
}

// remove reports false when nothing was deleted, including when the database
// refuses because other rows still reference this one.
func (s *entityStore[T]) remove(ctx context.Context, key string) (bool, error) {
	defer s.db.observe(s.table.Name()+".delete", time.Now())

	res, err := s.db.conn(ctx).ExecContext(ctx, s.table.DeleteStatement(s.db.dialect), key)
	if err != nil {
		if classify(err) == foreignKeyViolation {
			return false, nil
		}
		return false, fmt.Errorf("delete %s %s: %w", s.table.Name(), key, err)
	}
	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
