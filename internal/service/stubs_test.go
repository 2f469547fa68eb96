package service

import (
	"context"
	"database/sql"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/querybuilder"
)

// stubRepo is a hand-rolled repository double shared by the entity services.
type stubRepo[T any] struct {
	rows       []T
	total      int
	byKey      map[string]T
	exists     map[string]bool
	listErr    error
	existsErr  error
	createErr  error
	updateErr  error
	deleteErr  error
	changed    bool
	removed    bool
	lastParams querybuilder.Params
	created    []T
	updates    []map[string]interface{}
	deleted    []string
	listCalls  int
}

func (s *stubRepo[T]) List(ctx context.Context, params querybuilder.Params) ([]T, error) {
	s.listCalls++
	s.lastParams = params
	if s.listErr != nil {
		return nil, s.listErr
	}
	if params.Page > 1 {
		return []T{}, nil
	}
	return s.rows, nil
}

func (s *stubRepo[T]) Count(ctx context.Context, params querybuilder.Params) (int, error) {
	return s.total, s.listErr
}

func (s *stubRepo[T]) find(key string) (*T, error) {
	row, ok := s.byKey[key]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &row, nil
}

func (s *stubRepo[T]) FindByCode(ctx context.Context, code string) (*T, error) { return s.find(code) }

func (s *stubRepo[T]) FindByID(ctx context.Context, id string) (*T, error) { return s.find(id) }

func (s *stubRepo[T]) Exists(ctx context.Context, key string) (bool, error) {
	return s.exists[key], s.existsErr
}

func (s *stubRepo[T]) Create(ctx context.Context, row T) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, row)
	return nil
}

func (s *stubRepo[T]) Update(ctx context.Context, key string, updates map[string]interface{}) (bool, error) {
	s.updates = append(s.updates, updates)
	return s.changed, s.updateErr
}

func (s *stubRepo[T]) Delete(ctx context.Context, key string) (bool, error) {
	s.deleted = append(s.deleted, key)
	return s.removed, s.deleteErr
}

// stubTx runs fn inline and records how many transactions were opened.
type stubTx struct{ calls int }

func (t *stubTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

var (
	_ collegeRepository = (*stubRepo[models.College])(nil)
	_ programRepository = (*stubRepo[models.Program])(nil)
	_ studentRepository = (*stubRepo[models.Student])(nil)
)
