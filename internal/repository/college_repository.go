package repository

import (
	"context"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/querybuilder"
)

// CollegeRepository provides database access for colleges.
type CollegeRepository struct {
	store entityStore[models.College]
}

// NewCollegeRepository creates a new instance of CollegeRepository.
func NewCollegeRepository(db *DB) *CollegeRepository {
	return &CollegeRepository{store: entityStore[models.College]{
		db:    db,
		table: CollegeTable(),
		values: func(c models.College) []interface{} {
			return []interface{}{c.CollegeCode, c.CollegeName}
		},
	}}
}

// List returns one page of colleges matching params.
func (r *CollegeRepository) List(ctx context.Context, params querybuilder.Params) ([]models.College, error) {
	return r.store.list(ctx, params)
}

// Count returns how many colleges match params, ignoring pagination.
func (r *CollegeRepository) Count(ctx context.Context, params querybuilder.Params) (int, error) {
	return r.store.count(ctx, params)
}

// FindByCode returns sql.ErrNoRows when the college does not exist.
func (r *CollegeRepository) FindByCode(ctx context.Context, code string) (*models.College, error) {
	return r.store.find(ctx, code)
}

// Exists reports whether a college with code exists.
func (r *CollegeRepository) Exists(ctx context.Context, code string) (bool, error) {
	return r.store.exists(ctx, code)
}

// Create inserts a college.
func (r *CollegeRepository) Create(ctx context.Context, college models.College) error {
	return r.store.create(ctx, college)
}

// Update applies the mutable subset of updates and reports whether a row changed.
func (r *CollegeRepository) Update(ctx context.Context, code string, updates map[string]interface{}) (bool, error) {
	return r.store.update(ctx, code, updates)
}

// Delete removes a college. It reports false while programs still reference it.
func (r *CollegeRepository) Delete(ctx context.Context, code string) (bool, error) {
	return r.store.remove(ctx, code)
}
