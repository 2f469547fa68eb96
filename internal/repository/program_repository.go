package repository

import (
	"context"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/querybuilder"
)

// ProgramRepository provides database access for programs.
type ProgramRepository struct {
	store entityStore[models.Program]
}

// NewProgramRepository creates a new instance of ProgramRepository.
func NewProgramRepository(db *DB) *ProgramRepository {
	return &ProgramRepository{store: entityStore[models.Program]{
		db:    db,
		table: ProgramTable(),
		values: func(p models.Program) []interface{} {
			return []interface{}{p.ProgramCode, p.ProgramName, p.CollegeCode}
		},
	}}
}

// List returns one page of programs matching params. A college_code scope
// restricts the page to one college.
func (r *ProgramRepository) List(ctx context.Context, params querybuilder.Params) ([]models.Program, error) {
	return r.store.list(ctx, params)
}

func (r *ProgramRepository) Count(ctx context.Context, params querybuilder.Params) (int, error) {
	return r.store.count(ctx, params)
}

// FindByCode returns sql.ErrNoRows when the program does not exist.
func (r *ProgramRepository) FindByCode(ctx context.Context, code string) (*models.Program, error) {
	return r.store.find(ctx, code)
}

func (r *ProgramRepository) Exists(ctx context.Context, code string) (bool, error) {
	return r.store.exists(ctx, code)
}

// Create inserts a program. ErrMissingReference means the college is gone.
func (r *ProgramRepository) Create(ctx context.Context, program models.Program) error {
	return r.store.create(ctx, program)
}

func (r *ProgramRepository) Update(ctx context.Context, code string, updates map[string]interface{}) (bool, error) {
	return r.store.update(ctx, code, updates)
}

// Delete removes a program. It reports false while students still reference it.
func (r *ProgramRepository) Delete(ctx context.Context, code string) (bool, error) {
	return r.store.remove(ctx, code)
}
