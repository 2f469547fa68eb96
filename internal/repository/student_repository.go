package repository

import (
	"context"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/querybuilder"
)

// StudentRepository provides database access for students.
type StudentRepository struct {
	store entityStore[models.Student]
}

// NewStudentRepository creates a new instance of StudentRepository.
func NewStudentRepository(db *DB) *StudentRepository {
	return &StudentRepository{store: entityStore[models.Student]{
		db:    db,
		table: StudentTable(),
		values: func(s models.Student) []interface{} {
			return []interface{}{s.IDNumber, s.FirstName, s.LastName, s.YearLevel, s.Gender, s.ProgramCode}
		},
	}}
}

// List returns one page of students matching params.
func (r *StudentRepository) List(ctx context.Context, params querybuilder.Params) ([]models.Student, error) {
	return r.store.list(ctx, params)
}

// Count returns the number of students matching params.
func (r *StudentRepository) Count(ctx context.Context, params querybuilder.Params) (int, error) {
	return r.store.count(ctx, params)
}

// FindByID returns sql.ErrNoRows when the student does not exist.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	return r.store.find(ctx, id)
}

// Exists reports whether a student with id exists.
func (r *StudentRepository) Exists(ctx context.Context, id string) (bool, error) {
	return r.store.exists(ctx, id)
}

// Create inserts a student.
func (r *StudentRepository) Create(ctx context.Context, student models.Student) error {
	return r.store.create(ctx, student)
}

// Update applies the mutable subset of updates.
func (r *StudentRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (bool, error) {
	return r.store.update(ctx, id, updates)
}

// Delete removes a student.
func (r *StudentRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.store.remove(ctx, id)
}
