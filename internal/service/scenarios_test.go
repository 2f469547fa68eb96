package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/querybuilder"
	"github.com/noah-isme/ssis-api/internal/repository"
	"github.com/noah-isme/ssis-api/pkg/database"
	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
)

type stack struct {
	colleges *CollegeService
	programs *ProgramService
	students *StudentService
}

// newStack wires the services over a migrated in-memory SQLite database.
func newStack(t *testing.T) stack {
	t.Helper()
	sqlDB, err := database.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(context.Background(), sqlDB, zap.NewNop()))

	db := repository.NewDB(sqlDB, querybuilder.SQLite)
	colleges := repository.NewCollegeRepository(db)
	programs := repository.NewProgramRepository(db)
	students := repository.NewStudentRepository(db)
	v := NewValidator()
	return stack{
		colleges: NewCollegeService(colleges, programs, db, nil, v, nil, UpdateOptions{}),
		programs: NewProgramService(programs, colleges, students, db, nil, v, nil, UpdateOptions{}),
		students: NewStudentService(students, programs, db, nil, v, nil, UpdateOptions{}),
	}
}

func (s stack) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := s.colleges.Create(ctx, CreateCollegeRequest{CollegeCode: "CCS", CollegeName: "College of Computer Studies"})
	require.NoError(t, err)
	_, err = s.programs.Create(ctx, CreateProgramRequest{ProgramCode: "BSCS", ProgramName: "Computer Science", CollegeCode: "CCS"})
	require.NoError(t, err)
}

func TestScenarioCollegeAndProgramCreation(t *testing.T) {
	s := newStack(t)
	s.seed(t)

	_, err := s.programs.Create(context.Background(), CreateProgramRequest{ProgramCode: "BSIT", ProgramName: "IT", CollegeCode: "ZZZ"})
	assert.ErrorIs(t, err, appErrors.ErrUnknownCollege)

	_, err = s.colleges.Create(context.Background(), CreateCollegeRequest{CollegeCode: "CCS", CollegeName: "Again"})
	assert.ErrorIs(t, err, appErrors.ErrAlreadyExists)
}

func TestScenarioStudentCreation(t *testing.T) {
	s := newStack(t)
	s.seed(t)
	ctx := context.Background()

	created, err := s.students.Create(ctx, validStudent())
	require.NoError(t, err)

	read, err := s.students.Get(ctx, created.IDNumber)
	require.NoError(t, err)
	assert.Equal(t, *created, *read)

	bad := validStudent()
	bad.IDNumber = "bad-id"
	_, err = s.students.Create(ctx, bad)
	assert.Equal(t, "invalid_id_number", appErrors.FromError(err).Code)

	orphan := validStudent()
	orphan.IDNumber = "2024-0002"
	orphan.ProgramCode = "NOPE"
	_, err = s.students.Create(ctx, orphan)
	assert.ErrorIs(t, err, appErrors.ErrUnknownProgram)
}

func TestScenarioPagination(t *testing.T) {
	s := newStack(t)
	s.seed(t)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		req := validStudent()
		req.IDNumber = fmt.Sprintf("2024-%04d", i)
		_, err := s.students.Create(ctx, req)
		require.NoError(t, err)
	}

	rows, meta, err := s.students.List(ctx, querybuilder.Params{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, rows, 10)
	assert.Equal(t, 25, meta.Total)

	rows, meta, err = s.students.List(ctx, querybuilder.Params{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, rows, 5)
	assert.Equal(t, models.ListMeta{Page: 3, PerPage: 10, Total: 25}, *meta)

	data, err := s.students.Dataset(ctx, querybuilder.Params{})
	require.NoError(t, err)
	assert.Len(t, data.Rows, 25)
}

func TestScenarioPartialUpdate(t *testing.T) {
	s := newStack(t)
	s.seed(t)
	ctx := context.Background()
	_, err := s.students.Create(ctx, validStudent())
	require.NoError(t, err)

	require.NoError(t, s.students.Update(ctx, "2024-0001", map[string]interface{}{"year_level": float64(3)}))
	read, err := s.students.Get(ctx, "2024-0001")
	require.NoError(t, err)
	assert.Equal(t, 3, read.YearLevel)

	err = s.students.Update(ctx, "2024-0001", map[string]interface{}{"unknown_field": "x"})
	assert.ErrorIs(t, err, appErrors.ErrNotFoundOrNoChanges)

	err = s.students.Update(ctx, "2099-0001", map[string]interface{}{"year_level": float64(1)})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestScenarioReferentialDelete(t *testing.T) {
	s := newStack(t)
	s.seed(t)
	ctx := context.Background()

	err := s.colleges.Delete(ctx, "CCS")
	assert.ErrorIs(t, err, appErrors.ErrNotFoundOrReferenced)

	_, err = s.colleges.Get(ctx, "CCS")
	require.NoError(t, err)

	require.NoError(t, s.programs.Delete(ctx, "BSCS"))
	require.NoError(t, s.colleges.Delete(ctx, "CCS"))
	assert.ErrorIs(t, s.colleges.Delete(ctx, "CCS"), appErrors.ErrNotFound)
}
