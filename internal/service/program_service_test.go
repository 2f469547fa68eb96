package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/querybuilder"
	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
)

func newProgramService(repo *stubRepo[models.Program], colleges *stubRepo[models.College], students *stubRepo[models.Student]) *ProgramService {
	if students == nil {
		students = &stubRepo[models.Student]{}
	}
	return NewProgramService(repo, colleges, students, &stubTx{}, nil, NewValidator(), zap.NewNop(), UpdateOptions{})
}

func TestProgramServiceCreateUnknownCollege(t *testing.T) {
	repo := &stubRepo[models.Program]{}
	svc := newProgramService(repo, &stubRepo[models.College]{}, nil)

	_, err := svc.Create(context.Background(), CreateProgramRequest{ProgramCode: "BSIT", ProgramName: "IT", CollegeCode: "ZZZ"})
	assert.ErrorIs(t, err, appErrors.ErrUnknownCollege)
	assert.Empty(t, repo.created)
}

func TestProgramServiceCreate(t *testing.T) {
	repo := &stubRepo[models.Program]{}
	svc := newProgramService(repo, &stubRepo[models.College]{exists: map[string]bool{"CCS": true}}, nil)

	program, err := svc.Create(context.Background(), CreateProgramRequest{ProgramCode: "BSCS", ProgramName: "Computer Science", CollegeCode: "CCS"})
	require.NoError(t, err)
	assert.Equal(t, "CCS", program.CollegeCode)
	assert.Len(t, repo.created, 1)
}

func TestProgramServiceUpdateChecksNewCollege(t *testing.T) {
	repo := &stubRepo[models.Program]{changed: true}
	svc := newProgramService(repo, &stubRepo[models.College]{exists: map[string]bool{"COE": true}}, nil)
	ctx := context.Background()

	err := svc.Update(ctx, "BSCS", map[string]interface{}{"college_code": "ZZZ"})
	assert.ErrorIs(t, err, appErrors.ErrUnknownCollege)
	assert.Empty(t, repo.updates)

	err = svc.Update(ctx, "BSCS", map[string]interface{}{"college_code": "COE", "program_code": "HACK"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"college_code": "COE"}, repo.updates[0])

	err = svc.Update(ctx, "BSCS", map[string]interface{}{"program_name": 42})
	assert.Equal(t, "invalid_program_name", appErrors.FromError(err).Code)
}

func TestProgramServiceDeleteReferenced(t *testing.T) {
	repo := &stubRepo[models.Program]{exists: map[string]bool{"BSCS": true}, removed: false}
	svc := newProgramService(repo, &stubRepo[models.College]{}, nil)

	err := svc.Delete(context.Background(), "BSCS")
	assert.ErrorIs(t, err, appErrors.ErrNotFoundOrReferenced)
	assert.Equal(t, 409, appErrors.FromError(err).Status)
}

func TestProgramServiceListStudents(t *testing.T) {
	repo := &stubRepo[models.Program]{exists: map[string]bool{"BSCS": true}}
	students := &stubRepo[models.Student]{rows: []models.Student{{IDNumber: "2024-0001", ProgramCode: "BSCS"}}, total: 1}
	svc := newProgramService(repo, &stubRepo[models.College]{}, students)

	items, meta, err := svc.ListStudents(context.Background(), "BSCS", querybuilder.Params{Page: 1, PageSize: 5, SortBy: "last_name"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 5, meta.PerPage)
	assert.Equal(t, []querybuilder.Scope{{Column: "program_code", Value: "BSCS"}}, students.lastParams.Scopes)
}
