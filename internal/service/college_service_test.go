package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/querybuilder"
	"github.com/noah-isme/ssis-api/internal/repository"
	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
)

func newCollegeService(repo *stubRepo[models.College], programs *stubRepo[models.Program], opts UpdateOptions) *CollegeService {
	if programs == nil {
		programs = &stubRepo[models.Program]{}
	}
	return NewCollegeService(repo, programs, &stubTx{}, nil, NewValidator(), zap.NewNop(), opts)
}

func TestCollegeServiceListBuildsMeta(t *testing.T) {
	repo := &stubRepo[models.College]{
		rows:  []models.College{{CollegeCode: "CCS", CollegeName: "Computing"}},
		total: 31,
	}
	svc := newCollegeService(repo, nil, UpdateOptions{})

	items, meta, err := svc.List(context.Background(), querybuilder.Params{Page: 0, PageSize: 500})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, models.ListMeta{Page: 1, PerPage: querybuilder.MaxPageSize, Total: 31}, *meta)
	assert.Equal(t, querybuilder.MaxPageSize, repo.lastParams.PageSize)
}

func TestCollegeServiceListDatabaseError(t *testing.T) {
	repo := &stubRepo[models.College]{listErr: errors.New("boom")}
	svc := newCollegeService(repo, nil, UpdateOptions{})

	_, _, err := svc.List(context.Background(), querybuilder.Params{})
	assert.ErrorIs(t, err, appErrors.ErrDatabase)
}

func TestCollegeServiceCreate(t *testing.T) {
	repo := &stubRepo[models.College]{}
	svc := newCollegeService(repo, nil, UpdateOptions{})

	college, err := svc.Create(context.Background(), CreateCollegeRequest{CollegeCode: "CCS", CollegeName: "College of Computer Studies"})
	require.NoError(t, err)
	assert.Equal(t, "CCS", college.CollegeCode)
	require.Len(t, repo.created, 1)
}

func TestCollegeServiceCreateMissingFields(t *testing.T) {
	repo := &stubRepo[models.College]{}
	svc := newCollegeService(repo, nil, UpdateOptions{})

	_, err := svc.Create(context.Background(), CreateCollegeRequest{})
	require.ErrorIs(t, err, appErrors.ErrMissingFields)
	appErr := appErrors.FromError(err)
	assert.Equal(t, []string{"college_code", "college_name"}, appErr.Details["fields"])
	assert.Empty(t, repo.created)
}

func TestCollegeServiceCreateDuplicate(t *testing.T) {
	repo := &stubRepo[models.College]{createErr: repository.ErrDuplicateKey}
	svc := newCollegeService(repo, nil, UpdateOptions{})

	_, err := svc.Create(context.Background(), CreateCollegeRequest{CollegeCode: "CCS", CollegeName: "Computing"})
	assert.ErrorIs(t, err, appErrors.ErrAlreadyExists)
}

func TestCollegeServiceGetNotFound(t *testing.T) {
	svc := newCollegeService(&stubRepo[models.College]{}, nil, UpdateOptions{})

	_, err := svc.Get(context.Background(), "NONE")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCollegeServiceUpdateDropsImmutableKey(t *testing.T) {
	repo := &stubRepo[models.College]{changed: true}
	svc := newCollegeService(repo, nil, UpdateOptions{})

	err := svc.Update(context.Background(), "CCS", map[string]interface{}{"college_code": "NEW", "college_name": "Renamed"})
	require.NoError(t, err)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, map[string]interface{}{"college_name": "Renamed"}, repo.updates[0])
}

func TestCollegeServiceUpdateNoChanges(t *testing.T) {
	repo := &stubRepo[models.College]{changed: true}
	svc := newCollegeService(repo, nil, UpdateOptions{})

	err := svc.Update(context.Background(), "CCS", map[string]interface{}{"unknown_field": "x"})
	assert.ErrorIs(t, err, appErrors.ErrNotFoundOrNoChanges)
	assert.Empty(t, repo.updates)
}

func TestCollegeServiceUpdateStrictRejectsUnknown(t *testing.T) {
	repo := &stubRepo[models.College]{changed: true}
	svc := newCollegeService(repo, nil, UpdateOptions{RejectUnknownFields: true})

	err := svc.Update(context.Background(), "CCS", map[string]interface{}{"college_name": "A", "dean": "x"})
	require.ErrorIs(t, err, appErrors.ErrInvalidFields)
	assert.Equal(t, []string{"dean"}, appErrors.FromError(err).Details["fields"])
	assert.Empty(t, repo.updates)
}

func TestCollegeServiceUpdateMissingRow(t *testing.T) {
	repo := &stubRepo[models.College]{changed: false}
	svc := newCollegeService(repo, nil, UpdateOptions{})

	err := svc.Update(context.Background(), "NONE", map[string]interface{}{"college_name": "A"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCollegeServiceDelete(t *testing.T) {
	tests := []struct {
		name    string
		repo    *stubRepo[models.College]
		wantErr *appErrors.Error
	}{
		{name: "removed", repo: &stubRepo[models.College]{exists: map[string]bool{"CCS": true}, removed: true}},
		{name: "missing", repo: &stubRepo[models.College]{}, wantErr: appErrors.ErrNotFound},
		{name: "referenced", repo: &stubRepo[models.College]{exists: map[string]bool{"CCS": true}}, wantErr: appErrors.ErrNotFoundOrReferenced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newCollegeService(tt.repo, nil, UpdateOptions{})
			err := svc.Delete(context.Background(), "CCS")
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCollegeServiceListProgramsScopesToCollege(t *testing.T) {
	repo := &stubRepo[models.College]{exists: map[string]bool{"CCS": true}}
	programs := &stubRepo[models.Program]{rows: []models.Program{{ProgramCode: "BSCS", CollegeCode: "CCS"}}, total: 1}
	svc := newCollegeService(repo, programs, UpdateOptions{})

	items, meta, err := svc.ListPrograms(context.Background(), "CCS", querybuilder.Params{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, meta.Total)
	assert.Equal(t, []querybuilder.Scope{{Column: "college_code", Value: "CCS"}}, programs.lastParams.Scopes)

	_, _, err = svc.ListPrograms(context.Background(), "NONE", querybuilder.Params{})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCollegeServiceDataset(t *testing.T) {
	repo := &stubRepo[models.College]{rows: []models.College{{CollegeCode: "CCS", CollegeName: "Computing"}}}
	svc := newCollegeService(repo, nil, UpdateOptions{})

	data, err := svc.Dataset(context.Background(), querybuilder.Params{SearchTerm: "comp"})
	require.NoError(t, err)
	assert.Equal(t, []string{"college_code", "college_name"}, data.Headers)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, "Computing", data.Rows[0]["college_name"])
	assert.Equal(t, 1, repo.listCalls)
}
