package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/querybuilder"
	"github.com/noah-isme/ssis-api/internal/repository"
	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
	"github.com/noah-isme/ssis-api/pkg/export"
)

const entityPrograms = "programs"

type programRepository interface {
	lister[models.Program]
	FindByCode(ctx context.Context, code string) (*models.Program, error)
	Exists(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, program models.Program) error
	Update(ctx context.Context, code string, updates map[string]interface{}) (bool, error)
	Delete(ctx context.Context, code string) (bool, error)
}

// existenceChecker confirms a referenced row exists.
type existenceChecker interface {
	Exists(ctx context.Context, key string) (bool, error)
}

// CreateProgramRequest is the payload for creating a program.
type CreateProgramRequest struct {
	ProgramCode string `json:"program_code" validate:"required,max=20"`
	ProgramName string `json:"program_name" validate:"required,max=150"`
	CollegeCode string `json:"college_code" validate:"required,max=20"`
}

var programUpdateRules = map[string]fieldRule{
	"program_name": textRule("required,max=150"),
	"college_code": textRule("required,max=20"),
}

// ProgramService implements program use cases.
type ProgramService struct {
	repo      programRepository
	colleges  existenceChecker
	students  lister[models.Student]
	tx        transactor
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	mutable   []string
	opts      UpdateOptions
}

// NewProgramService constructs a ProgramService.
func NewProgramService(repo programRepository, colleges existenceChecker, students lister[models.Student], tx transactor, cache *CacheService, validate *validator.Validate, logger *zap.Logger, opts UpdateOptions) *ProgramService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &ProgramService{
		repo:      repo,
		colleges:  colleges,
		students:  students,
		tx:        tx,
		cache:     cache,
		validator: validate,
		logger:    logger,
		mutable:   repository.ProgramTable().Mutable(),
		opts:      opts,
	}
}

// List returns a page of programs.
func (s *ProgramService) List(ctx context.Context, params querybuilder.Params) ([]models.Program, *models.ListMeta, error) {
	params.Scopes = nil
	return listPage[models.Program](ctx, s.repo, s.cache, entityPrograms, params, s.logger)
}

// Get returns a program by code.
func (s *ProgramService) Get(ctx context.Context, code string) (*models.Program, error) {
	program, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrDatabase, "failed to load program")
	}
	return program, nil
}

// ListStudents returns a page of the students enrolled in a program.
func (s *ProgramService) ListStudents(ctx context.Context, code string, params querybuilder.Params) ([]models.Student, *models.ListMeta, error) {
	exists, err := s.repo.Exists(ctx, code)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrDatabase, "failed to load program")
	}
	if !exists {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "program not found")
	}
	params.Scopes = []querybuilder.Scope{{Column: "program_code", Value: code}}
	return listPage[models.Student](ctx, s.students, s.cache, entityStudents, params, s.logger)
}

// Create validates a program, confirms its college exists and inserts it in
// one transaction.
func (s *ProgramService) Create(ctx context.Context, req CreateProgramRequest) (*models.Program, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, translateValidation(err)
	}

	program := models.Program{ProgramCode: req.ProgramCode, ProgramName: req.ProgramName, CollegeCode: req.CollegeCode}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requireCollege(ctx, program.CollegeCode); err != nil {
			return err
		}
		return s.repo.Create(ctx, program)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, appErrors.Clone(appErrors.ErrAlreadyExists, "program already exists")
		case errors.Is(err, repository.ErrMissingReference):
			return nil, appErrors.Clone(appErrors.ErrUnknownCollege, "")
		}
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		s.logger.Error("create program failed", zap.String("program_code", program.ProgramCode), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrDatabase, "failed to create program")
	}

	s.cache.Invalidate(ctx, entityPrograms)
	return &program, nil
}

// Update applies the mutable subset of updates. A new college_code must name
// an existing college.
func (s *ProgramService) Update(ctx context.Context, code string, updates map[string]interface{}) error {
	clean, err := cleanUpdates(s.validator, programUpdateRules, s.mutable, updates, s.opts.RejectUnknownFields)
	if err != nil {
		return err
	}
	if len(clean) == 0 {
		return appErrors.Clone(appErrors.ErrNotFoundOrNoChanges, "")
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if collegeCode, ok := clean["college_code"].(string); ok {
			if err := s.requireCollege(ctx, collegeCode); err != nil {
				return err
			}
		}
		changed, err := s.repo.Update(ctx, code, clean)
		if err != nil {
			if errors.Is(err, repository.ErrMissingReference) {
				return appErrors.Clone(appErrors.ErrUnknownCollege, "")
			}
			return appErrors.Wrap(err, appErrors.ErrDatabase, "failed to update program")
		}
		if !changed {
			return appErrors.Clone(appErrors.ErrNotFound, "program not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, entityPrograms)
	return nil
}

// Delete removes a program no student references.
func (s *ProgramService) Delete(ctx context.Context, code string) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.repo.Exists(ctx, code)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrDatabase, "failed to load program")
		}
		if !exists {
			return appErrors.Clone(appErrors.ErrNotFound, "program not found")
		}

		removed, err := s.repo.Delete(ctx, code)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrDatabase, "failed to delete program")
		}
		if !removed {
			return appErrors.Clone(appErrors.ErrNotFoundOrReferenced, "program is still referenced by students")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, entityPrograms)
	return nil
}

var programHeaders = []string{"program_code", "program_name", "college_code"}

// Dataset collects every program matching params for export.
func (s *ProgramService) Dataset(ctx context.Context, params querybuilder.Params) (export.Dataset, error) {
	params.Scopes = nil
	rows, err := collectAll[models.Program](ctx, s.repo, params)
	if err != nil {
		return export.Dataset{}, err
	}
	return dataset(programHeaders, rows, func(p models.Program) []string {
		return []string{p.ProgramCode, p.ProgramName, p.CollegeCode}
	}), nil
}

func (s *ProgramService) requireCollege(ctx context.Context, code string) error {
	exists, err := s.colleges.Exists(ctx, code)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrDatabase, "failed to check college")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrUnknownCollege, "")
	}
	return nil
}
