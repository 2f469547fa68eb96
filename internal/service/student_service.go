package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/querybuilder"
	"github.com/noah-isme/ssis-api/internal/repository"
	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
	"github.com/noah-isme/ssis-api/pkg/export"
)

const entityStudents = "students"

type studentRepository interface {
	lister[models.Student]
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, student models.Student) error
	Update(ctx context.Context, id string, updates map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CreateStudentRequest is the payload for enrolling a student.
type CreateStudentRequest struct {
	IDNumber    string `json:"id_number" validate:"required,idnumber"`
	FirstName   string `json:"first_name" validate:"required,max=150"`
	LastName    string `json:"last_name" validate:"required,max=150"`
	YearLevel   *int   `json:"year_level" validate:"required,min=1,max=10"`
	Gender      string `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	ProgramCode string `json:"program_code" validate:"required,max=20"`
}

var studentUpdateRules = map[string]fieldRule{
	"first_name":   textRule("required,max=150"),
	"last_name":    textRule("required,max=150"),
	"year_level":   intRule("min=1,max=10"),
	"gender":       textRule("required,oneof=MALE FEMALE OTHER"),
	"program_code": textRule("required,max=20"),
}

// StudentService implements student use cases.
type StudentService struct {
	repo      studentRepository
	programs  existenceChecker
	tx        transactor
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	mutable   []string
	opts      UpdateOptions
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, programs existenceChecker, tx transactor, cache *CacheService, validate *validator.Validate, logger *zap.Logger, opts UpdateOptions) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &StudentService{
		repo:      repo,
		programs:  programs,
		tx:        tx,
		cache:     cache,
		validator: validate,
		logger:    logger,
		mutable:   repository.StudentTable().Mutable(),
		opts:      opts,
	}
}

// List returns a page of students.
func (s *StudentService) List(ctx context.Context, params querybuilder.Params) ([]models.Student, *models.ListMeta, error) {
	params.Scopes = nil
	return listPage[models.Student](ctx, s.repo, s.cache, entityStudents, params, s.logger)
}

// Get returns a student by ID number. A malformed ID cannot exist, so it is
// reported as not found without a query.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	if !validIDNumber(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrDatabase, "failed to load student")
	}
	return student, nil
}

// Create validates a student, confirms the program exists and inserts the row
// in one transaction.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, translateValidation(err)
	}

	student := models.Student{
		IDNumber:    req.IDNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		YearLevel:   *req.YearLevel,
		Gender:      req.Gender,
		ProgramCode: req.ProgramCode,
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requireProgram(ctx, student.ProgramCode); err != nil {
			return err
		}
		return s.repo.Create(ctx, student)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, appErrors.Clone(appErrors.ErrAlreadyExists, "student already exists")
		case errors.Is(err, repository.ErrMissingReference):
			return nil, appErrors.Clone(appErrors.ErrUnknownProgram, "")
		}
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		s.logger.Error("create student failed", zap.String("id_number", student.IDNumber), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrDatabase, "failed to create student")
	}

	s.cache.Invalidate(ctx, entityStudents)
	return &student, nil
}

// Update applies the mutable subset of updates. id_number never changes.
func (s *StudentService) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	clean, err := cleanUpdates(s.validator, studentUpdateRules, s.mutable, updates, s.opts.RejectUnknownFields)
	if err != nil {
		return err
	}
	if len(clean) == 0 {
		return appErrors.Clone(appErrors.ErrNotFoundOrNoChanges, "")
	}
	if !validIDNumber(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if programCode, ok := clean["program_code"].(string); ok {
			if err := s.requireProgram(ctx, programCode); err != nil {
				return err
			}
		}
		changed, err := s.repo.Update(ctx, id, clean)
		if err != nil {
			if errors.Is(err, repository.ErrMissingReference) {
				return appErrors.Clone(appErrors.ErrUnknownProgram, "")
			}
			return appErrors.Wrap(err, appErrors.ErrDatabase, "failed to update student")
		}
		if !changed {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, entityStudents)
	return nil
}

// Delete removes a student.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if !validIDNumber(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.repo.Exists(ctx, id)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrDatabase, "failed to load student")
		}
		if !exists {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}

		removed, err := s.repo.Delete(ctx, id)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrDatabase, "failed to delete student")
		}
		if !removed {
			return appErrors.Clone(appErrors.ErrNotFoundOrReferenced, "")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, entityStudents)
	return nil
}

var studentHeaders = []string{"id_number", "first_name", "last_name", "year_level", "gender", "program_code"}

// Dataset collects every student matching params for export.
func (s *StudentService) Dataset(ctx context.Context, params querybuilder.Params) (export.Dataset, error) {
	params.Scopes = nil
	rows, err := collectAll[models.Student](ctx, s.repo, params)
	if err != nil {
		return export.Dataset{}, err
	}
	return dataset(studentHeaders, rows, func(st models.Student) []string {
		return []string{st.IDNumber, st.FirstName, st.LastName, strconv.Itoa(st.YearLevel), st.Gender, st.ProgramCode}
	}), nil
}

func (s *StudentService) requireProgram(ctx context.Context, code string) error {
	exists, err := s.programs.Exists(ctx, code)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrDatabase, "failed to check program")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrUnknownProgram, "")
	}
	return nil
}
