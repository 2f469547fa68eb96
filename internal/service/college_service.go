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

const entityColleges = "colleges"

// transactor runs fn in one database transaction.
type transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type collegeRepository interface {
	lister[models.College]
	FindByCode(ctx context.Context, code string) (*models.College, error)
	Exists(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, college models.College) error
	Update(ctx context.Context, code string, updates map[string]interface{}) (bool, error)
	Delete(ctx context.Context, code string) (bool, error)
}

// CreateCollegeRequest is the payload for creating a college.
type CreateCollegeRequest struct {
	CollegeCode string `json:"college_code" validate:"required,max=20"`
	CollegeName string `json:"college_name" validate:"required,max=150"`
}

// UpdateOptions controls how partial updates treat keys outside the allow-list.
type UpdateOptions struct {
	RejectUnknownFields bool
}

var collegeUpdateRules = map[string]fieldRule{
	"college_name": textRule("required,max=150"),
}

// CollegeService implements college use cases.
type CollegeService struct {
	repo      collegeRepository
	programs  lister[models.Program]
	tx        transactor
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	mutable   []string
	opts      UpdateOptions
}

// NewCollegeService constructs a CollegeService.
func NewCollegeService(repo collegeRepository, programs lister[models.Program], tx transactor, cache *CacheService, validate *validator.Validate, logger *zap.Logger, opts UpdateOptions) *CollegeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &CollegeService{
		repo:      repo,
		programs:  programs,
		tx:        tx,
		cache:     cache,
		validator: validate,
		logger:    logger,
		mutable:   repository.CollegeTable().Mutable(),
		opts:      opts,
	}
}

// List returns a page of colleges.
func (s *CollegeService) List(ctx context.Context, params querybuilder.Params) ([]models.College, *models.ListMeta, error) {
	params.Scopes = nil
	return listPage[models.College](ctx, s.repo, s.cache, entityColleges, params, s.logger)
}

// Get returns a college by code.
func (s *CollegeService) Get(ctx context.Context, code string) (*models.College, error) {
	college, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "college not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrDatabase, "failed to load college")
	}
	return college, nil
}

// ListPrograms returns a page of the programs a college owns.
func (s *CollegeService) ListPrograms(ctx context.Context, code string, params querybuilder.Params) ([]models.Program, *models.ListMeta, error) {
	exists, err := s.repo.Exists(ctx, code)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrDatabase, "failed to load college")
	}
	if !exists {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "college not found")
	}
	params.Scopes = []querybuilder.Scope{{Column: "college_code", Value: code}}
	return listPage[models.Program](ctx, s.programs, s.cache, entityPrograms, params, s.logger)
}

// Create validates and inserts a college.
func (s *CollegeService) Create(ctx context.Context, req CreateCollegeRequest) (*models.College, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, translateValidation(err)
	}

	college := models.College{CollegeCode: req.CollegeCode, CollegeName: req.CollegeName}
	if err := s.repo.Create(ctx, college); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, appErrors.Clone(appErrors.ErrAlreadyExists, "college already exists")
		}
		s.logger.Error("create college failed", zap.String("college_code", college.CollegeCode), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrDatabase, "failed to create college")
	}

	s.cache.Invalidate(ctx, entityColleges)
	return &college, nil
}

// Update applies the mutable subset of updates to a college.
func (s *CollegeService) Update(ctx context.Context, code string, updates map[string]interface{}) error {
	clean, err := cleanUpdates(s.validator, collegeUpdateRules, s.mutable, updates, s.opts.RejectUnknownFields)
	if err != nil {
		return err
	}
	if len(clean) == 0 {
		return appErrors.Clone(appErrors.ErrNotFoundOrNoChanges, "")
	}

	changed, err := s.repo.Update(ctx, code, clean)
	if err != nil {
		s.logger.Error("update college failed", zap.String("college_code", code), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrDatabase, "failed to update college")
	}
	if !changed {
		return appErrors.Clone(appErrors.ErrNotFound, "college not found")
	}

	s.cache.Invalidate(ctx, entityColleges)
	return nil
}

// Delete removes a college that no program references.
func (s *CollegeService) Delete(ctx context.Context, code string) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.repo.Exists(ctx, code)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrDatabase, "failed to load college")
		}
		if !exists {
			return appErrors.Clone(appErrors.ErrNotFound, "college not found")
		}

		removed, err := s.repo.Delete(ctx, code)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrDatabase, "failed to delete college")
		}
		if !removed {
			return appErrors.Clone(appErrors.ErrNotFoundOrReferenced, "college is still referenced by programs")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, entityColleges)
	return nil
}

var collegeHeaders = []string{"college_code", "college_name"}

// Dataset collects every college matching params for export.
func (s *CollegeService) Dataset(ctx context.Context, params querybuilder.Params) (export.Dataset, error) {
	params.Scopes = nil
	rows, err := collectAll[models.College](ctx, s.repo, params)
	if err != nil {
		return export.Dataset{}, err
	}
	return dataset(collegeHeaders, rows, func(c models.College) []string {
		return []string{c.CollegeCode, c.CollegeName}
	}), nil
}
