package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/querybuilder"
	"github.com/noah-isme/ssis-api/internal/service"
	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
	"github.com/noah-isme/ssis-api/pkg/export"
	"github.com/noah-isme/ssis-api/pkg/response"
)

type collegeService interface {
	List(ctx context.Context, params querybuilder.Params) ([]models.College, *models.ListMeta, error)
	Get(ctx context.Context, code string) (*models.College, error)
	Create(ctx context.Context, req service.CreateCollegeRequest) (*models.College, error)
	Update(ctx context.Context, code string, updates map[string]interface{}) error
	Delete(ctx context.Context, code string) error
	ListPrograms(ctx context.Context, code string, params querybuilder.Params) ([]models.Program, *models.ListMeta, error)
	Dataset(ctx context.Context, params querybuilder.Params) (export.Dataset, error)
}

type exportRenderer interface {
	Render(entity, format string, data export.Dataset) (*service.ExportFile, error)
}

// CollegeHandler exposes college endpoints.
type CollegeHandler struct {
	colleges collegeService
	exports  exportRenderer
	pageSize int
}

// NewCollegeHandler constructs CollegeHandler.
func NewCollegeHandler(colleges collegeService, exports exportRenderer, defaultPageSize int) *CollegeHandler {
	return &CollegeHandler{colleges: colleges, exports: exports, pageSize: defaultPageSize}
}

// List godoc
// @Summary List colleges
// @Tags Colleges
// @Produce json
// @Param search_term query string false "Substring to search for"
// @Param search_by query string false "Column to search"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "ASC or DESC"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /colleges [get]
func (h *CollegeHandler) List(c *gin.Context) {
	params, err := listingParams(c, h.pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	colleges, meta, err := h.colleges.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, colleges, *meta)
}

// Get godoc
// @Summary Get college
// @Tags Colleges
// @Produce json
// @Param college_code path string true "College code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /colleges/{college_code} [get]
func (h *CollegeHandler) Get(c *gin.Context) {
	college, err := h.colleges.Get(c.Request.Context(), c.Param("college_code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, college)
}

// Create godoc
// @Summary Create college
// @Tags Colleges
// @Accept json
// @Produce json
// @Param payload body service.CreateCollegeRequest true "College payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /colleges [post]
func (h *CollegeHandler) Create(c *gin.Context) {
	var req service.CreateCollegeRequest
	if !bindCreate(c, &req) {
		return
	}
	college, err := h.colleges.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"college_code": college.CollegeCode})
}

// Update godoc
// @Summary Update college
// @Description Only college_name can change; other keys are ignored.
// @Tags Colleges
// @Accept json
// @Produce json
// @Param college_code path string true "College code"
// @Param payload body map[string]interface{} true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /colleges/{college_code} [put]
func (h *CollegeHandler) Update(c *gin.Context) {
	updates, ok := bindUpdates(c)
	if !ok {
		return
	}
	code := c.Param("college_code")
	if err := h.colleges.Update(c.Request.Context(), code, updates); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"college_code": code})
}

// Delete godoc
// @Summary Delete college
// @Tags Colleges
// @Produce json
// @Param college_code path string true "College code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /colleges/{college_code} [delete]
func (h *CollegeHandler) Delete(c *gin.Context) {
	code := c.Param("college_code")
	if err := h.colleges.Delete(c.Request.Context(), code); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"college_code": code})
}

// Programs godoc
// @Summary List the programs of a college
// @Tags Colleges
// @Produce json
// @Param college_code path string true "College code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /colleges/{college_code}/programs [get]
func (h *CollegeHandler) Programs(c *gin.Context) {
	params, err := listingParams(c, h.pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	programs, meta, err := h.colleges.ListPrograms(c.Request.Context(), c.Param("college_code"), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, programs, *meta)
}

// Export godoc
// @Summary Export colleges
// @Tags Colleges
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /colleges/export [get]
func (h *CollegeHandler) Export(c *gin.Context) {
	params, err := listingParams(c, h.pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	data, err := h.colleges.Dataset(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	sendExport(c, h.exports, "colleges", data)
}

// bindCreate decodes a create payload. A value of the wrong JSON type is
// reported against its field; anything else that fails to parse is
// invalid_payload.
func bindCreate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, payloadError(err))
		return false
	}
	return true
}

func payloadError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return appErrors.Invalid(typeErr.Field, typeErr.Field+" must be "+jsonKind(typeErr.Type))
	}
	return appErrors.Wrap(err, appErrors.ErrInvalidPayload, "")
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "of another type"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	default:
		return "of type " + t.Kind().String()
	}
}

func bindUpdates(c *gin.Context) (map[string]interface{}, bool) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidPayload, ""))
		return nil, false
	}
	return updates, true
}

func sendExport(c *gin.Context, exports exportRenderer, entity string, data export.Dataset) {
	file, err := exports.Render(entity, c.Query("format"), data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
