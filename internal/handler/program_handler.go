package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/querybuilder"
	"github.com/noah-isme/ssis-api/internal/service"
	"github.com/noah-isme/ssis-api/pkg/export"
	"github.com/noah-isme/ssis-api/pkg/response"
)

type programService interface {
	List(ctx context.Context, params querybuilder.Params) ([]models.Program, *models.ListMeta, error)
	Get(ctx context.Context, code string) (*models.Program, error)
	Create(ctx context.Context, req service.CreateProgramRequest) (*models.Program, error)
	Update(ctx context.Context, code string, updates map[string]interface{}) error
	Delete(ctx context.Context, code string) error
	ListStudents(ctx context.Context, code string, params querybuilder.Params) ([]models.Student, *models.ListMeta, error)
	Dataset(ctx context.Context, params querybuilder.Params) (export.Dataset, error)
}

// ProgramHandler exposes program endpoints.
type ProgramHandler struct {
	programs programService
	exports  exportRenderer
	pageSize int
}

// NewProgramHandler constructs ProgramHandler.
func NewProgramHandler(programs programService, exports exportRenderer, defaultPageSize int) *ProgramHandler {
	return &ProgramHandler{programs: programs, exports: exports, pageSize: defaultPageSize}
}

// List godoc
// @Summary List programs
// @Tags Programs
// @Produce json
// @Param search_term query string false "Substring to search for"
// @Param search_by query string false "Column to search"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "ASC or DESC"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /programs [get]
func (h *ProgramHandler) List(c *gin.Context) {
	params, err := listingParams(c, h.pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	programs, meta, err := h.programs.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, programs, *meta)
}

// Get godoc
// @Summary Get program
// @Tags Programs
// @Produce json
// @Param program_code path string true "Program code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /programs/{program_code} [get]
func (h *ProgramHandler) Get(c *gin.Context) {
	program, err := h.programs.Get(c.Request.Context(), c.Param("program_code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, program)
}

// Create godoc
// @Summary Create program
// @Tags Programs
// @Accept json
// @Produce json
// @Param payload body service.CreateProgramRequest true "Program payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /programs [post]
func (h *ProgramHandler) Create(c *gin.Context) {
	var req service.CreateProgramRequest
	if !bindCreate(c, &req) {
		return
	}
	program, err := h.programs.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"program_code": program.ProgramCode})
}

// Update godoc
// @Summary Update program
// @Description Only program_name and college_code can change.
// @Tags Programs
// @Accept json
// @Produce json
// @Param program_code path string true "Program code"
// @Param payload body map[string]interface{} true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /programs/{program_code} [put]
func (h *ProgramHandler) Update(c *gin.Context) {
	updates, ok := bindUpdates(c)
	if !ok {
		return
	}
	code := c.Param("program_code")
	if err := h.programs.Update(c.Request.Context(), code, updates); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"program_code": code})
}

// Delete godoc
// @Summary Delete program
// @Tags Programs
// @Produce json
// @Param program_code path string true "Program code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /programs/{program_code} [delete]
func (h *ProgramHandler) Delete(c *gin.Context) {
	code := c.Param("program_code")
	if err := h.programs.Delete(c.Request.Context(), code); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"program_code": code})
}

// Students godoc
// @Summary List the students enrolled in a program
// @Tags Programs
// @Produce json
// @Param program_code path string true "Program code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /programs/{program_code}/students [get]
func (h *ProgramHandler) Students(c *gin.Context) {
	params, err := listingParams(c, h.pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	students, meta, err := h.programs.ListStudents(c.Request.Context(), c.Param("program_code"), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, students, *meta)
}

// Export godoc
// @Summary Export programs
// @Tags Programs
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /programs/export [get]
func (h *ProgramHandler) Export(c *gin.Context) {
	params, err := listingParams(c, h.pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	data, err := h.programs.Dataset(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	sendExport(c, h.exports, "programs", data)
}
