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

type studentService interface {
	List(ctx context.Context, params querybuilder.Params) ([]models.Student, *models.ListMeta, error)
	Get(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, req service.CreateStudentRequest) (*models.Student, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	Dataset(ctx context.Context, params querybuilder.Params) (export.Dataset, error)
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students studentService
	exports  exportRenderer
	pageSize int
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService, exports exportRenderer, defaultPageSize int) *StudentHandler {
	return &StudentHandler{students: students, exports: exports, pageSize: defaultPageSize}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param search_term query string false "Substring to search for"
// @Param search_by query string false "Column to search"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "ASC or DESC"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	params, err := listingParams(c, h.pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	students, meta, err := h.students.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, students, *meta)
}

// Get godoc
// @Summary Get student
// @Tags Students
// @Produce json
// @Param id_number path string true "Student ID number (YYYY-NNNN)"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id_number} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("id_number"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	if !bindCreate(c, &req) {
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id_number": student.IDNumber})
}

// Update godoc
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Param id_number path string true "Student ID number"
// @Param payload body map[string]interface{} true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id_number} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	updates, ok := bindUpdates(c)
	if !ok {
		return
	}
	id := c.Param("id_number")
	if err := h.students.Update(c.Request.Context(), id, updates); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id_number": id})
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Produce json
// @Param id_number path string true "Student ID number"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id_number} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	id := c.Param("id_number")
	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id_number": id})
}

// Export godoc
// @Summary Export students
// @Tags Students
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /students/export [get]
func (h *StudentHandler) Export(c *gin.Context) {
	params, err := listingParams(c, h.pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	data, err := h.students.Dataset(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	sendExport(c, h.exports, "students", data)
}
