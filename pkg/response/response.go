package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ssis-api/internal/models"
	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope represents the common response contract.
type Envelope struct {
	Status  string                 `json:"status"`
	Data    interface{}            `json:"data,omitempty"`
	Meta    *models.ListMeta       `json:"meta,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}) {
	noStore(c)
	c.JSON(status, Envelope{Status: StatusSuccess, Data: data})
}

// List sends a page of rows with its listing metadata.
func List(c *gin.Context, data interface{}, meta models.ListMeta) {
	noStore(c)
	c.JSON(http.StatusOK, Envelope{Status: StatusSuccess, Data: data, Meta: &meta})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error sends an error response carrying the reason code.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	noStore(c)
	c.JSON(appErr.Status, Envelope{
		Status:  StatusError,
		Error:   appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

// Attachment streams a rendered file download.
func Attachment(c *gin.Context, filename, contentType string, body []byte) {
	noStore(c)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}
