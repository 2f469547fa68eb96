package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ssis-api/internal/middleware"
	"github.com/noah-isme/ssis-api/internal/models"
	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
	"github.com/noah-isme/ssis-api/pkg/response"
)

// claimsFromContext returns the claims stored by the JWT middleware. Claims
// without a subject do not identify a caller and count as absent.
func claimsFromContext(c *gin.Context) (*models.JWTClaims, bool) {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok || claims == nil || claims.UserID == "" {
		return nil, false
	}
	return claims, true
}

// requireClaims writes 401 and reports false when the request carries no caller.
func requireClaims(c *gin.Context) (*models.JWTClaims, bool) {
	claims, ok := claimsFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
	}
	return claims, ok
}
