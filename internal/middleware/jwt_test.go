package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ssis-api/internal/models"
	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
)

type validatorStub struct {
	seen string
}

func (v *validatorStub) ValidateToken(token string) (*models.JWTClaims, error) {
	v.seen = token
	if token != "good" {
		return nil, appErrors.ErrUnauthorized
	}
	return &models.JWTClaims{UserID: "user-1"}, nil
}

func newJWTRouter(v TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", JWT(v, "access_token_cookie"), func(c *gin.Context) {
		claims, _ := c.Get(ContextUserKey)
		c.String(http.StatusOK, claims.(*models.JWTClaims).UserID)
	})
	return r
}

func TestJWTBearerHeader(t *testing.T) {
	stub := &validatorStub{}
	r := newJWTRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
	assert.Equal(t, "good", stub.seen)
}

func TestJWTCookieFallback(t *testing.T) {
	r := newJWTRouter(&validatorStub{})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "access_token_cookie", Value: "good"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestJWTRejects(t *testing.T) {
	cases := map[string]func(*http.Request){
		"missing":       func(*http.Request) {},
		"wrong scheme":  func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") },
		"empty bearer":  func(r *http.Request) { r.Header.Set("Authorization", "Bearer ") },
		"invalid token": func(r *http.Request) { r.Header.Set("Authorization", "Bearer bad") },
		"other cookie":  func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "session", Value: "good"}) },
	}

	for name, prepare := range cases {
		t.Run(name, func(t *testing.T) {
			r := newJWTRouter(&validatorStub{})
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			prepare(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"error":"unauthorized"`)
		})
	}
}
