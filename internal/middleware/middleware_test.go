package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/service"
	appErrors "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/errors"
)

type stubValidator map[string]*models.JWTClaims

func (s stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
}

var tokens = stubValidator{
	"barber-1": {UserID: "barber-1", Role: models.RoleBarber},
	"barber-2": {UserID: "barber-2", Role: models.RoleBarber},
	"admin":    {UserID: "admin-1", Role: models.RoleAdmin},
	"client":   {UserID: "client-1", Role: models.RoleClient},
}

func serve(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ok := func(c *gin.Context) {
		claims, found := Claims(c)
		if found {
			c.String(http.StatusOK, claims.UserID)
			return
		}
		c.String(http.StatusOK, "anonymous")
	}
	r.GET("/barbers/:barberId/schedule", JWT(tokens), RBAC(string(models.RoleAdmin), Self), ok)
	r.GET("/public/ping", OptionalJWT(tokens), ok)
	return r
}

func TestJWTRequiresBearerToken(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/barbers/barber-1/schedule", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/barbers/barber-1/schedule", "forged").Code)

	req := httptest.NewRequest(http.MethodGet, "/barbers/barber-1/schedule", nil)
	req.Header.Set("Authorization", "Basic barber-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "UNAUTHORIZED"))
}

func TestRBACSelfMatchesBarberParam(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/barbers/barber-1/schedule", "barber-1").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/barbers/barber-1/schedule", "barber-2").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/barbers/client-1/schedule", "client").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/barbers/barber-1/schedule", "admin").Code)
}

func TestOptionalJWT(t *testing.T) {
	r := newRouter()

	assert.Equal(t, "anonymous", serve(r, http.MethodGet, "/public/ping", "").Body.String())
	assert.Equal(t, "anonymous", serve(r, http.MethodGet, "/public/ping", "forged").Body.String())
	assert.Equal(t, "client-1", serve(r, http.MethodGet, "/public/ping", "client").Body.String())
}

func TestMetricsMiddlewareLabelsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	r := gin.New()
	r.Use(Metrics(metrics))
	r.GET("/barbers/:barberId/slots", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/barbers/abc/slots", "")
	serve(r, http.MethodGet, "/nope", "")

	w := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	assert.Contains(t, body, `path="/barbers/:barberId/slots"`)
	assert.Contains(t, body, `path="unmatched"`)
	assert.NotContains(t, body, "/barbers/abc/slots")
	assert.Equal(t, uint64(2), metrics.Snapshot().RequestsTotal)
}
