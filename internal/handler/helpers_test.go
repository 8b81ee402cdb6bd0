package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/middleware"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
)

type responseEnvelope struct {
	Data       json.RawMessage        `json:"data"`
	Error      *errorBody             `json:"error"`
	Meta       map[string]interface{} `json:"meta"`
	Pagination *models.Pagination     `json:"pagination"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestContext builds a gin context for a single handler call. body is
// encoded as JSON unless it is already a string.
func newTestContext(method, target string, body interface{}, claims *models.JWTClaims, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var env responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func barberParams(id string) gin.Params {
	return gin.Params{{Key: middleware.BarberParam, Value: id}}
}

var (
	barberClaims = &models.JWTClaims{UserID: "barber-1", Role: models.RoleBarber, FullName: "Ze"}
	clientClaims = &models.JWTClaims{UserID: "client-1", Role: models.RoleClient, FullName: "Ana"}
	adminClaims  = &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin}
)
