package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/middleware"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	appErrors "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/errors"
)

type fakeCatalogService struct {
	activeOnly  bool
	created     models.ServiceRequest
	updatedID   string
	deactivated string
	err         error
}

func (f *fakeCatalogService) ListServices(_ context.Context, _ string, activeOnly bool) ([]models.Service, error) {
	f.activeOnly = activeOnly
	return []models.Service{}, f.err
}

func (f *fakeCatalogService) CreateService(_ context.Context, barberID string, req models.ServiceRequest) (*models.Service, error) {
	f.created = req
	return &models.Service{ID: "svc-new", BarberID: barberID, Name: req.Name, DurationMinutes: req.DurationMinutes}, f.err
}

func (f *fakeCatalogService) UpdateService(_ context.Context, barberID, id string, req models.ServiceRequest) (*models.Service, error) {
	f.updatedID = id
	if f.err != nil {
		return nil, f.err
	}
	return &models.Service{ID: id, BarberID: barberID, Name: req.Name}, nil
}

func (f *fakeCatalogService) DeactivateService(_ context.Context, _, id string) error {
	f.deactivated = id
	return f.err
}

func serviceParams(barberID, id string) gin.Params {
	return gin.Params{{Key: middleware.BarberParam, Value: barberID}, {Key: "id", Value: id}}
}

func TestCatalogHandlerListInactiveOnlyForOwner(t *testing.T) {
	svc := &fakeCatalogService{}
	h := NewCatalogHandler(svc)

	c, _ := newTestContext(http.MethodGet, "/barbers/barber-1/services?include_inactive=true", nil, barberClaims, barberParams("barber-1"))
	h.List(c)
	assert.False(t, svc.activeOnly)

	c, _ = newTestContext(http.MethodGet, "/barbers/barber-1/services?include_inactive=true", nil, clientClaims, barberParams("barber-1"))
	h.List(c)
	assert.True(t, svc.activeOnly)

	c, _ = newTestContext(http.MethodGet, "/barbers/barber-1/services", nil, barberClaims, barberParams("barber-1"))
	h.List(c)
	assert.True(t, svc.activeOnly)
}

func TestCatalogHandlerCreateUpdateDeactivate(t *testing.T) {
	svc := &fakeCatalogService{}
	h := NewCatalogHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/barbers/barber-1/services", gin.H{"name": "Corte", "duration_minutes": 30, "price": 40}, barberClaims, barberParams("barber-1"))
	h.Create(c)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 30, svc.created.DurationMinutes)

	c, rec = newTestContext(http.MethodPut, "/barbers/barber-1/services/svc-30", gin.H{"name": "Corte e barba", "duration_minutes": 45}, barberClaims, serviceParams("barber-1", "svc-30"))
	h.Update(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "svc-30", svc.updatedID)

	c, rec = newTestContext(http.MethodDelete, "/barbers/barber-1/services/svc-30", nil, barberClaims, serviceParams("barber-1", "svc-30"))
	h.Deactivate(c)
	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Equal(t, "svc-30", svc.deactivated)

	svc.err = appErrors.Clone(appErrors.ErrNotFound, "service not found")
	c, rec = newTestContext(http.MethodDelete, "/barbers/barber-1/services/svc-x", nil, barberClaims, serviceParams("barber-1", "svc-x"))
	h.Deactivate(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
