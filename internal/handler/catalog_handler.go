package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/middleware"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	appErrors "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/errors"
	"github.com/Diogo19832005/barber-bliss-55-sub000/pkg/response"
)

type catalogService interface {
	ListServices(ctx context.Context, barberID string, activeOnly bool) ([]models.Service, error)
	CreateService(ctx context.Context, barberID string, req models.ServiceRequest) (*models.Service, error)
	UpdateService(ctx context.Context, barberID, id string, req models.ServiceRequest) (*models.Service, error)
	DeactivateService(ctx context.Context, barberID, id string) error
}

// CatalogHandler exposes the service catalogue of a barber.
type CatalogHandler struct {
	service catalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(svc catalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// List godoc
// @Summary List services
// @Description Clients only receive active services; the owning barber may pass include_inactive=true.
// @Tags Services
// @Produce json
// @Param barberId path string true "Barber ID"
// @Param include_inactive query bool false "Include deactivated services"
// @Success 200 {object} response.Envelope
// @Router /barbers/{barberId}/services [get]
func (h *CatalogHandler) List(c *gin.Context) {
	barberID := c.Param(middleware.BarberParam)
	activeOnly := true
	if c.Query("include_inactive") == "true" && ownsBarber(claimsFromContext(c), barberID) {
		activeOnly = false
	}
	services, err := h.service.ListServices(c.Request.Context(), barberID, activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, services)
}

// Create godoc
// @Summary Create service
// @Tags Services
// @Accept json
// @Produce json
// @Param barberId path string true "Barber ID"
// @Param payload body models.ServiceRequest true "Service payload"
// @Success 201 {object} response.Envelope
// @Router /barbers/{barberId}/services [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid service payload"))
		return
	}
	svc, err := h.service.CreateService(c.Request.Context(), c.Param(middleware.BarberParam), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, svc)
}

// Update godoc
// @Summary Update service
// @Tags Services
// @Accept json
// @Produce json
// @Param barberId path string true "Barber ID"
// @Param id path string true "Service ID"
// @Param payload body models.ServiceRequest true "Service payload"
// @Success 200 {object} response.Envelope
// @Router /barbers/{barberId}/services/{id} [put]
func (h *CatalogHandler) Update(c *gin.Context) {
	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid service payload"))
		return
	}
	svc, err := h.service.UpdateService(c.Request.Context(), c.Param(middleware.BarberParam), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, svc)
}

// Deactivate godoc
// @Summary Deactivate service
// @Tags Services
// @Param barberId path string true "Barber ID"
// @Param id path string true "Service ID"
// @Success 204
// @Router /barbers/{barberId}/services/{id} [delete]
func (h *CatalogHandler) Deactivate(c *gin.Context) {
	if err := h.service.DeactivateService(c.Request.Context(), c.Param(middleware.BarberParam), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
