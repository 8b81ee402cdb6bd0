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

type scheduleService interface {
	GetWeek(ctx context.Context, barberID string) ([]models.WorkingSchedule, error)
	ReplaceWeek(ctx context.Context, barberID string, req models.ReplaceScheduleRequest) ([]models.WorkingSchedule, error)
}

// ScheduleHandler manages a barber's weekly working hours.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(svc scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// Get godoc
// @Summary Weekly schedule
// @Tags Schedules
// @Produce json
// @Param barberId path string true "Barber ID"
// @Success 200 {object} response.Envelope
// @Router /barbers/{barberId}/schedule [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	days, err := h.service.GetWeek(c.Request.Context(), c.Param(middleware.BarberParam))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, days)
}

// Replace godoc
// @Summary Replace weekly schedule
// @Description Replaces every stored weekday of the barber in one transaction.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param barberId path string true "Barber ID"
// @Param payload body models.ReplaceScheduleRequest true "Week payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /barbers/{barberId}/schedule [put]
func (h *ScheduleHandler) Replace(c *gin.Context) {
	var req models.ReplaceScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}
	days, err := h.service.ReplaceWeek(c.Request.Context(), c.Param(middleware.BarberParam), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, days)
}
