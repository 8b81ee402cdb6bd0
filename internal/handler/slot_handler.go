package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/availability"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/middleware"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/service"
	appErrors "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/errors"
	"github.com/Diogo19832005/barber-bliss-55-sub000/pkg/response"
)

type slotService interface {
	BarberSlots(ctx context.Context, q service.SlotQuery, policy availability.Policy) ([]models.Slot, error)
	PublicSlots(ctx context.Context, q service.SlotQuery, showBooked bool) ([]models.PublicSlot, error)
}

// SlotHandler lists bookable start times for signed-in users.
type SlotHandler struct {
	slots slotService
}

// NewSlotHandler constructs handler.
func NewSlotHandler(slots slotService) *SlotHandler {
	return &SlotHandler{slots: slots}
}

// List godoc
// @Summary Available slots
// @Description The owning barber and admins see booked and past slots greyed out. Clients only see bookable slots.
// @Tags Slots
// @Produce json
// @Param barberId path string true "Barber ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param service_id query string true "Service ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /barbers/{barberId}/slots [get]
func (h *SlotHandler) List(c *gin.Context) {
	barberID := c.Param(middleware.BarberParam)
	q, err := slotQuery(c, barberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	slots, err := h.slots.BarberSlots(c.Request.Context(), q, slotPolicy(claimsFromContext(c), barberID))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, slots)
}

func slotQuery(c *gin.Context, barberID string) (service.SlotQuery, error) {
	q := service.SlotQuery{BarberID: barberID, Date: c.Query("date"), ServiceID: c.Query("service_id")}
	if q.Date == "" || q.ServiceID == "" {
		return q, appErrors.Clone(appErrors.ErrValidation, "date and service_id are required")
	}
	return q, nil
}

// respondBookingError answers a failed booking. A taken slot also carries the
// refreshed slot list so the client can pick again without another request.
func respondBookingError(c *gin.Context, err error, refresh func() (interface{}, error)) {
	if !errors.Is(err, appErrors.ErrSlotTaken) || refresh == nil {
		response.Error(c, err)
		return
	}
	slots, refreshErr := refresh()
	if refreshErr != nil {
		response.Error(c, err)
		return
	}
	response.ErrorWithMeta(c, err, map[string]interface{}{"available_slots": slots})
}
