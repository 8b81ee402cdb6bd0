package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/service"
	appErrors "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/errors"
	"github.com/Diogo19832005/barber-bliss-55-sub000/pkg/response"
)

type publicCatalog interface {
	BarberBySlug(ctx context.Context, slug string) (*models.Barber, error)
	PublicProfile(ctx context.Context, slug string) (*models.PublicBarberProfile, error)
}

type publicBooker interface {
	PublicBook(ctx context.Context, slug string, req models.PublicBookingRequest) (*models.Appointment, error)
}

// PublicHandler serves the unauthenticated booking page of a barber.
type PublicHandler struct {
	catalog  publicCatalog
	slots    slotService
	bookings publicBooker
}

// NewPublicHandler constructs handler.
func NewPublicHandler(catalog publicCatalog, slots slotService, bookings publicBooker) *PublicHandler {
	return &PublicHandler{catalog: catalog, slots: slots, bookings: bookings}
}

// Profile godoc
// @Summary Public barber profile
// @Tags Public
// @Produce json
// @Param slug path string true "Barber slug"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /public/barbers/{slug} [get]
func (h *PublicHandler) Profile(c *gin.Context) {
	profile, err := h.catalog.PublicProfile(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, profile)
}

// Slots godoc
// @Summary Public slots
// @Description Past slots are never listed. Booked slots are listed with is_booked=true only when show_booked=true.
// @Tags Public
// @Produce json
// @Param slug path string true "Barber slug"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param service_id query string true "Service ID"
// @Param show_booked query bool false "List booked slots"
// @Success 200 {object} response.Envelope
// @Router /public/barbers/{slug}/slots [get]
func (h *PublicHandler) Slots(c *gin.Context) {
	barber, err := h.catalog.BarberBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	q, err := slotQuery(c, barber.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	slots, err := h.slots.PublicSlots(c.Request.Context(), q, c.Query("show_booked") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, slots)
}

// Book godoc
// @Summary Public booking
// @Description Books without an account. A 409 SLOT_TAKEN response carries meta.available_slots.
// @Tags Public
// @Accept json
// @Produce json
// @Param slug path string true "Barber slug"
// @Param payload body models.PublicBookingRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /public/barbers/{slug}/appointments [post]
func (h *PublicHandler) Book(c *gin.Context) {
	var req models.PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}
	slug := c.Param("slug")
	appt, err := h.bookings.PublicBook(c.Request.Context(), slug, req)
	if err != nil {
		respondBookingError(c, err, func() (interface{}, error) {
			barber, err := h.catalog.BarberBySlug(c.Request.Context(), slug)
			if err != nil {
				return nil, err
			}
			return h.slots.PublicSlots(c.Request.Context(), service.SlotQuery{BarberID: barber.ID, ServiceID: req.ServiceID, Date: req.Date}, false)
		})
		return
	}
	response.Created(c, publicConfirmation(appt))
}

// publicConfirmation strips what an anonymous caller should not see echoed back.
func publicConfirmation(appt *models.Appointment) gin.H {
	return gin.H{
		"id":               appt.ID,
		"service_name":     appt.ServiceName,
		"appointment_date": appt.AppointmentDate,
		"start_time":       appt.StartTime,
		"end_time":         appt.EndTime,
		"status":           appt.Status,
	}
}
