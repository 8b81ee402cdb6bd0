package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/middleware"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/service"
	appErrors "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/errors"
	"github.com/Diogo19832005/barber-bliss-55-sub000/pkg/response"
)

type bookingService interface {
	Book(ctx context.Context, actor service.Actor, barberID string, req models.BookAppointmentRequest) (*models.Appointment, error)
	Get(ctx context.Context, actor service.Actor, id string) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, actor service.Actor, id string, req models.UpdateAppointmentStatusRequest) (*models.Appointment, error)
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, *models.Pagination, error)
}

// AppointmentHandler serves authenticated booking endpoints.
type AppointmentHandler struct {
	bookings bookingService
	slots    slotService
}

// NewAppointmentHandler constructs handler.
func NewAppointmentHandler(bookings bookingService, slots slotService) *AppointmentHandler {
	return &AppointmentHandler{bookings: bookings, slots: slots}
}

// Book godoc
// @Summary Book appointment
// @Description Commits the appointment if the slot is still free. A 409 SLOT_TAKEN response carries meta.available_slots.
// @Tags Appointments
// @Accept json
// @Produce json
// @Param barberId path string true "Barber ID"
// @Param payload body models.BookAppointmentRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /barbers/{barberId}/appointments [post]
func (h *AppointmentHandler) Book(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req models.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}

	barberID := c.Param(middleware.BarberParam)
	appt, err := h.bookings.Book(c.Request.Context(), actor, barberID, req)
	if err != nil {
		respondBookingError(c, err, func() (interface{}, error) {
			q := service.SlotQuery{BarberID: barberID, ServiceID: req.ServiceID, Date: req.Date}
			return h.slots.BarberSlots(c.Request.Context(), q, slotPolicy(claimsFromContext(c), barberID))
		})
		return
	}
	response.Created(c, appt)
}

// List godoc
// @Summary Barber agenda
// @Tags Appointments
// @Produce json
// @Param barberId path string true "Barber ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param status query string false "Status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /barbers/{barberId}/appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	h.list(c, models.AppointmentFilter{BarberID: c.Param(middleware.BarberParam)})
}

// Mine godoc
// @Summary Own appointments
// @Description Appointments booked by the signed-in client.
// @Tags Appointments
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param status query string false "Status"
// @Success 200 {object} response.Envelope
// @Router /me/appointments [get]
func (h *AppointmentHandler) Mine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	h.list(c, models.AppointmentFilter{ClientID: claims.UserID})
}

func (h *AppointmentHandler) list(c *gin.Context, filter models.AppointmentFilter) {
	filter.Date = c.Query("date")
	filter.Status = models.AppointmentStatus(c.Query("status"))
	filter.Page = queryInt(c, "page", 1)
	filter.PageSize = queryInt(c, "limit", 50)

	items, pagination, err := h.bookings.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get appointment
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	appt, err := h.bookings.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, appt)
}

// UpdateStatus godoc
// @Summary Close appointment
// @Description Moves a scheduled appointment to completed, cancelled or no_show. Clients may only cancel.
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param payload body models.UpdateAppointmentStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req models.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}
	appt, err := h.bookings.UpdateStatus(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, appt)
}
