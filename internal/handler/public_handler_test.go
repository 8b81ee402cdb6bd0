package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	appErrors "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/errors"
)

func slugParams(slug string) gin.Params {
	return gin.Params{{Key: "slug", Value: slug}}
}

func TestPublicHandlerProfile(t *testing.T) {
	h := NewPublicHandler(newFakeCatalog(), &fakeSlots{}, &fakeBookings{})

	c, rec := newTestContext(http.MethodGet, "/public/barbers/ze", nil, nil, slugParams("ze"))
	h.Profile(c)
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/public/barbers/nobody", nil, nil, slugParams("nobody"))
	h.Profile(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublicHandlerSlotsResolvesSlug(t *testing.T) {
	slots := &fakeSlots{public: []models.PublicSlot{{Time: "10:00", Available: false, IsBooked: true}}}
	h := NewPublicHandler(newFakeCatalog(), slots, &fakeBookings{})

	c, rec := newTestContext(http.MethodGet, "/public/barbers/ze/slots?date=2024-06-03&service_id=svc-30&show_booked=true", nil, nil, slugParams("ze"))
	h.Slots(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "barber-1", slots.lastQuery.BarberID)
	assert.True(t, slots.lastShow)

	var got []models.PublicSlot
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &got))
	assert.Equal(t, slots.public, got)
}

func TestPublicHandlerSlotsDefaultsToHidingBooked(t *testing.T) {
	slots := &fakeSlots{}
	h := NewPublicHandler(newFakeCatalog(), slots, &fakeBookings{})

	c, rec := newTestContext(http.MethodGet, "/public/barbers/ze/slots?date=2024-06-03&service_id=svc-30", nil, nil, slugParams("ze"))
	h.Slots(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, slots.lastShow)

	c, rec = newTestContext(http.MethodGet, "/public/barbers/ze/slots?date=2024-06-03", nil, nil, slugParams("ze"))
	h.Slots(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublicHandlerBookReturnsConfirmation(t *testing.T) {
	phone := "11999990000"
	bookings := &fakeBookings{appt: &models.Appointment{
		ID: "appt-1", ClientName: "Ana", ClientPhone: &phone, ServiceName: "Corte",
		AppointmentDate: "2024-06-03", StartTime: "10:00", EndTime: "10:30", Status: models.AppointmentScheduled,
	}}
	h := NewPublicHandler(newFakeCatalog(), &fakeSlots{}, bookings)

	payload := models.PublicBookingRequest{ServiceID: "svc-30", Date: "2024-06-03", StartTime: "10:00", ClientName: "Ana", ClientPhone: phone}
	c, rec := newTestContext(http.MethodPost, "/public/barbers/ze/appointments", payload, nil, slugParams("ze"))
	h.Book(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "ze", bookings.lastSlug)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &got))
	assert.Equal(t, "10:30", got["end_time"])
	assert.NotContains(t, got, "client_phone")
}

func TestPublicHandlerBookConflictListsPublicSlots(t *testing.T) {
	bookings := &fakeBookings{err: appErrors.Clone(appErrors.ErrSlotTaken, "")}
	slots := &fakeSlots{public: []models.PublicSlot{{Time: "11:00", Available: true}}}
	h := NewPublicHandler(newFakeCatalog(), slots, bookings)

	payload := models.PublicBookingRequest{ServiceID: "svc-30", Date: "2024-06-03", StartTime: "10:00", ClientName: "Ana", ClientPhone: "11999990000"}
	c, rec := newTestContext(http.MethodPost, "/public/barbers/ze/appointments", payload, nil, slugParams("ze"))
	h.Book(c)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decode(t, rec).Meta, "available_slots")
	assert.Equal(t, "barber-1", slots.lastQuery.BarberID)
	assert.False(t, slots.lastShow)
	assert.Equal(t, 1, slots.publicCalls)
}
