package handler

import (
	"context"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/availability"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/service"
	appErrors "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/errors"
)

type fakeSlots struct {
	barber      []models.Slot
	public      []models.PublicSlot
	err         error
	lastQuery   service.SlotQuery
	lastPolicy  availability.Policy
	lastShow    bool
	barberCalls int
	publicCalls int
}

func (f *fakeSlots) BarberSlots(_ context.Context, q service.SlotQuery, policy availability.Policy) ([]models.Slot, error) {
	f.barberCalls++
	f.lastQuery, f.lastPolicy = q, policy
	return f.barber, f.err
}

func (f *fakeSlots) PublicSlots(_ context.Context, q service.SlotQuery, showBooked bool) ([]models.PublicSlot, error) {
	f.publicCalls++
	f.lastQuery, f.lastShow = q, showBooked
	return f.public, f.err
}

type fakeBookings struct {
	appt       *models.Appointment
	err        error
	lastActor  service.Actor
	lastBarber string
	lastSlug   string
	lastBook   models.BookAppointmentRequest
	lastPublic models.PublicBookingRequest
	lastFilter models.AppointmentFilter
	lastStatus models.UpdateAppointmentStatusRequest
	items      []models.Appointment
}

func (f *fakeBookings) Book(_ context.Context, actor service.Actor, barberID string, req models.BookAppointmentRequest) (*models.Appointment, error) {
	f.lastActor, f.lastBarber, f.lastBook = actor, barberID, req
	return f.appt, f.err
}

func (f *fakeBookings) PublicBook(_ context.Context, slug string, req models.PublicBookingRequest) (*models.Appointment, error) {
	f.lastSlug, f.lastPublic = slug, req
	return f.appt, f.err
}

func (f *fakeBookings) Get(_ context.Context, actor service.Actor, _ string) (*models.Appointment, error) {
	f.lastActor = actor
	return f.appt, f.err
}

func (f *fakeBookings) UpdateStatus(_ context.Context, actor service.Actor, _ string, req models.UpdateAppointmentStatusRequest) (*models.Appointment, error) {
	f.lastActor, f.lastStatus = actor, req
	return f.appt, f.err
}

func (f *fakeBookings) List(_ context.Context, filter models.AppointmentFilter) ([]models.Appointment, *models.Pagination, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.items, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: len(f.items)}, nil
}

type fakeCatalog struct {
	barbers map[string]*models.Barber
}

func (f *fakeCatalog) BarberBySlug(_ context.Context, slug string) (*models.Barber, error) {
	for _, b := range f.barbers {
		if b.Slug == slug {
			return b, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "barber not found")
}

func (f *fakeCatalog) Barber(_ context.Context, id string) (*models.Barber, error) {
	if b, ok := f.barbers[id]; ok {
		return b, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "barber not found")
}

func (f *fakeCatalog) PublicProfile(ctx context.Context, slug string) (*models.PublicBarberProfile, error) {
	b, err := f.BarberBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &models.PublicBarberProfile{Barber: *b, Services: []models.Service{}}, nil
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{barbers: map[string]*models.Barber{
		"barber-1": {ID: "barber-1", Slug: "ze", DisplayName: "Ze", Active: true},
	}}
}
