package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/availability"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	appErrors "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/errors"
)

// Slot listing views, used as metric labels.
const (
	ViewBarber = "barber"
	ViewClient = "client"
	ViewPublic = "public"
)

type appointmentReader interface {
	ListActiveByDate(ctx context.Context, q sqlx.QueryerContext, barberID, date string) ([]models.Appointment, error)
}

type scheduleProvider interface {
	ForDay(ctx context.Context, barberID string, day time.Weekday) (*availability.Schedule, error)
}

type serviceProvider interface {
	BookableService(ctx context.Context, barberID, id string) (*models.Service, error)
}

// SlotQuery identifies a slot listing.
type SlotQuery struct {
	BarberID  string
	ServiceID string
	Date      string
}

// SlotService loads schedules, services and appointments and runs the
// availability generator over them.
type SlotService struct {
	schedules    scheduleProvider
	services     serviceProvider
	appointments appointmentReader
	metrics      *MetricsService
	logger       *zap.Logger
	now          func() time.Time
	maxDaysAhead int
}

// NewSlotService constructs a SlotService. now defaults to time.Now and a
// non-positive maxDaysAhead disables the booking window.
func NewSlotService(schedules scheduleProvider, services serviceProvider, appointments appointmentReader, metrics *MetricsService, logger *zap.Logger, now func() time.Time, maxDaysAhead int) *SlotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &SlotService{
		schedules:    schedules,
		services:     services,
		appointments: appointments,
		metrics:      metrics,
		logger:       logger,
		now:          now,
		maxDaysAhead: maxDaysAhead,
	}
}

// prepared is a generator request plus whether the date can be booked at all.
type prepared struct {
	req        availability.Request
	service    *models.Service
	bookable   bool
	noSchedule bool
}

// prepare gathers the generator inputs. Appointments are always read from
// the database, never from cache.
func (s *SlotService) prepare(ctx context.Context, q SlotQuery, policy availability.Policy) (*prepared, error) {
	date, err := availability.ParseDate(q.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD")
	}
	svc, err := s.services.BookableService(ctx, q.BarberID, q.ServiceID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	p := &prepared{
		service:  svc,
		bookable: s.maxDaysAhead <= 0 || availability.DaysAfter(date, now) <= s.maxDaysAhead,
		req: availability.Request{
			Date:            date,
			DurationMinutes: svc.DurationMinutes,
			Now:             now,
			Policy:          policy,
		},
	}

	sched, err := s.schedules.ForDay(ctx, q.BarberID, date.Weekday())
	if err != nil {
		return nil, err
	}
	if sched == nil || !sched.Active {
		p.noSchedule = true
		return p, nil
	}
	p.req.Schedule = sched

	readStart := time.Now()
	appointments, err := s.appointments.ListActiveByDate(ctx, nil, q.BarberID, q.Date)
	s.metrics.ObserveDBQuery("appointments_by_day", time.Since(readStart))
	if err != nil {
		return nil, appErrors.Persistence(err, "failed to load appointments")
	}
	busy, err := models.BusyIntervals(appointments)
	if err != nil {
		return nil, appErrors.Persistence(err, "stored appointment is malformed")
	}
	p.req.Busy = busy
	return p, nil
}

func (s *SlotService) generate(ctx context.Context, q SlotQuery, policy availability.Policy, view string) ([]availability.Slot, error) {
	start := time.Now()
	p, err := s.prepare(ctx, q, policy)
	if err != nil {
		return nil, err
	}
	if p.noSchedule || !p.bookable {
		s.metrics.ObserveSlotGeneration(view, 0, time.Since(start))
		return []availability.Slot{}, nil
	}

	slots := availability.Generate(p.req)
	available := 0
	for _, slot := range slots {
		if slot.Available {
			available++
		}
	}
	s.metrics.ObserveSlotGeneration(view, available, time.Since(start))
	s.logger.Debug("slots generated",
		zap.String("barber_id", q.BarberID),
		zap.String("date", q.Date),
		zap.String("view", view),
		zap.Int("slots", len(slots)),
		zap.Int("available", available))
	return slots, nil
}

// BarberSlots lists slots for an authenticated caller. Barbers see
// unavailable slots greyed out; clients only see what they can book.
func (s *SlotService) BarberSlots(ctx context.Context, q SlotQuery, policy availability.Policy) ([]models.Slot, error) {
	view := ViewBarber
	if policy == availability.HideUnavailable {
		view = ViewClient
	}
	slots, err := s.generate(ctx, q, policy, view)
	if err != nil {
		return nil, err
	}
	out := make([]models.Slot, 0, len(slots))
	for _, slot := range slots {
		out = append(out, models.Slot{Time: slot.Start.String(), Available: slot.Available})
	}
	return out, nil
}

// PublicSlots lists slots for the public booking page. Past slots are always
// omitted; booked slots are included, flagged IsBooked, only when
// showBooked is set.
func (s *SlotService) PublicSlots(ctx context.Context, q SlotQuery, showBooked bool) ([]models.PublicSlot, error) {
	policy := availability.HideUnavailable
	if showBooked {
		policy = availability.ShowGreyedOut
	}
	slots, err := s.generate(ctx, q, policy, ViewPublic)
	if err != nil {
		return nil, err
	}
	out := make([]models.PublicSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.Past {
			continue
		}
		out = append(out, models.PublicSlot{Time: slot.Start.String(), Available: slot.Available, IsBooked: slot.Booked})
	}
	return out, nil
}

// Offered resolves the slot a booking asks for against what the generator
// would list, returning the service and the slot.
func (s *SlotService) Offered(ctx context.Context, q SlotQuery, start availability.Clock) (*models.Service, availability.Slot, error) {
	p, err := s.prepare(ctx, q, availability.ShowGreyedOut)
	if err != nil {
		return nil, availability.Slot{}, err
	}
	if !p.bookable {
		return nil, availability.Slot{}, appErrors.Clone(appErrors.ErrValidation, "date is beyond the booking window")
	}
	if p.noSchedule {
		return nil, availability.Slot{}, appErrors.Clone(appErrors.ErrValidation, "barber does not work on this date")
	}
	slot, ok := availability.Lookup(p.req, start)
	if !ok {
		return nil, availability.Slot{}, appErrors.Clone(appErrors.ErrValidation, "start time is not an offered slot")
	}
	if slot.Past {
		return nil, availability.Slot{}, appErrors.Clone(appErrors.ErrValidation, "start time is in the past")
	}
	return p.service, slot, nil
}
