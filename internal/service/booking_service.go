package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/availability"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/repository"
	appErrors "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/errors"
)

// Booking channels, used as metric labels.
const (
	ChannelBarber = "barber"
	ChannelClient = "client"
	ChannelPublic = "public"
)

// BookingTx is the part of *sqlx.Tx the booking flow needs.
type BookingTx interface {
	sqlx.ExtContext
	Commit() error
	Rollback() error
}

type txProvider interface {
	BeginBookingTx(ctx context.Context) (BookingTx, error)
}

// SQLTxProvider opens booking transactions on a sqlx handle.
type SQLTxProvider struct {
	db *sqlx.DB
}

// NewSQLTxProvider wraps db.
func NewSQLTxProvider(db *sqlx.DB) *SQLTxProvider {
	return &SQLTxProvider{db: db}
}

// BeginBookingTx starts a READ COMMITTED transaction so every statement
// after the advisory lock sees rows committed by the previous lock holder.
func (p *SQLTxProvider) BeginBookingTx(ctx context.Context) (BookingTx, error) {
	return p.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

type appointmentStore interface {
	appointmentReader
	LockBarberDay(ctx context.Context, exec sqlx.ExecerContext, barberID, date string) error
	CreateWithTx(ctx context.Context, exec sqlx.ExtContext, appt *models.Appointment) error
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, int, error)
}

type slotOffer interface {
	Offered(ctx context.Context, q SlotQuery, start availability.Clock) (*models.Service, availability.Slot, error)
}

type barberResolver interface {
	BarberBySlug(ctx context.Context, slug string) (*models.Barber, error)
}

type bookingNotifier interface {
	BookingConfirmed(appt *models.Appointment)
	BookingConflict(barberID, date, startTime string)
	BookingCancelled(appt *models.Appointment)
}

// Actor is the authenticated caller of a booking operation.
type Actor struct {
	UserID string
	Role   models.UserRole
	Name   string
}

// BookingService books and manages appointments.
type BookingService struct {
	appointments appointmentStore
	tx           txProvider
	slots        slotOffer
	barbers      barberResolver
	notifier     bookingNotifier
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewBookingService constructs a BookingService. notifier and metrics may be nil.
func NewBookingService(appointments appointmentStore, tx txProvider, slots slotOffer, barbers barberResolver, notifier bookingNotifier, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		appointments: appointments,
		tx:           tx,
		slots:        slots,
		barbers:      barbers,
		notifier:     notifier,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
	}
}

// Book creates an appointment on behalf of an authenticated caller. Clients
// book for themselves; barbers and admins must name the client.
func (s *BookingService) Book(ctx context.Context, actor Actor, barberID string, req models.BookAppointmentRequest) (*models.Appointment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid booking payload")
	}

	appt := &models.Appointment{
		BarberID:        barberID,
		ServiceID:       req.ServiceID,
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
		AppointmentDate: req.Date,
		StartTime:       req.StartTime,
		Notes:           req.Notes,
	}
	channel := ChannelBarber
	if actor.Role == models.RoleClient {
		channel = ChannelClient
		clientID := actor.UserID
		appt.ClientID = &clientID
		if appt.ClientName == "" {
			appt.ClientName = actor.Name
		}
	}
	if appt.ClientName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "client_name is required")
	}
	return s.book(ctx, appt, channel)
}

// PublicBook creates an appointment from the public booking page.
func (s *BookingService) PublicBook(ctx context.Context, slug string, req models.PublicBookingRequest) (*models.Appointment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid booking payload")
	}
	barber, err := s.barbers.BarberBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	phone := req.ClientPhone
	appt := &models.Appointment{
		BarberID:        barber.ID,
		ServiceID:       req.ServiceID,
		ClientName:      req.ClientName,
		ClientPhone:     &phone,
		AppointmentDate: req.Date,
		StartTime:       req.StartTime,
		Notes:           req.Notes,
	}
	return s.book(ctx, appt, ChannelPublic)
}

// book checks the requested start against the generated slots, derives the
// end time from the service duration and commits.
func (s *BookingService) book(ctx context.Context, appt *models.Appointment, channel string) (*models.Appointment, error) {
	start, err := availability.ParseClock(appt.StartTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_time must use HH:MM")
	}

	svc, slot, err := s.slots.Offered(ctx, SlotQuery{BarberID: appt.BarberID, ServiceID: appt.ServiceID, Date: appt.AppointmentDate}, start)
	if err != nil {
		if appErrors.FromError(err).Code == appErrors.ErrValidation.Code {
			s.metrics.RecordBooking(BookingRejected, channel)
		}
		return nil, err
	}
	if slot.Booked {
		s.rejectTaken(appt.BarberID, appt.AppointmentDate, appt.StartTime, channel)
		return nil, appErrors.Clone(appErrors.ErrSlotTaken, "")
	}

	appt.ServiceName = svc.Name
	appt.EndTime = slot.End.String()
	return s.commit(ctx, appt, channel)
}

// ValidateAndCommit re-reads the barber's appointments for the day inside a
// transaction holding the barber-day advisory lock, rejects any overlap with
// ErrSlotTaken and inserts otherwise. The unique index on
// (barber_id, appointment_date, start_time) backs the check up.
func (s *BookingService) ValidateAndCommit(ctx context.Context, appt *models.Appointment) (*models.Appointment, error) {
	return s.commit(ctx, appt, ChannelBarber)
}

func (s *BookingService) commit(ctx context.Context, appt *models.Appointment, channel string) (result *models.Appointment, err error) {
	iv, err := appt.Interval()
	if err != nil || iv.Start >= iv.End {
		return nil, appErrors.Clone(appErrors.ErrValidation, "appointment needs a valid start and end time")
	}
	if _, err := availability.ParseDate(appt.AppointmentDate); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD")
	}
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	defer func() {
		if err != nil && !errors.Is(err, appErrors.ErrSlotTaken) {
			s.metrics.RecordBooking(BookingFailed, channel)
		}
	}()

	tx, err := s.tx.BeginBookingTx(ctx)
	if err != nil {
		return nil, appErrors.Persistence(err, "failed to begin transaction")
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err = s.appointments.LockBarberDay(ctx, tx, appt.BarberID, appt.AppointmentDate); err != nil {
		return nil, appErrors.Persistence(err, "failed to lock barber day")
	}

	existing, err := s.appointments.ListActiveByDate(ctx, tx, appt.BarberID, appt.AppointmentDate)
	if err != nil {
		return nil, appErrors.Persistence(err, "failed to load appointments")
	}
	busy, err := models.BusyIntervals(existing)
	if err != nil {
		return nil, appErrors.Persistence(err, "stored appointment is malformed")
	}
	if availability.ConflictsAny(iv.Start, iv.End, busy) {
		s.rejectTaken(appt.BarberID, appt.AppointmentDate, appt.StartTime, channel)
		return nil, appErrors.Clone(appErrors.ErrSlotTaken, "")
	}

	if err = s.appointments.CreateWithTx(ctx, tx, appt); err != nil {
		if errors.Is(err, repository.ErrSlotConstraint) {
			s.rejectTaken(appt.BarberID, appt.AppointmentDate, appt.StartTime, channel)
			return nil, appErrors.Wrap(err, appErrors.ErrSlotTaken.Code, appErrors.ErrSlotTaken.Status, appErrors.ErrSlotTaken.Message)
		}
		return nil, appErrors.Persistence(err, "failed to save appointment")
	}

	if err = tx.Commit(); err != nil {
		return nil, appErrors.Persistence(err, "failed to commit appointment")
	}
	committed = true

	s.metrics.RecordBooking(BookingCommitted, channel)
	s.logger.Info("appointment booked",
		zap.String("appointment_id", appt.ID),
		zap.String("barber_id", appt.BarberID),
		zap.String("date", appt.AppointmentDate),
		zap.String("start", appt.StartTime),
		zap.String("end", appt.EndTime),
		zap.String("channel", channel))
	if s.notifier != nil {
		s.notifier.BookingConfirmed(appt)
	}
	return appt, nil
}

func (s *BookingService) rejectTaken(barberID, date, start, channel string) {
	s.metrics.RecordBooking(BookingSlotTaken, channel)
	s.logger.Info("slot already taken",
		zap.String("barber_id", barberID),
		zap.String("date", date),
		zap.String("start", start),
		zap.String("channel", channel))
	if s.notifier != nil {
		s.notifier.BookingConflict(barberID, date, start)
	}
}

// Get returns an appointment visible to the actor.
func (s *BookingService) Get(ctx context.Context, actor Actor, id string) (*models.Appointment, error) {
	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		}
		return nil, appErrors.Persistence(err, "failed to load appointment")
	}
	if !canSee(actor, appt) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
	}
	return appt, nil
}

// UpdateStatus closes a scheduled appointment. Clients may only cancel their
// own appointments. Cancelling frees the slot.
func (s *BookingService) UpdateStatus(ctx context.Context, actor Actor, id string, req models.UpdateAppointmentStatusRequest) (*models.Appointment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	appt, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleClient && req.Status != models.AppointmentCancelled {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "clients can only cancel appointments")
	}
	if !appt.Status.CanTransitionTo(req.Status) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "appointment is already "+string(appt.Status))
	}

	if err := s.appointments.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		}
		return nil, appErrors.Persistence(err, "failed to update appointment")
	}
	appt.Status = req.Status

	s.logger.Info("appointment status changed",
		zap.String("appointment_id", id),
		zap.String("status", string(req.Status)),
		zap.String("actor_id", actor.UserID))
	if req.Status == models.AppointmentCancelled && s.notifier != nil {
		s.notifier.BookingCancelled(appt)
	}
	return appt, nil
}

// List returns a page of appointments.
func (s *BookingService) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, *models.Pagination, error) {
	if filter.Date != "" {
		if _, err := availability.ParseDate(filter.Date); err != nil {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD")
		}
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 200 {
		filter.PageSize = 50
	}
	items, total, err := s.appointments.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Persistence(err, "failed to list appointments")
	}
	if items == nil {
		items = []models.Appointment{}
	}
	return items, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

func canSee(actor Actor, appt *models.Appointment) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleBarber:
		return appt.BarberID == actor.UserID
	case models.RoleClient:
		return appt.ClientID != nil && *appt.ClientID == actor.UserID
	default:
		return false
	}
}
