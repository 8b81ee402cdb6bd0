package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	"github.com/Diogo19832005/barber-bliss-55-sub000/pkg/jobs"
)

type jobQueue interface {
	Enqueue(job jobs.Job) error
}

// NotificationService turns booking events into queued jobs. Enqueue
// failures are logged and never fail the booking.
type NotificationService struct {
	queue  jobQueue
	logger *zap.Logger
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(queue jobQueue, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{queue: queue, logger: logger}
}

// BookingConfirmed queues the confirmation for a committed appointment.
func (s *NotificationService) BookingConfirmed(appt *models.Appointment) {
	s.enqueue(fromAppointment(models.EventBookingConfirmed, appt))
}

// BookingConflict queues a notice that a requested start was already taken.
func (s *NotificationService) BookingConflict(barberID, date, startTime string) {
	s.enqueue(models.BookingNotification{
		Event:     models.EventBookingConflict,
		BarberID:  barberID,
		Date:      date,
		StartTime: startTime,
	})
}

// BookingCancelled queues the cancellation notice.
func (s *NotificationService) BookingCancelled(appt *models.Appointment) {
	s.enqueue(fromAppointment(models.EventBookingCancelled, appt))
}

func (s *NotificationService) enqueue(n models.BookingNotification) {
	if s == nil || s.queue == nil {
		return
	}
	job := jobs.Job{ID: uuid.NewString(), Type: n.Event, Payload: n}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warn("notification dropped",
			zap.String("event", n.Event),
			zap.String("barber_id", n.BarberID),
			zap.Error(err))
	}
}

func fromAppointment(event string, appt *models.Appointment) models.BookingNotification {
	return models.BookingNotification{
		Event:         event,
		AppointmentID: appt.ID,
		BarberID:      appt.BarberID,
		Date:          appt.AppointmentDate,
		StartTime:     appt.StartTime,
		ClientName:    appt.ClientName,
		ClientPhone:   appt.ClientPhone,
	}
}

// NotificationSink delivers notification jobs. Delivery is a structured log
// line; a messaging integration plugs in here.
func NotificationSink(logger *zap.Logger) jobs.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, job jobs.Job) error {
		n, ok := job.Payload.(models.BookingNotification)
		if !ok {
			return fmt.Errorf("job %s: unexpected payload %T", job.ID, job.Payload)
		}
		fields := []zap.Field{
			zap.String("job_id", job.ID),
			zap.String("event", n.Event),
			zap.String("barber_id", n.BarberID),
			zap.String("date", n.Date),
			zap.String("start", n.StartTime),
			zap.Int("attempt", job.Attempt),
		}
		if n.AppointmentID != "" {
			fields = append(fields, zap.String("appointment_id", n.AppointmentID))
		}
		if n.ClientName != "" {
			fields = append(fields, zap.String("client", n.ClientName))
		}
		logger.Info("booking notification", fields...)
		return nil
	}
}
