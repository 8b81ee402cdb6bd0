package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
)

// ErrSlotConstraint is returned when the insert trips the unique index on
// (barber_id, appointment_date, start_time).
var ErrSlotConstraint = errors.New("appointment start already taken")

const (
	uniqueViolation      = "23505"
	slotUniqueConstraint = "appointments_barber_date_start_key"
)

const appointmentColumns = `a.id, a.barber_id, a.service_id, a.client_id, a.client_name, a.client_phone,
	to_char(a.appointment_date, 'YYYY-MM-DD') AS appointment_date,
	to_char(a.start_time, 'HH24:MI') AS start_time,
	to_char(a.end_time, 'HH24:MI') AS end_time,
	a.status, a.notes, a.created_at, a.updated_at`

// AppointmentRepository persists appointments.
type AppointmentRepository struct {
	db *sqlx.DB
}

// NewAppointmentRepository constructs an AppointmentRepository.
func NewAppointmentRepository(db *sqlx.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// DB exposes the handle the booking transaction provider opens transactions on.
func (r *AppointmentRepository) DB() *sqlx.DB {
	return r.db
}

// ListActiveByDate returns the non-cancelled appointments of a barber-day
// ordered by start time. Pass a transaction to read under its lock.
func (r *AppointmentRepository) ListActiveByDate(ctx context.Context, q sqlx.QueryerContext, barberID, date string) ([]models.Appointment, error) {
	if q == nil {
		q = r.db
	}
	query := `SELECT ` + appointmentColumns + ` FROM appointments a
		WHERE a.barber_id = $1 AND a.appointment_date = $2 AND a.status <> 'cancelled'
		ORDER BY a.start_time`
	var appointments []models.Appointment
	if err := sqlx.SelectContext(ctx, q, &appointments, query, barberID, date); err != nil {
		return nil, fmt.Errorf("list active appointments: %w", err)
	}
	return appointments, nil
}

// LockBarberDay takes a transaction-scoped advisory lock so concurrent
// bookings for the same barber and date run one after another.
func (r *AppointmentRepository) LockBarberDay(ctx context.Context, exec sqlx.ExecerContext, barberID, date string) error {
	if _, err := exec.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, barberID+"|"+date); err != nil {
		return fmt.Errorf("lock barber day: %w", err)
	}
	return nil
}

// CreateWithTx inserts the appointment using the provided executor.
func (r *AppointmentRepository) CreateWithTx(ctx context.Context, exec sqlx.ExtContext, appt *models.Appointment) error {
	now := time.Now().UTC()
	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	if appt.Status == "" {
		appt.Status = models.AppointmentScheduled
	}
	appt.CreatedAt = now
	appt.UpdatedAt = now

	const query = `INSERT INTO appointments (id, barber_id, service_id, client_id, client_name, client_phone,
		appointment_date, start_time, end_time, status, notes, created_at, updated_at)
		VALUES (:id, :barber_id, :service_id, :client_id, :client_name, :client_phone,
		:appointment_date, :start_time, :end_time, :status, :notes, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, exec, query, appt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation && pqErr.Constraint == slotUniqueConstraint {
			return ErrSlotConstraint
		}
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

// FindByID returns an appointment with its service name.
func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `, COALESCE(s.name, '') AS service_name
		FROM appointments a LEFT JOIN services s ON s.id = a.service_id WHERE a.id = $1`
	var appt models.Appointment
	if err := r.db.GetContext(ctx, &appt, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return &appt, nil
}

// UpdateStatus moves an appointment to a new status.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	const query = `UPDATE appointments SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	return expectAffected(res)
}

// List returns appointments matching the filter with the total count.
func (r *AppointmentRepository) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, int, error) {
	base := `FROM appointments a LEFT JOIN services s ON s.id = a.service_id WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.BarberID != "" {
		conditions = append(conditions, fmt.Sprintf("a.barber_id = $%d", len(args)+1))
		args = append(args, filter.BarberID)
	}
	if filter.ClientID != "" {
		conditions = append(conditions, fmt.Sprintf("a.client_id = $%d", len(args)+1))
		args = append(args, filter.ClientID)
	}
	if filter.Date != "" {
		conditions = append(conditions, fmt.Sprintf("a.appointment_date = $%d", len(args)+1))
		args = append(args, filter.Date)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s, COALESCE(s.name, '') AS service_name %s
		ORDER BY a.appointment_date, a.start_time LIMIT $%d OFFSET $%d`, appointmentColumns, base, len(args)+1, len(args)+2)
	args = append(args, size, (page-1)*size)

	var appointments []models.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, total, nil
}
