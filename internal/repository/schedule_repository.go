package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
)

const scheduleSelect = `SELECT id, barber_id, day_of_week,
	to_char(start_time, 'HH24:MI') AS start_time,
	to_char(end_time, 'HH24:MI') AS end_time,
	is_active, has_break,
	to_char(break_start, 'HH24:MI') AS break_start,
	to_char(break_end, 'HH24:MI') AS break_end,
	break_tolerance_enabled, break_tolerance_minutes, created_at, updated_at
	FROM working_schedules`

// ScheduleRepository persists weekly working schedules.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ListByBarber returns every stored weekday of the barber ordered Sunday first.
func (r *ScheduleRepository) ListByBarber(ctx context.Context, barberID string) ([]models.WorkingSchedule, error) {
	query := scheduleSelect + ` WHERE barber_id = $1 ORDER BY day_of_week`
	var schedules []models.WorkingSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, barberID); err != nil {
		return nil, fmt.Errorf("list working schedules: %w", err)
	}
	return schedules, nil
}

// FindByDay returns the schedule for one weekday, or sql.ErrNoRows.
func (r *ScheduleRepository) FindByDay(ctx context.Context, barberID string, dayOfWeek int) (*models.WorkingSchedule, error) {
	query := scheduleSelect + ` WHERE barber_id = $1 AND day_of_week = $2`
	var schedule models.WorkingSchedule
	if err := r.db.GetContext(ctx, &schedule, query, barberID, dayOfWeek); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find working schedule: %w", err)
	}
	return &schedule, nil
}

// ReplaceWeek deletes every schedule of the barber and inserts the given days
// in one transaction.
func (r *ScheduleRepository) ReplaceWeek(ctx context.Context, barberID string, schedules []models.WorkingSchedule) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace schedules: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM working_schedules WHERE barber_id = $1`, barberID); err != nil {
		return fmt.Errorf("delete working schedules: %w", err)
	}

	const insert = `INSERT INTO working_schedules (id, barber_id, day_of_week, start_time, end_time, is_active, has_break,
		break_start, break_end, break_tolerance_enabled, break_tolerance_minutes, created_at, updated_at)
		VALUES (:id, :barber_id, :day_of_week, :start_time, :end_time, :is_active, :has_break,
		:break_start, :break_end, :break_tolerance_enabled, :break_tolerance_minutes, :created_at, :updated_at)`

	now := time.Now().UTC()
	for i := range schedules {
		s := &schedules[i]
		s.ID = uuid.NewString()
		s.BarberID = barberID
		s.CreatedAt = now
		s.UpdatedAt = now
		if _, err = tx.NamedExecContext(ctx, insert, s); err != nil {
			return fmt.Errorf("insert working schedule day %d: %w", s.DayOfWeek, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace schedules: %w", err)
	}
	return nil
}
