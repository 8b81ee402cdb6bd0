package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/availability"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	appErrors "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/errors"
)

type scheduleRepository interface {
	ListByBarber(ctx context.Context, barberID string) ([]models.WorkingSchedule, error)
	FindByDay(ctx context.Context, barberID string, dayOfWeek int) (*models.WorkingSchedule, error)
	ReplaceWeek(ctx context.Context, barberID string, schedules []models.WorkingSchedule) error
}

// ScheduleService manages weekly working hours.
type ScheduleService struct {
	repo      scheduleRepository
	cache     *CacheService
	ttl       time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs a ScheduleService. cache may be nil.
func NewScheduleService(repo scheduleRepository, cache *CacheService, ttl time.Duration, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, cache: cache, ttl: ttl, validator: validate, logger: logger}
}

// GetWeek returns every stored day for the barber.
func (s *ScheduleService) GetWeek(ctx context.Context, barberID string) ([]models.WorkingSchedule, error) {
	days, err := s.repo.ListByBarber(ctx, barberID)
	if err != nil {
		return nil, appErrors.Persistence(err, "failed to load schedule")
	}
	if days == nil {
		days = []models.WorkingSchedule{}
	}
	return days, nil
}

// ReplaceWeek validates the payload and replaces every stored day.
func (s *ScheduleService) ReplaceWeek(ctx context.Context, barberID string, req models.ReplaceScheduleRequest) ([]models.WorkingSchedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	seen := make(map[int]struct{}, len(req.Days))
	rows := make([]models.WorkingSchedule, 0, len(req.Days))
	for _, day := range req.Days {
		if _, dup := seen[day.DayOfWeek]; dup {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("day_of_week %d appears more than once", day.DayOfWeek))
		}
		seen[day.DayOfWeek] = struct{}{}

		row := day.ToModel(barberID)
		sched, err := row.Availability()
		if err == nil {
			err = sched.Validate()
		}
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
				fmt.Sprintf("day %d: %s", day.DayOfWeek, err.Error()))
		}
		rows = append(rows, row)
	}

	if err := s.repo.ReplaceWeek(ctx, barberID, rows); err != nil {
		return nil, appErrors.Persistence(err, "failed to save schedule")
	}
	s.cache.Bump(ctx, scheduleGenerationKey(barberID))
	s.cache.Invalidate(ctx, scheduleCachePattern(barberID))
	s.logger.Info("schedule replaced", zap.String("barber_id", barberID), zap.Int("days", len(rows)))
	return rows, nil
}

// ForDay returns the schedule used for slot generation, or nil when the
// barber does not work on that weekday.
func (s *ScheduleService) ForDay(ctx context.Context, barberID string, day time.Weekday) (*availability.Schedule, error) {
	// The generation is read before the database so a row fetched before a
	// concurrent ReplaceWeek commits lands under a key nobody reads afterwards.
	gen, cacheable := s.cache.Generation(ctx, scheduleGenerationKey(barberID))
	key := scheduleCacheKey(barberID, gen, int(day))
	var row models.WorkingSchedule
	if !cacheable || !s.cache.Get(ctx, key, &row) {
		found, err := s.repo.FindByDay(ctx, barberID, int(day))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil
			}
			return nil, appErrors.Persistence(err, "failed to load schedule")
		}
		row = *found
		if cacheable {
			s.cache.Set(ctx, key, row, s.ttl)
		}
	}

	sched, err := row.Availability()
	if err != nil {
		s.logger.Error("stored schedule is malformed", zap.String("barber_id", barberID), zap.Int("day", int(day)), zap.Error(err))
		return nil, appErrors.Persistence(err, "stored schedule is malformed")
	}
	return &sched, nil
}
