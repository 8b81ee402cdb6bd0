package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/repository"
	appErrors "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/errors"
)

type stubScheduleRepo struct {
	days       map[int]models.WorkingSchedule
	findCalls  int
	replaceErr error
	replaced   []models.WorkingSchedule
}

func (s *stubScheduleRepo) ListByBarber(ctx context.Context, barberID string) ([]models.WorkingSchedule, error) {
	var out []models.WorkingSchedule
	for d := 0; d < 7; d++ {
		if row, ok := s.days[d]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *stubScheduleRepo) FindByDay(ctx context.Context, barberID string, dayOfWeek int) (*models.WorkingSchedule, error) {
	s.findCalls++
	row, ok := s.days[dayOfWeek]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &row, nil
}

func (s *stubScheduleRepo) ReplaceWeek(ctx context.Context, barberID string, schedules []models.WorkingSchedule) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.replaced = schedules
	s.days = make(map[int]models.WorkingSchedule, len(schedules))
	for _, row := range schedules {
		s.days[row.DayOfWeek] = row
	}
	return nil
}

func newTestCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheService(repository.NewCacheRepository(client, "test", nil), NewMetricsService(), time.Minute, nil, true), mr
}

func strPtr(v string) *string { return &v }

func weekdayRequest(day int) models.ScheduleDayRequest {
	return models.ScheduleDayRequest{DayOfWeek: day, StartTime: "09:00", EndTime: "18:00", IsActive: true,
		HasBreak: true, BreakStart: strPtr("12:00"), BreakEnd: strPtr("13:00"),
		BreakToleranceEnabled: true, BreakToleranceMinutes: 15}
}

func TestScheduleServiceReplaceWeekValidates(t *testing.T) {
	repo := &stubScheduleRepo{}
	svc := NewScheduleService(repo, nil, 0, nil, nil)
	ctx := context.Background()

	reversed := weekdayRequest(1)
	reversed.StartTime, reversed.EndTime = "18:00", "09:00"

	breakOutside := weekdayRequest(2)
	breakOutside.BreakStart, breakOutside.BreakEnd = strPtr("17:30"), strPtr("18:30")

	missingBreak := weekdayRequest(3)
	missingBreak.BreakEnd = nil

	badClock := weekdayRequest(4)
	badClock.StartTime = "9h"

	tests := map[string]models.ReplaceScheduleRequest{
		"start after end":     {Days: []models.ScheduleDayRequest{reversed}},
		"break outside hours": {Days: []models.ScheduleDayRequest{breakOutside}},
		"break without end":   {Days: []models.ScheduleDayRequest{missingBreak}},
		"bad clock":           {Days: []models.ScheduleDayRequest{badClock}},
		"duplicate day":       {Days: []models.ScheduleDayRequest{weekdayRequest(1), weekdayRequest(1)}},
	}
	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ReplaceWeek(ctx, "barber-1", req)
			assertCode(t, appErrors.ErrValidation, err)
		})
	}
	assert.Nil(t, repo.replaced)
}

func TestScheduleServiceReplaceWeekStoresRows(t *testing.T) {
	repo := &stubScheduleRepo{}
	svc := NewScheduleService(repo, nil, 0, nil, nil)

	noBreak := models.ScheduleDayRequest{DayOfWeek: 6, StartTime: "08:00", EndTime: "12:00", IsActive: true,
		BreakStart: strPtr("10:00"), BreakEnd: strPtr("10:15"), BreakToleranceEnabled: true, BreakToleranceMinutes: 10}

	rows, err := svc.ReplaceWeek(context.Background(), "barber-1", models.ReplaceScheduleRequest{
		Days: []models.ScheduleDayRequest{weekdayRequest(1), noBreak},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "barber-1", rows[0].BarberID)
	assert.Equal(t, 15, rows[0].BreakToleranceMinutes)
	assert.Nil(t, rows[1].BreakStart, "break fields are dropped when has_break is false")
	assert.False(t, rows[1].BreakToleranceEnabled)

	repo.replaceErr = errors.New("deadlock")
	_, err = svc.ReplaceWeek(context.Background(), "barber-1", models.ReplaceScheduleRequest{})
	assertCode(t, appErrors.ErrPersistence, err)
}

func TestScheduleServiceForDayUsesCache(t *testing.T) {
	cache, _ := newTestCache(t)
	repo := &stubScheduleRepo{}
	svc := NewScheduleService(repo, cache, time.Minute, nil, nil)
	ctx := context.Background()

	_, err := svc.ReplaceWeek(ctx, "barber-1", models.ReplaceScheduleRequest{Days: []models.ScheduleDayRequest{weekdayRequest(1)}})
	require.NoError(t, err)

	first, err := svc.ForDay(ctx, "barber-1", time.Monday)
	require.NoError(t, err)
	require.NotNil(t, first)
	require.NotNil(t, first.Break)
	assert.Equal(t, 15, first.Break.ToleranceMinutes)

	_, err = svc.ForDay(ctx, "barber-1", time.Monday)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findCalls, "second lookup is served from cache")

	shorter := weekdayRequest(1)
	shorter.EndTime = "15:00"
	_, err = svc.ReplaceWeek(ctx, "barber-1", models.ReplaceScheduleRequest{Days: []models.ScheduleDayRequest{shorter}})
	require.NoError(t, err)

	updated, err := svc.ForDay(ctx, "barber-1", time.Monday)
	require.NoError(t, err)
	assert.Equal(t, "15:00", updated.End.String())
	assert.Equal(t, 2, repo.findCalls)

	sunday, err := svc.ForDay(ctx, "barber-1", time.Sunday)
	require.NoError(t, err)
	assert.Nil(t, sunday)
}

func TestScheduleServiceForDayIgnoresRowCachedBeforeReplace(t *testing.T) {
	cache, _ := newTestCache(t)
	repo := &stubScheduleRepo{}
	svc := NewScheduleService(repo, cache, time.Minute, nil, nil)
	ctx := context.Background()

	_, err := svc.ReplaceWeek(ctx, "barber-1", models.ReplaceScheduleRequest{Days: []models.ScheduleDayRequest{weekdayRequest(1)}})
	require.NoError(t, err)

	// A reader that missed the cache loads the old row and the generation...
	gen, ok := cache.Generation(ctx, scheduleGenerationKey("barber-1"))
	require.True(t, ok)
	stale := repo.days[1]

	shorter := weekdayRequest(1)
	shorter.EndTime = "15:00"
	_, err = svc.ReplaceWeek(ctx, "barber-1", models.ReplaceScheduleRequest{Days: []models.ScheduleDayRequest{shorter}})
	require.NoError(t, err)

	// ...and only writes it back after the replacement invalidated the cache.
	cache.Set(ctx, scheduleCacheKey("barber-1", gen, 1), stale, time.Minute)

	updated, err := svc.ForDay(ctx, "barber-1", time.Monday)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "15:00", updated.End.String())
}

func TestScheduleServiceForDaySkipsCacheWhenGenerationUnreadable(t *testing.T) {
	cache, mr := newTestCache(t)
	repo := &stubScheduleRepo{}
	svc := NewScheduleService(repo, cache, time.Minute, nil, nil)
	ctx := context.Background()

	_, err := svc.ReplaceWeek(ctx, "barber-1", models.ReplaceScheduleRequest{Days: []models.ScheduleDayRequest{weekdayRequest(1)}})
	require.NoError(t, err)
	mr.Close()

	for i := 0; i < 2; i++ {
		sched, err := svc.ForDay(ctx, "barber-1", time.Monday)
		require.NoError(t, err)
		require.NotNil(t, sched)
	}
	assert.Equal(t, 2, repo.findCalls)
}
