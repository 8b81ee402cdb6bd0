package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/availability"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/models"
	appErrors "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/errors"
)

// 2024-06-03 is a Monday.
const testDate = "2024-06-03"

var errNoSQL = errors.New("fake transaction does not run SQL")

// fakeTx stands in for *sqlx.Tx. Inserts are staged and become visible on
// Commit; the barber-day lock is held until Commit or Rollback.
type fakeTx struct {
	store     *fakeAppointmentStore
	lock      *sync.Mutex
	pending   []models.Appointment
	commitErr error
	done      bool
}

func (t *fakeTx) DriverName() string { return "fake" }

func (t *fakeTx) Rebind(query string) string { return query }

func (t *fakeTx) BindNamed(query string, arg interface{}) (string, []interface{}, error) {
	return query, nil, nil
}
func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, errNoSQL
}
func (t *fakeTx) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	return nil, errNoSQL
}
func (t *fakeTx) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	return nil
}
func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, errNoSQL
}

func (t *fakeTx) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	defer t.release()
	if t.commitErr != nil {
		return t.commitErr
	}
	t.store.mu.Lock()
	t.store.rows = append(t.store.rows, t.pending...)
	t.store.mu.Unlock()
	return nil
}

func (t *fakeTx) Rollback() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	t.release()
	return nil
}

func (t *fakeTx) release() {
	if t.lock != nil {
		t.lock.Unlock()
		t.lock = nil
	}
}

type fakeTxProvider struct {
	store     *fakeAppointmentStore
	beginErr  error
	commitErr error
	mu        sync.Mutex
	begun     int
}

func (p *fakeTxProvider) BeginBookingTx(ctx context.Context) (BookingTx, error) {
	if p.beginErr != nil {
		return nil, p.beginErr
	}
	p.mu.Lock()
	p.begun++
	p.mu.Unlock()
	return &fakeTx{store: p.store, commitErr: p.commitErr}, nil
}

type fakeAppointmentStore struct {
	mu         sync.Mutex
	dayLocks   map[string]*sync.Mutex
	rows       []models.Appointment
	seq        int
	listErr    error
	createErr  error
	updateErr  error
	skipLock   bool
	lockCalled int
}

func newFakeAppointmentStore(rows ...models.Appointment) *fakeAppointmentStore {
	return &fakeAppointmentStore{dayLocks: make(map[string]*sync.Mutex), rows: rows}
}

func (s *fakeAppointmentStore) ListActiveByDate(ctx context.Context, q sqlx.QueryerContext, barberID, date string) ([]models.Appointment, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.rows {
		if a.BarberID == barberID && a.AppointmentDate == date && a.Status.Occupies() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (s *fakeAppointmentStore) LockBarberDay(ctx context.Context, exec sqlx.ExecerContext, barberID, date string) error {
	s.mu.Lock()
	s.lockCalled++
	if s.skipLock {
		s.mu.Unlock()
		return nil
	}
	key := barberID + "|" + date
	l, ok := s.dayLocks[key]
	if !ok {
		l = &sync.Mutex{}
		s.dayLocks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	exec.(*fakeTx).lock = l
	return nil
}

func (s *fakeAppointmentStore) CreateWithTx(ctx context.Context, exec sqlx.ExtContext, appt *models.Appointment) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.mu.Lock()
	s.seq++
	appt.ID = fmt.Sprintf("appt-%d", s.seq)
	s.mu.Unlock()
	if appt.Status == "" {
		appt.Status = models.AppointmentScheduled
	}
	tx := exec.(*fakeTx)
	tx.pending = append(tx.pending, *appt)
	return nil
}

func (s *fakeAppointmentStore) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.rows {
		if a.ID == id {
			copied := a
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeAppointmentStore) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Status = status
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *fakeAppointmentStore) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, int, error) {
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []models.Appointment
	for _, a := range s.rows {
		if filter.BarberID != "" && a.BarberID != filter.BarberID {
			continue
		}
		if filter.Date != "" && a.AppointmentDate != filter.Date {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		matched = append(matched, a)
	}
	total := len(matched)
	from := (filter.Page - 1) * filter.PageSize
	if from > total {
		from = total
	}
	to := from + filter.PageSize
	if to > total {
		to = total
	}
	return matched[from:to], total, nil
}

func (s *fakeAppointmentStore) committed() []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Appointment(nil), s.rows...)
}

type fakeSchedules struct {
	days map[time.Weekday]*availability.Schedule
	err  error
}

func (f fakeSchedules) ForDay(ctx context.Context, barberID string, day time.Weekday) (*availability.Schedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.days[day], nil
}

type fakeServices map[string]*models.Service

func (f fakeServices) BookableService(ctx context.Context, barberID, id string) (*models.Service, error) {
	svc, ok := f[id]
	if !ok || svc.BarberID != barberID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "service not found")
	}
	if !svc.Active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "service is not available for booking")
	}
	return svc, nil
}

type fakeBarbers map[string]*models.Barber

func (f fakeBarbers) BarberBySlug(ctx context.Context, slug string) (*models.Barber, error) {
	if b, ok := f[slug]; ok {
		return b, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "barber not found")
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) record(event string) {
	n.mu.Lock()
	n.events = append(n.events, event)
	n.mu.Unlock()
}

func (n *recordingNotifier) BookingConfirmed(appt *models.Appointment) {
	n.record(models.EventBookingConfirmed)
}

func (n *recordingNotifier) BookingConflict(barberID, date, startTime string) {
	n.record(models.EventBookingConflict)
}

func (n *recordingNotifier) BookingCancelled(appt *models.Appointment) {
	n.record(models.EventBookingCancelled)
}

func (n *recordingNotifier) count(event string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, e := range n.events {
		if e == event {
			c++
		}
	}
	return c
}

func mustClock(raw string) availability.Clock {
	c, err := availability.ParseClock(raw)
	if err != nil {
		panic(err)
	}
	return c
}

func mondaySchedule(start, end string) *availability.Schedule {
	return &availability.Schedule{DayOfWeek: time.Monday, Start: mustClock(start), End: mustClock(end), Active: true}
}

func scheduledAppt(barberID, start, end string) models.Appointment {
	return models.Appointment{
		ID: "seed-" + start, BarberID: barberID, ServiceID: "svc-30", ClientName: "Seed",
		AppointmentDate: testDate, StartTime: start, EndTime: end, Status: models.AppointmentScheduled,
	}
}

// fixedNow returns a clock frozen at hh:mm on the test Monday, local time.
func fixedNow(hh, mm int) func() time.Time {
	return func() time.Time { return time.Date(2024, 6, 3, hh, mm, 0, 0, time.Local) }
}

type bookingFixture struct {
	store    *fakeAppointmentStore
	tx       *fakeTxProvider
	slots    *SlotService
	booking  *BookingService
	notifier *recordingNotifier
	metrics  *MetricsService
}

func newBookingFixture(sched *availability.Schedule, now func() time.Time, rows ...models.Appointment) *bookingFixture {
	store := newFakeAppointmentStore(rows...)
	services := fakeServices{
		"svc-30":  {ID: "svc-30", BarberID: "barber-1", Name: "Corte", DurationMinutes: 30, Active: true},
		"svc-45":  {ID: "svc-45", BarberID: "barber-1", Name: "Corte + barba", DurationMinutes: 45, Active: true},
		"svc-60":  {ID: "svc-60", BarberID: "barber-1", Name: "Completo", DurationMinutes: 60, Active: true},
		"svc-off": {ID: "svc-off", BarberID: "barber-1", Name: "Antigo", DurationMinutes: 30, Active: false},
	}
	schedules := fakeSchedules{days: map[time.Weekday]*availability.Schedule{}}
	if sched != nil {
		schedules.days[sched.DayOfWeek] = sched
	}
	metrics := NewMetricsService()
	slots := NewSlotService(schedules, services, store, metrics, nil, now, 30)
	tx := &fakeTxProvider{store: store}
	notifier := &recordingNotifier{}
	barbers := fakeBarbers{"ze": {ID: "barber-1", Slug: "ze", DisplayName: "Zé", Active: true}}
	booking := NewBookingService(store, tx, slots, barbers, notifier, metrics, nil, nil)
	return &bookingFixture{store: store, tx: tx, slots: slots, booking: booking, notifier: notifier, metrics: metrics}
}
