package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"table-booking/internal/data/entity"
	"table-booking/internal/data/repository"
	"table-booking/pkg/notify"

	"go.uber.org/zap/zaptest"
)

var errStorage = errors.New("storage unavailable")

type store struct {
	mu       sync.Mutex
	slots    map[int]*entity.TimeSlot
	tables   map[int]*entity.Table
	users    map[int64]*entity.User
	bookings map[int64]*entity.Booking
	nextID   int64

	// hideActive makes ExistsActive lie so the unique index path is exercised
	hideActive bool
	failWith   error
}

func newStore() *store {
	return &store{
		slots: map[int]*entity.TimeSlot{
			1: {ID: 1, StartTime: entity.NewClockTime(12, 0), EndTime: entity.NewClockTime(13, 0)},
			2: {ID: 2, StartTime: entity.NewClockTime(13, 0), EndTime: entity.NewClockTime(14, 0)},
			3: {ID: 3, StartTime: entity.NewClockTime(14, 0), EndTime: entity.NewClockTime(15, 0)},
		},
		tables: map[int]*entity.Table{
			1: {ID: 1, Capacity: 2, Description: "window"},
			2: {ID: 2, Capacity: 4, Description: "hall"},
			3: {ID: 3, Capacity: 4, Description: "terrace"},
		},
		users: map[int64]*entity.User{
			101: {ID: 101, FirstName: "Ann"},
			102: {ID: 102, FirstName: "Bob"},
			103: {ID: 103, FirstName: "Cid"},
		},
		bookings: map[int64]*entity.Booking{},
	}
}

func (s *store) repository() *repository.Repository {
	return &repository.Repository{
		User:     &fakeUserRepo{s},
		Table:    &fakeTableRepo{s},
		TimeSlot: &fakeTimeSlotRepo{s},
		Booking:  &fakeBookingRepo{s},
	}
}

func (s *store) status(id int64) entity.BookingStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookings[id].Status
}

func (s *store) countBooked(t entity.Triple) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.bookings {
		if b.Triple().Key() == t.Key() && b.Status == entity.BookingStatusBooked {
			n++
		}
	}
	return n
}

// insert puts a row directly into the store, bypassing admission
func (s *store) insert(b entity.Booking) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = s.nextID
	s.bookings[b.ID] = &b
	return b.ID
}

type fakeTimeSlotRepo struct{ s *store }

func (r *fakeTimeSlotRepo) FindAll(context.Context) ([]*entity.TimeSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	slots := make([]*entity.TimeSlot, 0, len(r.s.slots))
	for _, slot := range r.s.slots {
		cp := *slot
		slots = append(slots, &cp)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime < slots[j].StartTime })
	return slots, nil
}

func (r *fakeTimeSlotRepo) FindByID(_ context.Context, id int) (*entity.TimeSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	slot, ok := r.s.slots[id]
	if !ok {
		return nil, nil
	}
	cp := *slot
	return &cp, nil
}

type fakeTableRepo struct{ s *store }

func (r *fakeTableRepo) FindAll(context.Context) ([]*entity.Table, error) {
	return r.filter(func(*entity.Table) bool { return true }), nil
}

func (r *fakeTableRepo) FindByCapacity(_ context.Context, capacity int) ([]*entity.Table, error) {
	return r.filter(func(t *entity.Table) bool { return t.Capacity == capacity }), nil
}

func (r *fakeTableRepo) filter(keep func(*entity.Table) bool) []*entity.Table {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var tables []*entity.Table
	for _, t := range r.s.tables {
		if keep(t) {
			cp := *t
			tables = append(tables, &cp)
		}
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].ID < tables[j].ID })
	return tables
}

func (r *fakeTableRepo) FindByID(_ context.Context, id int) (*entity.Table, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tables[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

type fakeUserRepo struct{ s *store }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; ok {
		return false, nil
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return true, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) CountAll(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.users)), nil
}

type fakeBookingRepo struct{ s *store }

func (r *fakeBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return r.s.failWith
	}
	if _, ok := r.s.users[b.UserID]; !ok {
		return repository.ErrReferenceNotFound
	}
	for _, existing := range r.s.bookings {
		if existing.Status == entity.BookingStatusBooked && existing.Triple().Key() == b.Triple().Key() {
			return repository.ErrDuplicateActiveBooking
		}
	}
	r.s.nextID++
	b.ID = r.s.nextID
	cp := *b
	r.s.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[id]; !ok {
		return 0, nil
	}
	delete(r.s.bookings, id)
	return 1, nil
}

func (r *fakeBookingRepo) FindByUserID(_ context.Context, userID int64) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return r.s.slots[out[i].TimeSlotID].StartTime < r.s.slots[out[j].TimeSlotID].StartTime
	})
	return out, nil
}

func (r *fakeBookingRepo) FindDetailsByUserID(ctx context.Context, userID int64) ([]*entity.BookingDetail, error) {
	bookings, _ := r.FindByUserID(ctx, userID)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	details := make([]*entity.BookingDetail, 0, len(bookings))
	for _, b := range bookings {
		details = append(details, &entity.BookingDetail{
			Booking:  *b,
			Table:    *r.s.tables[b.TableID],
			TimeSlot: *r.s.slots[b.TimeSlotID],
		})
	}
	return details, nil
}

func (r *fakeBookingRepo) CountByUserID(_ context.Context, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, b := range r.s.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) ExistsActive(_ context.Context, triple entity.Triple) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return false, r.s.failWith
	}
	if r.s.hideActive {
		return false, nil
	}
	for _, b := range r.s.bookings {
		if b.Status.OccupiesSlot() && b.Triple().Key() == triple.Key() {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) FindBookedSlotIDs(_ context.Context, tableID int, date time.Time) ([]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	var ids []int
	for _, b := range r.s.bookings {
		if b.TableID == tableID && b.Date.Equal(date) && b.Status.OccupiesSlot() {
			ids = append(ids, b.TimeSlotID)
		}
	}
	return ids, nil
}

func (r *fakeBookingRepo) TransitionStatus(_ context.Context, id int64, to entity.BookingStatus) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok || !b.Status.CanTransitionTo(to) {
		return 0, nil
	}
	b.Status = to
	return 1, nil
}

func (r *fakeBookingRepo) CompletePast(_ context.Context, today time.Time, now entity.ClockTime) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return 0, r.s.failWith
	}
	var n int64
	for _, b := range r.s.bookings {
		if b.Status != entity.BookingStatusBooked {
			continue
		}
		ended := b.Date.Before(today) || (b.Date.Equal(today) && r.s.slots[b.TimeSlotID].EndTime.Before(now))
		if ended {
			b.Status = entity.BookingStatusCompleted
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) CountByStatus(context.Context) (*entity.BookingStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var stats entity.BookingStats
	for _, b := range r.s.bookings {
		switch b.Status {
		case entity.BookingStatusBooked:
			stats.Booked++
		case entity.BookingStatusCompleted:
			stats.Completed++
		case entity.BookingStatusCanceled:
			stats.Canceled++
		}
		stats.Total++
	}
	return &stats, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, e notify.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return n.err
}

func (n *recordingNotifier) Close() error { return nil }

func (n *recordingNotifier) actions() []notify.Action {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notify.Action, len(n.events))
	for i, e := range n.events {
		out[i] = e.Action
	}
	return out
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// today is the calendar day every test runs on
var today = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return today.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type fixture struct {
	store    *store
	notifier *recordingNotifier
	clock    *fakeClock
	svc      *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    newStore(),
		notifier: &recordingNotifier{},
		clock:    &fakeClock{now: at(9, 0)},
	}
	f.svc = NewService(f.store.repository(), f.notifier, f.clock.Now, zaptest.NewLogger(t))
	return f
}
