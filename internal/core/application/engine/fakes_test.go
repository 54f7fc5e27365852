package engine_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"washroute/internal/core/application/engine"
	"washroute/internal/core/domain/model/deferral"
	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/core/domain/model/order"
	"washroute/internal/core/domain/model/worker"
	"washroute/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

// memStore is an in-memory DeferralStore with injectable failures.
type memStore struct {
	mu       sync.Mutex
	snap     *deferral.Snapshot
	loadErr  error
	saveErr  error
	clearErr error
	saves    int
	clears   int
}

func (s *memStore) Load(context.Context) (*deferral.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.snap == nil {
		return nil, nil
	}
	c := *s.snap
	return &c, nil
}

func (s *memStore) Save(_ context.Context, snap deferral.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.snap = &snap
	return nil
}

func (s *memStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	if s.clearErr != nil {
		return s.clearErr
	}
	s.snap = nil
	return nil
}

func (s *memStore) stored() *deferral.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// fakeTimer records its schedule; tests fire it by hand.
type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (t *fakeTimer) fire() {
	t.f()
}

type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) engine.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *fakeScheduler) last() *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.timers) == 0 {
		return nil
	}
	return s.timers[len(s.timers)-1]
}

// MockBoardObserver is a mock implementation of ports.BoardObserver.
type MockBoardObserver struct {
	mock.Mock
}

func (m *MockBoardObserver) BoardChanged(ctx context.Context) {
	m.Called(ctx)
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func loc(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	l, err := kernel.NewLocation(lat, lon, "")
	require.NoError(t, err)
	return l
}

// buildOrder creates an order whose chain visits points in sequence.
func buildOrder(t *testing.T, number string, priority order.PriorityClass, points ...[2]float64) *order.Order {
	t.Helper()
	subtasks := make([]*order.Subtask, 0, len(points))
	for _, p := range points {
		st, err := order.NewSubtask(kernel.NewUUID(), order.Pickup, loc(t, p[0], p[1]), "Customer "+number, "")
		require.NoError(t, err)
		subtasks = append(subtasks, st)
	}
	o, err := order.NewOrder(kernel.NewUUID(), number, 1, priority, subtasks)
	require.NoError(t, err)
	return o
}

// buildDisabledOrder creates an order whose head is not enabled yet.
func buildDisabledOrder(t *testing.T, number string, points ...[2]float64) *order.Order {
	t.Helper()
	subtasks := make([]*order.Subtask, 0, len(points))
	for _, p := range points {
		st, err := order.RestoreSubtask(kernel.NewUUID(), order.Collect, order.SubtaskPending, false,
			loc(t, p[0], p[1]), "Customer "+number, "")
		require.NoError(t, err)
		subtasks = append(subtasks, st)
	}
	o, err := order.RestoreOrder(kernel.NewUUID(), number, 1, order.Standard, subtasks, nil)
	require.NoError(t, err)
	return o
}

func subtaskIDs(t *testing.T, o *order.Order) []kernel.UUID {
	t.Helper()
	var ids []kernel.UUID
	for _, st := range o.Subtasks() {
		ids = append(ids, st.ID())
	}
	return ids
}

type fixture struct {
	engine    *engine.Engine
	store     *memStore
	scheduler *fakeScheduler
	clock     *clock
}

func newFixture(t *testing.T, start kernel.Location, store *memStore, orders ...*order.Order) fixture {
	t.Helper()
	if store == nil {
		store = &memStore{}
	}
	w, err := worker.NewWorker(kernel.NewUUID(), "Sam", start)
	require.NoError(t, err)

	f := fixture{store: store, scheduler: &fakeScheduler{}, clock: &clock{now: t0}}
	f.engine, err = engine.New(context.Background(),
		ports.Assignment{Orders: orders, Worker: w},
		store,
		engine.WithClock(f.clock.Now),
		engine.WithAfterFunc(f.scheduler.AfterFunc),
	)
	require.NoError(t, err)
	return f
}

func ptr[T any](v T) *T {
	return &v
}
