package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	httpadapter "washroute/internal/adapters/in/http"
	"washroute/internal/core/application/engine"
	"washroute/internal/core/application/usecases/commands"
	"washroute/internal/core/application/usecases/queries"
	"washroute/internal/core/domain/model/deferral"
	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/core/domain/model/order"
	"washroute/internal/core/domain/model/worker"
	"washroute/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)

type memStore struct {
	mu       sync.Mutex
	snapshot *deferral.Snapshot
}

func (s *memStore) Load(context.Context) (*deferral.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot, nil
}

func (s *memStore) Save(_ context.Context, snapshot deferral.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = &snapshot
	return nil
}

func (s *memStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
	return nil
}

type nopTimer struct{}

func (nopTimer) Stop() bool { return true }

type fixture struct {
	echo *echo.Echo
	hub  *httpadapter.BoardHub
	a    *order.Order
	b    *order.Order
}

func subtaskAt(t *testing.T, kind order.Kind, lat, lon float64) *order.Subtask {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon, "")
	require.NoError(t, err)
	st, err := order.NewSubtask(kernel.NewUUID(), kind, loc, "Customer", "555-0100")
	require.NoError(t, err)
	return st
}

// newFixture builds the worker at (0,0) with order A (standard, pickup at (0,1) then drop at (0,3))
// and order B (express, pickup at (0,2)).
func newFixture(t *testing.T) fixture {
	t.Helper()

	a, err := order.NewOrder(kernel.NewUUID(), "A", 2, order.Standard,
		[]*order.Subtask{subtaskAt(t, order.Pickup, 0, 1), subtaskAt(t, order.Drop, 0, 3)})
	require.NoError(t, err)
	b, err := order.NewOrder(kernel.NewUUID(), "B", 1, order.Express,
		[]*order.Subtask{subtaskAt(t, order.Pickup, 0, 2)})
	require.NoError(t, err)

	start, err := kernel.NewLocation(0, 0, "Depot")
	require.NoError(t, err)
	w, err := worker.NewWorker(kernel.NewUUID(), "Sam", start)
	require.NoError(t, err)

	hub := httpadapter.NewBoardHub(nil)
	eng, err := engine.New(t.Context(), ports.Assignment{Orders: []*order.Order{a, b}, Worker: w}, &memStore{},
		engine.WithClock(func() time.Time { return t0 }),
		engine.WithAfterFunc(func(time.Duration, func()) engine.Timer { return nopTimer{} }),
		engine.WithObserver(hub),
	)
	require.NoError(t, err)

	server := httpadapter.NewServer(httpadapter.Handlers{
		CompleteSubtask:    commands.NewCompleteSubtaskCommandHandler(eng, nil, nil),
		SnoozeSubtask:      commands.NewSnoozeSubtaskCommandHandler(eng),
		SnoozeUntilLast:    commands.NewSnoozeUntilLastCommandHandler(eng),
		ClearDeferral:      commands.NewClearDeferralCommandHandler(eng),
		ActionableSubtasks: queries.NewGetActionableSubtasksQueryHandler(eng),
		DispatchBoard:      queries.NewGetDispatchBoardQueryHandler(eng),
		CategoryPartition:  queries.NewGetCategoryPartitionQueryHandler(eng),
		Partitions:         queries.NewGetPartitionsQueryHandler(eng),
		WorkerPosition:     queries.NewGetWorkerPositionQueryHandler(eng),
		CompletedOrders:    queries.NewGetCompletedOrdersQueryHandler(eng),
		Deferral:           queries.NewGetDeferralQueryHandler(eng),
	}, hub, nil)

	e := echo.New()
	require.NoError(t, server.Register(t.Context(), e))

	return fixture{echo: e, hub: hub, a: a, b: b}
}

func (f fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestServer_Board(t *testing.T) {
	t.Run("should rank actionable subtasks and mark the closest", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodGet, "/api/v1/subtasks/board", "")
		require.Equal(t, http.StatusOK, rec.Code)

		board := decode[[]httpadapter.SubtaskDTO](t, rec)
		require.Len(t, board, 2)
		assert.Equal(t, "A", board[0].OrderNumber)
		assert.True(t, board[0].IsClosest)
		require.NotNil(t, board[0].Distance)
		assert.InDelta(t, 1.0, *board[0].Distance, 1e-9)
		assert.Equal(t, "B", board[1].OrderNumber)
		assert.False(t, board[1].IsClosest)
	})

	t.Run("should list actionable subtasks without annotations", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodGet, "/api/v1/subtasks/actionable", "")
		require.Equal(t, http.StatusOK, rec.Code)

		rows := decode[[]httpadapter.SubtaskDTO](t, rec)
		require.Len(t, rows, 2)
		assert.False(t, rows[0].IsClosest)
	})

	t.Run("should serve the express partition", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodGet, "/api/v1/subtasks/partition/express", "")
		require.Equal(t, http.StatusOK, rec.Code)

		rows := decode[[]httpadapter.SubtaskDTO](t, rec)
		require.Len(t, rows, 1)
		assert.Equal(t, "B", rows[0].OrderNumber)
	})

	t.Run("should serve both partitions at once", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodGet, "/api/v1/subtasks/partition", "")
		require.Equal(t, http.StatusOK, rec.Code)

		p := decode[httpadapter.PartitionsDTO](t, rec)
		require.Len(t, p.Express, 1)
		assert.Equal(t, "B", p.Express[0].OrderNumber)
		require.Len(t, p.Standard, 1)
		assert.Equal(t, "A", p.Standard[0].OrderNumber)
	})

	t.Run("should reject both as a partition", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodGet, "/api/v1/subtasks/partition/both", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_CompleteSubtask(t *testing.T) {
	t.Run("should complete the closest subtask and move the worker", func(t *testing.T) {
		f := newFixture(t)
		pickup := f.a.Subtasks()[0]

		rec := f.do(t, http.MethodPost, "/api/v1/subtasks/"+pickup.ID().String()+"/complete", "")
		require.Equal(t, http.StatusOK, rec.Code)

		done := decode[httpadapter.CompletionDTO](t, rec)
		assert.Equal(t, pickup.ID().String(), done.SubtaskID)
		assert.False(t, done.OrderCompleted)
		assert.InDelta(t, 1.0, done.WorkerPosition.Longitude, 1e-9)

		rec = f.do(t, http.MethodGet, "/api/v1/worker/position", "")
		require.Equal(t, http.StatusOK, rec.Code)
		w := decode[httpadapter.WorkerDTO](t, rec)
		assert.Equal(t, "Sam", w.Name)
		assert.InDelta(t, 1.0, w.Location.Longitude, 1e-9)
	})

	t.Run("should move a finished order to the history", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodPost, "/api/v1/subtasks/"+f.b.Subtasks()[0].ID().String()+"/complete", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decode[httpadapter.CompletionDTO](t, rec).OrderCompleted)

		rec = f.do(t, http.MethodGet, "/api/v1/orders/completed", "")
		require.Equal(t, http.StatusOK, rec.Code)
		history := decode[[]httpadapter.CompletedOrderDTO](t, rec)
		require.Len(t, history, 1)
		assert.Equal(t, "B", history[0].Number)
		require.NotNil(t, history[0].CompletedAt)
		assert.True(t, t0.Equal(*history[0].CompletedAt))
	})

	t.Run("should return 404 for an unknown subtask", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodPost, "/api/v1/subtasks/"+kernel.NewUUID().String()+"/complete", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should return 409 for a subtask that is not enabled", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodPost, "/api/v1/subtasks/"+f.a.Subtasks()[1].ID().String()+"/complete", "")
		assert.Equal(t, http.StatusConflict, rec.Code)

		resp := decode[httpadapter.ErrorResponse](t, rec)
		assert.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("should return 400 for a malformed id", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodPost, "/api/v1/subtasks/not-a-uuid/complete", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_Deferral(t *testing.T) {
	t.Run("should snooze with the default duration and report the record", func(t *testing.T) {
		f := newFixture(t)
		pickup := f.a.Subtasks()[0]

		rec := f.do(t, http.MethodPost, "/api/v1/subtasks/"+pickup.ID().String()+"/snooze", "")
		require.Equal(t, http.StatusOK, rec.Code)

		d := decode[httpadapter.DeferralDTO](t, rec)
		assert.True(t, d.Active)
		assert.Equal(t, "next", d.Policy)
		require.NotNil(t, d.ExpiresAt)
		assert.True(t, t0.Add(engine.DefaultSnoozeDuration).Equal(*d.ExpiresAt))

		rec = f.do(t, http.MethodGet, "/api/v1/subtasks/board", "")
		board := decode[[]httpadapter.SubtaskDTO](t, rec)
		require.Len(t, board, 2)
		assert.Equal(t, "B", board[0].OrderNumber)
		assert.True(t, board[0].IsClosest)
		assert.True(t, board[1].IsDeferred)
	})

	t.Run("should honor the requested minutes", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodPost, "/api/v1/subtasks/"+f.b.Subtasks()[0].ID().String()+"/snooze", `{"minutes":5}`)
		require.Equal(t, http.StatusOK, rec.Code)

		d := decode[httpadapter.DeferralDTO](t, rec)
		require.NotNil(t, d.ExpiresAt)
		assert.True(t, t0.Add(5*time.Minute).Equal(*d.ExpiresAt))
	})

	t.Run("should reject minutes beyond a day", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodPost, "/api/v1/subtasks/"+f.b.Subtasks()[0].ID().String()+"/snooze", `{"minutes":5000}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should snooze an order until last and clear it again", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodPost, "/api/v1/orders/snooze-until-last", `{"orderId":"`+f.a.ID().String()+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		d := decode[httpadapter.DeferralDTO](t, rec)
		assert.Equal(t, "last", d.Policy)
		assert.Equal(t, f.a.ID().String(), d.TargetID)
		assert.Nil(t, d.ExpiresAt)

		rec = f.do(t, http.MethodGet, "/api/v1/deferral", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decode[httpadapter.DeferralDTO](t, rec).Active)

		rec = f.do(t, http.MethodDelete, "/api/v1/deferral", "")
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = f.do(t, http.MethodGet, "/api/v1/deferral", "")
		assert.False(t, decode[httpadapter.DeferralDTO](t, rec).Active)
	})

	t.Run("should return 404 when snoozing an unknown order", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodPost, "/api/v1/orders/snooze-until-last", `{"orderId":"`+kernel.NewUUID().String()+`"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_Docs(t *testing.T) {
	t.Run("should answer the health check", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Healthy", rec.Body.String())
	})

	t.Run("should serve the api document to swagger", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(t, http.MethodGet, "/swagger/doc.json", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Equal(t, "3.0.3", doc["openapi"])
	})
}

func TestBoardHub(t *testing.T) {
	t.Run("should push the board on connect and after a completion", func(t *testing.T) {
		f := newFixture(t)
		srv := httptest.NewServer(f.echo)
		defer srv.Close()

		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/board/ws"
		conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		defer conn.Close()

		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

		var first httpadapter.BoardMessage
		require.NoError(t, conn.ReadJSON(&first))
		assert.Equal(t, "board", first.Type)
		require.Len(t, first.Subtasks, 2)
		assert.Eventually(t, func() bool { return f.hub.SubscriberCount() == 1 }, time.Second, 10*time.Millisecond)

		rec := f.do(t, http.MethodPost, "/api/v1/subtasks/"+f.b.Subtasks()[0].ID().String()+"/complete", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var next httpadapter.BoardMessage
		require.NoError(t, conn.ReadJSON(&next))
		require.Len(t, next.Subtasks, 1)
		assert.Equal(t, "A", next.Subtasks[0].OrderNumber)
		assert.InDelta(t, 2.0, next.Worker.Location.Longitude, 1e-9)
	})
}
