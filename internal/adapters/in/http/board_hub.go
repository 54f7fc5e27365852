package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second

	subscriberBuffer = 16
)

// BoardSource renders the current board message.
type BoardSource func(ctx context.Context) (BoardMessage, error)

// BoardHub pushes the dispatch board to websocket clients. It implements ports.BoardObserver.
// Slow clients miss intermediate boards; every message is a full snapshot.
type BoardHub struct {
	mu          sync.RWMutex
	subscribers map[chan []byte]struct{}
	source      BoardSource

	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewBoardHub creates a hub without a source. Notifications are ignored until SetSource is called.
func NewBoardHub(logger *slog.Logger) *BoardHub {
	if logger == nil {
		logger = slog.Default()
	}
	return &BoardHub{
		subscribers: make(map[chan []byte]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		logger: logger.With("component", "board_hub"),
	}
}

// SetSource installs the board renderer.
func (h *BoardHub) SetSource(source BoardSource) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.source = source
}

// BoardChanged renders the board once and fans it out without blocking.
func (h *BoardHub) BoardChanged(ctx context.Context) {
	if h.SubscriberCount() == 0 {
		return
	}

	payload, ok := h.render(ctx)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers {
		select {
		case sub <- payload:
		default:
		}
	}
}

// SubscriberCount returns the number of connected clients.
func (h *BoardHub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// ServeWS upgrades the request and streams boards until the client goes away.
// The current board is sent right after the upgrade.
func (h *BoardHub) ServeWS(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.WarnContext(c.Request().Context(), "websocket upgrade failed", "error", err)
		return nil
	}
	defer conn.Close()

	sub := h.subscribe()
	defer h.unsubscribe(sub)

	if payload, ok := h.render(c.Request().Context()); ok {
		if err = write(conn, websocket.TextMessage, payload); err != nil {
			return nil
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return nil
		case payload := <-sub:
			if err = write(conn, websocket.TextMessage, payload); err != nil {
				return nil
			}
		case <-ticker.C:
			if err = write(conn, websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}

func (h *BoardHub) render(ctx context.Context) ([]byte, bool) {
	h.mu.RLock()
	source := h.source
	h.mu.RUnlock()
	if source == nil {
		return nil, false
	}

	msg, err := source(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to render board", "error", err)
		return nil, false
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to encode board", "error", err)
		return nil, false
	}
	return payload, true
}

func (h *BoardHub) subscribe() chan []byte {
	ch := make(chan []byte, subscriberBuffer)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *BoardHub) unsubscribe(ch chan []byte) {
	h.mu.Lock()
	delete(h.subscribers, ch)
	h.mu.Unlock()
}

func write(conn *websocket.Conn, messageType int, data []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(messageType, data)
}
