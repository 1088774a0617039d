// Package ws implements the WebSocket adapter that pushes newly created
// quotations to connected clients.
package ws

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/quotation-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotation-service/internal/domain"
)

// Defaults applied when Config leaves a field unset.
const (
	DefaultSendBuffer   = 16
	DefaultWriteTimeout = 5 * time.Second
)

const shutdownReason = "server shutting down"

// Config configures a Hub.
type Config struct {
	// SendBuffer is the number of events queued per subscriber before
	// further events are dropped for it.
	SendBuffer int

	// WriteTimeout bounds a single frame write. A subscriber that cannot
	// accept a frame in time is disconnected.
	WriteTimeout time.Duration

	// OriginPatterns lists host patterns accepted for cross-origin
	// handshakes. "*" admits every origin.
	OriginPatterns []string

	Logger     *slog.Logger
	Registerer prometheus.Registerer
}

// subscriber is one connection with its outbound queue. conn is nil until
// the handshake completes and is only set under the hub lock.
type subscriber struct {
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	remote string
}

// Hub tracks open WebSocket connections and fans events out to them.
// Delivery is best effort: there is no replay for late joiners and a
// subscriber whose queue is full misses the event.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*subscriber]struct{}
	closed bool

	sendBuffer   int
	writeTimeout time.Duration
	acceptOpts   *websocket.AcceptOptions
	logger       *slog.Logger
	metrics      *metrics
}

// NewHub creates a hub. Metrics are registered on cfg.Registerer when set.
func NewHub(cfg Config) *Hub {
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = DefaultSendBuffer
	}

	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Hub{
		subs:         make(map[*subscriber]struct{}),
		sendBuffer:   cfg.SendBuffer,
		writeTimeout: cfg.WriteTimeout,
		acceptOpts:   &websocket.AcceptOptions{OriginPatterns: cfg.OriginPatterns},
		logger:       logger.With(slog.String("component", "realtime")),
		metrics:      newMetrics(cfg.Registerer),
	}
}

// HandleWS upgrades the request and serves the connection until the client
// goes away or the hub is closed. Clients only listen; anything they send
// is discarded.
//
// The subscriber queue is registered before the handshake response is
// sent, so every event published after the client's dial returns is
// delivered.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	sub := &subscriber{
		send:   make(chan []byte, h.sendBuffer),
		done:   make(chan struct{}),
		remote: r.RemoteAddr,
	}

	if !h.add(sub) {
		http.Error(w, shutdownReason, http.StatusServiceUnavailable)
		return
	}

	// Subscriber connections are long-lived; drop the server's per-request
	// deadlines before the upgrade. Writers that cannot do this keep them.
	rc := http.NewResponseController(w)
	_ = rc.SetReadDeadline(time.Time{})
	_ = rc.SetWriteDeadline(time.Time{})

	conn, err := websocket.Accept(w, r, h.acceptOpts)
	if err != nil {
		h.remove(sub)
		h.logger.WarnContext(r.Context(), "websocket accept failed", slog.Any("error", err))

		return
	}

	if !h.attach(sub, conn) {
		_ = conn.Close(websocket.StatusGoingAway, shutdownReason)
		return
	}

	h.logger.Info("websocket connected", slog.String("remote", sub.remote))

	// The read side outlives the request so a shutdown close handshake can
	// complete after this handler returns.
	ctx := conn.CloseRead(context.Background())
	err = h.writeLoop(ctx, conn, sub)

	if h.remove(sub) {
		if err != nil {
			h.logger.Debug("websocket write failed",
				slog.String("remote", sub.remote),
				slog.Any("error", err),
			)
		}

		_ = conn.CloseNow()
		h.logger.Info("websocket disconnected", slog.String("remote", sub.remote))
	}
}

// writeLoop drains the subscriber queue until the peer disconnects, a
// write fails or the hub shuts down.
func (h *Hub) writeLoop(ctx context.Context, conn *websocket.Conn, sub *subscriber) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sub.done:
			return nil
		case msg := <-sub.send:
			if err := h.write(ctx, conn, msg); err != nil {
				return err
			}
		}
	}
}

func (h *Hub) write(ctx context.Context, conn *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, h.writeTimeout)
	defer cancel()

	return conn.Write(ctx, websocket.MessageText, msg)
}

// Publish implements ports.Broadcaster. It sends a newQuotation event whose
// payload matches the HTTP representation of q.
func (h *Hub) Publish(ctx context.Context, q *domain.Quotation) {
	h.BroadcastEvent(ctx, EventNewQuotation, dto.NewQuotationResponse(q))
}

// BroadcastEvent marshals payload into a typed envelope and broadcasts it.
func (h *Hub) BroadcastEvent(ctx context.Context, eventType string, payload any) {
	data, err := encode(eventType, payload)
	if err != nil {
		h.logger.ErrorContext(ctx, "marshal ws event payload",
			slog.String("type", eventType),
			slog.Any("error", err),
		)

		return
	}

	h.broadcast(ctx, data)
}

// broadcast offers data to every subscriber without blocking.
func (h *Hub) broadcast(ctx context.Context, data []byte) {
	h.metrics.published.Inc()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		select {
		case sub.send <- data:
		default:
			h.metrics.dropped.Inc()
			h.logger.WarnContext(ctx, "subscriber queue full, event dropped",
				slog.String("remote", sub.remote),
			)
		}
	}
}

// ConnectionCount returns the number of open subscribers.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs)
}

// Close disconnects every subscriber concurrently and refuses new ones.
// It returns ctx.Err() if some close handshakes did not finish in time;
// those connections are dropped without a handshake.
func (h *Hub) Close(ctx context.Context) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}

	h.closed = true
	subs := make([]*subscriber, 0, len(h.subs))
	conns := make([]*websocket.Conn, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
		conns = append(conns, sub.conn)
		delete(h.subs, sub)
	}
	h.metrics.subscribers.Set(0)
	h.mu.Unlock()

	h.logger.Info("closing realtime hub", slog.Int("subscribers", len(subs)))

	var g errgroup.Group
	for i, sub := range subs {
		close(sub.done)

		// Handshakes still in flight close themselves once attach fails.
		if conns[i] == nil {
			continue
		}

		g.Go(func() error {
			return h.closeConn(ctx, conns[i], sub)
		})
	}

	return g.Wait()
}

func (h *Hub) closeConn(ctx context.Context, conn *websocket.Conn, sub *subscriber) error {
	closed := make(chan error, 1)
	go func() {
		closed <- conn.Close(websocket.StatusGoingAway, shutdownReason)
	}()

	select {
	case err := <-closed:
		if err != nil {
			h.logger.Debug("websocket close handshake failed",
				slog.String("remote", sub.remote),
				slog.Any("error", err),
			)
		}

		return nil
	case <-ctx.Done():
		_ = conn.CloseNow()
		return ctx.Err()
	}
}

// Name implements ports.HealthChecker.
func (h *Hub) Name() string {
	return "realtime"
}

// Check implements ports.HealthChecker. The hub is unhealthy once closed.
func (h *Hub) Check(_ context.Context) error {
	if h.isClosed() {
		return domain.NewUnavailableError(h.Name(), "hub closed")
	}

	return nil
}

func (h *Hub) add(sub *subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}

	h.subs[sub] = struct{}{}
	h.metrics.subscribers.Inc()

	return true
}

// attach records the accepted connection of sub. It reports false when the
// hub closed during the handshake.
func (h *Hub) attach(sub *subscriber, conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub]; !ok {
		return false
	}

	sub.conn = conn

	return true
}

// remove reports whether sub was still registered.
func (h *Hub) remove(sub *subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub]; !ok {
		return false
	}

	delete(h.subs, sub)
	h.metrics.subscribers.Dec()

	return true
}

func (h *Hub) isClosed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.closed
}
