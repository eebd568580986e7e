package notifications

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/zhulik/pips"
	"github.com/zhulik/pips/apply"

	"blogdeck/internal/core"
	"blogdeck/internal/session"
)

var (
	received = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogdeck_notifications_received_total",
		Help: "Push notifications received, by type.",
	}, []string{"type"})

	reconnects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blogdeck_channel_reconnects_total",
		Help: "Reconnect attempts after an unexpected close.",
	})
)

type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Channel is the single long-lived push connection per authenticated
// session. It reconnects after a fixed delay, one pending attempt at a
// time, for as long as the session lives.
type Channel struct {
	Logger *slog.Logger
	Config *core.Config
	Store  *session.Store
	Feed   *Store
	Popups *Popups

	state atomic.Int32

	mu   sync.Mutex
	conn *websocket.Conn
	gone chan struct{}
}

func (c *Channel) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "notifications.Channel")
	c.gone = make(chan struct{})

	// Session teardown stops retries immediately and kills a live
	// connection so the read loop unblocks.
	c.Store.OnClear(func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		select {
		case <-c.gone:
		default:
			close(c.gone)
		}
		if c.conn != nil {
			c.conn.Close()
			c.conn = nil
		}
	})
	return nil
}

func (c *Channel) Shutdown(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	return nil
}

func (c *Channel) State() State {
	return State(c.state.Load())
}

// Run keeps the channel alive until the context is cancelled or the
// session goes away.
func (c *Channel) Run(ctx context.Context) error {
	c.mu.Lock()
	select {
	case <-c.gone:
		// A previous session was torn down, re-arm for this one.
		c.gone = make(chan struct{})
	default:
	}
	gone := c.gone
	c.mu.Unlock()

	first := true
	for {
		if _, ok := c.Store.Current(); !ok {
			c.state.Store(int32(Disconnected))
			return nil
		}

		if !first {
			reconnects.Inc()
		}
		first = false

		err := c.connectAndRead(ctx)
		c.state.Store(int32(Disconnected))

		if ctx.Err() != nil {
			return nil
		}
		if _, ok := c.Store.Current(); !ok {
			return nil
		}
		if err != nil {
			c.Logger.Warn("push connection lost, reconnecting",
				"delay", c.Config.ReconnectDelay, "error", err)
		}

		select {
		case <-time.After(c.Config.ReconnectDelay):
		case <-gone:
			c.state.Store(int32(Disconnected))
			return nil
		case <-ctx.Done():
			c.state.Store(int32(Disconnected))
			return nil
		}
	}
}

func (c *Channel) connectAndRead(ctx context.Context) error {
	c.state.Store(int32(Connecting))

	header := http.Header{}
	if token := c.Store.Token(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.Config.WebsocketURL, header)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.state.Store(int32(Connected))
	c.Logger.Info("push channel connected", "url", c.Config.WebsocketURL)

	messages := make(chan pips.D[[]byte])
	go func() {
		defer close(messages)
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			messages <- pips.NewD(payload)
		}
	}()

	return pips.New[[]byte, core.Notification]().
		Then(apply.Map(c.parse)).
		Then(apply.Filter(func(_ context.Context, n core.Notification) (bool, error) {
			return n.ID != 0, nil
		})).
		Then(apply.Each(c.dispatch)).
		Run(ctx, messages).
		Wait(ctx)
}

// parse decodes and normalizes an inbound record. Malformed payloads are
// logged and swallowed, zero-id records are filtered out downstream.
func (c *Channel) parse(_ context.Context, payload []byte) (core.Notification, error) {
	var n core.Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		c.Logger.Warn("discarding malformed push payload", "error", err)
		return core.Notification{}, nil
	}
	if !n.Normalize() {
		c.Logger.Warn("discarding invalid notification record")
		return core.Notification{}, nil
	}
	return n, nil
}

func (c *Channel) dispatch(_ context.Context, n core.Notification) error {
	received.WithLabelValues(string(n.Type)).Inc()

	c.Feed.Push(n)
	c.Popups.Show(n)
	c.Logger.Info("notification received", "type", n.Type, "content", n.Content)
	return nil
}
