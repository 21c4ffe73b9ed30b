// Package rtclient is the Go client for the storefront's realtime channel.
// It owns a single websocket connection, survives transient network loss
// with bounded reconnection, and keeps local caches consistent with
// server-pushed events.
package rtclient

import (
	"encoding/json"
	"reflect"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	defaultMaxAttempts      = 5
	defaultBaseDelay        = time.Second
	defaultMaxDelay         = 5 * time.Second
	defaultHandshakeTimeout = 10 * time.Second
)

// Handler receives one pushed event.
type Handler func(Event)

// Options configures a Client.
type Options struct {
	// URL is the websocket endpoint, e.g. "ws://host/ws".
	URL string
	// Role and UserID form the identity announced after every (re)connect.
	// Both empty means the client stays unidentified (catalog events only).
	Role   string
	UserID string
	// MaxAttempts bounds consecutive failed dials before the client gives up
	// permanently. Defaults to 5.
	MaxAttempts int
	// BaseDelay and MaxDelay shape the reconnect backoff (doubled per failed
	// attempt, capped). Defaults: 1s, 5s.
	BaseDelay time.Duration
	MaxDelay  time.Duration
	// HandshakeTimeout bounds each dial. Defaults to 10s.
	HandshakeTimeout time.Duration

	Logger zerolog.Logger
}

// Client owns one realtime connection per process and gives the rest of the
// application a stable On/Off registration surface that is independent of
// connection churn. Connection errors are logged, never surfaced as panics
// or errors to callers; after exhausting reconnect attempts the client stays
// disconnected until recreated.
type Client struct {
	opts  Options
	state connState

	mu       sync.Mutex
	handlers map[string]map[uintptr]Handler
	conn     *websocket.Conn

	started   bool
	closed    chan struct{}
	closeOnce sync.Once
	dialer    *websocket.Dialer
	log       zerolog.Logger
}

// New creates a Client. No I/O happens until Start.
func New(opts Options) *Client {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = defaultBaseDelay
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = defaultMaxDelay
	}
	if opts.HandshakeTimeout <= 0 {
		opts.HandshakeTimeout = defaultHandshakeTimeout
	}

	return &Client{
		opts:     opts,
		handlers: make(map[string]map[uintptr]Handler),
		closed:   make(chan struct{}),
		dialer:   &websocket.Dialer{HandshakeTimeout: opts.HandshakeTimeout},
		log:      opts.Logger,
	}
}

// Start launches the connect/reconnect loop. Calling it twice is a no-op.
func (c *Client) Start() {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	go c.run()
}

// Close tears the connection down and stops reconnecting.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
	})
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
	c.state.transition(StateDisconnected)
}

// IsConnected reports whether a live connection exists right now. UI code
// observes this to show degraded-mode messaging, and its false→true edge is
// the signal to refetch full snapshots (events published while disconnected
// are lost permanently).
func (c *Client) IsConnected() bool {
	s := c.state.current()
	return s == StateConnected || s == StateIdentified
}

// State returns the current connection state.
func (c *Client) State() State {
	return c.state.current()
}

// On registers a handler for an event kind. Safe to call before Start.
// Registrations are idempotent per (kind, handler): registering the same
// function twice for the same kind delivers each event once.
func (c *Client) On(kind string, h Handler) {
	if h == nil {
		return
	}
	key := reflect.ValueOf(h).Pointer()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handlers[kind] == nil {
		c.handlers[kind] = make(map[uintptr]Handler)
	}
	c.handlers[kind][key] = h
}

// Off removes a previously registered handler. No-op if it was never
// registered.
func (c *Client) Off(kind string, h Handler) {
	if h == nil {
		return
	}
	key := reflect.ValueOf(h).Pointer()

	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.handlers[kind]; ok {
		delete(m, key)
		if len(m) == 0 {
			delete(c.handlers, kind)
		}
	}
}

// run is the reconnect loop: dial, announce, read until the connection dies,
// back off, repeat. Consecutive dial failures beyond MaxAttempts end the
// loop for good.
func (c *Client) run() {
	failures := 0
	for {
		select {
		case <-c.closed:
			return
		default:
		}

		c.state.transition(StateConnecting)
		conn, resp, err := c.dialer.Dial(c.opts.URL, nil)
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		if err != nil {
			c.state.transition(StateDisconnected)
			failures++
			if failures >= c.opts.MaxAttempts {
				c.log.Error().Err(err).Int("attempts", failures).Msg("realtime reconnect attempts exhausted")
				return
			}
			c.log.Warn().Err(err).Int("attempt", failures).Msg("realtime dial failed, retrying")
			if !c.sleep(reconnectDelay(failures-1, c.opts.BaseDelay, c.opts.MaxDelay)) {
				return
			}
			continue
		}

		failures = 0
		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()
		c.state.transition(StateConnected)
		c.log.Info().Str("url", c.opts.URL).Msg("realtime connected")

		// The server forgets membership on every disconnect, so identity is
		// re-announced on every successful (re)connect.
		if c.opts.UserID != "" {
			if err := conn.WriteJSON(announce{Action: "announce", Role: c.opts.Role, UserID: c.opts.UserID}); err != nil {
				c.log.Warn().Err(err).Msg("identity announce failed")
			} else {
				c.state.transition(StateIdentified)
			}
		}

		c.readLoop(conn)

		c.mu.Lock()
		if c.conn == conn {
			c.conn = nil
		}
		c.mu.Unlock()
		_ = conn.Close()
		c.state.transition(StateDisconnected)

		select {
		case <-c.closed:
			return
		default:
			c.log.Warn().Msg("realtime connection lost, reconnecting")
			if !c.sleep(c.opts.BaseDelay) {
				return
			}
		}
	}
}

// readLoop decodes envelopes and dispatches them until the connection fails.
func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-c.closed:
			default:
				c.log.Debug().Err(err).Msg("realtime read ended")
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			c.log.Warn().Err(err).Msg("malformed realtime event dropped")
			continue
		}
		c.dispatch(ev)
	}
}

func (c *Client) dispatch(ev Event) {
	c.mu.Lock()
	registered := c.handlers[ev.Kind]
	hs := make([]Handler, 0, len(registered))
	for _, h := range registered {
		hs = append(hs, h)
	}
	c.mu.Unlock()

	for _, h := range hs {
		c.invoke(h, ev)
	}
}

// invoke shields the read loop from handler panics; a broken handler must
// not take the connection down with it.
func (c *Client) invoke(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Any("panic", r).Str("kind", ev.Kind).Msg("event handler panicked")
		}
	}()
	h(ev)
}

// sleep waits for d unless the client is closed first; reports whether the
// caller should keep going.
func (c *Client) sleep(d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-c.closed:
		return false
	case <-t.C:
		return true
	}
}
