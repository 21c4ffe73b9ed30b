package realtime

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/bakehouse/storefront/internal/core/domain"
)

const (
	sendBufferSize = 64
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = 30 * time.Second
	maxFrameSize   = 1 << 12
)

// announceFrame is the client→server identity announcement, sent once per
// connection instance immediately after connecting. There is no
// acknowledgement; the join is assumed to have succeeded if the connection
// stays open.
type announceFrame struct {
	Action string `json:"action"`
	Role   string `json:"role"`
	UserID string `json:"user_id"`
}

const actionAnnounce = "announce"

// Session wraps one websocket connection. It starts unidentified (implicitly
// in "all clients" only); the first valid announce frame joins it to the
// staff room when the role is admin and to the announcer's personal room.
// Identity cannot change mid-connection; a role or user change requires a
// fresh connection.
type Session struct {
	id       string
	conn     *websocket.Conn
	registry *Registry
	send     chan []byte
	done     chan struct{}
	closed   atomic.Bool
	closeWS  sync.Once

	identified bool // read and written only by the read pump
	log        zerolog.Logger
}

func NewSession(registry *Registry, conn *websocket.Conn, log zerolog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:       id,
		conn:     conn,
		registry: registry,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		log:      log.With().Str("conn_id", id).Logger(),
	}
}

func (s *Session) ID() string { return s.id }

// Deliver queues the event for the write pump. It never blocks: a full send
// buffer means the peer is too slow and the registry will detach it.
func (s *Session) Deliver(ev *Event) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	select {
	case s.send <- data:
		return nil
	default:
		return ErrSlowConsumer
	}
}

// Close shuts the connection down. Idempotent.
func (s *Session) Close() error {
	var err error
	if s.closed.CompareAndSwap(false, true) {
		close(s.done)
	}
	s.closeWS.Do(func() {
		err = s.conn.Close()
	})
	return err
}

// Run registers the session and blocks pumping frames until the connection
// dies, then removes every trace of it from the registry.
func (s *Session) Run() {
	s.registry.Register(s)
	go s.writePump()
	s.readPump()
	s.registry.Unregister(s.id)
	_ = s.Close()
}

func (s *Session) readPump() {
	s.conn.SetReadLimit(maxFrameSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame announceFrame
		if err := s.conn.ReadJSON(&frame); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && !s.closed.Load() {
				s.log.Debug().Err(err).Msg("websocket read ended")
			}
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		s.handleAnnounce(frame)
	}
}

func (s *Session) handleAnnounce(frame announceFrame) {
	if frame.Action != actionAnnounce {
		s.log.Warn().Str("action", frame.Action).Msg("unknown client frame ignored")
		return
	}
	if s.identified {
		s.log.Debug().Msg("repeated announce ignored")
		return
	}
	if frame.UserID == "" {
		s.log.Warn().Msg("announce without user id ignored")
		return
	}

	if frame.Role == domain.RoleAdmin {
		s.registry.Join(s.id, Admins())
	}
	s.registry.Join(s.id, Customer(frame.UserID))
	s.identified = true
	s.log.Info().Str("user_id", frame.UserID).Str("role", frame.Role).Msg("connection identified")
}

func (s *Session) writePump() {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-s.done:
			return
		case msg := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.log.Debug().Err(err).Msg("websocket write failed")
				_ = s.Close()
				return
			}
		case <-ping.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				s.log.Debug().Err(err).Msg("websocket ping failed")
				_ = s.Close()
				return
			}
		}
	}
}
