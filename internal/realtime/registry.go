package realtime

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bakehouse/storefront/internal/api/metrics"
)

var ErrSessionClosed = errors.New("session closed")
var ErrSlowConsumer = errors.New("send buffer full")

// Subscriber is one live connection as the registry sees it. The production
// implementation is *Session; tests substitute in-memory fakes.
type Subscriber interface {
	ID() string
	Deliver(ev *Event) error
	Close() error
}

// Registry tracks live connections and their room memberships, and performs
// the primitive deliver-to-room / deliver-to-all fan-out. Rooms have no
// lifecycle of their own: one exists exactly while at least one connection
// has joined it.
type Registry struct {
	mu       sync.RWMutex
	conns    map[string]Subscriber
	rooms    map[Room]map[string]Subscriber
	memberOf map[string]map[Room]struct{}
	log      zerolog.Logger
}

func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		conns:    make(map[string]Subscriber),
		rooms:    make(map[Room]map[string]Subscriber),
		memberOf: make(map[string]map[Room]struct{}),
		log:      log,
	}
}

// Register adds a live connection. It starts with no room memberships; it
// still receives deliver-to-all events.
func (r *Registry) Register(s Subscriber) {
	r.mu.Lock()
	r.conns[s.ID()] = s
	r.mu.Unlock()

	metrics.RealtimeConnectionsActive.Inc()
	r.log.Info().Str("conn_id", s.ID()).Msg("connection registered")
}

// Unregister removes a connection and all of its memberships. Safe to call
// for an unknown id.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	_, known := r.conns[id]
	if known {
		delete(r.conns, id)
		r.dropMembershipsLocked(id)
	}
	r.mu.Unlock()

	if known {
		metrics.RealtimeConnectionsActive.Dec()
		r.log.Info().Str("conn_id", id).Msg("connection unregistered")
	}
}

// Join adds the connection to a room. Idempotent: joining a room twice is a
// no-op. A connection may hold at most one membership per room family (one
// role room, one personal room); joining a second room of the same family
// replaces the first.
func (r *Registry) Join(id string, room Room) {
	if room.IsZero() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.conns[id]
	if !ok {
		r.log.Warn().Str("conn_id", id).Stringer("room", room).Msg("join for unknown connection")
		return
	}

	for existing := range r.memberOf[id] {
		if existing == room {
			return
		}
		if existing.sameKind(room) {
			r.leaveLocked(id, existing)
		}
	}

	if r.rooms[room] == nil {
		r.rooms[room] = make(map[string]Subscriber)
	}
	r.rooms[room][id] = s
	if r.memberOf[id] == nil {
		r.memberOf[id] = make(map[Room]struct{})
	}
	r.memberOf[id][room] = struct{}{}

	r.log.Debug().Str("conn_id", id).Stringer("room", room).Msg("joined room")
}

// Leave removes the connection from a room. No error if it is not a member.
func (r *Registry) Leave(id string, room Room) {
	r.mu.Lock()
	r.leaveLocked(id, room)
	r.mu.Unlock()
}

func (r *Registry) leaveLocked(id string, room Room) {
	if members, ok := r.rooms[room]; ok {
		delete(members, id)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
	if rooms, ok := r.memberOf[id]; ok {
		delete(rooms, room)
	}
}

func (r *Registry) dropMembershipsLocked(id string) {
	for room := range r.memberOf[id] {
		r.leaveLocked(id, room)
	}
	delete(r.memberOf, id)
}

// DeliverToRoom sends the event to every connection currently in room. An
// empty room is a silent no-op, not an error.
func (r *Registry) DeliverToRoom(room Room, ev *Event) {
	r.mu.RLock()
	members := make([]Subscriber, 0, len(r.rooms[room]))
	for _, s := range r.rooms[room] {
		members = append(members, s)
	}
	r.mu.RUnlock()

	r.deliver(members, ev, room)
}

// DeliverToAll sends the event to every live connection regardless of room.
func (r *Registry) DeliverToAll(ev *Event) {
	r.mu.RLock()
	all := make([]Subscriber, 0, len(r.conns))
	for _, s := range r.conns {
		all = append(all, s)
	}
	r.mu.RUnlock()

	r.deliver(all, ev, Room{})
}

// deliver writes to each target outside the registry lock. A dead or slow
// connection is logged and detached; it never blocks or fails delivery to
// the rest of the room.
func (r *Registry) deliver(targets []Subscriber, ev *Event, room Room) {
	for _, s := range targets {
		if err := s.Deliver(ev); err != nil {
			metrics.RealtimeDeliveryErrorsTotal.Inc()
			r.log.Warn().
				Err(err).
				Str("conn_id", s.ID()).
				Stringer("room", room).
				Str("kind", string(ev.Kind)).
				Msg("delivery failed, detaching connection")
			r.Unregister(s.ID())
			_ = s.Close()
			continue
		}
		metrics.RealtimeDeliveriesTotal.WithLabelValues(string(ev.Kind)).Inc()
	}
}

// CloseAll closes every live connection. Used on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	conns := make([]Subscriber, 0, len(r.conns))
	for _, s := range r.conns {
		conns = append(conns, s)
	}
	r.conns = make(map[string]Subscriber)
	r.rooms = make(map[Room]map[string]Subscriber)
	r.memberOf = make(map[string]map[Room]struct{})
	r.mu.Unlock()

	for _, s := range conns {
		_ = s.Close()
		metrics.RealtimeConnectionsActive.Dec()
	}
}

// ConnectionCount returns the number of live connections.
func (r *Registry) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// RoomSize returns the number of connections currently in room.
func (r *Registry) RoomSize(room Room) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[room])
}
