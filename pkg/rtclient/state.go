package rtclient

import (
	"sync"
	"time"
)

// State is the connection lifecycle of the subscription manager.
type State int

const (
	// StateDisconnected: no connection, and not currently dialing. Terminal
	// once reconnect attempts are exhausted.
	StateDisconnected State = iota
	// StateConnecting: a dial is in flight.
	StateConnecting
	// StateConnected: the socket is open but identity has not been announced.
	StateConnected
	// StateIdentified: identity announced; server-side room membership is in
	// place.
	StateIdentified
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateIdentified:
		return "identified"
	default:
		return "disconnected"
	}
}

// validStateTransitions encodes the legal moves of the reconnect machine, so
// the reconnect logic is checkable without a live socket.
var validStateTransitions = map[State][]State{
	StateDisconnected: {StateConnecting},
	StateConnecting:   {StateConnected, StateDisconnected},
	StateConnected:    {StateIdentified, StateDisconnected},
	StateIdentified:   {StateDisconnected},
}

// connState is the thread-safe holder of the current State.
type connState struct {
	mu sync.RWMutex
	s  State
}

// transition moves to next if that is a legal transition and reports whether
// it happened. Transitioning to the current state is a no-op success.
func (c *connState) transition(next State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.s == next {
		return true
	}
	for _, allowed := range validStateTransitions[c.s] {
		if allowed == next {
			c.s = next
			return true
		}
	}
	return false
}

func (c *connState) current() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.s
}

// reconnectDelay returns the wait before the given consecutive failed
// attempt (0-based): base doubled per attempt, capped at max.
func reconnectDelay(attempt int, base, max time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	delay := base
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}
	if delay > max {
		return max
	}
	return delay
}
