package rtclient

import (
	"testing"
	"time"
)

func TestConnState_Transitions(t *testing.T) {
	cases := []struct {
		from, to State
		want     bool
	}{
		{StateDisconnected, StateConnecting, true},
		{StateDisconnected, StateConnected, false},
		{StateDisconnected, StateIdentified, false},
		{StateConnecting, StateConnected, true},
		{StateConnecting, StateDisconnected, true},
		{StateConnecting, StateIdentified, false},
		{StateConnected, StateIdentified, true},
		{StateConnected, StateDisconnected, true},
		{StateConnected, StateConnecting, false},
		{StateIdentified, StateDisconnected, true},
		{StateIdentified, StateConnecting, false},
	}
	for _, tc := range cases {
		cs := &connState{s: tc.from}
		if got := cs.transition(tc.to); got != tc.want {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
		if tc.want && cs.current() != tc.to {
			t.Errorf("%s -> %s did not move state", tc.from, tc.to)
		}
		if !tc.want && cs.current() != tc.from {
			t.Errorf("rejected %s -> %s must not move state", tc.from, tc.to)
		}
	}
}

func TestConnState_SelfTransitionIsNoOp(t *testing.T) {
	cs := &connState{s: StateConnected}
	if !cs.transition(StateConnected) {
		t.Fatalf("transition to current state must succeed")
	}
	if cs.current() != StateConnected {
		t.Fatalf("state changed unexpectedly")
	}
}

func TestReconnectDelay_Schedule(t *testing.T) {
	base := time.Second
	max := 5 * time.Second

	want := []time.Duration{
		1 * time.Second, // attempt 0
		2 * time.Second, // attempt 1
		4 * time.Second, // attempt 2
		5 * time.Second, // attempt 3, capped
		5 * time.Second, // attempt 4, capped
	}
	for attempt, expected := range want {
		if got := reconnectDelay(attempt, base, max); got != expected {
			t.Errorf("attempt %d: delay = %v, want %v", attempt, got, expected)
		}
	}
}

func TestReconnectDelay_ZeroBase(t *testing.T) {
	if got := reconnectDelay(3, 0, 5*time.Second); got != 0 {
		t.Fatalf("zero base must give zero delay, got %v", got)
	}
}
