package game

import (
	"sync"
	"time"

	"github.com/KirkDiggler/sketchquest/internal/common/clock"
)

// roomState is the coordinator's per-room runtime. The session repository
// owns players and scores; this only tracks the phase and its timer.
type roomState struct {
	mu sync.Mutex

	phase Phase

	// generation changes on every phase transition. Timer callbacks carry
	// the generation they were armed in and do nothing once it moved on.
	generation uint64

	// at most one pending timer per room
	timer clock.Timer

	offer *wordOffer

	// closed states are no longer reachable from the service map
	closed bool
}

// wordOffer is the pending choice of the previewed drawer
type wordOffer struct {
	drawerID string
	options  []string
}

func (o *wordOffer) has(word string) bool {
	for _, option := range o.options {
		if option == word {
			return true
		}
	}
	return false
}

// advance moves to a new generation and cancels the pending timer
func (st *roomState) advance() {
	st.generation++
	st.stopTimer()
}

func (st *roomState) stopTimer() {
	if st.timer != nil {
		st.timer.Stop()
		st.timer = nil
	}
}

// lockRoom returns the locked state for a room, creating it when missing
func (s *service) lockRoom(roomID string) *roomState {
	for {
		s.statesMu.Lock()
		st, ok := s.states[roomID]
		if !ok {
			st = &roomState{phase: PhaseLobby}
			s.states[roomID] = st
		}
		s.statesMu.Unlock()

		st.mu.Lock()
		if !st.closed {
			return st
		}
		// discarded while we waited, pick up the replacement
		st.mu.Unlock()
	}
}

// current returns the locked state only if it is still on generation gen
func (s *service) current(roomID string, gen uint64) *roomState {
	s.statesMu.Lock()
	st, ok := s.states[roomID]
	s.statesMu.Unlock()
	if !ok {
		return nil
	}

	st.mu.Lock()
	if st.closed || st.generation != gen {
		st.mu.Unlock()
		return nil
	}
	// the timer that brought us here has fired
	st.timer = nil
	return st
}

// discard drops a room's runtime state. Must hold st.mu.
func (s *service) discard(roomID string, st *roomState) {
	st.advance()
	st.closed = true
	st.offer = nil

	s.statesMu.Lock()
	if s.states[roomID] == st {
		delete(s.states, roomID)
	}
	s.statesMu.Unlock()
}

// schedule arms the room's single timer. Must hold st.mu.
func (s *service) schedule(st *roomState, roomID string, d time.Duration, fn func(roomID string, gen uint64)) {
	st.stopTimer()
	if d < 0 {
		d = 0
	}
	gen := st.generation
	st.timer = s.clock.AfterFunc(d, func() {
		fn(roomID, gen)
	})
}
