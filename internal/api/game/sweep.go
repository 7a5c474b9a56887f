package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Timer is the part of *time.Timer the sweeper needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once wrapped.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Sweeper runs one delayed check per match. Scheduling a match again replaces
// its pending check.
type Sweeper struct {
	after     time.Duration
	afterFunc AfterFunc

	mu      sync.Mutex
	pending map[uuid.UUID]*sweepEntry
	stopped bool
}

type sweepEntry struct {
	timer Timer
}

func NewSweeper(after time.Duration, afterFunc AfterFunc) *Sweeper {
	if afterFunc == nil {
		afterFunc = realAfterFunc
	}
	return &Sweeper{
		after:     after,
		afterFunc: afterFunc,
		pending:   make(map[uuid.UUID]*sweepEntry),
	}
}

func (s *Sweeper) Schedule(matchID uuid.UUID, check func(uuid.UUID)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if previous, ok := s.pending[matchID]; ok {
		previous.timer.Stop()
	}

	entry := &sweepEntry{}
	s.pending[matchID] = entry
	entry.timer = s.afterFunc(s.after, func() {
		s.mu.Lock()
		if current, ok := s.pending[matchID]; ok && current == entry {
			delete(s.pending, matchID)
		}
		s.mu.Unlock()

		check(matchID)
	})
}

func (s *Sweeper) Cancel(matchID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.pending[matchID]; ok {
		entry.timer.Stop()
		delete(s.pending, matchID)
	}
}

// Pending returns the number of scheduled checks.
func (s *Sweeper) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop cancels every pending check and refuses new ones.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for matchID, entry := range s.pending {
		entry.timer.Stop()
		delete(s.pending, matchID)
	}
}
