package game

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"match-service/domain"

	"github.com/google/uuid"
)

type fakeConn struct {
	mu     sync.Mutex
	frames []string
	closed bool
	full   bool
}

func (c *fakeConn) SendFrame(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.full {
		return false
	}
	c.frames = append(c.frames, string(frame))
	return true
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// take returns the frames received so far and forgets them.
func (c *fakeConn) take() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	frames := c.frames
	c.frames = nil
	return frames
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// fakeBoard accepts any notation except "bad". The move "mate" ends the game
// with the mover winning and "draw" ends it drawn.
type fakeBoard struct {
	moves   []string
	outcome Outcome
}

func (b *fakeBoard) Apply(notation string) bool {
	if notation == "bad" || b.IsTerminal() {
		return false
	}
	mover := b.SideToMove()
	b.moves = append(b.moves, notation)
	switch notation {
	case "mate":
		if mover == SideFirst {
			b.outcome = OutcomeFirstWins
		} else {
			b.outcome = OutcomeSecondWins
		}
	case "draw":
		b.outcome = OutcomeDraw
	}
	return true
}

func (b *fakeBoard) SideToMove() Side {
	if len(b.moves)%2 == 0 {
		return SideFirst
	}
	return SideSecond
}

func (b *fakeBoard) IsTerminal() bool { return b.outcome != OutcomeNone }

func (b *fakeBoard) Outcome() Outcome { return b.outcome }

func (b *fakeBoard) Snapshot() string {
	return "board:" + strconv.Itoa(len(b.moves)) + ":" + strings.Join(b.moves, ",")
}

func (b *fakeBoard) MoveCount() int { return len(b.moves) }

type fakeEngine struct {
	err     error
	boards  int
	options []OptionSet
}

func (e *fakeEngine) NewBoard(options OptionSet) (Board, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.boards++
	e.options = append(e.options, options.Clone())
	return &fakeBoard{}, nil
}

func (e *fakeEngine) DefaultOptions() OptionSet {
	return OptionSet{"ClaimDraws": true}
}

type recordedMove struct {
	matchID  uuid.UUID
	userID   uuid.UUID
	notation string
	ordinal  int
}

type fakeStore struct {
	mu sync.Mutex

	joinErr, leaveErr, beginErr, endErr, optionsErr, deleteErr, moveErr error

	joined   []uuid.UUID
	left     []uuid.UUID
	begun    []uuid.UUID
	ended    map[uuid.UUID]*uuid.UUID
	options  map[uuid.UUID][2]string
	deleted  []uuid.UUID
	moves    []recordedMove
	notStart []uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		ended:   make(map[uuid.UUID]*uuid.UUID),
		options: make(map[uuid.UUID][2]string),
	}
}

func (s *fakeStore) FindMatch(ctx context.Context, matchID uuid.UUID) (*domain.Match, error) {
	return nil, domain.ErrNotFound
}

func (s *fakeStore) JoinMatch(ctx context.Context, matchID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.joinErr != nil {
		return s.joinErr
	}
	s.joined = append(s.joined, userID)
	return nil
}

func (s *fakeStore) LeaveMatch(ctx context.Context, matchID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.leaveErr != nil {
		return s.leaveErr
	}
	s.left = append(s.left, userID)
	return nil
}

func (s *fakeStore) BeginMatch(ctx context.Context, matchID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.beginErr != nil {
		return s.beginErr
	}
	s.begun = append(s.begun, matchID)
	return nil
}

func (s *fakeStore) EndMatch(ctx context.Context, matchID uuid.UUID, winner *uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.endErr != nil {
		return s.endErr
	}
	s.ended[matchID] = winner
	return nil
}

func (s *fakeStore) UpdateOptions(ctx context.Context, matchID uuid.UUID, options, gameOptions string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.optionsErr != nil {
		return s.optionsErr
	}
	s.options[matchID] = [2]string{options, gameOptions}
	return nil
}

func (s *fakeStore) DeleteMatch(ctx context.Context, matchID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, matchID)
	return nil
}

func (s *fakeStore) RecordMove(ctx context.Context, matchID, userID uuid.UUID, notation string, ordinal int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.moveErr != nil {
		return s.moveErr
	}
	s.moves = append(s.moves, recordedMove{matchID: matchID, userID: userID, notation: notation, ordinal: ordinal})
	return nil
}

func (s *fakeStore) ListNotStartedMatchIDs(ctx context.Context) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uuid.UUID(nil), s.notStart...), nil
}

type publishedMessage struct {
	matchID uuid.UUID
	msgType string
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []publishedMessage
}

func (p *fakePublisher) PublishMessage(ctx context.Context, matchID uuid.UUID, msgType string, dataContent interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, publishedMessage{matchID: matchID, msgType: msgType})
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.messages))
	for _, msg := range p.messages {
		types = append(types, msg.msgType)
	}
	return types
}

// manualTimers captures scheduled callbacks so tests decide when they fire.
type manualTimers struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	after   time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (m *manualTimers) afterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	timer := &manualTimer{after: d, f: f}
	m.timers = append(m.timers, timer)
	return timer
}

// fire runs every timer that has not been stopped.
func (m *manualTimers) fire() int {
	m.mu.Lock()
	timers := append([]*manualTimer(nil), m.timers...)
	m.mu.Unlock()

	fired := 0
	for _, timer := range timers {
		if timer.stopped {
			continue
		}
		timer.stopped = true
		timer.f()
		fired++
	}
	return fired
}

var errStoreDown = errors.New("store down")
