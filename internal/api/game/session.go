package game

import (
	"errors"
	"sync"
	"time"

	"match-service/internal/protocol"

	"github.com/google/uuid"
)

// Phase is where a session is in its lifecycle. Operations check the phase
// first instead of inferring it from which fields are set.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseReady
	PhaseActive
	PhaseTerminal
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseReady:
		return "ready"
	case PhaseActive:
		return "active"
	case PhaseTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Started reports whether a board exists.
func (p Phase) Started() bool {
	return p == PhaseActive || p == PhaseTerminal
}

var (
	ErrAlreadyStarted = errors.New("match already started")
	ErrNotParticipant = errors.New("user is not a participant")
)

type Player struct {
	ID          uuid.UUID
	Name        string
	IsReady     bool
	IsConnected bool

	conn     Conn
	resynced bool
}

type Spectator struct {
	ID   uuid.UUID
	Name string
	conn Conn
}

type AddResult int

const (
	AddAccepted AddResult = iota
	AddAlreadyHost
	AddFull
	AddRejected
)

func (r AddResult) String() string {
	switch r {
	case AddAccepted:
		return "accepted"
	case AddAlreadyHost:
		return "already_host"
	case AddFull:
		return "full"
	default:
		return "rejected"
	}
}

// MoveResult is what ApplyMove reports back. Rejection is set when the move
// did not take effect.
type MoveResult struct {
	Applied   bool
	Ordinal   int
	Rejection *protocol.ServerError
}

// Session is the live authority for one match. Every method expects the
// caller to hold mu; the Manager takes it before resolving anything.
type Session struct {
	mu sync.Mutex

	ID        uuid.UUID
	CreatedAt time.Time

	host       *Player
	opponent   *Player
	options    Options
	phase      Phase
	board      Board
	spectators map[uuid.UUID]*Spectator
}

func NewSession(matchID uuid.UUID, hostID uuid.UUID, hostName string, options Options) *Session {
	return &Session{
		ID:         matchID,
		CreatedAt:  time.Now(),
		host:       &Player{ID: hostID, Name: hostName, IsConnected: true},
		options:    options.Clone(),
		phase:      PhaseLobby,
		spectators: make(map[uuid.UUID]*Spectator),
	}
}

func (s *Session) Phase() Phase { return s.phase }

func (s *Session) Host() Player { return *s.host }

// Opponent returns a copy of the opponent, if one has joined.
func (s *Session) Opponent() (Player, bool) {
	if s.opponent == nil {
		return Player{}, false
	}
	return *s.opponent, true
}

func (s *Session) Options() Options { return s.options.Clone() }

func (s *Session) Board() Board { return s.board }

func (s *Session) IsHost(userID uuid.UUID) bool {
	return s.host.ID == userID
}

func (s *Session) IsOpponent(userID uuid.UUID) bool {
	return s.opponent != nil && s.opponent.ID == userID
}

func (s *Session) IsPlayer(userID uuid.UUID) bool {
	return s.IsHost(userID) || s.IsOpponent(userID)
}

func (s *Session) player(userID uuid.UUID) *Player {
	switch {
	case s.IsHost(userID):
		return s.host
	case s.IsOpponent(userID):
		return s.opponent
	default:
		return nil
	}
}

// OtherPlayer returns the id of the participant that is not userID.
func (s *Session) OtherPlayer(userID uuid.UUID) *uuid.UUID {
	switch {
	case s.IsHost(userID) && s.opponent != nil:
		id := s.opponent.ID
		return &id
	case s.IsOpponent(userID):
		id := s.host.ID
		return &id
	default:
		return nil
	}
}

// AddParticipant seats userID. The host rejoining is a reconnect; a second
// distinct user can never replace an existing opponent.
func (s *Session) AddParticipant(userID uuid.UUID, name string) AddResult {
	if s.IsHost(userID) {
		s.host.IsConnected = true
		return AddAlreadyHost
	}
	if s.IsSpectating(userID) {
		return AddRejected
	}
	if s.opponent != nil {
		if s.opponent.ID != userID {
			return AddFull
		}
		s.opponent.IsConnected = true
		return AddAccepted
	}
	if s.phase.Started() {
		return AddRejected
	}

	s.opponent = &Player{ID: userID, Name: name, IsConnected: true}
	return AddAccepted
}

func (s *Session) RemoveOpponent(userID uuid.UUID) error {
	if !s.IsOpponent(userID) {
		return ErrNotParticipant
	}
	if s.phase.Started() {
		return ErrAlreadyStarted
	}
	s.opponent = nil
	s.phase = PhaseLobby
	return nil
}

// ToggleReady flips the readiness of userID. ok is false when readiness is
// meaningless: play started, no opponent, or userID is not a player.
func (s *Session) ToggleReady(userID uuid.UUID) (ready bool, ok bool) {
	if s.phase.Started() || s.opponent == nil {
		return false, false
	}
	p := s.player(userID)
	if p == nil {
		return false, false
	}

	p.IsReady = !p.IsReady
	if s.BothReady() {
		s.phase = PhaseReady
	} else {
		s.phase = PhaseLobby
	}
	return p.IsReady, true
}

func (s *Session) BothReady() bool {
	return s.opponent != nil && s.host.IsReady && s.opponent.IsReady
}

// BeginPlay installs the board. It is only legal once both players are ready
// and only once per session.
func (s *Session) BeginPlay(board Board) error {
	if s.phase.Started() || s.board != nil {
		return ErrAlreadyStarted
	}
	if !s.BothReady() {
		return errors.New("both players must be ready")
	}
	s.board = board
	s.phase = PhaseActive
	return nil
}

func (s *Session) sideOf(userID uuid.UUID) (Side, bool) {
	hostSide, opponentSide := SideFirst, SideSecond
	if !s.options.HostIsWhite() {
		hostSide, opponentSide = SideSecond, SideFirst
	}
	switch {
	case s.IsHost(userID):
		return hostSide, true
	case s.IsOpponent(userID):
		return opponentSide, true
	default:
		return 0, false
	}
}

func (s *Session) IsTurnOf(userID uuid.UUID) bool {
	if s.board == nil {
		return false
	}
	side, ok := s.sideOf(userID)
	return ok && s.board.SideToMove() == side
}

func (s *Session) IsOver() bool {
	return s.board != nil && s.board.IsTerminal()
}

// Winner maps the engine's outcome onto a participant. Draws and unfinished
// games have no winner.
func (s *Session) Winner() *uuid.UUID {
	if s.board == nil || !s.board.IsTerminal() || s.opponent == nil {
		return nil
	}

	var first, second uuid.UUID
	if s.options.HostIsWhite() {
		first, second = s.host.ID, s.opponent.ID
	} else {
		first, second = s.opponent.ID, s.host.ID
	}

	switch s.board.Outcome() {
	case OutcomeFirstWins:
		return &first
	case OutcomeSecondWins:
		return &second
	default:
		return nil
	}
}

// ApplyMove hands the move to the board. On success the ordinal is the
// board's move counter after the move.
func (s *Session) ApplyMove(userID uuid.UUID, notation string) MoveResult {
	if s.phase != PhaseActive {
		return MoveResult{Rejection: reject(protocol.ErrInvalidCommand)}
	}
	if !s.IsTurnOf(userID) {
		return MoveResult{Rejection: reject(protocol.ErrNotPlayerTurn)}
	}
	if !s.board.Apply(notation) {
		rejection := protocol.InvalidMovement(notation)
		return MoveResult{Rejection: &rejection}
	}
	if s.board.IsTerminal() {
		s.phase = PhaseTerminal
	}
	return MoveResult{Applied: true, Ordinal: s.board.MoveCount()}
}

func (s *Session) SetOption(userID uuid.UUID, option string, value bool) *protocol.ServerError {
	if s.phase.Started() || !s.IsHost(userID) {
		return reject(protocol.ErrOptionNonModifiable)
	}
	if !s.options.Set(option, value) {
		return reject(protocol.ErrInvalidCommand)
	}
	return nil
}

// Terminate marks the session as finished, for forfeits.
func (s *Session) Terminate() {
	s.phase = PhaseTerminal
}

func (s *Session) MarkDisconnected(userID uuid.UUID) {
	if p := s.player(userID); p != nil {
		p.IsConnected = false
		p.conn = nil
		p.resynced = false
	}
}

// MarkReconnecting attaches a fresh connection to userID.
func (s *Session) MarkReconnecting(userID uuid.UUID, conn Conn) {
	if p := s.player(userID); p != nil {
		p.IsConnected = true
		p.conn = conn
	}
}

// MarkReconnected reports true the first time it is called after a
// disconnect, meaning the resync burst is still owed.
func (s *Session) MarkReconnected(userID uuid.UUID) bool {
	p := s.player(userID)
	if p == nil || p.resynced {
		return false
	}
	p.resynced = true
	return true
}

// ConnOf returns the live connection of a participant.
func (s *Session) ConnOf(userID uuid.UUID) Conn {
	if p := s.player(userID); p != nil {
		return p.conn
	}
	return nil
}

// HasLiveParticipant is true when host or opponent is connected.
func (s *Session) HasLiveParticipant() bool {
	return s.host.IsConnected || (s.opponent != nil && s.opponent.IsConnected)
}

func (s *Session) IsSpectating(userID uuid.UUID) bool {
	_, ok := s.spectators[userID]
	return ok
}

// CanSpectate reports whether userID may watch: play has started and they
// hold no other role in this match.
func (s *Session) CanSpectate(userID uuid.UUID) bool {
	return s.phase.Started() && !s.IsPlayer(userID) && !s.IsSpectating(userID)
}

// AddSpectator admits userID as a spectator of a started match.
func (s *Session) AddSpectator(userID uuid.UUID, name string, conn Conn) bool {
	if !s.CanSpectate(userID) {
		return false
	}
	s.spectators[userID] = &Spectator{ID: userID, Name: name, conn: conn}
	return true
}

func (s *Session) RemoveSpectator(userID uuid.UUID) (Spectator, bool) {
	spectator, ok := s.spectators[userID]
	if !ok {
		return Spectator{}, false
	}
	delete(s.spectators, userID)
	return *spectator, true
}

func (s *Session) SpectatorCount() int {
	return len(s.spectators)
}

// recipients lists every live connection in delivery order: host, opponent,
// then spectators.
func (s *Session) recipients() []Conn {
	conns := make([]Conn, 0, 2+len(s.spectators))
	if s.host.conn != nil {
		conns = append(conns, s.host.conn)
	}
	if s.opponent != nil && s.opponent.conn != nil {
		conns = append(conns, s.opponent.conn)
	}
	for _, spectator := range s.spectators {
		if spectator.conn != nil {
			conns = append(conns, spectator.conn)
		}
	}
	return conns
}

func reject(err protocol.ServerError) *protocol.ServerError {
	return &err
}
