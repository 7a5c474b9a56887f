package game

import (
	"context"

	"match-service/domain"

	"github.com/google/uuid"
)

// Side is the rules engine's abstract notion of a player.
type Side int

const (
	SideFirst Side = iota
	SideSecond
)

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeFirstWins
	OutcomeSecondWins
	OutcomeDraw
)

// Board is one game in progress. It owns turn order, legality and terminal
// detection; a Session only asks it.
type Board interface {
	Apply(notation string) bool
	SideToMove() Side
	IsTerminal() bool
	Outcome() Outcome
	Snapshot() string
	MoveCount() int
}

type Engine interface {
	NewBoard(options OptionSet) (Board, error)
	// DefaultOptions lists every engine-level option with its default value.
	DefaultOptions() OptionSet
}

// Conn is a participant or spectator connection.
type Conn interface {
	SendFrame(frame []byte) bool
	Close()
}

type Store interface {
	FindMatch(ctx context.Context, matchID uuid.UUID) (*domain.Match, error)
	JoinMatch(ctx context.Context, matchID, userID uuid.UUID) error
	LeaveMatch(ctx context.Context, matchID, userID uuid.UUID) error
	BeginMatch(ctx context.Context, matchID uuid.UUID) error
	EndMatch(ctx context.Context, matchID uuid.UUID, winner *uuid.UUID) error
	UpdateOptions(ctx context.Context, matchID uuid.UUID, options, gameOptions string) error
	DeleteMatch(ctx context.Context, matchID uuid.UUID) error
	RecordMove(ctx context.Context, matchID, userID uuid.UUID, notation string, ordinal int) error
	ListNotStartedMatchIDs(ctx context.Context) ([]uuid.UUID, error)
}

// Publisher fans match lifecycle notifications out to other processes.
type Publisher interface {
	PublishMessage(ctx context.Context, matchID uuid.UUID, msgType string, dataContent interface{})
}

// Lifecycle notification types.
const (
	MsgMatchCreated   = "match_created"
	MsgPlayerJoined   = "player_joined"
	MsgPlayerLeft     = "player_left"
	MsgMatchStarted   = "match_started"
	MsgMatchEnded     = "match_ended"
	MsgMatchDeleted   = "match_deleted"
	MsgOptionsUpdated = "options_updated"
)

// Publishers broadcasts to every publisher in order.
type Publishers []Publisher

func (p Publishers) PublishMessage(ctx context.Context, matchID uuid.UUID, msgType string, dataContent interface{}) {
	for _, publisher := range p {
		publisher.PublishMessage(ctx, matchID, msgType, dataContent)
	}
}
