package game

import (
	"context"

	"match-service/internal/protocol"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Role is who sent a command. PlayerRole and SpectatorRole are the only
// implementations.
type Role interface {
	actor() uuid.UUID
}

type PlayerRole struct {
	UserID uuid.UUID
}

type SpectatorRole struct {
	UserID uuid.UUID
	Name   string
}

func (r PlayerRole) actor() uuid.UUID    { return r.UserID }
func (r SpectatorRole) actor() uuid.UUID { return r.UserID }

// Actor returns the identity behind a role.
func Actor(r Role) uuid.UUID {
	return r.actor()
}

// Directive is the follow-up the Manager must carry out after a command was
// resolved. A nil Directive means nothing further happens.
type Directive interface {
	directive() string
}

type StartMatch struct{}

type EndMatch struct{}

type UpdateOptions struct {
	Option string
	Value  bool
}

type ForfeitMatch struct {
	Winner *uuid.UUID
}

type RemoveOpponent struct {
	UserID uuid.UUID
}

type DeleteMatch struct{}

func (StartMatch) directive() string     { return "start_match" }
func (EndMatch) directive() string       { return "end_match" }
func (UpdateOptions) directive() string  { return "update_options" }
func (ForfeitMatch) directive() string   { return "forfeit_match" }
func (RemoveOpponent) directive() string { return "remove_opponent" }
func (DeleteMatch) directive() string    { return "delete_match" }

// Resolution is the result of resolving one command. Err, when set, goes back
// through the Dispatcher; Directive may be set at the same time.
type Resolution struct {
	Directive Directive
	Err       *protocol.ServerError
}

func fail(err protocol.ServerError) Resolution {
	return Resolution{Err: &err}
}

// MoveRecorder persists accepted moves.
type MoveRecorder interface {
	RecordMove(ctx context.Context, matchID, userID uuid.UUID, notation string, ordinal int) error
}

// Resolver applies client commands to a session. It holds no state of its
// own; the caller must hold the session lock.
type Resolver struct {
	moves      MoveRecorder
	dispatcher *Dispatcher
}

func NewResolver(moves MoveRecorder, dispatcher *Dispatcher) *Resolver {
	return &Resolver{moves: moves, dispatcher: dispatcher}
}

func (r *Resolver) Resolve(ctx context.Context, role Role, cmd protocol.Command, s *Session) Resolution {
	switch role := role.(type) {
	case PlayerRole:
		return r.resolvePlayer(ctx, role.UserID, cmd, s)
	case SpectatorRole:
		return r.resolveSpectator(role, cmd, s)
	default:
		return fail(protocol.ErrInvalidCommand)
	}
}

func (r *Resolver) resolveSpectator(role SpectatorRole, cmd protocol.Command, s *Session) Resolution {
	if !s.IsSpectating(role.UserID) {
		return fail(protocol.ErrInvalidCommand)
	}
	message, ok := cmd.(protocol.MessageCommand)
	if !ok {
		return fail(protocol.ErrInvalidCommand)
	}
	r.dispatcher.Broadcast(s, protocol.MessageEvent{UserID: role.UserID, Text: message.Text})
	return Resolution{}
}

func (r *Resolver) resolvePlayer(ctx context.Context, userID uuid.UUID, cmd protocol.Command, s *Session) Resolution {
	if !s.IsPlayer(userID) {
		return fail(protocol.ErrInvalidCommand)
	}

	switch cmd := cmd.(type) {
	case protocol.ReadyCommand:
		return r.toggleReady(userID, s)
	case protocol.MoveCommand:
		return r.move(ctx, userID, cmd.Notation, s)
	case protocol.SetOptionCommand:
		return r.setOption(userID, cmd, s)
	case protocol.MessageCommand:
		r.dispatcher.Broadcast(s, protocol.MessageEvent{UserID: userID, Text: cmd.Text})
		return Resolution{}
	case protocol.ForfeitCommand:
		return r.forfeit(userID, s)
	default:
		return fail(protocol.ErrInvalidCommand)
	}
}

func (r *Resolver) toggleReady(userID uuid.UUID, s *Session) Resolution {
	ready, ok := s.ToggleReady(userID)
	if !ok {
		return fail(protocol.ErrInvalidCommand)
	}

	r.dispatcher.Broadcast(s, protocol.ReadyEvent{UserID: userID, Ready: ready})
	if s.BothReady() {
		return Resolution{Directive: StartMatch{}}
	}
	return Resolution{}
}

func (r *Resolver) move(ctx context.Context, userID uuid.UUID, notation string, s *Session) Resolution {
	result := s.ApplyMove(userID, notation)
	if !result.Applied {
		return Resolution{Err: result.Rejection}
	}

	var resolution Resolution
	if err := r.moves.RecordMove(ctx, s.ID, userID, notation, result.Ordinal); err != nil {
		zap.L().Error("Failed to record move",
			zap.String("match_id", s.ID.String()),
			zap.String("user_id", userID.String()),
			zap.String("notation", notation),
			zap.Int("ordinal", result.Ordinal),
			zap.Error(err))
		resolution.Err = reject(protocol.ErrUnknown)
	}

	r.dispatcher.Broadcast(s, protocol.StateEvent{Snapshot: s.board.Snapshot()})
	if s.IsOver() {
		r.dispatcher.Broadcast(s, protocol.WinnerEvent{Winner: s.Winner()})
		resolution.Directive = EndMatch{}
	}
	return resolution
}

func (r *Resolver) setOption(userID uuid.UUID, cmd protocol.SetOptionCommand, s *Session) Resolution {
	if err := s.SetOption(userID, cmd.Option, cmd.Value); err != nil {
		return Resolution{Err: err}
	}

	r.dispatcher.Broadcast(s, protocol.SetOptionEvent{Option: cmd.Option, Value: cmd.Value})
	return Resolution{Directive: UpdateOptions{Option: cmd.Option, Value: cmd.Value}}
}

func (r *Resolver) forfeit(userID uuid.UUID, s *Session) Resolution {
	switch s.Phase() {
	case PhaseActive:
		r.dispatcher.Broadcast(s, protocol.ForfeitEvent{UserID: userID})
		s.Terminate()
		return Resolution{Directive: ForfeitMatch{Winner: s.OtherPlayer(userID)}}
	case PhaseLobby, PhaseReady:
		if s.IsHost(userID) {
			return Resolution{Directive: DeleteMatch{}}
		}
		return Resolution{Directive: RemoveOpponent{UserID: userID}}
	default:
		return fail(protocol.ErrInvalidCommand)
	}
}

// Resync replays the events a reconnecting player missed: both READY flags
// and the current board. It is a no-op unless play is under way and the
// player has not been resynced since their last disconnect.
func (r *Resolver) Resync(s *Session, userID uuid.UUID) bool {
	if s.Phase() != PhaseActive || !s.MarkReconnected(userID) {
		return false
	}

	conn := s.ConnOf(userID)
	r.dispatcher.SendTo(s, conn, protocol.ReadyEvent{UserID: s.host.ID, Ready: true})
	if s.opponent != nil {
		r.dispatcher.SendTo(s, conn, protocol.ReadyEvent{UserID: s.opponent.ID, Ready: true})
	}
	r.dispatcher.SendTo(s, conn, protocol.StateEvent{Snapshot: s.board.Snapshot()})
	return true
}

// AdmitSpectator seats a spectator on a started match, announces them to
// everyone and hands them the current board.
func (r *Resolver) AdmitSpectator(s *Session, userID uuid.UUID, name string, conn Conn) *protocol.ServerError {
	if !s.CanSpectate(userID) {
		return reject(protocol.ErrInvalidCommand)
	}

	r.dispatcher.Broadcast(s, protocol.SpectatorJoinEvent{Name: name})
	s.AddSpectator(userID, name, conn)
	r.dispatcher.SendTo(s, conn, protocol.StateEvent{Snapshot: s.board.Snapshot()})
	return nil
}
