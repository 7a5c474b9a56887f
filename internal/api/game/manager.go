package game

import (
	"context"
	"fmt"
	"time"

	"match-service/domain"
	"match-service/internal/protocol"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Config struct {
	// StaleAfter is how long an un-started match survives its host leaving.
	StaleAfter time.Duration
	// StoreTimeout bounds every persistence call made while a session is locked.
	StoreTimeout time.Duration
}

// LifecycleEvent is the payload published for every match lifecycle change.
type LifecycleEvent struct {
	MatchID uuid.UUID  `json:"match_id"`
	UserID  *uuid.UUID `json:"user_id,omitempty"`
	Winner  *uuid.UUID `json:"winner_id,omitempty"`
	Phase   string     `json:"phase"`
}

// Manager owns match lifecycles. HTTP use cases and websocket connections
// go through it; it locks a session, resolves, dispatches and persists.
type Manager struct {
	registry   *Registry
	resolver   *Resolver
	dispatcher *Dispatcher
	engine     Engine
	store      Store
	publisher  Publisher
	sweeper    *Sweeper
	cfg        Config
}

func NewManager(store Store, engine Engine, publisher Publisher, cfg Config, afterFunc AfterFunc) *Manager {
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 5 * time.Minute
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = 5 * time.Second
	}
	if publisher == nil {
		publisher = Publishers{}
	}

	dispatcher := NewDispatcher()
	return &Manager{
		registry:   NewRegistry(),
		resolver:   NewResolver(store, dispatcher),
		dispatcher: dispatcher,
		engine:     engine,
		store:      store,
		publisher:  publisher,
		sweeper:    NewSweeper(cfg.StaleAfter, afterFunc),
		cfg:        cfg,
	}
}

func (m *Manager) Registry() *Registry { return m.registry }

// RegisterMatch creates the live session for a freshly persisted match.
func (m *Manager) RegisterMatch(ctx context.Context, match *domain.Match, hostName string) (*Session, error) {
	options := Options{
		Match:  ParseOptions(match.Options, DefaultMatchOptions()),
		Engine: ParseOptions(match.GameOptions, m.engine.DefaultOptions()),
	}

	session, err := m.registry.Create(match.ID, match.HostID, hostName, options)
	if err != nil {
		return nil, err
	}

	m.publish(ctx, session, MsgMatchCreated, &match.HostID, nil)
	return session, nil
}

// DefaultOptions returns the option sets a new match starts with.
func (m *Manager) DefaultOptions() Options {
	return Options{Match: DefaultMatchOptions(), Engine: m.engine.DefaultOptions()}
}

func (m *Manager) lookup(matchID uuid.UUID) (*Session, error) {
	session, ok := m.registry.Lookup(matchID)
	if !ok {
		return nil, fmt.Errorf("%w: match %s is not live", domain.ErrNotFound, matchID)
	}
	return session, nil
}

// AddUser seats userID in the match and persists the join. The host joining
// their own match is treated as a reconnect.
func (m *Manager) AddUser(ctx context.Context, matchID, userID uuid.UUID, name string) (AddResult, error) {
	session, err := m.lookup(matchID)
	if err != nil {
		return AddRejected, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	rejoin := session.IsOpponent(userID)
	result := session.AddParticipant(userID, name)
	switch result {
	case AddFull:
		return result, fmt.Errorf("%w: %s", domain.ErrMatchFull, matchID)
	case AddRejected:
		return result, fmt.Errorf("%w: cannot join match %s", domain.ErrConflict, matchID)
	case AddAlreadyHost:
		return result, nil
	}
	if rejoin {
		return result, nil
	}

	storeCtx, cancel := context.WithTimeout(ctx, m.cfg.StoreTimeout)
	defer cancel()
	if err := m.store.JoinMatch(storeCtx, matchID, userID); err != nil {
		_ = session.RemoveOpponent(userID)
		return AddRejected, err
	}

	m.dispatcher.Broadcast(session, protocol.JoinEvent{UserID: userID})
	m.publish(ctx, session, MsgPlayerJoined, &userID, nil)
	return result, nil
}

// Leave is the HTTP equivalent of a player sending FF.
func (m *Manager) Leave(ctx context.Context, matchID, userID uuid.UUID) error {
	session, err := m.lookup(matchID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if !session.IsPlayer(userID) {
		return fmt.Errorf("%w: not a player of match %s", domain.ErrForbidden, matchID)
	}

	resolution := m.resolver.Resolve(ctx, PlayerRole{UserID: userID}, protocol.ForfeitCommand{}, session)
	if resolution.Err != nil {
		return fmt.Errorf("%w: %s", domain.ErrConflict, resolution.Err.Description)
	}
	m.execute(ctx, session, userID, session.ConnOf(userID), resolution.Directive)
	return nil
}

// DeleteMatch removes an un-started match on behalf of its host.
func (m *Manager) DeleteMatch(ctx context.Context, matchID, userID uuid.UUID) error {
	session, err := m.lookup(matchID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if !session.IsHost(userID) {
		return fmt.Errorf("%w: only the host can delete match %s", domain.ErrForbidden, matchID)
	}
	if session.Phase().Started() {
		return fmt.Errorf("%w: match %s already started", domain.ErrConflict, matchID)
	}
	if !m.deleteMatch(ctx, session, userID, nil) {
		return fmt.Errorf("%w: failed to delete match %s", domain.ErrInternal, matchID)
	}
	return nil
}

// ConnectPlayer attaches a websocket to a seated player. A previous live
// connection of the same player is closed. A player reconnecting to a match
// in progress receives the resync burst.
func (m *Manager) ConnectPlayer(ctx context.Context, matchID, userID uuid.UUID, conn Conn) error {
	session, err := m.lookup(matchID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if !session.IsPlayer(userID) {
		return fmt.Errorf("%w: not a player of match %s", domain.ErrForbidden, matchID)
	}

	if previous := session.ConnOf(userID); previous != nil && previous != conn {
		previous.Close()
		session.MarkDisconnected(userID)
	}
	session.MarkReconnecting(userID, conn)
	if session.IsHost(userID) {
		m.sweeper.Cancel(matchID)
	}

	if m.resolver.Resync(session, userID) {
		zap.L().Info("Resynced reconnecting player",
			zap.String("match_id", matchID.String()),
			zap.String("user_id", userID.String()))
	}
	return nil
}

// ConnectSpectator admits a spectator to a started match.
func (m *Manager) ConnectSpectator(ctx context.Context, matchID, userID uuid.UUID, name string, conn Conn) error {
	session, err := m.lookup(matchID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if rejection := m.resolver.AdmitSpectator(session, userID, name, conn); rejection != nil {
		return fmt.Errorf("%w: cannot spectate match %s", domain.ErrForbidden, matchID)
	}
	return nil
}

// HandleFrame parses and resolves one inbound text frame.
func (m *Manager) HandleFrame(ctx context.Context, matchID uuid.UUID, role Role, conn Conn, text string) {
	actor := Actor(role)

	session, ok := m.registry.Lookup(matchID)
	if !ok {
		m.dispatcher.SendError(nil, conn, &actor, protocol.ErrInvalidCommand)
		return
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if _, isPlayer := role.(PlayerRole); isPlayer && session.IsPlayer(actor) && session.ConnOf(actor) != conn {
		zap.L().Debug("Ignoring frame from superseded connection",
			zap.String("match_id", matchID.String()),
			zap.String("user_id", actor.String()))
		return
	}

	cmd, err := protocol.Parse(text)
	if err != nil {
		m.dispatcher.SendError(session, conn, &actor, protocol.ErrInvalidCommand)
		return
	}

	resolution := m.resolver.Resolve(ctx, role, cmd, session)
	if resolution.Err != nil {
		m.dispatcher.SendError(session, conn, &actor, *resolution.Err)
	}
	m.execute(ctx, session, actor, conn, resolution.Directive)
}

// Disconnect is called when a connection's read loop ends. Players are only
// marked disconnected; spectators are removed and announced.
func (m *Manager) Disconnect(ctx context.Context, matchID uuid.UUID, role Role, conn Conn) {
	session, ok := m.registry.Lookup(matchID)
	if !ok {
		return
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	switch role := role.(type) {
	case SpectatorRole:
		spectator, ok := session.spectators[role.UserID]
		if !ok || spectator.conn != conn {
			return
		}
		session.RemoveSpectator(role.UserID)
		m.dispatcher.Broadcast(session, protocol.SpectatorLeaveEvent{Name: spectator.Name})
	case PlayerRole:
		if session.ConnOf(role.UserID) != conn {
			return
		}
		session.MarkDisconnected(role.UserID)
		zap.L().Info("Player disconnected",
			zap.String("match_id", matchID.String()),
			zap.String("user_id", role.UserID.String()),
			zap.String("phase", session.Phase().String()))

		if session.IsHost(role.UserID) && !session.Phase().Started() {
			m.sweeper.Schedule(matchID, m.expire)
		}
	}
}

// HasSession reports whether the match has a live session in this process,
// whether or not anyone is connected to it. ConnectPlayer and
// ConnectSpectator decide who may attach.
func (m *Manager) HasSession(matchID uuid.UUID) bool {
	_, ok := m.registry.Lookup(matchID)
	return ok
}

// expire deletes a match whose host left before it started and never came
// back.
func (m *Manager) expire(matchID uuid.UUID) {
	if m.registry.ExistsLiveActivity(matchID) {
		return
	}
	session, ok := m.registry.Lookup(matchID)
	if !ok {
		return
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Phase().Started() || session.HasLiveParticipant() {
		return
	}

	zap.L().Info("Deleting stale match", zap.String("match_id", matchID.String()))
	m.deleteMatch(context.Background(), session, session.host.ID, nil)
}

// CleanupExpiredMatches deletes persisted matches that never started and have
// no live session, which is every such match right after boot.
func (m *Manager) CleanupExpiredMatches(ctx context.Context) (int, error) {
	ids, err := m.store.ListNotStartedMatchIDs(ctx)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, id := range ids {
		if _, live := m.registry.Lookup(id); live {
			continue
		}
		if err := m.store.DeleteMatch(ctx, id); err != nil {
			zap.L().Error("Failed to delete expired match", zap.String("match_id", id.String()), zap.Error(err))
			continue
		}
		deleted++
	}
	return deleted, nil
}

// Shutdown stops pending sweeps and closes every live connection.
func (m *Manager) Shutdown() {
	m.sweeper.Stop()
	for _, shard := range m.registry.shards {
		shard.mu.RLock()
		sessions := make([]*Session, 0, len(shard.sessions))
		for _, session := range shard.sessions {
			sessions = append(sessions, session)
		}
		shard.mu.RUnlock()

		for _, session := range sessions {
			session.mu.Lock()
			closeAll(session)
			session.mu.Unlock()
		}
	}
}

func (m *Manager) execute(ctx context.Context, s *Session, actor uuid.UUID, sender Conn, directive Directive) {
	switch d := directive.(type) {
	case nil:
	case StartMatch:
		m.startMatch(ctx, s)
	case EndMatch:
		m.endMatch(ctx, s, s.Winner())
	case ForfeitMatch:
		m.endMatch(ctx, s, d.Winner)
	case UpdateOptions:
		m.updateOptions(ctx, s, actor, sender, d)
	case RemoveOpponent:
		m.removeOpponent(ctx, s, d.UserID, sender)
	case DeleteMatch:
		m.deleteMatch(ctx, s, actor, sender)
	default:
		zap.L().Error("Unhandled directive", zap.String("directive", directive.directive()))
	}
}

func (m *Manager) startMatch(ctx context.Context, s *Session) {
	board, err := m.engine.NewBoard(s.options.Engine)
	if err != nil {
		zap.L().Error("Failed to create board", zap.String("match_id", s.ID.String()), zap.Error(err))
		m.dispatcher.SendError(s, nil, nil, protocol.ErrFailedToStartMatch)
		return
	}
	if err := s.BeginPlay(board); err != nil {
		zap.L().Error("Failed to begin play", zap.String("match_id", s.ID.String()), zap.Error(err))
		m.dispatcher.SendError(s, nil, nil, protocol.ErrFailedToStartMatch)
		return
	}
	m.sweeper.Cancel(s.ID)
	m.dispatcher.Broadcast(s, protocol.StateEvent{Snapshot: board.Snapshot()})

	storeCtx, cancel := context.WithTimeout(ctx, m.cfg.StoreTimeout)
	defer cancel()
	if err := m.store.BeginMatch(storeCtx, s.ID); err != nil {
		zap.L().Error("Failed to persist match start", zap.String("match_id", s.ID.String()), zap.Error(err))
		m.dispatcher.SendError(s, nil, nil, protocol.ErrFailedToStartMatch)
		return
	}
	m.publish(ctx, s, MsgMatchStarted, nil, nil)
}

func (m *Manager) endMatch(ctx context.Context, s *Session, winner *uuid.UUID) {
	storeCtx, cancel := context.WithTimeout(ctx, m.cfg.StoreTimeout)
	defer cancel()
	if err := m.store.EndMatch(storeCtx, s.ID, winner); err != nil {
		zap.L().Error("Failed to persist match end", zap.String("match_id", s.ID.String()), zap.Error(err))
		m.dispatcher.SendError(s, nil, nil, protocol.ErrFailedToEndMatch)
	}

	m.publish(ctx, s, MsgMatchEnded, nil, winner)
	closeAll(s)
	m.registry.Destroy(s.ID)
}

func (m *Manager) updateOptions(ctx context.Context, s *Session, actor uuid.UUID, sender Conn, d UpdateOptions) {
	storeCtx, cancel := context.WithTimeout(ctx, m.cfg.StoreTimeout)
	defer cancel()
	if err := m.store.UpdateOptions(storeCtx, s.ID, s.options.Match.Encode(), s.options.Engine.Encode()); err != nil {
		zap.L().Error("Failed to persist options",
			zap.String("match_id", s.ID.String()),
			zap.String("option", d.Option),
			zap.Bool("value", d.Value),
			zap.Error(err))
		m.dispatcher.SendError(s, sender, &actor, protocol.OptionValueNotUpdated(d.Option, d.Value))
		return
	}
	m.publish(ctx, s, MsgOptionsUpdated, &actor, nil)
}

func (m *Manager) removeOpponent(ctx context.Context, s *Session, userID uuid.UUID, sender Conn) {
	leaving := s.ConnOf(userID)
	m.dispatcher.Broadcast(s, protocol.LeaveEvent{UserID: userID})
	if err := s.RemoveOpponent(userID); err != nil {
		zap.L().Error("Failed to remove opponent", zap.String("match_id", s.ID.String()), zap.Error(err))
		return
	}
	if leaving != nil {
		leaving.Close()
	}

	storeCtx, cancel := context.WithTimeout(ctx, m.cfg.StoreTimeout)
	defer cancel()
	if err := m.store.LeaveMatch(storeCtx, s.ID, userID); err != nil {
		zap.L().Error("Failed to persist leave", zap.String("match_id", s.ID.String()), zap.Error(err))
		m.dispatcher.SendError(s, sender, &userID, protocol.ErrUnknown)
		return
	}
	m.publish(ctx, s, MsgPlayerLeft, &userID, nil)
}

// deleteMatch removes the match from persistence and then from the registry.
// The session survives a persistence failure.
func (m *Manager) deleteMatch(ctx context.Context, s *Session, actor uuid.UUID, sender Conn) bool {
	storeCtx, cancel := context.WithTimeout(ctx, m.cfg.StoreTimeout)
	defer cancel()
	if err := m.store.DeleteMatch(storeCtx, s.ID); err != nil {
		zap.L().Error("Failed to delete match", zap.String("match_id", s.ID.String()), zap.Error(err))
		m.dispatcher.SendError(s, sender, &actor, protocol.ErrUnknown)
		return false
	}

	m.dispatcher.Broadcast(s, protocol.LeaveEvent{UserID: s.host.ID})
	m.sweeper.Cancel(s.ID)
	m.publish(ctx, s, MsgMatchDeleted, &actor, nil)
	closeAll(s)
	m.registry.Destroy(s.ID)
	return true
}

func (m *Manager) publish(ctx context.Context, s *Session, msgType string, userID, winner *uuid.UUID) {
	m.publisher.PublishMessage(ctx, s.ID, msgType, LifecycleEvent{
		MatchID: s.ID,
		UserID:  userID,
		Winner:  winner,
		Phase:   s.Phase().String(),
	})
}

// closeAll closes every connection of the session. Queued frames are still
// flushed by the connection's writer.
func closeAll(s *Session) {
	for _, conn := range s.recipients() {
		conn.Close()
	}
}
