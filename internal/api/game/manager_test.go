package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"match-service/domain"
	"match-service/internal/protocol"

	"github.com/google/uuid"
)

type testMatch struct {
	manager   *Manager
	store     *fakeStore
	engine    *fakeEngine
	publisher *fakePublisher
	timers    *manualTimers

	matchID      uuid.UUID
	host         uuid.UUID
	opponent     uuid.UUID
	hostConn     *fakeConn
	opponentConn *fakeConn
}

func newTestMatch(t *testing.T, options string) *testMatch {
	t.Helper()
	tm := &testMatch{
		store:     newFakeStore(),
		engine:    &fakeEngine{},
		publisher: &fakePublisher{},
		timers:    &manualTimers{},
		matchID:   uuid.New(),
		host:      uuid.New(),
		opponent:  uuid.New(),
	}
	tm.manager = NewManager(tm.store, tm.engine, tm.publisher, Config{StaleAfter: 5 * time.Minute, StoreTimeout: time.Second}, tm.timers.afterFunc)

	match := &domain.Match{ID: tm.matchID, HostID: tm.host, Options: options, Status: domain.MatchNotStarted}
	if _, err := tm.manager.RegisterMatch(context.Background(), match, "host"); err != nil {
		t.Fatalf("RegisterMatch: %v", err)
	}
	tm.hostConn = &fakeConn{}
	if err := tm.manager.ConnectPlayer(context.Background(), tm.matchID, tm.host, tm.hostConn); err != nil {
		t.Fatalf("ConnectPlayer(host): %v", err)
	}
	return tm
}

func (tm *testMatch) join(t *testing.T) {
	t.Helper()
	if _, err := tm.manager.AddUser(context.Background(), tm.matchID, tm.opponent, "opponent"); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	tm.opponentConn = &fakeConn{}
	if err := tm.manager.ConnectPlayer(context.Background(), tm.matchID, tm.opponent, tm.opponentConn); err != nil {
		t.Fatalf("ConnectPlayer(opponent): %v", err)
	}
}

func (tm *testMatch) start(t *testing.T) {
	t.Helper()
	tm.join(t)
	tm.send(tm.host, tm.hostConn, "GLHF")
	tm.send(tm.opponent, tm.opponentConn, "GLHF")
	if tm.session(t).Phase() != PhaseActive {
		t.Fatalf("match did not start")
	}
	tm.hostConn.take()
	tm.opponentConn.take()
}

func (tm *testMatch) send(userID uuid.UUID, conn *fakeConn, text string) {
	tm.manager.HandleFrame(context.Background(), tm.matchID, PlayerRole{UserID: userID}, conn, text)
}

func (tm *testMatch) session(t *testing.T) *Session {
	t.Helper()
	s, ok := tm.manager.Registry().Lookup(tm.matchID)
	if !ok {
		t.Fatalf("session %s not registered", tm.matchID)
	}
	return s
}

func errFrame(sender uuid.UUID, err protocol.ServerError) string {
	return protocol.SerializeError(&sender, err)
}

func assertFrames(t *testing.T, who string, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s received %d frames %q, want %q", who, len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s frame %d = %q, want %q", who, i, got[i], want[i])
		}
	}
}

func TestReadyUpStartsMatchAndBroadcastsState(t *testing.T) {
	tm := newTestMatch(t, "HostIsWhite:true;AsyncPlay:false")
	tm.join(t)

	//1.- The host was told about the opponent.
	assertFrames(t, "host", tm.hostConn.take(), "JOIN "+protocol.FormatID(tm.opponent))

	//2.- The first GLHF only announces readiness.
	tm.send(tm.host, tm.hostConn, "GLHF")
	readyHost := fmt.Sprintf("READY %s true", protocol.FormatID(tm.host))
	assertFrames(t, "host", tm.hostConn.take(), readyHost)
	assertFrames(t, "opponent", tm.opponentConn.take(), readyHost)
	if tm.engine.boards != 0 {
		t.Fatalf("board created with one player ready")
	}

	//3.- The second GLHF starts the match and both players get the board.
	tm.send(tm.opponent, tm.opponentConn, "GLHF")
	readyOpponent := fmt.Sprintf("READY %s true", protocol.FormatID(tm.opponent))
	assertFrames(t, "host", tm.hostConn.take(), readyOpponent, "STATE board:0:")
	assertFrames(t, "opponent", tm.opponentConn.take(), readyOpponent, "STATE board:0:")
	if len(tm.store.begun) != 1 {
		t.Fatalf("BeginMatch persisted %d times", len(tm.store.begun))
	}
	if !tm.engine.options[0]["ClaimDraws"] {
		t.Fatalf("board built without the negotiated engine options")
	}

	//4.- A further GLHF is rejected privately.
	tm.send(tm.host, tm.hostConn, "GLHF")
	assertFrames(t, "host", tm.hostConn.take(), errFrame(tm.host, protocol.ErrInvalidCommand))
	assertFrames(t, "opponent", tm.opponentConn.take())
}

func TestMovesAlternateAndOutOfTurnIsPrivate(t *testing.T) {
	tm := newTestMatch(t, "HostIsWhite:true")
	tm.start(t)

	//1.- The opponent moving first only hears about it themselves.
	tm.send(tm.opponent, tm.opponentConn, "MOV e5")
	assertFrames(t, "opponent", tm.opponentConn.take(), errFrame(tm.opponent, protocol.ErrNotPlayerTurn))
	assertFrames(t, "host", tm.hostConn.take())

	//2.- The host's legal move reaches both players and is persisted.
	tm.send(tm.host, tm.hostConn, "MOV e4")
	assertFrames(t, "host", tm.hostConn.take(), "STATE board:1:e4")
	assertFrames(t, "opponent", tm.opponentConn.take(), "STATE board:1:e4")
	if len(tm.store.moves) != 1 || tm.store.moves[0].ordinal != 1 || tm.store.moves[0].userID != tm.host {
		t.Fatalf("recorded moves = %+v", tm.store.moves)
	}

	//3.- Now it is the opponent's turn and the host is refused.
	tm.send(tm.host, tm.hostConn, "MOV d4")
	assertFrames(t, "host", tm.hostConn.take(), errFrame(tm.host, protocol.ErrNotPlayerTurn))
	tm.send(tm.opponent, tm.opponentConn, "MOV bad")
	assertFrames(t, "opponent", tm.opponentConn.take(), errFrame(tm.opponent, protocol.InvalidMovement("bad")))
	tm.send(tm.opponent, tm.opponentConn, "MOV e5")
	assertFrames(t, "host", tm.hostConn.take(), "STATE board:2:e4,e5")
}

func TestMovePersistenceFailureIsOptimistic(t *testing.T) {
	tm := newTestMatch(t, "")
	tm.start(t)
	tm.store.moveErr = errStoreDown

	tm.send(tm.host, tm.hostConn, "MOV e4")

	assertFrames(t, "host", tm.hostConn.take(), "STATE board:1:e4", errFrame(tm.host, protocol.ErrUnknown))
	assertFrames(t, "opponent", tm.opponentConn.take(), "STATE board:1:e4")
	if !tm.session(t).IsTurnOf(tm.opponent) {
		t.Fatalf("move rolled back after persistence failure")
	}
}

func TestCheckmateEndsAndDestroysMatch(t *testing.T) {
	tm := newTestMatch(t, "")
	tm.start(t)

	tm.send(tm.host, tm.hostConn, "MOV mate")

	winner := "WINNER " + protocol.FormatID(tm.host)
	assertFrames(t, "opponent", tm.opponentConn.take(), "STATE board:1:mate", winner)
	if got, ok := tm.store.ended[tm.matchID]; !ok || got == nil || *got != tm.host {
		t.Fatalf("EndMatch winner = %v, %v", got, ok)
	}
	if _, ok := tm.manager.Registry().Lookup(tm.matchID); ok {
		t.Fatalf("session survived the end of the match")
	}
	if !tm.hostConn.isClosed() || !tm.opponentConn.isClosed() {
		t.Fatalf("connections left open after the match ended")
	}
}

func TestEndPersistenceFailureIsBroadcast(t *testing.T) {
	tm := newTestMatch(t, "")
	tm.start(t)
	tm.store.endErr = errStoreDown

	tm.send(tm.host, tm.hostConn, "MOV draw")

	failure := protocol.SerializeError(nil, protocol.ErrFailedToEndMatch)
	assertFrames(t, "host", tm.hostConn.take(), "STATE board:1:draw", "WINNER null", failure)
	assertFrames(t, "opponent", tm.opponentConn.take(), "STATE board:1:draw", "WINNER null", failure)
}

func TestStartPersistenceFailureIsBroadcast(t *testing.T) {
	tm := newTestMatch(t, "")
	tm.join(t)
	tm.hostConn.take()
	tm.store.beginErr = errStoreDown

	tm.send(tm.host, tm.hostConn, "GLHF")
	tm.send(tm.opponent, tm.opponentConn, "GLHF")

	frames := tm.opponentConn.take()
	if last := frames[len(frames)-1]; last != protocol.SerializeError(nil, protocol.ErrFailedToStartMatch) {
		t.Fatalf("last opponent frame = %q", last)
	}
	if tm.session(t).Phase() != PhaseActive {
		t.Fatalf("in-memory start rolled back")
	}
}

func TestForfeitDuringPlayAwardsTheOtherPlayer(t *testing.T) {
	tm := newTestMatch(t, "")
	tm.start(t)

	tm.send(tm.opponent, tm.opponentConn, "FF")

	assertFrames(t, "host", tm.hostConn.take(), "FF "+protocol.FormatID(tm.opponent))
	if got := tm.store.ended[tm.matchID]; got == nil || *got != tm.host {
		t.Fatalf("forfeit winner = %v", got)
	}
	if _, ok := tm.manager.Registry().Lookup(tm.matchID); ok {
		t.Fatalf("session survived the forfeit")
	}
}

func TestHostForfeitBeforeStartDeletesMatch(t *testing.T) {
	tm := newTestMatch(t, "")
	tm.join(t)
	tm.hostConn.take()

	tm.send(tm.host, tm.hostConn, "FF")

	assertFrames(t, "opponent", tm.opponentConn.take(), "LEAVE "+protocol.FormatID(tm.host))
	if len(tm.store.deleted) != 1 || tm.store.deleted[0] != tm.matchID {
		t.Fatalf("deleted = %v", tm.store.deleted)
	}
	if _, ok := tm.manager.Registry().Lookup(tm.matchID); ok {
		t.Fatalf("session survived deletion")
	}
}

func TestOpponentForfeitBeforeStartKeepsLobby(t *testing.T) {
	tm := newTestMatch(t, "")
	tm.join(t)
	tm.hostConn.take()

	tm.send(tm.opponent, tm.opponentConn, "FF")

	assertFrames(t, "host", tm.hostConn.take(), "LEAVE "+protocol.FormatID(tm.opponent))
	if len(tm.store.left) != 1 || tm.store.left[0] != tm.opponent {
		t.Fatalf("left = %v", tm.store.left)
	}
	s := tm.session(t)
	if _, ok := s.Opponent(); ok {
		t.Fatalf("opponent still seated")
	}
	if !tm.opponentConn.isClosed() {
		t.Fatalf("leaving opponent's connection left open")
	}

	//1.- A new opponent can take the free seat.
	if _, err := tm.manager.AddUser(context.Background(), tm.matchID, uuid.New(), "next"); err != nil {
		t.Fatalf("AddUser after leave: %v", err)
	}
}

func TestAddUserToFullMatch(t *testing.T) {
	tm := newTestMatch(t, "")
	tm.join(t)

	result, err := tm.manager.AddUser(context.Background(), tm.matchID, uuid.New(), "late")
	if result != AddFull || !errors.Is(err, domain.ErrMatchFull) {
		t.Fatalf("AddUser = %v, %v, want full", result, err)
	}
	if opponent, _ := tm.session(t).Opponent(); opponent.ID != tm.opponent {
		t.Fatalf("opponent replaced")
	}
}

func TestAddUserRollsBackWhenJoinIsNotPersisted(t *testing.T) {
	tm := newTestMatch(t, "")
	tm.store.joinErr = errStoreDown

	if _, err := tm.manager.AddUser(context.Background(), tm.matchID, tm.opponent, "opponent"); !errors.Is(err, errStoreDown) {
		t.Fatalf("AddUser error = %v", err)
	}
	if _, ok := tm.session(t).Opponent(); ok {
		t.Fatalf("opponent seated despite persistence failure")
	}
}

func TestSetOptionPersistsEncodedOptions(t *testing.T) {
	tm := newTestMatch(t, "")
	tm.join(t)
	tm.hostConn.take()

	tm.send(tm.host, tm.hostConn, "SET HostIsWhite false")
	assertFrames(t, "opponent", tm.opponentConn.take(), "SET HostIsWhite false")
	assertFrames(t, "host", tm.hostConn.take(), "SET HostIsWhite false")
	if got := tm.store.options[tm.matchID]; got[0] != "AsyncPlay:false;HostIsWhite:false" || got[1] != "ClaimDraws:true" {
		t.Fatalf("persisted options = %q", got)
	}

	//1.- The opponent cannot change options.
	tm.send(tm.opponent, tm.opponentConn, "SET AsyncPlay true")
	assertFrames(t, "opponent", tm.opponentConn.take(), errFrame(tm.opponent, protocol.ErrOptionNonModifiable))

	//2.- A persistence failure is reported to the host only and not reverted.
	tm.store.optionsErr = errStoreDown
	tm.send(tm.host, tm.hostConn, "SET AsyncPlay true")
	assertFrames(t, "host", tm.hostConn.take(), "SET AsyncPlay true", errFrame(tm.host, protocol.OptionValueNotUpdated("AsyncPlay", true)))
	assertFrames(t, "opponent", tm.opponentConn.take(), "SET AsyncPlay true")
	if !tm.session(t).Options().Match[OptionAsyncPlay] {
		t.Fatalf("option reverted after persistence failure")
	}
}

func TestMessagesReachEveryone(t *testing.T) {
	tm := newTestMatch(t, "")
	tm.join(t)
	tm.hostConn.take()

	tm.send(tm.opponent, tm.opponentConn, "MSG good luck")
	want := fmt.Sprintf("MSG %s good luck", protocol.FormatID(tm.opponent))
	assertFrames(t, "host", tm.hostConn.take(), want)
	assertFrames(t, "opponent", tm.opponentConn.take(), want)
}

func TestMalformedFrameGoesToSenderOnly(t *testing.T) {
	tm := newTestMatch(t, "")
	tm.join(t)
	tm.hostConn.take()

	for _, frame := range []string{"FOO", "MOV", "SET HostIsWhite maybe", ""} {
		tm.send(tm.opponent, tm.opponentConn, frame)
		assertFrames(t, "opponent", tm.opponentConn.take(), errFrame(tm.opponent, protocol.ErrInvalidCommand))
	}
	assertFrames(t, "host", tm.hostConn.take())
}

func TestReconnectBurstIsSentOnce(t *testing.T) {
	tm := newTestMatch(t, "")
	tm.start(t)
	tm.send(tm.host, tm.hostConn, "MOV e4")
	tm.hostConn.take()
	tm.opponentConn.take()

	//1.- The opponent drops and comes back on a fresh connection.
	tm.manager.Disconnect(context.Background(), tm.matchID, PlayerRole{UserID: tm.opponent}, tm.opponentConn)
	if opponent, _ := tm.session(t).Opponent(); opponent.IsConnected {
		t.Fatalf("opponent still marked connected")
	}
	fresh := &fakeConn{}
	if err := tm.manager.ConnectPlayer(context.Background(), tm.matchID, tm.opponent, fresh); err != nil {
		t.Fatalf("ConnectPlayer: %v", err)
	}
	burst := []string{
		fmt.Sprintf("READY %s true", protocol.FormatID(tm.host)),
		fmt.Sprintf("READY %s true", protocol.FormatID(tm.opponent)),
		"STATE board:1:e4",
	}
	assertFrames(t, "reconnected opponent", fresh.take(), burst...)
	assertFrames(t, "host", tm.hostConn.take())

	//2.- Repeating the reconnect without a disconnect sends nothing.
	if err := tm.manager.ConnectPlayer(context.Background(), tm.matchID, tm.opponent, fresh); err != nil {
		t.Fatalf("ConnectPlayer: %v", err)
	}
	assertFrames(t, "reconnected opponent", fresh.take())

	//3.- The stale connection's late disconnect is ignored.
	tm.manager.Disconnect(context.Background(), tm.matchID, PlayerRole{UserID: tm.opponent}, tm.opponentConn)
	if tm.session(t).ConnOf(tm.opponent) != fresh {
		t.Fatalf("stale disconnect detached the fresh connection")
	}
}

func TestReconnectWithoutDisconnectReplacesOldConnection(t *testing.T) {
	tm := newTestMatch(t, "")
	tm.start(t)

	fresh := &fakeConn{}
	if err := tm.manager.ConnectPlayer(context.Background(), tm.matchID, tm.host, fresh); err != nil {
		t.Fatalf("ConnectPlayer: %v", err)
	}
	if !tm.hostConn.isClosed() {
		t.Fatalf("previous connection not closed")
	}
	if frames := fresh.take(); len(frames) != 3 {
		t.Fatalf("burst = %q", frames)
	}

	//1.- Frames from the replaced connection are dropped.
	tm.send(tm.host, tm.hostConn, "MOV e4")
	if tm.session(t).Board().MoveCount() != 0 {
		t.Fatalf("superseded connection moved a piece")
	}
}

func TestSpectatorAdmissionAndChat(t *testing.T) {
	tm := newTestMatch(t, "")
	watcher := uuid.New()

	//1.- Matches that have not started cannot be watched.
	if err := tm.manager.ConnectSpectator(context.Background(), tm.matchID, watcher, "watcher", &fakeConn{}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("ConnectSpectator before start error = %v", err)
	}

	tm.start(t)
	tm.send(tm.host, tm.hostConn, "MOV e4")
	tm.hostConn.take()
	tm.opponentConn.take()

	//2.- Players are announced the spectator, who gets the board.
	spectatorConn := &fakeConn{}
	if err := tm.manager.ConnectSpectator(context.Background(), tm.matchID, watcher, "watcher", spectatorConn); err != nil {
		t.Fatalf("ConnectSpectator: %v", err)
	}
	assertFrames(t, "host", tm.hostConn.take(), "SPECJOIN watcher")
	assertFrames(t, "spectator", spectatorConn.take(), "STATE board:1:e4")

	//3.- Players cannot spectate their own match.
	if err := tm.manager.ConnectSpectator(context.Background(), tm.matchID, tm.host, "host", &fakeConn{}); err == nil {
		t.Fatalf("player admitted as spectator")
	}

	role := SpectatorRole{UserID: watcher, Name: "watcher"}

	//4.- Spectator chat reaches everyone.
	tm.manager.HandleFrame(context.Background(), tm.matchID, role, spectatorConn, "MSG nice")
	chat := fmt.Sprintf("MSG %s nice", protocol.FormatID(watcher))
	assertFrames(t, "host", tm.hostConn.take(), chat)
	assertFrames(t, "opponent", tm.opponentConn.take(), chat)
	assertFrames(t, "spectator", spectatorConn.take(), chat)

	//5.- Unknown and player-only opcodes are private errors.
	for _, frame := range []string{"FOO", "MOV e5", "GLHF"} {
		tm.manager.HandleFrame(context.Background(), tm.matchID, role, spectatorConn, frame)
		assertFrames(t, "spectator", spectatorConn.take(), errFrame(watcher, protocol.ErrInvalidCommand))
	}
	assertFrames(t, "host", tm.hostConn.take())
	assertFrames(t, "opponent", tm.opponentConn.take())

	//6.- Moves are broadcast to spectators too.
	tm.send(tm.opponent, tm.opponentConn, "MOV e5")
	assertFrames(t, "spectator", spectatorConn.take(), "STATE board:2:e4,e5")
	tm.hostConn.take()
	tm.opponentConn.take()

	//7.- Leaving is announced to the players.
	tm.manager.Disconnect(context.Background(), tm.matchID, role, spectatorConn)
	assertFrames(t, "opponent", tm.opponentConn.take(), "SPECLEAVE watcher")
	if tm.session(t).SpectatorCount() != 0 {
		t.Fatalf("spectator still registered")
	}
}

func TestStaleMatchIsSweptAfterHostLeaves(t *testing.T) {
	tm := newTestMatch(t, "")

	//1.- The host disconnects before anyone joined.
	tm.manager.Disconnect(context.Background(), tm.matchID, PlayerRole{UserID: tm.host}, tm.hostConn)
	if len(tm.timers.timers) != 1 || tm.timers.timers[0].after != 5*time.Minute {
		t.Fatalf("sweep not scheduled for five minutes: %+v", tm.timers.timers)
	}
	if tm.manager.Registry().ExistsLiveActivity(tm.matchID) {
		t.Fatalf("match reported active with nobody connected")
	}
	if !tm.manager.HasSession(tm.matchID) {
		t.Fatalf("session dropped inside the grace window")
	}

	//2.- Five minutes pass without a reconnect.
	if fired := tm.timers.fire(); fired != 1 {
		t.Fatalf("fired %d sweeps", fired)
	}
	if len(tm.store.deleted) != 1 || tm.store.deleted[0] != tm.matchID {
		t.Fatalf("stale match not deleted: %v", tm.store.deleted)
	}
	if _, ok := tm.manager.Registry().Lookup(tm.matchID); ok {
		t.Fatalf("stale session still registered")
	}
	types := strings.Join(tm.publisher.types(), ",")
	if !strings.HasSuffix(types, MsgMatchDeleted) {
		t.Fatalf("published %s", types)
	}
}

func TestHostReturningCancelsSweep(t *testing.T) {
	tm := newTestMatch(t, "")

	tm.manager.Disconnect(context.Background(), tm.matchID, PlayerRole{UserID: tm.host}, tm.hostConn)
	if err := tm.manager.ConnectPlayer(context.Background(), tm.matchID, tm.host, &fakeConn{}); err != nil {
		t.Fatalf("ConnectPlayer: %v", err)
	}

	if fired := tm.timers.fire(); fired != 0 {
		t.Fatalf("cancelled sweep fired")
	}
	if len(tm.store.deleted) != 0 {
		t.Fatalf("match deleted although the host came back")
	}
}

func TestSweepSparesMatchWithConnectedOpponent(t *testing.T) {
	tm := newTestMatch(t, "")
	tm.join(t)

	tm.manager.Disconnect(context.Background(), tm.matchID, PlayerRole{UserID: tm.host}, tm.hostConn)
	tm.timers.fire()

	if len(tm.store.deleted) != 0 {
		t.Fatalf("match deleted while the opponent was connected")
	}
	if _, ok := tm.manager.Registry().Lookup(tm.matchID); !ok {
		t.Fatalf("session removed")
	}
}

func TestCleanupExpiredMatchesSkipsLiveSessions(t *testing.T) {
	tm := newTestMatch(t, "")
	orphan := uuid.New()
	tm.store.notStart = []uuid.UUID{tm.matchID, orphan}

	deleted, err := tm.manager.CleanupExpiredMatches(context.Background())
	if err != nil {
		t.Fatalf("CleanupExpiredMatches: %v", err)
	}
	if deleted != 1 || len(tm.store.deleted) != 1 || tm.store.deleted[0] != orphan {
		t.Fatalf("deleted %d: %v", deleted, tm.store.deleted)
	}
}

func TestHTTPLeaveAndDelete(t *testing.T) {
	tm := newTestMatch(t, "")
	tm.join(t)

	if err := tm.manager.DeleteMatch(context.Background(), tm.matchID, tm.opponent); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("opponent DeleteMatch error = %v", err)
	}
	if err := tm.manager.Leave(context.Background(), tm.matchID, tm.opponent); err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if err := tm.manager.Leave(context.Background(), tm.matchID, tm.opponent); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("second Leave error = %v", err)
	}
	if err := tm.manager.DeleteMatch(context.Background(), tm.matchID, tm.host); err != nil {
		t.Fatalf("DeleteMatch: %v", err)
	}
	if err := tm.manager.DeleteMatch(context.Background(), tm.matchID, tm.host); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("DeleteMatch on a gone match error = %v", err)
	}
}

func TestFrameForUnknownMatch(t *testing.T) {
	tm := newTestMatch(t, "")
	conn := &fakeConn{}
	user := uuid.New()

	tm.manager.HandleFrame(context.Background(), uuid.New(), PlayerRole{UserID: user}, conn, "GLHF")
	assertFrames(t, "sender", conn.take(), errFrame(user, protocol.ErrInvalidCommand))
}
