package engine

import (
	"testing"

	"match-service/internal/api/game"
)

func newBoard(t *testing.T, options game.OptionSet) game.Board {
	t.Helper()
	board, err := NewChess().NewBoard(options)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return board
}

func TestFreshBoard(t *testing.T) {
	board := newBoard(t, nil)

	if board.SideToMove() != game.SideFirst {
		t.Fatalf("white should move first")
	}
	if board.IsTerminal() || board.Outcome() != game.OutcomeNone {
		t.Fatalf("fresh board is terminal")
	}
	if board.MoveCount() != 0 {
		t.Fatalf("MoveCount = %d", board.MoveCount())
	}
	if want := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"; board.Snapshot() != want {
		t.Fatalf("Snapshot = %q, want %q", board.Snapshot(), want)
	}
}

func TestAcceptsUCIAndSAN(t *testing.T) {
	board := newBoard(t, nil)

	if !board.Apply("e2e4") {
		t.Fatalf("UCI move rejected")
	}
	if board.SideToMove() != game.SideSecond {
		t.Fatalf("turn did not pass to black")
	}
	if !board.Apply("e5") {
		t.Fatalf("SAN move rejected")
	}
	if board.Apply("e5") {
		t.Fatalf("illegal move accepted")
	}
	if board.Apply("") || board.Apply("hello") {
		t.Fatalf("garbage accepted")
	}
	if board.MoveCount() != 2 {
		t.Fatalf("MoveCount = %d, want 2", board.MoveCount())
	}
}

func TestUCIOnlyRejectsSAN(t *testing.T) {
	board := newBoard(t, game.OptionSet{OptionUCINotation: true})

	if board.Apply("e4") {
		t.Fatalf("SAN accepted with UCI notation only")
	}
	if !board.Apply("e2e4") {
		t.Fatalf("UCI rejected")
	}
}

func TestFoolsMate(t *testing.T) {
	board := newBoard(t, nil)

	for _, move := range []string{"f3", "e5", "g4", "Qh4"} {
		if !board.Apply(move) {
			t.Fatalf("move %q rejected", move)
		}
	}
	if !board.IsTerminal() {
		t.Fatalf("checkmate not detected")
	}
	if board.Outcome() != game.OutcomeSecondWins {
		t.Fatalf("Outcome = %v, want second side wins", board.Outcome())
	}
	if board.Apply("a3") {
		t.Fatalf("move accepted after checkmate")
	}
}

func TestThreefoldRepetitionIsClaimed(t *testing.T) {
	shuffle := []string{"Nf3", "Nf6", "Ng1", "Ng8", "Nf3", "Nf6", "Ng1", "Ng8"}

	claimed := newBoard(t, nil)
	for _, move := range shuffle {
		if !claimed.Apply(move) {
			t.Fatalf("move %q rejected", move)
		}
	}
	if claimed.Outcome() != game.OutcomeDraw {
		t.Fatalf("Outcome = %v, want draw", claimed.Outcome())
	}

	unclaimed := newBoard(t, game.OptionSet{OptionClaimDraws: false})
	for _, move := range shuffle {
		unclaimed.Apply(move)
	}
	if unclaimed.IsTerminal() {
		t.Fatalf("draw claimed with ClaimDraws off")
	}
}
