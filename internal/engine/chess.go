package engine

import (
	"strings"

	"match-service/internal/api/game"

	"github.com/corentings/chess/v2"
)

// Engine options understood by the chess rules engine.
const (
	// OptionClaimDraws ends the game as soon as a threefold repetition or the
	// fifty-move rule makes a draw claimable.
	OptionClaimDraws = "ClaimDraws"
	// OptionUCINotation restricts moves to UCI ("e2e4"). Otherwise SAN
	// ("e4", "Nf3") is accepted as well.
	OptionUCINotation = "UCINotation"
)

// Chess builds boards backed by github.com/corentings/chess/v2.
type Chess struct{}

func NewChess() *Chess {
	return &Chess{}
}

func (c *Chess) DefaultOptions() game.OptionSet {
	return game.OptionSet{
		OptionClaimDraws:  true,
		OptionUCINotation: false,
	}
}

func (c *Chess) NewBoard(options game.OptionSet) (game.Board, error) {
	options = game.ParseOptions(options.Encode(), c.DefaultOptions())
	return &chessBoard{
		game:       chess.NewGame(),
		claimDraws: options[OptionClaimDraws],
		uciOnly:    options[OptionUCINotation],
	}, nil
}

type chessBoard struct {
	game       *chess.Game
	claimDraws bool
	uciOnly    bool
}

func (b *chessBoard) Apply(notation string) bool {
	notation = strings.TrimSpace(notation)
	if notation == "" || b.IsTerminal() {
		return false
	}

	if err := b.game.PushNotationMove(notation, chess.UCINotation{}, nil); err != nil {
		if b.uciOnly {
			return false
		}
		if err := b.game.PushNotationMove(notation, chess.AlgebraicNotation{}, nil); err != nil {
			return false
		}
	}

	if b.claimDraws && b.game.Outcome() == chess.NoOutcome {
		b.claimDraw()
	}
	return true
}

func (b *chessBoard) claimDraw() {
	for _, method := range b.game.EligibleDraws() {
		if method == chess.ThreefoldRepetition || method == chess.FiftyMoveRule {
			_ = b.game.Draw(method)
			return
		}
	}
}

func (b *chessBoard) SideToMove() game.Side {
	if b.game.Position().Turn() == chess.White {
		return game.SideFirst
	}
	return game.SideSecond
}

func (b *chessBoard) IsTerminal() bool {
	return b.game.Outcome() != chess.NoOutcome
}

func (b *chessBoard) Outcome() game.Outcome {
	switch b.game.Outcome() {
	case chess.WhiteWon:
		return game.OutcomeFirstWins
	case chess.BlackWon:
		return game.OutcomeSecondWins
	case chess.Draw:
		return game.OutcomeDraw
	default:
		return game.OutcomeNone
	}
}

// Snapshot is the FEN of the current position.
func (b *chessBoard) Snapshot() string {
	return b.game.FEN()
}

func (b *chessBoard) MoveCount() int {
	return len(b.game.Moves())
}
