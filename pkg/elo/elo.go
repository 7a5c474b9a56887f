// Package elo implements the rating update applied when a match ends.
package elo

import "math"

const (
	// Default is the rating every new user starts with.
	Default = 1000

	kFactor = 15.0
)

type Outcome int

const (
	Loss Outcome = iota
	Draw
	Win
)

func (o Outcome) points() float64 {
	switch o {
	case Win:
		return 1
	case Draw:
		return 0.5
	default:
		return 0
	}
}

// Expected is the probability that a player rated player beats one rated
// opponent.
func Expected(player, opponent int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(opponent-player)/400))
}

// Updated returns the player's new rating after a match against opponent.
func Updated(player, opponent int, outcome Outcome) int {
	change := kFactor * (outcome.points() - Expected(player, opponent))
	return int(math.Round(float64(player) + change))
}

// Pair updates both ratings of a finished match. firstWon is ignored when
// draw is true.
func Pair(first, second int, draw, firstWon bool) (int, int) {
	switch {
	case draw:
		return Updated(first, second, Draw), Updated(second, first, Draw)
	case firstWon:
		return Updated(first, second, Win), Updated(second, first, Loss)
	default:
		return Updated(first, second, Loss), Updated(second, first, Win)
	}
}
