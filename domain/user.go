package domain

import "github.com/google/uuid"

// DefaultElo is the rating every new player starts with.
const DefaultElo = 1000

type User struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Elo         int       `json:"elo"`
}

// UserDetails is a player's public profile with the matches they took part
// in, oldest first.
type UserDetails struct {
	User
	ActiveMatches []MatchDetails `json:"active_matches"`
	PastMatches   []MatchDetails `json:"past_matches"`
}
