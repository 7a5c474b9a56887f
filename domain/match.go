package domain

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus int

const (
	MatchNotStarted MatchStatus = 1
	MatchActive     MatchStatus = 2
	MatchEnded      MatchStatus = 3
)

func (s MatchStatus) String() string {
	switch s {
	case MatchNotStarted:
		return "not_started"
	case MatchActive:
		return "active"
	case MatchEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Match is the persisted record of a match. Options and GameOptions hold the
// encoded "Name:bool;Name:bool" option sets.
type Match struct {
	ID          uuid.UUID   `json:"id"`
	HostID      uuid.UUID   `json:"host_id"`
	OpponentID  *uuid.UUID  `json:"opponent_id,omitempty"`
	WinnerID    *uuid.UUID  `json:"winner_id,omitempty"`
	Options     string      `json:"options"`
	GameOptions string      `json:"game_options"`
	Status      MatchStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	Duration    *float64    `json:"duration,omitempty"` // seconds
}

type MatchMovement struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Notation  string    `json:"notation"`
	Ordinal   int       `json:"ordinal"`
	CreatedAt time.Time `json:"date"`
}

// MatchDetails is the public view of a match with its players resolved.
type MatchDetails struct {
	ID          uuid.UUID       `json:"id"`
	Options     string          `json:"options"`
	GameOptions string          `json:"game_options"`
	CreatedAt   time.Time       `json:"created_at"`
	Duration    *float64        `json:"duration,omitempty"`
	Status      MatchStatus     `json:"status"`
	IsComplete  bool            `json:"is_complete"`
	Host        *User           `json:"host,omitempty"`
	Opponent    *User           `json:"opponent,omitempty"`
	Winner      *User           `json:"winner,omitempty"`
	Moves       []MatchMovement `json:"moves,omitempty"`
}
