package domain

import (
	"time"

	"github.com/google/uuid"
)

type LifecycleData struct {
	Type    string      `json:"type"`
	Content interface{} `json:"content"`
}

// LifecycleMessage is the JSON envelope lobby subscribers receive for every
// match lifecycle change, whether it arrives locally or over Redis.
type LifecycleMessage struct {
	MatchID   uuid.UUID     `json:"match_id"`
	Type      string        `json:"type"`
	Data      LifecycleData `json:"data"`
	Timestamp time.Time     `json:"timestamp"`
}

func NewLifecycleMessage(matchID uuid.UUID, msgType string, content interface{}) LifecycleMessage {
	return LifecycleMessage{
		MatchID:   matchID,
		Type:      "match_lifecycle",
		Data:      LifecycleData{Type: msgType, Content: content},
		Timestamp: time.Now().UTC(),
	}
}
