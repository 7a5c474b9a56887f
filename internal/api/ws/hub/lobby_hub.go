package hub

import (
	"context"
	"encoding/json"
	"sync"

	"match-service/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Subscriber delivers lifecycle payloads published by any process.
type Subscriber interface {
	SubscribeAll(ctx context.Context, handle func(matchID uuid.UUID, payload []byte)) error
}

// LobbyHub fans match lifecycle events out to lobby connections. Without a
// Subscriber it is itself the publisher and only sees this process' matches.
type LobbyHub struct {
	mutex   sync.RWMutex
	clients map[*domain.Client]struct{}
}

func NewLobbyHub() *LobbyHub {
	return &LobbyHub{clients: make(map[*domain.Client]struct{})}
}

func (l *LobbyHub) Register(client *domain.Client) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.clients[client] = struct{}{}
}

func (l *LobbyHub) Unregister(client *domain.Client) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	delete(l.clients, client)
}

func (l *LobbyHub) ClientCount() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return len(l.clients)
}

// PublishMessage implements game.Publisher for single-process deployments.
func (l *LobbyHub) PublishMessage(_ context.Context, matchID uuid.UUID, msgType string, dataContent interface{}) {
	payload, err := json.Marshal(domain.NewLifecycleMessage(matchID, msgType, dataContent))
	if err != nil {
		zap.L().Error("Failed to marshal lobby message", zap.Error(err))
		return
	}
	l.Broadcast(payload)
}

func (l *LobbyHub) Broadcast(payload []byte) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	for client := range l.clients {
		if !client.SendFrame(payload) {
			zap.L().Warn("Lobby client send buffer full, dropping event", zap.String("user_id", client.ID.String()))
		}
	}
}

// Run relays everything sub delivers until ctx is done.
func (l *LobbyHub) Run(ctx context.Context, sub Subscriber) {
	err := sub.SubscribeAll(ctx, func(_ uuid.UUID, payload []byte) {
		l.Broadcast(payload)
	})
	if err != nil {
		zap.L().Error("Lobby subscription stopped", zap.Error(err))
	}
}
