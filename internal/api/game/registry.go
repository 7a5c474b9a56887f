package game

import (
	"fmt"
	"sync"

	"match-service/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const registryShards = 16

type registryShard struct {
	sessions map[uuid.UUID]*Session
	mu       sync.RWMutex
}

// Registry is the single source of truth for which matches are live. The map
// is split into shards keyed by match id so unrelated matches never contend
// on the same lock.
type Registry struct {
	shards [registryShards]*registryShard
}

func NewRegistry() *Registry {
	r := &Registry{}
	for i := range r.shards {
		r.shards[i] = &registryShard{sessions: make(map[uuid.UUID]*Session)}
	}
	return r
}

func (r *Registry) shard(matchID uuid.UUID) *registryShard {
	return r.shards[matchID[len(matchID)-1]%registryShards]
}

// Create registers a new session for matchID.
func (r *Registry) Create(matchID, hostID uuid.UUID, hostName string, options Options) (*Session, error) {
	shard := r.shard(matchID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if _, exists := shard.sessions[matchID]; exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionExists, matchID)
	}

	session := NewSession(matchID, hostID, hostName, options)
	shard.sessions[matchID] = session
	zap.L().Info("Match session registered", zap.String("match_id", matchID.String()), zap.String("host_id", hostID.String()))
	return session, nil
}

func (r *Registry) Lookup(matchID uuid.UUID) (*Session, bool) {
	shard := r.shard(matchID)
	shard.mu.RLock()
	defer shard.mu.RUnlock()

	session, ok := shard.sessions[matchID]
	return session, ok
}

// Destroy removes the session. Removing an absent id is a no-op.
func (r *Registry) Destroy(matchID uuid.UUID) {
	shard := r.shard(matchID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if _, ok := shard.sessions[matchID]; ok {
		delete(shard.sessions, matchID)
		zap.L().Info("Match session removed", zap.String("match_id", matchID.String()))
	}
}

// ExistsLiveActivity is true when the session exists and at least one
// participant is connected. It takes the session lock, so callers must not
// hold it.
func (r *Registry) ExistsLiveActivity(matchID uuid.UUID) bool {
	session, ok := r.Lookup(matchID)
	if !ok {
		return false
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.HasLiveParticipant()
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	total := 0
	for _, shard := range r.shards {
		shard.mu.RLock()
		total += len(shard.sessions)
		shard.mu.RUnlock()
	}
	return total
}
