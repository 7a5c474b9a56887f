package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"match-service/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SessionData is what the auth service stores under a session token.
type SessionData struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Device   string `json:"device,omitempty"`
	Ip       string `json:"ip,omitempty"`
}

// SessionManager reads session tokens issued by the auth service.
type SessionManager struct {
	client *redis.Client
}

func NewSessionManager(redisAddr string, password string, db int) (*SessionManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	zap.L().Info("Connected to session Redis successfully", zap.String("addr", redisAddr))
	return &SessionManager{client: client}, nil
}

func NewSessionManagerWithClient(client *redis.Client) *SessionManager {
	return &SessionManager{client: client}
}

func (sm *SessionManager) GetRedisClient() *redis.Client {
	return sm.client
}

func (sm *SessionManager) Close() error {
	return sm.client.Close()
}

// GetTokenTTL returns the remaining lifetime of token. A missing token has a
// non-positive TTL.
func (sm *SessionManager) GetTokenTTL(ctx context.Context, token string) (time.Duration, error) {
	ttl, err := sm.client.TTL(ctx, token).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read token ttl: %w", err)
	}
	return ttl, nil
}

func (sm *SessionManager) GetSession(ctx context.Context, token string) (*SessionData, error) {
	raw, err := sm.client.Get(ctx, token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: session not found", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var data SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: malformed session", domain.ErrUnauthorized)
	}
	return &data, nil
}
