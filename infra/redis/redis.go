package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"match-service/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "match:"

// RedisManager publishes match lifecycle events on per-match channels and
// lets lobby hubs in every process subscribe to all of them.
type RedisManager struct {
	client *redis.Client
}

func NewRedisManager(redisAddr string, password string, db int) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisManager{client: client}, nil
}

func NewRedisManagerWithClient(client *redis.Client) *RedisManager {
	return &RedisManager{client: client}
}

func (rm *RedisManager) Close() error {
	return rm.client.Close()
}

func Channel(matchID uuid.UUID) string {
	return channelPrefix + matchID.String()
}

func (rm *RedisManager) PublishMessage(ctx context.Context, matchID uuid.UUID, msgType string, dataContent interface{}) {
	payload, err := json.Marshal(domain.NewLifecycleMessage(matchID, msgType, dataContent))
	if err != nil {
		zap.L().Error("Failed to marshal Redis message", zap.Error(err))
		return
	}

	channel := Channel(matchID)
	if err := rm.client.Publish(ctx, channel, payload).Err(); err != nil {
		zap.L().Error("Failed to publish message to Redis", zap.String("channel", channel), zap.Error(err))
	}
}

// SubscribeAll streams every lifecycle payload until ctx is done.
func (rm *RedisManager) SubscribeAll(ctx context.Context, handle func(matchID uuid.UUID, payload []byte)) error {
	pubsub := rm.client.PSubscribe(ctx, channelPrefix+"*")
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to match channels: %w", err)
	}
	zap.L().Info("Subscribed to match lifecycle channels")

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			matchID, err := uuid.Parse(strings.TrimPrefix(msg.Channel, channelPrefix))
			if err != nil {
				zap.L().Warn("Ignoring message on unexpected channel", zap.String("channel", msg.Channel))
				continue
			}
			handle(matchID, []byte(msg.Payload))
		}
	}
}
