package bootstrap

import (
	"context"

	"match-service/config"
	kafkaHandler "match-service/internal/api/kafka"
	"match-service/internal/api/game"
	"match-service/internal/initializer"

	"github.com/google/uuid"
)

type Messaging interface {
	game.Publisher
	Close() error
}

type LobbyRedisManager interface {
	game.Publisher
	SubscribeAll(ctx context.Context, handle func(matchID uuid.UUID, payload []byte)) error
	Close() error
}

func SetupMessageHandlers(postgresRepository PostgresRepository) map[string]kafkaHandler.MessageHandler {
	return map[string]kafkaHandler.MessageHandler{
		kafkaHandler.MessageTypeUserCreated: kafkaHandler.NewCreatedUserHandler(postgresRepository),
	}
}

func SetupMessaging(ctx context.Context, handlers map[string]kafkaHandler.MessageHandler, config config.Config) Messaging {
	return initializer.InitMessaging(ctx, config, kafkaHandler.Router(handlers))
}

func InitLobbyRedis(config config.Config) LobbyRedisManager {
	return initializer.InitLobbyRedis(config)
}
