package bootstrap

import (
	"match-service/config"
	"match-service/internal/handler"
	"match-service/internal/initializer"

	"github.com/redis/go-redis/v9"
)

type SessionManager interface {
	handler.SessionStore
	GetRedisClient() *redis.Client
	Close() error
}

func InitSessionRedis(config config.Config) SessionManager {
	return initializer.InitSessionRedis(config)
}
