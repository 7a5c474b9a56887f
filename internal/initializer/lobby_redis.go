package initializer

import (
	"fmt"
	"log"

	"match-service/config"
	"match-service/infra/redis"
)

func InitLobbyRedis(appConfig config.Config) *redis.RedisManager {
	address := fmt.Sprintf("%s:%s", appConfig.LobbyRedis.Host, appConfig.LobbyRedis.Port)

	redisManager, err := redis.NewRedisManager(address, appConfig.LobbyRedis.Password, appConfig.LobbyRedis.DB)
	if err != nil {
		log.Fatalf("Lobby Redis connection failed: %v", err)
	}
	return redisManager
}
