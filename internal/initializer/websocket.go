package initializer

import (
	"match-service/config"
	"match-service/internal/api/game"
	gameHub "match-service/internal/api/ws/hub"
)

func InitWebsocket(appConfig config.Config, manager *game.Manager, lobby *gameHub.LobbyHub) *gameHub.Hub {
	return gameHub.NewHub(manager, lobby, gameHub.Config{
		WriteWait:       appConfig.Match.WriteWait,
		PongWait:        appConfig.Match.PongWait,
		PingPeriod:      appConfig.Match.PingPeriod,
		MaxMessageSize:  appConfig.Match.MaxMessageSize,
		SendBuffer:      appConfig.Match.SendBuffer,
		FramesPerSecond: appConfig.Match.FramesPerSecond,
		FrameBurst:      appConfig.Match.FrameBurst,
	})
}
