package bootstrap

import (
	"match-service/config"
	"match-service/internal/api/game"
	gameHub "match-service/internal/api/ws/hub"
	"match-service/internal/engine"
	"match-service/internal/initializer"
)

func InitManager(config config.Config, repo PostgresRepository, publisher game.Publisher) *game.Manager {
	return game.NewManager(repo, engine.NewChess(), publisher, game.Config{
		StaleAfter:   config.Match.StaleAfter,
		StoreTimeout: config.Match.StoreTimeout,
	}, nil)
}

func InitWebsocket(config config.Config, manager *game.Manager, lobby *gameHub.LobbyHub) *gameHub.Hub {
	return initializer.InitWebsocket(config, manager, lobby)
}
