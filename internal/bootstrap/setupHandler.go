package bootstrap

import (
	"match-service/internal/api/game"
	httpHandler "match-service/internal/api/http/handler"
	httpUsecase "match-service/internal/api/http/usecase"
	wsHandler "match-service/internal/api/ws/handler"
	gameHub "match-service/internal/api/ws/hub"
	wsUsecase "match-service/internal/api/ws/usecase"
)

func SetupHTTPHandlers(postgresRepository PostgresRepository, manager *game.Manager) map[string]interface{} {
	createMatchUseCase := httpUsecase.NewCreateMatchUseCase(postgresRepository, manager)
	createMatchHandler := httpHandler.NewCreateMatchHandler(createMatchUseCase)

	joinMatchUseCase := httpUsecase.NewJoinMatchUseCase(postgresRepository, manager)
	joinMatchHandler := httpHandler.NewJoinMatchHandler(joinMatchUseCase)

	leaveMatchUseCase := httpUsecase.NewLeaveMatchUseCase(manager)
	leaveMatchHandler := httpHandler.NewLeaveMatchHandler(leaveMatchUseCase)

	deleteMatchUseCase := httpUsecase.NewDeleteMatchUseCase(manager)
	deleteMatchHandler := httpHandler.NewDeleteMatchHandler(deleteMatchUseCase)

	listMatchesUseCase := httpUsecase.NewListMatchesUseCase(postgresRepository, manager)
	openMatchesHandler := httpHandler.NewOpenMatchesHandler(listMatchesUseCase)
	activeMatchesHandler := httpHandler.NewActiveMatchesHandler(listMatchesUseCase)

	matchDetailsUseCase := httpUsecase.NewMatchDetailsUseCase(postgresRepository)
	matchDetailsHandler := httpHandler.NewMatchDetailsHandler(matchDetailsUseCase)

	userProfileUseCase := httpUsecase.NewUserProfileUseCase(postgresRepository)
	userSummaryHandler := httpHandler.NewUserSummaryHandler(userProfileUseCase)
	userDetailsHandler := httpHandler.NewUserDetailsHandler(userProfileUseCase)

	return map[string]interface{}{
		"create-match":   createMatchHandler,
		"join-match":     joinMatchHandler,
		"leave-match":    leaveMatchHandler,
		"delete-match":   deleteMatchHandler,
		"open-matches":   openMatchesHandler,
		"active-matches": activeMatchesHandler,
		"match-details":  matchDetailsHandler,
		"user-summary":   userSummaryHandler,
		"user-details":   userDetailsHandler,
	}
}

func SetupWSHandlers(wsHub *gameHub.Hub, manager *game.Manager) map[string]interface{} {
	matchConnect := wsUsecase.NewMatchConnectUseCase(wsHub, manager)
	lobbyConnect := wsUsecase.NewLobbyConnectUseCase(wsHub)

	return map[string]interface{}{
		"play":     wsHandler.NewPlayHandler(matchConnect),
		"spectate": wsHandler.NewSpectateHandler(matchConnect),
		"lobby":    wsHandler.NewLobbyConnectHandler(lobbyConnect),
	}
}
