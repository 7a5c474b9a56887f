package bootstrap

import (
	"time"

	"match-service/config"
	"match-service/domain"
	httpHandler "match-service/internal/api/http/handler"
	wsHandler "match-service/internal/api/ws/handler"
	"match-service/internal/handler"
	"match-service/internal/server"

	"github.com/gofiber/fiber/v2"
)

func SetupServer(config config.Config, sessions SessionManager, httpHandlers map[string]interface{}, wsHandlers map[string]interface{}) *fiber.App {
	serverConfig := server.Config{
		Port:         config.Server.Port,
		AllowOrigins: config.Server.AllowOrigins,
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	app := server.NewFiberApp(serverConfig)

	authGuard := handler.AuthGuard(handler.AuthConfig{
		JWTSecret:           config.Auth.JWTSecret,
		TrustGatewayHeaders: config.Auth.TrustGatewayHeaders,
	}, sessions)
	rateLimiter := handler.NewRateLimiter(handler.RateLimitConfig{
		RequestsPerMinute: config.RateLimit.RequestsPerMinute,
		Burst:             config.RateLimit.Burst,
	})

	createMatchHandler := httpHandlers["create-match"].(*httpHandler.CreateMatchHandler)
	joinMatchHandler := httpHandlers["join-match"].(*httpHandler.JoinMatchHandler)
	leaveMatchHandler := httpHandlers["leave-match"].(*httpHandler.LeaveMatchHandler)
	deleteMatchHandler := httpHandlers["delete-match"].(*httpHandler.DeleteMatchHandler)
	openMatchesHandler := httpHandlers["open-matches"].(*httpHandler.ListMatchesHandler)
	activeMatchesHandler := httpHandlers["active-matches"].(*httpHandler.ListMatchesHandler)
	matchDetailsHandler := httpHandlers["match-details"].(*httpHandler.MatchDetailsHandler)
	userSummaryHandler := httpHandlers["user-summary"].(*httpHandler.UserSummaryHandler)
	userDetailsHandler := httpHandlers["user-details"].(*httpHandler.UserDetailsHandler)

	api := app.Group("/api/matches", rateLimiter.Middleware())
	api.Get("/open", handler.HandleBasic[httpHandler.ListMatchesRequest, httpHandler.ListMatchesResponse](openMatchesHandler))
	api.Get("/active", handler.HandleBasic[httpHandler.ListMatchesRequest, httpHandler.ListMatchesResponse](activeMatchesHandler))
	api.Get("/:match_id/details", handler.HandleBasic[httpHandler.MatchDetailsRequest, domain.MatchDetails](matchDetailsHandler))

	api.Post("/new", authGuard, handler.HandleWithFiber[httpHandler.CreateMatchRequest, httpHandler.CreateMatchResponse](createMatchHandler))
	api.Post("/:match_id/join", authGuard, handler.HandleWithFiber[httpHandler.JoinMatchRequest, httpHandler.JoinMatchResponse](joinMatchHandler))
	api.Post("/:match_id/leave", authGuard, handler.HandleWithFiber[httpHandler.LeaveMatchRequest, httpHandler.LeaveMatchResponse](leaveMatchHandler))
	api.Delete("/:match_id", authGuard, handler.HandleWithFiber[httpHandler.DeleteMatchRequest, httpHandler.DeleteMatchResponse](deleteMatchHandler))

	users := app.Group("/api/users", rateLimiter.Middleware())
	users.Get("/:user_id/summary", handler.HandleBasic[httpHandler.UserProfileRequest, domain.User](userSummaryHandler))
	users.Get("/:user_id/details", handler.HandleBasic[httpHandler.UserProfileRequest, domain.UserDetails](userDetailsHandler))

	playHandler := wsHandlers["play"].(*wsHandler.MatchConnectHandler)
	spectateHandler := wsHandlers["spectate"].(*wsHandler.MatchConnectHandler)
	lobbyHandler := wsHandlers["lobby"].(*wsHandler.LobbyConnectHandler)

	wsRoute := app.Group("/ws", authGuard)
	wsRoute.Get("/play/:match_id", handler.HandleWithFiberWS[wsHandler.MatchConnectRequest](playHandler))
	wsRoute.Get("/spectate/:match_id", handler.HandleWithFiberWS[wsHandler.MatchConnectRequest](spectateHandler))
	wsRoute.Get("/lobby", handler.HandleWithFiberWS[wsHandler.LobbyConnectRequest](lobbyHandler))

	return app
}
