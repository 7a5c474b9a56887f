package bootstrap

import (
	"context"
	"io"
	"time"

	"match-service/config"
	"match-service/internal/api/game"
	gameHub "match-service/internal/api/ws/hub"
	"match-service/pkg/graceful"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// cleanupTimeout bounds the boot-time sweep of matches orphaned by a restart.
const cleanupTimeout = 30 * time.Second

type App struct {
	config         config.Config
	ctx            context.Context
	cancel         context.CancelFunc
	postgresRepo   PostgresRepository
	sessionManager SessionManager
	lobbyRedis     LobbyRedisManager
	kafka          Messaging
	manager        *game.Manager
	lobby          *gameHub.LobbyHub
	wsHub          *gameHub.Hub
	fiberApp       *fiber.App
	httpHandlers   map[string]interface{}
	wsHandlers     map[string]interface{}
}

func NewApp(config config.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}
	app.initDependencies()
	return app
}

func (a *App) initDependencies() {
	a.postgresRepo = InitDatabase(a.config)
	a.sessionManager = InitSessionRedis(a.config)
	a.lobby = gameHub.NewLobbyHub()

	var publishers game.Publishers
	if a.config.LobbyRedis.Enabled {
		a.lobbyRedis = InitLobbyRedis(a.config)
		publishers = append(publishers, a.lobbyRedis)
		go a.lobby.Run(a.ctx, a.lobbyRedis)
	} else {
		publishers = append(publishers, a.lobby)
	}
	if a.config.Kafka.Enabled {
		a.kafka = SetupMessaging(a.ctx, SetupMessageHandlers(a.postgresRepo), a.config)
		publishers = append(publishers, a.kafka)
	}

	a.manager = InitManager(a.config, a.postgresRepo, publishers)
	a.wsHub = InitWebsocket(a.config, a.manager, a.lobby)
	a.httpHandlers = SetupHTTPHandlers(a.postgresRepo, a.manager)
	a.wsHandlers = SetupWSHandlers(a.wsHub, a.manager)
	a.fiberApp = SetupServer(a.config, a.sessionManager, a.httpHandlers, a.wsHandlers)
}

func (a *App) cleanupExpiredMatches() {
	ctx, cancel := context.WithTimeout(a.ctx, cleanupTimeout)
	defer cancel()

	deleted, err := a.manager.CleanupExpiredMatches(ctx)
	if err != nil {
		zap.L().Error("Failed to clean up expired matches", zap.Error(err))
		return
	}
	zap.L().Info("Cleaned up expired matches", zap.Int("deleted", deleted))
}

func (a *App) Start() {
	if a.config.Match.CleanupOnBoot {
		a.cleanupExpiredMatches()
	}

	go func() {
		if err := a.fiberApp.Listen(a.config.Server.Host + ":" + a.config.Server.Port); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			a.cancel()
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", a.config.Server.Port))

	drain := func() {
		a.manager.Shutdown()
		a.wsHub.Shutdown()
		a.cancel()
	}

	var closers []io.Closer
	if a.kafka != nil {
		closers = append(closers, a.kafka)
	}
	if a.lobbyRedis != nil {
		closers = append(closers, a.lobbyRedis)
	}
	closers = append(closers, a.sessionManager, a.postgresRepo)

	graceful.WaitForShutdown(a.fiberApp, 5*time.Second, a.ctx, drain, closers...)
}
