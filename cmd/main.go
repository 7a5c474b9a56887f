package main

import (
	"match-service/config"
	"match-service/internal/bootstrap"
	_ "match-service/log"

	"go.uber.org/zap"
)

func main() {
	appConfig := config.Read()
	defer zap.L().Sync()
	zap.L().Info("app starting...",
		zap.String("app name", appConfig.App.Name),
		zap.String("version", appConfig.App.Version))

	app := bootstrap.NewApp(appConfig)

	app.Start()
}
