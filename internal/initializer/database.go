package initializer

import (
	"fmt"
	"log"

	"match-service/config"
	"match-service/infra/postgres"
)

func InitDatabase(appConfig config.Config) *postgres.Repository {
	connString := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		appConfig.Postgres.Host,
		appConfig.Postgres.Port,
		appConfig.Postgres.User,
		appConfig.Postgres.Password,
		appConfig.Postgres.DB,
		appConfig.Postgres.SSLMode,
	)

	repo, err := postgres.NewRepository(connString)
	if err != nil {
		log.Fatalf("Postgres connection failed: %v", err)
	}
	return repo
}
