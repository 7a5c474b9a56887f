package bootstrap

import (
	"context"

	"match-service/config"
	"match-service/domain"
	"match-service/internal/api/game"
	"match-service/internal/initializer"

	"github.com/google/uuid"
)

type PostgresRepository interface {
	game.Store
	Close() error
	EnsureUser(ctx context.Context, userID uuid.UUID, displayName string) error
	CreateMatch(ctx context.Context, hostID uuid.UUID, options, gameOptions string) (*domain.Match, error)
	MatchDetails(ctx context.Context, matchID uuid.UUID, withMoves bool) (*domain.MatchDetails, error)
	ListOpenMatches(ctx context.Context) ([]domain.MatchDetails, error)
	ListActiveMatches(ctx context.Context) ([]domain.MatchDetails, error)
	FindUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	ListUserMatches(ctx context.Context, userID uuid.UUID) ([]domain.MatchDetails, error)
}

func InitDatabase(config config.Config) PostgresRepository {
	return initializer.InitDatabase(config)
}
