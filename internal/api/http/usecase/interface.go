package httpUsecase

import (
	"context"
	"errors"
	"net/http"

	"match-service/domain"
	"match-service/internal/api/game"

	"github.com/google/uuid"
)

type PostgresRepository interface {
	EnsureUser(ctx context.Context, userID uuid.UUID, displayName string) error
	CreateMatch(ctx context.Context, hostID uuid.UUID, options, gameOptions string) (*domain.Match, error)
	DeleteMatch(ctx context.Context, matchID uuid.UUID) error
	MatchDetails(ctx context.Context, matchID uuid.UUID, withMoves bool) (*domain.MatchDetails, error)
	ListOpenMatches(ctx context.Context) ([]domain.MatchDetails, error)
	ListActiveMatches(ctx context.Context) ([]domain.MatchDetails, error)
	FindUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	ListUserMatches(ctx context.Context, userID uuid.UUID) ([]domain.MatchDetails, error)
}

type MatchManager interface {
	DefaultOptions() game.Options
	RegisterMatch(ctx context.Context, match *domain.Match, hostName string) (*game.Session, error)
	AddUser(ctx context.Context, matchID, userID uuid.UUID, name string) (game.AddResult, error)
	Leave(ctx context.Context, matchID, userID uuid.UUID) error
	DeleteMatch(ctx context.Context, matchID, userID uuid.UUID) error
	HasSession(matchID uuid.UUID) bool
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrMatchFull),
		errors.Is(err, domain.ErrSessionExists), errors.Is(err, domain.ErrDuplicateResource):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func displayName(userID uuid.UUID, name string) string {
	if name != "" {
		return name
	}
	return "player-" + userID.String()[:8]
}
