package httpUsecase

import (
	"context"
	"net/http"

	"match-service/internal/api/game"

	"github.com/google/uuid"
)

type JoinMatchUseCase interface {
	Execute(ctx context.Context, matchID, userID uuid.UUID, name string) (game.AddResult, int, error)
}

type joinMatchUseCase struct {
	repository PostgresRepository
	manager    MatchManager
}

func NewJoinMatchUseCase(repository PostgresRepository, manager MatchManager) JoinMatchUseCase {
	return &joinMatchUseCase{
		repository: repository,
		manager:    manager,
	}
}

func (u *joinMatchUseCase) Execute(ctx context.Context, matchID, userID uuid.UUID, name string) (game.AddResult, int, error) {
	name = displayName(userID, name)
	if err := u.repository.EnsureUser(ctx, userID, name); err != nil {
		return game.AddRejected, statusFor(err), err
	}

	result, err := u.manager.AddUser(ctx, matchID, userID, name)
	if err != nil {
		return result, statusFor(err), err
	}
	if result == game.AddAccepted {
		return result, http.StatusCreated, nil
	}
	return result, http.StatusOK, nil
}
