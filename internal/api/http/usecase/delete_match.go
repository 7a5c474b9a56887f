package httpUsecase

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type DeleteMatchUseCase interface {
	Execute(ctx context.Context, matchID, userID uuid.UUID) (int, error)
}

type deleteMatchUseCase struct {
	manager MatchManager
}

func NewDeleteMatchUseCase(manager MatchManager) DeleteMatchUseCase {
	return &deleteMatchUseCase{manager: manager}
}

func (u *deleteMatchUseCase) Execute(ctx context.Context, matchID, userID uuid.UUID) (int, error) {
	if err := u.manager.DeleteMatch(ctx, matchID, userID); err != nil {
		return statusFor(err), err
	}
	return http.StatusOK, nil
}
