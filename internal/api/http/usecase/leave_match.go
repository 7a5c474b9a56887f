package httpUsecase

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type LeaveMatchUseCase interface {
	Execute(ctx context.Context, matchID, userID uuid.UUID) (int, error)
}

type leaveMatchUseCase struct {
	manager MatchManager
}

func NewLeaveMatchUseCase(manager MatchManager) LeaveMatchUseCase {
	return &leaveMatchUseCase{manager: manager}
}

func (u *leaveMatchUseCase) Execute(ctx context.Context, matchID, userID uuid.UUID) (int, error) {
	if err := u.manager.Leave(ctx, matchID, userID); err != nil {
		return statusFor(err), err
	}
	return http.StatusOK, nil
}
