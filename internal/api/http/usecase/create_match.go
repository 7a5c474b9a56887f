package httpUsecase

import (
	"context"
	"fmt"
	"net/http"

	"match-service/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateMatchUseCase interface {
	Execute(ctx context.Context, hostID uuid.UUID, hostName string, options map[string]bool) (*domain.Match, int, error)
}

type createMatchUseCase struct {
	repository PostgresRepository
	manager    MatchManager
}

func NewCreateMatchUseCase(repository PostgresRepository, manager MatchManager) CreateMatchUseCase {
	return &createMatchUseCase{
		repository: repository,
		manager:    manager,
	}
}

// Execute persists a match with the default options overridden by options,
// then opens its live session.
func (u *createMatchUseCase) Execute(ctx context.Context, hostID uuid.UUID, hostName string, options map[string]bool) (*domain.Match, int, error) {
	hostName = displayName(hostID, hostName)

	initial := u.manager.DefaultOptions()
	for name, value := range options {
		if !initial.Set(name, value) {
			return nil, http.StatusBadRequest, fmt.Errorf("%w: unknown option %q", domain.ErrInvalidInput, name)
		}
	}

	if err := u.repository.EnsureUser(ctx, hostID, hostName); err != nil {
		return nil, statusFor(err), err
	}

	match, err := u.repository.CreateMatch(ctx, hostID, initial.Match.Encode(), initial.Engine.Encode())
	if err != nil {
		return nil, statusFor(err), err
	}

	if _, err := u.manager.RegisterMatch(ctx, match, hostName); err != nil {
		if delErr := u.repository.DeleteMatch(ctx, match.ID); delErr != nil {
			zap.L().Error("Failed to roll back unregistered match",
				zap.String("match_id", match.ID.String()),
				zap.Error(delErr))
		}
		return nil, statusFor(err), err
	}

	return match, http.StatusCreated, nil
}
