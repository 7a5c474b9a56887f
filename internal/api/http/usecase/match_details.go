package httpUsecase

import (
	"context"
	"net/http"

	"match-service/domain"

	"github.com/google/uuid"
)

type MatchDetailsUseCase interface {
	Execute(ctx context.Context, matchID uuid.UUID) (*domain.MatchDetails, int, error)
}

type matchDetailsUseCase struct {
	repository PostgresRepository
}

func NewMatchDetailsUseCase(repository PostgresRepository) MatchDetailsUseCase {
	return &matchDetailsUseCase{repository: repository}
}

func (u *matchDetailsUseCase) Execute(ctx context.Context, matchID uuid.UUID) (*domain.MatchDetails, int, error) {
	details, err := u.repository.MatchDetails(ctx, matchID, true)
	if err != nil {
		return nil, statusFor(err), err
	}
	return details, http.StatusOK, nil
}
