package httpUsecase

import (
	"context"
	"net/http"

	"match-service/domain"
)

type ListMatchesUseCase interface {
	Open(ctx context.Context) ([]domain.MatchDetails, int, error)
	Active(ctx context.Context) ([]domain.MatchDetails, int, error)
}

type listMatchesUseCase struct {
	repository PostgresRepository
	manager    MatchManager
}

func NewListMatchesUseCase(repository PostgresRepository, manager MatchManager) ListMatchesUseCase {
	return &listMatchesUseCase{
		repository: repository,
		manager:    manager,
	}
}

// Open lists joinable matches. A persisted match without a live session in
// this process cannot be joined, so it is left out.
func (u *listMatchesUseCase) Open(ctx context.Context) ([]domain.MatchDetails, int, error) {
	matches, err := u.repository.ListOpenMatches(ctx)
	if err != nil {
		return nil, statusFor(err), err
	}

	open := make([]domain.MatchDetails, 0, len(matches))
	for _, match := range matches {
		if u.manager.HasSession(match.ID) {
			open = append(open, match)
		}
	}
	return open, http.StatusOK, nil
}

func (u *listMatchesUseCase) Active(ctx context.Context) ([]domain.MatchDetails, int, error) {
	matches, err := u.repository.ListActiveMatches(ctx)
	if err != nil {
		return nil, statusFor(err), err
	}
	return matches, http.StatusOK, nil
}
