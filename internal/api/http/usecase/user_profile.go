package httpUsecase

import (
	"context"
	"net/http"

	"match-service/domain"

	"github.com/google/uuid"
)

type UserProfileUseCase interface {
	Summary(ctx context.Context, userID uuid.UUID) (*domain.User, int, error)
	Details(ctx context.Context, userID uuid.UUID) (*domain.UserDetails, int, error)
}

type userProfileUseCase struct {
	repository PostgresRepository
}

func NewUserProfileUseCase(repository PostgresRepository) UserProfileUseCase {
	return &userProfileUseCase{repository: repository}
}

func (u *userProfileUseCase) Summary(ctx context.Context, userID uuid.UUID) (*domain.User, int, error) {
	user, err := u.repository.FindUser(ctx, userID)
	if err != nil {
		return nil, statusFor(err), err
	}
	return user, http.StatusOK, nil
}

// Details splits the user's matches into the ones still being played and the
// ones that ended.
func (u *userProfileUseCase) Details(ctx context.Context, userID uuid.UUID) (*domain.UserDetails, int, error) {
	user, err := u.repository.FindUser(ctx, userID)
	if err != nil {
		return nil, statusFor(err), err
	}

	matches, err := u.repository.ListUserMatches(ctx, userID)
	if err != nil {
		return nil, statusFor(err), err
	}

	details := &domain.UserDetails{
		User:          *user,
		ActiveMatches: []domain.MatchDetails{},
		PastMatches:   []domain.MatchDetails{},
	}
	for _, match := range matches {
		switch match.Status {
		case domain.MatchActive:
			details.ActiveMatches = append(details.ActiveMatches, match)
		case domain.MatchEnded:
			details.PastMatches = append(details.PastMatches, match)
		}
	}
	return details, http.StatusOK, nil
}
