package handler

import (
	"context"

	"match-service/domain"
	httpUsecase "match-service/internal/api/http/usecase"

	"github.com/google/uuid"
)

type UserProfileRequest struct {
	UserID string `params:"user_id" validate:"required,uuid"`
}

type UserSummaryHandler struct {
	usecase httpUsecase.UserProfileUseCase
}

func NewUserSummaryHandler(usecase httpUsecase.UserProfileUseCase) *UserSummaryHandler {
	return &UserSummaryHandler{usecase: usecase}
}

func (h *UserSummaryHandler) Handle(ctx context.Context, req *UserProfileRequest) (*domain.User, int, error) {
	return h.usecase.Summary(ctx, uuid.MustParse(req.UserID))
}

type UserDetailsHandler struct {
	usecase httpUsecase.UserProfileUseCase
}

func NewUserDetailsHandler(usecase httpUsecase.UserProfileUseCase) *UserDetailsHandler {
	return &UserDetailsHandler{usecase: usecase}
}

func (h *UserDetailsHandler) Handle(ctx context.Context, req *UserProfileRequest) (*domain.UserDetails, int, error) {
	return h.usecase.Details(ctx, uuid.MustParse(req.UserID))
}
