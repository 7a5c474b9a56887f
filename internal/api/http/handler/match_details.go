package handler

import (
	"context"

	"match-service/domain"
	httpUsecase "match-service/internal/api/http/usecase"

	"github.com/google/uuid"
)

type MatchDetailsRequest struct {
	MatchID string `params:"match_id" validate:"required,uuid"`
}

type MatchDetailsHandler struct {
	usecase httpUsecase.MatchDetailsUseCase
}

func NewMatchDetailsHandler(usecase httpUsecase.MatchDetailsUseCase) *MatchDetailsHandler {
	return &MatchDetailsHandler{
		usecase: usecase,
	}
}

func (h *MatchDetailsHandler) Handle(ctx context.Context, req *MatchDetailsRequest) (*domain.MatchDetails, int, error) {
	return h.usecase.Execute(ctx, uuid.MustParse(req.MatchID))
}
