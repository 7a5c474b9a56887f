package handler

import (
	"context"

	httpUsecase "match-service/internal/api/http/usecase"
	"match-service/internal/handler"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DeleteMatchRequest struct {
	MatchID string `params:"match_id" validate:"required,uuid"`
}

type DeleteMatchResponse struct {
	Message string `json:"message"`
}

type DeleteMatchHandler struct {
	usecase httpUsecase.DeleteMatchUseCase
}

func NewDeleteMatchHandler(usecase httpUsecase.DeleteMatchUseCase) *DeleteMatchHandler {
	return &DeleteMatchHandler{
		usecase: usecase,
	}
}

func (h *DeleteMatchHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *DeleteMatchRequest) (*DeleteMatchResponse, int, error) {
	user, err := handler.CurrentUser(fbrCtx)
	if err != nil {
		return nil, fiber.StatusUnauthorized, err
	}

	status, err := h.usecase.Execute(ctx, uuid.MustParse(req.MatchID), user.UserID)
	if err != nil {
		return nil, status, err
	}
	return &DeleteMatchResponse{Message: "match deleted"}, status, nil
}
