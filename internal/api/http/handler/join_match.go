package handler

import (
	"context"

	httpUsecase "match-service/internal/api/http/usecase"
	"match-service/internal/handler"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type JoinMatchRequest struct {
	MatchID string `params:"match_id" validate:"required,uuid"`
}

type JoinMatchResponse struct {
	Message string `json:"message"`
	Result  string `json:"result"`
}

type JoinMatchHandler struct {
	usecase httpUsecase.JoinMatchUseCase
}

func NewJoinMatchHandler(usecase httpUsecase.JoinMatchUseCase) *JoinMatchHandler {
	return &JoinMatchHandler{
		usecase: usecase,
	}
}

func (h *JoinMatchHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *JoinMatchRequest) (*JoinMatchResponse, int, error) {
	user, err := handler.CurrentUser(fbrCtx)
	if err != nil {
		return nil, fiber.StatusUnauthorized, err
	}

	result, status, err := h.usecase.Execute(ctx, uuid.MustParse(req.MatchID), user.UserID, user.DisplayName)
	if err != nil {
		return nil, status, err
	}
	return &JoinMatchResponse{Message: "joined match", Result: result.String()}, status, nil
}
