package handler

import (
	"context"

	httpUsecase "match-service/internal/api/http/usecase"
	"match-service/internal/handler"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LeaveMatchRequest struct {
	MatchID string `params:"match_id" validate:"required,uuid"`
}

type LeaveMatchResponse struct {
	Message string `json:"message"`
}

type LeaveMatchHandler struct {
	usecase httpUsecase.LeaveMatchUseCase
}

func NewLeaveMatchHandler(usecase httpUsecase.LeaveMatchUseCase) *LeaveMatchHandler {
	return &LeaveMatchHandler{
		usecase: usecase,
	}
}

func (h *LeaveMatchHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *LeaveMatchRequest) (*LeaveMatchResponse, int, error) {
	user, err := handler.CurrentUser(fbrCtx)
	if err != nil {
		return nil, fiber.StatusUnauthorized, err
	}

	status, err := h.usecase.Execute(ctx, uuid.MustParse(req.MatchID), user.UserID)
	if err != nil {
		return nil, status, err
	}
	return &LeaveMatchResponse{Message: "left match"}, status, nil
}
