package handler

import (
	"context"

	"match-service/domain"
	httpUsecase "match-service/internal/api/http/usecase"
	"match-service/internal/handler"

	"github.com/gofiber/fiber/v2"
)

type CreateMatchRequest struct {
	Options map[string]bool `json:"options"`
}

type CreateMatchResponse struct {
	Match *domain.Match `json:"match"`
}

type CreateMatchHandler struct {
	usecase httpUsecase.CreateMatchUseCase
}

func NewCreateMatchHandler(usecase httpUsecase.CreateMatchUseCase) *CreateMatchHandler {
	return &CreateMatchHandler{
		usecase: usecase,
	}
}

func (h *CreateMatchHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *CreateMatchRequest) (*CreateMatchResponse, int, error) {
	user, err := handler.CurrentUser(fbrCtx)
	if err != nil {
		return nil, fiber.StatusUnauthorized, err
	}

	match, status, err := h.usecase.Execute(ctx, user.UserID, user.DisplayName, req.Options)
	if err != nil {
		return nil, status, err
	}
	return &CreateMatchResponse{Match: match}, status, nil
}
