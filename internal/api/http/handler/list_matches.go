package handler

import (
	"context"

	"match-service/domain"
	httpUsecase "match-service/internal/api/http/usecase"
)

type ListMatchesRequest struct{}

type ListMatchesResponse struct {
	Matches []domain.MatchDetails `json:"matches"`
}

// ListMatchesHandler serves either the open or the active listing.
type ListMatchesHandler struct {
	usecase httpUsecase.ListMatchesUseCase
	active  bool
}

func NewOpenMatchesHandler(usecase httpUsecase.ListMatchesUseCase) *ListMatchesHandler {
	return &ListMatchesHandler{usecase: usecase}
}

func NewActiveMatchesHandler(usecase httpUsecase.ListMatchesUseCase) *ListMatchesHandler {
	return &ListMatchesHandler{usecase: usecase, active: true}
}

func (h *ListMatchesHandler) Handle(ctx context.Context, req *ListMatchesRequest) (*ListMatchesResponse, int, error) {
	list := h.usecase.Open
	if h.active {
		list = h.usecase.Active
	}

	matches, status, err := list(ctx)
	if err != nil {
		return nil, status, err
	}
	return &ListMatchesResponse{Matches: matches}, status, nil
}
