package wsHandler

import (
	"context"

	"match-service/domain"
	wsUsecase "match-service/internal/api/ws/usecase"
	"match-service/internal/handler"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MatchConnectRequest struct {
	MatchID string `params:"match_id" validate:"required,uuid"`
}

// MatchConnectHandler serves /ws/play/:match_id or, with spectator set,
// /ws/spectate/:match_id.
type MatchConnectHandler struct {
	usecase   wsUsecase.MatchConnectUseCase
	spectator bool
}

func NewPlayHandler(usecase wsUsecase.MatchConnectUseCase) *MatchConnectHandler {
	return &MatchConnectHandler{usecase: usecase}
}

func NewSpectateHandler(usecase wsUsecase.MatchConnectUseCase) *MatchConnectHandler {
	return &MatchConnectHandler{usecase: usecase, spectator: true}
}

func sendErrorAndClose(conn *websocket.Conn, msg string, code int) {
	errorMessage := domain.WebSocketErrorMessage{
		Type:    "error",
		Message: msg,
		Code:    code,
	}
	if err := conn.WriteJSON(errorMessage); err != nil {
		zap.L().Debug("Failed to send error message to client", zap.Error(err))
	}
	conn.Close()
}

func (h *MatchConnectHandler) HandleWS(c *websocket.Conn, ctx context.Context, req *MatchConnectRequest) {
	user, err := handler.CurrentWSUser(c)
	if err != nil {
		sendErrorAndClose(c, "unauthorized", fiber.StatusUnauthorized)
		return
	}

	matchID, err := uuid.Parse(req.MatchID)
	if err != nil {
		sendErrorAndClose(c, "invalid match id", fiber.StatusBadRequest)
		return
	}

	h.usecase.Execute(c, ctx, matchID, user.UserID, user.DisplayName, h.spectator)
}
