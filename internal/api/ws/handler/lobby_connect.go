package wsHandler

import (
	"context"

	wsUsecase "match-service/internal/api/ws/usecase"
	"match-service/internal/handler"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type LobbyConnectRequest struct{}

type LobbyConnectHandler struct {
	usecase wsUsecase.LobbyConnectUseCase
}

func NewLobbyConnectHandler(usecase wsUsecase.LobbyConnectUseCase) *LobbyConnectHandler {
	return &LobbyConnectHandler{usecase: usecase}
}

func (h *LobbyConnectHandler) HandleWS(c *websocket.Conn, _ context.Context, _ *LobbyConnectRequest) {
	user, err := handler.CurrentWSUser(c)
	if err != nil {
		sendErrorAndClose(c, "unauthorized", fiber.StatusUnauthorized)
		return
	}
	h.usecase.Execute(c, user.UserID)
}
