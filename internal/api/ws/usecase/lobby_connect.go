package wsUsecase

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type LobbyConnectUseCase interface {
	Execute(c *websocket.Conn, userID uuid.UUID)
}

type lobbyConnectUseCase struct {
	hub Hub
}

func NewLobbyConnectUseCase(hub Hub) LobbyConnectUseCase {
	return &lobbyConnectUseCase{hub: hub}
}

func (u *lobbyConnectUseCase) Execute(c *websocket.Conn, userID uuid.UUID) {
	u.hub.ServeLobby(c, userID)
}
