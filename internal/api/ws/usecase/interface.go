package wsUsecase

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Hub interface {
	ServeMatch(ctx context.Context, conn *websocket.Conn, matchID, userID uuid.UUID, name string, spectator bool)
	ServeLobby(conn *websocket.Conn, userID uuid.UUID)
}

type MatchRegistry interface {
	HasSession(matchID uuid.UUID) bool
}
