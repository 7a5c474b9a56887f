package wsUsecase

import (
	"context"

	"match-service/internal/protocol"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MatchConnectUseCase interface {
	Execute(c *websocket.Conn, ctx context.Context, matchID, userID uuid.UUID, name string, spectator bool)
}

type matchConnectUseCase struct {
	hub     Hub
	matches MatchRegistry
}

func NewMatchConnectUseCase(hub Hub, matches MatchRegistry) MatchConnectUseCase {
	return &matchConnectUseCase{
		hub:     hub,
		matches: matches,
	}
}

// Execute serves the connection until it closes. Connections to matches
// without a live session get one ERR frame and are closed.
func (u *matchConnectUseCase) Execute(c *websocket.Conn, ctx context.Context, matchID, userID uuid.UUID, name string, spectator bool) {
	if !u.matches.HasSession(matchID) {
		zap.L().Info("Connection to unknown match",
			zap.String("match_id", matchID.String()),
			zap.String("user_id", userID.String()))
		frame := protocol.SerializeError(nil, protocol.ServerError{
			Code:        protocol.CodeInvalidCommand,
			Description: "Match not found.",
		})
		if err := c.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
			zap.L().Debug("Failed to send error frame", zap.Error(err))
		}
		return
	}

	u.hub.ServeMatch(ctx, c, matchID, userID, name, spectator)
}
