package hub

import (
	"context"
	"sync"
	"time"

	"match-service/domain"
	"match-service/internal/api/game"
	"match-service/internal/protocol"

	"github.com/fasthttp/websocket"
	fiberws "github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Config struct {
	WriteWait       time.Duration
	PongWait        time.Duration
	PingPeriod      time.Duration
	MaxMessageSize  int64
	SendBuffer      int
	FramesPerSecond float64
	FrameBurst      int
}

func (c Config) withDefaults() Config {
	if c.WriteWait <= 0 {
		c.WriteWait = 10 * time.Second
	}
	if c.PongWait <= 0 {
		c.PongWait = 60 * time.Second
	}
	if c.PingPeriod <= 0 || c.PingPeriod >= c.PongWait {
		c.PingPeriod = (c.PongWait * 9) / 10
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = 512
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = 256
	}
	if c.FramesPerSecond <= 0 {
		c.FramesPerSecond = 10
	}
	if c.FrameBurst <= 0 {
		c.FrameBurst = 20
	}
	return c
}

// Hub pumps frames between websocket connections and the match manager.
// Match connections speak the text protocol; lobby connections only receive
// lifecycle JSON.
type Hub struct {
	manager *game.Manager
	lobby   *LobbyHub
	cfg     Config

	mutex   sync.RWMutex
	clients map[*domain.Client]struct{}
}

func NewHub(manager *game.Manager, lobby *LobbyHub, cfg Config) *Hub {
	return &Hub{
		manager: manager,
		lobby:   lobby,
		cfg:     cfg.withDefaults(),
		clients: make(map[*domain.Client]struct{}),
	}
}

func (h *Hub) Lobby() *LobbyHub { return h.lobby }

// ClientCount is the number of open websocket connections of every role.
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) newClient(conn *fiberws.Conn, matchID, userID uuid.UUID, name string, role domain.ClientRole) *domain.Client {
	client := domain.NewClient(userID, matchID, name, role, conn, h.cfg.SendBuffer)
	client.Limiter = rate.NewLimiter(rate.Limit(h.cfg.FramesPerSecond), h.cfg.FrameBurst)
	return client
}

func (h *Hub) registerClient(client *domain.Client) {
	h.mutex.Lock()
	h.clients[client] = struct{}{}
	h.mutex.Unlock()
}

func (h *Hub) unregisterClient(client *domain.Client) {
	h.mutex.Lock()
	delete(h.clients, client)
	h.mutex.Unlock()
}

// ServeMatch runs a player or spectator connection until it closes. It
// blocks, as fiber closes the socket when the handler returns.
func (h *Hub) ServeMatch(ctx context.Context, conn *fiberws.Conn, matchID, userID uuid.UUID, name string, spectator bool) {
	role := domain.RolePlayer
	if spectator {
		role = domain.RoleSpectator
	}
	client := h.newClient(conn, matchID, userID, name, role)

	h.registerClient(client)
	defer h.unregisterClient(client)

	written := make(chan struct{})
	go func() {
		defer close(written)
		h.writePump(client)
	}()

	var gameRole game.Role = game.PlayerRole{UserID: userID}
	var err error
	if spectator {
		gameRole = game.SpectatorRole{UserID: userID}
		err = h.manager.ConnectSpectator(ctx, matchID, userID, name, client)
	} else {
		err = h.manager.ConnectPlayer(ctx, matchID, userID, client)
	}
	if err != nil {
		h.reject(client, err)
		<-written
		return
	}

	h.readPump(client, func(payload []byte) {
		h.manager.HandleFrame(ctx, matchID, gameRole, client, string(payload))
	})

	h.manager.Disconnect(ctx, matchID, gameRole, client)
	client.Close()
	<-written
}

// ServeLobby streams lifecycle events to conn until it closes.
func (h *Hub) ServeLobby(conn *fiberws.Conn, userID uuid.UUID) {
	client := h.newClient(conn, uuid.Nil, userID, "", domain.RoleLobby)

	h.registerClient(client)
	defer h.unregisterClient(client)
	h.lobby.Register(client)
	defer h.lobby.Unregister(client)

	written := make(chan struct{})
	go func() {
		defer close(written)
		h.writePump(client)
	}()

	// Lobby clients never send anything meaningful; reading keeps the pong
	// deadline moving and notices the close.
	h.readPump(client, func([]byte) {})
	client.Close()
	<-written
}

// Shutdown closes every open connection. Pumps exit on their own.
func (h *Hub) Shutdown() {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for client := range h.clients {
		client.Close()
	}
}

func (h *Hub) readPump(client *domain.Client, handle func(payload []byte)) {
	conn := client.Conn
	conn.SetReadLimit(h.cfg.MaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	})

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && !client.Closed() {
				zap.L().Debug("Websocket read error",
					zap.String("user_id", client.ID.String()),
					zap.String("role", client.Role.String()),
					zap.Error(err))
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		if !h.admit(client) {
			continue
		}
		handle(payload)
	}
}

// reject tells a connection it may not attach to the match and closes it.
// The cause is only logged.
func (h *Hub) reject(client *domain.Client, err error) {
	zap.L().Info("Rejected match connection",
		zap.String("match_id", client.MatchID.String()),
		zap.String("user_id", client.ID.String()),
		zap.String("role", client.Role.String()),
		zap.Error(err))
	client.SendFrame([]byte(protocol.SerializeError(nil, protocol.ErrInvalidCommand)))
	client.Close()
}

// admit spends one token of the client's frame budget. A frame over budget is
// answered with an invalid command error instead of being handled.
func (h *Hub) admit(client *domain.Client) bool {
	if client.Limiter.Allow() {
		return true
	}
	zap.L().Warn("Frame over rate limit",
		zap.String("user_id", client.ID.String()),
		zap.String("match_id", client.MatchID.String()))
	client.SendFrame([]byte(protocol.SerializeError(&client.ID, protocol.ErrInvalidCommand)))
	return false
}

// writePump owns every write to the socket. Once the client is closed it
// flushes what is already queued, sends a close frame and closes the socket,
// which also ends the read pump.
func (h *Hub) writePump(client *domain.Client) {
	ticker := time.NewTicker(h.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case frame := <-client.Send:
			if err := h.write(client, websocket.TextMessage, frame); err != nil {
				client.Close()
				return
			}

		case <-ticker.C:
			if err := h.write(client, websocket.PingMessage, nil); err != nil {
				client.Close()
				return
			}

		case <-client.Done:
			for {
				select {
				case frame := <-client.Send:
					if err := h.write(client, websocket.TextMessage, frame); err != nil {
						return
					}
				default:
					_ = h.write(client, websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
					return
				}
			}
		}
	}
}

func (h *Hub) write(client *domain.Client, messageType int, data []byte) error {
	client.WriteLock.Lock()
	defer client.WriteLock.Unlock()

	_ = client.Conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteWait))
	err := client.Conn.WriteMessage(messageType, data)
	if err != nil && messageType != websocket.CloseMessage {
		zap.L().Debug("Websocket write error", zap.String("user_id", client.ID.String()), zap.Error(err))
	}
	return err
}
