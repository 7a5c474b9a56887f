package domain

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type ClientRole int

const (
	RolePlayer ClientRole = iota
	RoleSpectator
	RoleLobby
)

func (r ClientRole) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleSpectator:
		return "spectator"
	case RoleLobby:
		return "lobby"
	default:
		return "unknown"
	}
}

type WebSocketErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

// Client is one live websocket connection. Frames queued on Send are written
// by the hub's write pump; Done is closed exactly once when the connection is
// torn down.
type Client struct {
	ID      uuid.UUID
	MatchID uuid.UUID
	Name    string
	Role    ClientRole
	Send    chan []byte
	Conn    *websocket.Conn
	Limiter *rate.Limiter

	WriteLock sync.Mutex
	Done      chan struct{}
	closeOnce sync.Once
}

func NewClient(id, matchID uuid.UUID, name string, role ClientRole, conn *websocket.Conn, buffer int) *Client {
	return &Client{
		ID:      id,
		MatchID: matchID,
		Name:    name,
		Role:    role,
		Conn:    conn,
		Send:    make(chan []byte, buffer),
		Done:    make(chan struct{}),
	}
}

// SendFrame queues a frame without blocking. It reports false when the buffer is
// full or the client is already closed.
func (c *Client) SendFrame(frame []byte) bool {
	select {
	case <-c.Done:
		return false
	default:
	}

	select {
	case c.Send <- frame:
		return true
	default:
		return false
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.Done)
	})
}

func (c *Client) Closed() bool {
	select {
	case <-c.Done:
		return true
	default:
		return false
	}
}
