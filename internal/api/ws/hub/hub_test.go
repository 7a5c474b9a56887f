package hub

import (
	"errors"
	"testing"
	"time"

	"match-service/domain"
	"match-service/internal/protocol"

	"github.com/google/uuid"
)

func drain(client *domain.Client) []string {
	var frames []string
	for {
		select {
		case frame := <-client.Send:
			frames = append(frames, string(frame))
		default:
			return frames
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	if cfg.PongWait != 60*time.Second || cfg.PingPeriod != 54*time.Second {
		t.Fatalf("heartbeat defaults = %v / %v", cfg.PongWait, cfg.PingPeriod)
	}
	if cfg.MaxMessageSize != 512 || cfg.SendBuffer != 256 {
		t.Fatalf("size defaults = %d / %d", cfg.MaxMessageSize, cfg.SendBuffer)
	}

	//1.- A ping period that would let the pong deadline lapse is pulled back.
	cfg = Config{PongWait: 10 * time.Second, PingPeriod: 30 * time.Second}.withDefaults()
	if cfg.PingPeriod != 9*time.Second {
		t.Fatalf("PingPeriod = %v, want 9s", cfg.PingPeriod)
	}
}

func TestHubShutdownClosesEveryClient(t *testing.T) {
	h := NewHub(nil, NewLobbyHub(), Config{})
	first, second := lobbyClient(1), lobbyClient(1)
	h.registerClient(first)
	h.registerClient(second)

	h.Shutdown()

	if !first.Closed() || !second.Closed() {
		t.Fatalf("clients left open")
	}
	h.unregisterClient(first)
	if h.ClientCount() != 1 {
		t.Fatalf("ClientCount = %d, want 1", h.ClientCount())
	}
}

func TestThrottledFramesAreAnswered(t *testing.T) {
	h := NewHub(nil, NewLobbyHub(), Config{FramesPerSecond: 0.001, FrameBurst: 2})
	client := h.newClient(nil, uuid.New(), uuid.New(), "player", domain.RolePlayer)

	//1.- The burst is admitted silently.
	if !h.admit(client) || !h.admit(client) {
		t.Fatalf("frames inside the burst were throttled")
	}
	if frames := drain(client); len(frames) != 0 {
		t.Fatalf("unexpected frames %q", frames)
	}

	//2.- The next frame is refused with an error addressed to the sender.
	if h.admit(client) {
		t.Fatalf("frame over budget admitted")
	}
	want := "ERR " + protocol.FormatID(client.ID) + " 199 Invalid command."
	if frames := drain(client); len(frames) != 1 || frames[0] != want {
		t.Fatalf("frames = %q, want %q", frames, want)
	}
	if client.Closed() {
		t.Fatalf("throttled client was closed")
	}
}

func TestRejectedConnectionHidesCause(t *testing.T) {
	h := NewHub(nil, NewLobbyHub(), Config{})
	client := h.newClient(nil, uuid.New(), uuid.New(), "stranger", domain.RolePlayer)

	h.reject(client, errors.New("forbidden: not a player of match "+client.MatchID.String()))

	frames := drain(client)
	if len(frames) != 1 || frames[0] != "ERR null 199 Invalid command." {
		t.Fatalf("frames = %q", frames)
	}
	if !client.Closed() {
		t.Fatalf("rejected client left open")
	}
}
