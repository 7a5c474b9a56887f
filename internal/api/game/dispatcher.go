package game

import (
	"match-service/internal/protocol"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher decides who receives an event or error and queues the frame on
// each recipient. Callers hold the session lock, so frames land on every
// connection in the order they were emitted.
type Dispatcher struct{}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Broadcast sends e to the host, the opponent and every spectator.
func (d *Dispatcher) Broadcast(s *Session, e protocol.Event) {
	frame := []byte(protocol.Serialize(e))
	for _, conn := range s.recipients() {
		d.deliver(s.ID, conn, frame)
	}
}

// SendTo sends e to a single connection.
func (d *Dispatcher) SendTo(s *Session, conn Conn, e protocol.Event) {
	if conn == nil {
		return
	}
	d.deliver(s.ID, conn, []byte(protocol.Serialize(e)))
}

// SendToUser sends e to a participant if they are connected.
func (d *Dispatcher) SendToUser(s *Session, userID uuid.UUID, e protocol.Event) {
	d.SendTo(s, s.ConnOf(userID), e)
}

// SendError reports err on behalf of sender. Errors are private to the
// sender's connection unless the error is broadcast scoped.
func (d *Dispatcher) SendError(s *Session, sender Conn, senderID *uuid.UUID, err protocol.ServerError) {
	frame := []byte(protocol.SerializeError(senderID, err))

	if err.Broadcast() && s != nil {
		for _, conn := range s.recipients() {
			d.deliver(s.ID, conn, frame)
		}
		return
	}
	if sender == nil {
		return
	}

	var matchID uuid.UUID
	if s != nil {
		matchID = s.ID
	}
	d.deliver(matchID, sender, frame)
}

func (d *Dispatcher) deliver(matchID uuid.UUID, conn Conn, frame []byte) {
	if !conn.SendFrame(frame) {
		zap.L().Warn("Dropping frame for slow or closed connection",
			zap.String("match_id", matchID.String()),
			zap.ByteString("frame", frame))
	}
}
