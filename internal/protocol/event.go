package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Server opcodes.
const (
	OpState          = "STATE"
	OpWinner         = "WINNER"
	OpReadyState     = "READY"
	OpJoin           = "JOIN"
	OpLeave          = "LEAVE"
	OpSpectatorJoin  = "SPECJOIN"
	OpSpectatorLeave = "SPECLEAVE"
	OpError          = "ERR"
)

const null = "null"

// Event is an outbound server event. Serialize renders it as a text frame.
type Event interface {
	frame() string
}

// StateEvent carries the full board snapshot produced by the rules engine.
type StateEvent struct {
	Snapshot string
}

// WinnerEvent announces the end of play. A nil Winner is a draw.
type WinnerEvent struct {
	Winner *uuid.UUID
}

type SetOptionEvent struct {
	Option string
	Value  bool
}

type ReadyEvent struct {
	UserID uuid.UUID
	Ready  bool
}

type MessageEvent struct {
	UserID uuid.UUID
	Text   string
}

type ForfeitEvent struct {
	UserID uuid.UUID
}

type JoinEvent struct {
	UserID uuid.UUID
}

type LeaveEvent struct {
	UserID uuid.UUID
}

type SpectatorJoinEvent struct {
	Name string
}

type SpectatorLeaveEvent struct {
	Name string
}

func (e StateEvent) frame() string { return OpState + " " + e.Snapshot }

func (e WinnerEvent) frame() string { return OpWinner + " " + idOrNull(e.Winner) }

func (e SetOptionEvent) frame() string {
	return fmt.Sprintf("%s %s %s", OpSet, e.Option, strconv.FormatBool(e.Value))
}

func (e ReadyEvent) frame() string {
	return fmt.Sprintf("%s %s %s", OpReadyState, FormatID(e.UserID), strconv.FormatBool(e.Ready))
}

func (e MessageEvent) frame() string {
	return fmt.Sprintf("%s %s %s", OpMessage, FormatID(e.UserID), e.Text)
}

func (e ForfeitEvent) frame() string        { return OpForfeit + " " + FormatID(e.UserID) }
func (e JoinEvent) frame() string           { return OpJoin + " " + FormatID(e.UserID) }
func (e LeaveEvent) frame() string          { return OpLeave + " " + FormatID(e.UserID) }
func (e SpectatorJoinEvent) frame() string  { return OpSpectatorJoin + " " + e.Name }
func (e SpectatorLeaveEvent) frame() string { return OpSpectatorLeave + " " + e.Name }

// Serialize renders a server event as a text frame.
func Serialize(e Event) string {
	return e.frame()
}

// SerializeError renders "ERR <sender|null> <code> <description>".
func SerializeError(sender *uuid.UUID, err ServerError) string {
	return fmt.Sprintf("%s %s %d %s", OpError, idOrNull(sender), err.Code, err.Description)
}

// FormatID renders an identity the way existing clients expect it on the
// wire: canonical, uppercase.
func FormatID(id uuid.UUID) string {
	return strings.ToUpper(id.String())
}

func idOrNull(id *uuid.UUID) string {
	if id == nil {
		return null
	}
	return FormatID(*id)
}
