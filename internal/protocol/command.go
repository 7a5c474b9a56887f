package protocol

import "strings"

// Client opcodes.
const (
	OpReady   = "GLHF"
	OpMove    = "MOV"
	OpSet     = "SET"
	OpMessage = "MSG"
	OpForfeit = "FF"
)

// Command is a parsed client frame. The concrete types below are the only
// implementations.
type Command interface {
	opcode() string
}

type ReadyCommand struct{}

type MoveCommand struct {
	Notation string
}

type SetOptionCommand struct {
	Option string
	Value  bool
}

type MessageCommand struct {
	Text string
}

type ForfeitCommand struct{}

func (ReadyCommand) opcode() string     { return OpReady }
func (MoveCommand) opcode() string      { return OpMove }
func (SetOptionCommand) opcode() string { return OpSet }
func (MessageCommand) opcode() string   { return OpMessage }
func (ForfeitCommand) opcode() string   { return OpForfeit }

// Opcode returns the wire opcode of a command.
func Opcode(cmd Command) string {
	return cmd.opcode()
}

// Parse turns an inbound text frame into a Command. Any unknown opcode or
// malformed payload yields ErrInvalidCommand.
func Parse(text string) (Command, error) {
	op, rest, _ := strings.Cut(text, " ")

	switch op {
	case OpReady:
		return ReadyCommand{}, nil
	case OpForfeit:
		return ForfeitCommand{}, nil
	case OpMove:
		notation := strings.TrimSpace(rest)
		if notation == "" {
			return nil, ErrInvalidCommand
		}
		return MoveCommand{Notation: notation}, nil
	case OpMessage:
		message := strings.TrimSpace(rest)
		if message == "" {
			return nil, ErrInvalidCommand
		}
		return MessageCommand{Text: message}, nil
	case OpSet:
		return parseSetOption(rest)
	default:
		return nil, ErrInvalidCommand
	}
}

// parseSetOption reads "<option> <true|false>". The option name is everything
// up to the last space so that names containing spaces survive.
func parseSetOption(payload string) (Command, error) {
	idx := strings.LastIndex(payload, " ")
	if idx < 0 {
		return nil, ErrInvalidCommand
	}

	option := strings.TrimSpace(payload[:idx])
	if option == "" {
		return nil, ErrInvalidCommand
	}

	switch payload[idx+1:] {
	case "true":
		return SetOptionCommand{Option: option, Value: true}, nil
	case "false":
		return SetOptionCommand{Option: option, Value: false}, nil
	default:
		return nil, ErrInvalidCommand
	}
}
