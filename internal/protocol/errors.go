package protocol

import "fmt"

// ServerError is an error that is reported to clients as an ERR frame.
type ServerError struct {
	Code        int
	Description string
	broadcast   bool
}

func (e ServerError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Description)
}

// Broadcast reports whether the error reflects a shared inconsistency and must
// reach every participant instead of only the sender.
func (e ServerError) Broadcast() bool {
	return e.broadcast
}

const (
	CodeInvalidMovement       = 101
	CodeNotPlayerTurn         = 102
	CodeOptionNonModifiable   = 103
	CodeInvalidCommand        = 199
	CodeOptionValueNotUpdated = 201
	CodeFailedToEndMatch      = 202
	CodeFailedToStartMatch    = 203
	CodeUnknownError          = 999
)

var (
	ErrNotPlayerTurn       = ServerError{Code: CodeNotPlayerTurn, Description: "It's not your turn."}
	ErrOptionNonModifiable = ServerError{Code: CodeOptionNonModifiable, Description: "You cannot modify game options at this time."}
	ErrInvalidCommand      = ServerError{Code: CodeInvalidCommand, Description: "Invalid command."}
	ErrFailedToEndMatch    = ServerError{Code: CodeFailedToEndMatch, Description: "The match is over, but an error occurred.", broadcast: true}
	ErrFailedToStartMatch  = ServerError{Code: CodeFailedToStartMatch, Description: "The match could not be started.", broadcast: true}
	ErrUnknown             = ServerError{Code: CodeUnknownError, Description: "Unknown error."}
)

func InvalidMovement(notation string) ServerError {
	return ServerError{Code: CodeInvalidMovement, Description: fmt.Sprintf("Move %q not valid.", notation)}
}

func OptionValueNotUpdated(option string, value bool) ServerError {
	return ServerError{
		Code:        CodeOptionValueNotUpdated,
		Description: fmt.Sprintf("Failed to set %q to \"%t\".", option, value),
	}
}
