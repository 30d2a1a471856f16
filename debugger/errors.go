package debugger

import "fmt"

// UserErrorCode classifies commands that are well formed but cannot be
// honored, either because of their arguments or because of the session's
// current state.
type UserErrorCode uint8

const (
	InvalidCount    UserErrorCode = iota // step count is not usable
	InvalidIndex                         // instruction or cell index out of range
	MissingArgument                      // required argument absent
	NotRunning                           // command needs a live run
	NoProgramLoaded                      // command needs a loaded program
)

// String returns the code's name.
func (c UserErrorCode) String() string {
	switch c {
	case InvalidCount:
		return "InvalidCount"
	case InvalidIndex:
		return "InvalidIndex"
	case MissingArgument:
		return "MissingArgument"
	case NotRunning:
		return "NotRunning"
	case NoProgramLoaded:
		return "NoProgramLoaded"
	default:
		return fmt.Sprintf("UserErrorCode(%d)", uint8(c))
	}
}

// UserError is a mistake by the operator, not a fault in the debugged
// program. Its message is written to be shown verbatim at the prompt.
type UserError struct {
	Code    UserErrorCode
	Message string
}

// Error implements the error interface.
func (e *UserError) Error() string {
	return e.Message
}

// NewUserError builds a UserError with a formatted message.
func NewUserError(code UserErrorCode, format string, args ...any) *UserError {
	return &UserError{Code: code, Message: fmt.Sprintf(format, args...)}
}
