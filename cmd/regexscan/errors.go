package regexscan

import "fmt"

const (
	ExitOK      = 0
	ExitFailure = 1
)

// ExitError carries the process exit code out of a command. An empty Msg
// means the command already told the user what went wrong.
type ExitError struct {
	Code int
	Msg  string
}

func (e *ExitError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Msg
}

func fail(format string, args ...any) error {
	return &ExitError{Code: ExitFailure, Msg: fmt.Sprintf(format, args...)}
}
