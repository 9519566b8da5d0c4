package lib

import (
	"errors"
	"fmt"
	"os"
)

// ExitError carries a process exit code. An empty Message means the
// problem was already reported and nothing more is printed.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// ExitCode returns the exit code for err: 0 for nil, the carried code for
// an ExitError and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// Exit prints the error and exits the program with its exit code
func Exit(err error) {
	var exitErr *ExitError
	switch {
	case errors.As(err, &exitErr):
		if exitErr.Message != "" {
			fmt.Fprintln(os.Stderr, "Error:", exitErr.Message)
		}
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(ExitCode(err))
}
