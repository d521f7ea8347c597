package cmd

import (
	"errors"
	"fmt"

	"github.com/abdul-hamid-achik/axotly/packages/core/runner"
)

// Exit codes for axotly CLI
const (
	// ExitSuccess indicates all tests passed
	ExitSuccess = 0

	// ExitTestFailure indicates one or more tests failed
	ExitTestFailure = 1

	// ExitParseError indicates a file parsing error
	ExitParseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error
	ExitNetworkError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// ExitError carries the process exit code out of a command. Whatever caused
// it has already been reported to the user.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitWith(code int, err error) error {
	if code == ExitSuccess {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps a command error to the process exit code. Errors that are
// not an ExitError come from cobra itself: unknown flags, bad arguments.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsageError
}

// summaryExitCode applies the precedence failed > errored > parse error.
func summaryExitCode(summary *runner.RunSummary) int {
	switch {
	case summary.Failed > 0:
		return ExitTestFailure
	case summary.Errored > 0:
		return ExitNetworkError
	case len(summary.ParseErrors) > 0:
		return ExitParseError
	default:
		return ExitSuccess
	}
}
