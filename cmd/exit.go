package cmd

import (
	"errors"
	"fmt"

	"github.com/caas-team/tpu-doc/pkg/report"
)

// ExitError carries the exit code of a command. Err is nil when the code only
// reflects the check results and nothing needs to be printed.
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

// runtimeError wraps err so it is reported with the runtime error exit code.
func runtimeError(err error) error {
	return &ExitError{Code: report.ExitRuntimeError, Err: err}
}

// exitCode maps the error returned by a command to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return report.ExitSuccess
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return report.ExitRuntimeError
}
