// Package report holds the result of one validation run and the values
// derived from it.
package report

import (
	"github.com/caas-team/tpu-doc/pkg/checks"
)

// ValidationReport is the outcome of one orchestration. It is built once and
// not modified afterwards.
type ValidationReport struct {
	// Timestamp is the start of the run in Unix seconds (UTC)
	Timestamp int64
	Hostname  string
	// AcceleratorType is nil when the host has no detectable accelerator
	AcceleratorType *string
	// Checks in execution order
	Checks          []checks.Check
	TotalDurationMs int64
}

// Summary counts the results of a report.
type Summary struct {
	Passed          int
	Warned          int
	Failed          int
	Skipped         int
	Total           int
	TotalDurationMs int64
}

// Summarize computes the summary of cs in one pass. Skipped and not executed
// checks are counted as skipped and contribute no duration.
func Summarize(cs []checks.Check) Summary {
	var s Summary
	for _, c := range cs {
		switch c.Status() {
		case checks.StatusPass:
			s.Passed++
		case checks.StatusWarn:
			s.Warned++
		case checks.StatusFail:
			s.Failed++
		default:
			s.Skipped++
			continue
		}
		s.TotalDurationMs += c.Result.Duration()
	}
	s.Total = s.Passed + s.Warned + s.Failed + s.Skipped
	return s
}

// Summary returns the summary of the report's checks.
func (r *ValidationReport) Summary() Summary {
	return Summarize(r.Checks)
}

// ByCategory returns the checks of one category in report order.
func (r *ValidationReport) ByCategory(c checks.Category) []checks.Check {
	var out []checks.Check
	for _, ch := range r.Checks {
		if ch.Category == c {
			out = append(out, ch)
		}
	}
	return out
}

// Exit codes of a run.
const (
	ExitSuccess      = 0
	ExitFailures     = 1
	ExitWarnings     = 2
	ExitRuntimeError = 3
)

// ExitCode derives the process exit code from the results.
func (s Summary) ExitCode() int {
	switch {
	case s.Failed > 0:
		return ExitFailures
	case s.Warned > 0:
		return ExitWarnings
	default:
		return ExitSuccess
	}
}

// ExitCode derives the process exit code from the report.
func (r *ValidationReport) ExitCode() int {
	return r.Summary().ExitCode()
}

// ExitDescription returns the annotation printed next to an exit code.
func ExitDescription(code int) string {
	switch code {
	case ExitSuccess:
		return "all checks passed"
	case ExitFailures:
		return "failures detected"
	case ExitWarnings:
		return "warnings detected"
	default:
		return "runtime error"
	}
}
