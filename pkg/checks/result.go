// tpu-doc
// (C) 2024, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package checks

import (
	"fmt"
	"strings"
)

// Status is the variant tag of a Result.
type Status int

const (
	// StatusNotExecuted is reported for a check without a result.
	StatusNotExecuted Status = iota
	StatusPass
	StatusWarn
	StatusFail
	StatusSkip
)

var statusTokens = map[Status]string{
	StatusNotExecuted: "not_executed",
	StatusPass:        "pass",
	StatusWarn:        "warn",
	StatusFail:        "fail",
	StatusSkip:        "skip",
}

// String returns the lowercase token used in the JSON report.
func (s Status) String() string {
	if t, ok := statusTokens[s]; ok {
		return t
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus is the inverse of [Status.String].
func ParseStatus(token string) (Status, error) {
	for s, t := range statusTokens {
		if t == token {
			return s, nil
		}
	}
	return StatusNotExecuted, fmt.Errorf("unknown status %q", token)
}

// Badge returns the fixed-width badge printed in text reports.
func (s Status) Badge() string {
	switch s {
	case StatusPass:
		return "[PASS]"
	case StatusWarn:
		return "[WARN]"
	case StatusFail:
		return "[FAIL]"
	case StatusSkip:
		return "[SKIP]"
	default:
		return "[----]"
	}
}

// Severity orders statuses as pass < skip < warn < fail.
// A check that never ran ranks below everything else.
func (s Status) Severity() int {
	switch s {
	case StatusPass:
		return 1
	case StatusSkip:
		return 2
	case StatusWarn:
		return 3
	case StatusFail:
		return 4
	default:
		return 0
	}
}

// Result is the outcome of one probe invocation.
//
// Only the fields belonging to the variant are meaningful:
//   - pass: Message, DurationMs
//   - warn, fail: Message, Details, DurationMs
//   - skip: Reason
//
// The zero value is not a valid result; use the constructors.
type Result struct {
	Status     Status
	Message    string
	Details    string
	Reason     string
	DurationMs int64
}

// Pass returns a passing result.
func Pass(message string, durationMs int64) Result {
	return Result{Status: StatusPass, Message: sanitize(message), DurationMs: clamp(durationMs)}
}

// Warn returns a warning result.
func Warn(message, details string, durationMs int64) Result {
	return Result{Status: StatusWarn, Message: sanitize(message), Details: sanitize(details), DurationMs: clamp(durationMs)}
}

// Fail returns a failing result.
func Fail(message, details string, durationMs int64) Result {
	return Result{Status: StatusFail, Message: sanitize(message), Details: sanitize(details), DurationMs: clamp(durationMs)}
}

// Skip returns a skipped result. Skips carry no duration.
func Skip(reason string) Result {
	return Result{Status: StatusSkip, Reason: sanitize(reason)}
}

// Duration returns the duration in milliseconds, zero for skipped results.
func (r Result) Duration() int64 {
	switch r.Status {
	case StatusPass, StatusWarn, StatusFail:
		return r.DurationMs
	default:
		return 0
	}
}

// Text returns the primary human readable string of the result:
// the reason for skips, the message otherwise.
func (r Result) Text() string {
	if r.Status == StatusSkip {
		return r.Reason
	}
	return r.Message
}

// WithDuration returns a copy of r carrying the given duration.
// Skip results are returned unchanged.
func (r Result) WithDuration(ms int64) Result {
	if r.Status == StatusSkip || r.Status == StatusNotExecuted {
		return r
	}
	r.DurationMs = clamp(ms)
	return r
}

func (r Result) String() string {
	switch r.Status {
	case StatusSkip:
		return fmt.Sprintf("%s: %s", r.Status, r.Reason)
	case StatusWarn, StatusFail:
		return fmt.Sprintf("%s: %s - %s (%dms)", r.Status, r.Message, r.Details, r.DurationMs)
	default:
		return fmt.Sprintf("%s: %s (%dms)", r.Status, r.Message, r.DurationMs)
	}
}

// StatusOf returns the status of a possibly missing result.
func StatusOf(r *Result) Status {
	if r == nil {
		return StatusNotExecuted
	}
	return r.Status
}

func sanitize(s string) string {
	return strings.ToValidUTF8(s, "�")
}

func clamp(ms int64) int64 {
	if ms < 0 {
		return 0
	}
	return ms
}
