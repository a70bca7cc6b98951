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
	"context"
	"time"
)

// Check is a named validation step and, once executed, its result.
type Check struct {
	// ID is the stable public identifier, e.g. "HW-001"
	ID string
	// Name is the display name
	Name     string
	Category Category
	// Description is a human readable summary of what the check validates
	Description string
	// Result is nil until the check has been executed
	Result *Result
}

// Executed reports whether the check carries a result.
func (c Check) Executed() bool {
	return c.Result != nil
}

// Status returns the status of the check's result.
func (c Check) Status() Status {
	return StatusOf(c.Result)
}

// WithResult returns a copy of c carrying r.
func (c Check) WithResult(r Result) Check {
	c.Result = &r
	return c
}

// Probe computes the result of a check.
//
// The context is cancelled once the per-check timeout is reached. Probes
// should return promptly afterwards but are not required to; the
// orchestrator reports the timeout either way.
// A probe must not keep mutable state between invocations.
type Probe func(ctx context.Context) Result

// Registered binds a check to the probe computing its result.
type Registered struct {
	Check
	Probe Probe
	// Dependencies lists the ids that must have completed before this check starts.
	// They only affect ordering: a failed dependency does not skip this check.
	Dependencies []string
	// EstimatedDurationMs is advisory and only used for listings.
	EstimatedDurationMs int64
}

// Elapsed returns the milliseconds since start. It is a small helper for probes
// reporting their own durations.
func Elapsed(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
