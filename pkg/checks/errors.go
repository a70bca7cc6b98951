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
	"errors"
	"fmt"
)

// ErrNotOnAccelerator is returned by accelerator probes on hosts without TPUs
var ErrNotOnAccelerator = errors.New("not running on a TPU VM")

// ErrPermissionDenied is returned when a resource cannot be read with the current privileges
type ErrPermissionDenied struct {
	Resource string
}

func (e ErrPermissionDenied) Error() string {
	return fmt.Sprintf("permission denied: %s", e.Resource)
}

// ErrTimeout is returned when an operation exceeded its deadline
type ErrTimeout struct {
	Operation string
	TimeoutMs int64
}

func (e ErrTimeout) Error() string {
	return fmt.Sprintf("operation %s timed out after %dms", e.Operation, e.TimeoutMs)
}

// ErrIO is returned when a file, socket or http exchange failed
type ErrIO struct {
	Context string
	Message string
}

func (e ErrIO) Error() string {
	return fmt.Sprintf("I/O error in %s: %s", e.Context, e.Message)
}

// ErrParse is returned when data was read but could not be interpreted
type ErrParse struct {
	Context string
	Message string
}

func (e ErrParse) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Context, e.Message)
}

// ErrCheckFailed is returned when a check could not produce a result
type ErrCheckFailed struct {
	ID     string
	Reason string
}

func (e ErrCheckFailed) Error() string {
	return fmt.Sprintf("check %s failed: %s", e.ID, e.Reason)
}

// ErrCommand is returned when an external command could not be run or exited non-zero
type ErrCommand struct {
	Command string
	Message string
}

func (e ErrCommand) Error() string {
	return fmt.Sprintf("command %s failed: %s", e.Command, e.Message)
}

// ErrDuplicateCheck is returned when two registered checks share an id
type ErrDuplicateCheck struct {
	ID string
}

func (e ErrDuplicateCheck) Error() string {
	return fmt.Sprintf("duplicate check id %q", e.ID)
}

// ErrUnknownDependency is returned when a check depends on an id that is not registered
type ErrUnknownDependency struct {
	ID         string
	Dependency string
}

func (e ErrUnknownDependency) Error() string {
	return fmt.Sprintf("check %q depends on unknown check %q", e.ID, e.Dependency)
}

// ErrDependencyCycle is returned when the dependencies of the registry are not acyclic
type ErrDependencyCycle struct {
	Path []string
}

func (e ErrDependencyCycle) Error() string {
	return fmt.Sprintf("dependency cycle: %v", e.Path)
}

// IsNotOnAccelerator reports whether err signals a host without accelerators.
func IsNotOnAccelerator(err error) bool {
	return errors.Is(err, ErrNotOnAccelerator)
}
