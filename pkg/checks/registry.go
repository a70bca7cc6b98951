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

import "errors"

// Registry is the immutable catalogue of registered checks.
// It keeps the insertion order, which is the tie-breaker for scheduling.
type Registry struct {
	checks []Registered
	index  map[string]int
}

// NewRegistry validates the records and returns a registry holding them.
//
// Ids must be unique, every dependency must name a registered id and the
// dependency graph must be acyclic.
func NewRegistry(records ...Registered) (*Registry, error) {
	r := &Registry{
		checks: make([]Registered, 0, len(records)),
		index:  make(map[string]int, len(records)),
	}

	var errs []error
	for _, rc := range records {
		if rc.ID == "" {
			errs = append(errs, ErrCheckFailed{ID: rc.Name, Reason: "empty id"})
			continue
		}
		if _, ok := r.index[rc.ID]; ok {
			errs = append(errs, ErrDuplicateCheck{ID: rc.ID})
			continue
		}
		rc.Result = nil
		r.index[rc.ID] = len(r.checks)
		r.checks = append(r.checks, rc)
	}

	for _, rc := range r.checks {
		for _, dep := range rc.Dependencies {
			if _, ok := r.index[dep]; !ok {
				errs = append(errs, ErrUnknownDependency{ID: rc.ID, Dependency: dep})
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if path := r.findCycle(); path != nil {
		return nil, ErrDependencyCycle{Path: path}
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on an invalid catalogue.
// It is meant for statically assembled registries.
func MustRegistry(records ...Registered) *Registry {
	r, err := NewRegistry(records...)
	if err != nil {
		panic(err)
	}
	return r
}

// Checks returns the registered checks in insertion order.
// The returned slice is a copy.
func (r *Registry) Checks() []Registered {
	out := make([]Registered, len(r.checks))
	copy(out, r.checks)
	return out
}

// Get returns the check with the given id.
func (r *Registry) Get(id string) (Registered, bool) {
	i, ok := r.index[id]
	if !ok {
		return Registered{}, false
	}
	return r.checks[i], true
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

// IDs returns all ids in insertion order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.checks))
	for _, c := range r.checks {
		ids = append(ids, c.ID)
	}
	return ids
}

// ByCategory returns the checks of one category in insertion order.
func (r *Registry) ByCategory(c Category) []Registered {
	var out []Registered
	for _, rc := range r.checks {
		if rc.Category == c {
			out = append(out, rc)
		}
	}
	return out
}

// Len returns the number of registered checks.
func (r *Registry) Len() int {
	return len(r.checks)
}

const (
	white = iota
	grey
	black
)

// findCycle returns the ids forming a cycle or nil
func (r *Registry) findCycle() []string {
	color := make(map[string]int, len(r.checks))
	var stack []string

	var visit func(id string) []string
	visit = func(id string) []string {
		color[id] = grey
		stack = append(stack, id)
		rc := r.checks[r.index[id]]
		for _, dep := range rc.Dependencies {
			switch color[dep] {
			case grey:
				for i, s := range stack {
					if s == dep {
						return append(append([]string{}, stack[i:]...), dep)
					}
				}
			case white:
				if p := visit(dep); p != nil {
					return p
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return nil
	}

	for _, rc := range r.checks {
		if color[rc.ID] == white {
			if p := visit(rc.ID); p != nil {
				return p
			}
		}
	}
	return nil
}
