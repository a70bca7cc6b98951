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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCheck(id string, cat Category, deps ...string) Registered {
	return Registered{
		Check: Check{ID: id, Name: "check " + id, Category: cat},
		Probe: func(context.Context) Result {
			return Pass("ok", 0)
		},
		Dependencies: deps,
	}
}

func TestNewRegistry(t *testing.T) {
	tests := []struct {
		name    string
		records []Registered
		wantErr error
		wantIDs []string
	}{
		{
			name: "valid registry keeps insertion order",
			records: []Registered{
				newTestCheck("HW-002", Hardware, "HW-001"),
				newTestCheck("HW-001", Hardware),
				newTestCheck("IO-006", Io),
			},
			wantIDs: []string{"HW-002", "HW-001", "IO-006"},
		},
		{
			name:    "empty registry",
			records: nil,
			wantIDs: []string{},
		},
		{
			name: "duplicate id",
			records: []Registered{
				newTestCheck("HW-001", Hardware),
				newTestCheck("HW-001", Stack),
			},
			wantErr: ErrDuplicateCheck{ID: "HW-001"},
		},
		{
			name: "unknown dependency",
			records: []Registered{
				newTestCheck("HW-002", Hardware, "HW-404"),
			},
			wantErr: ErrUnknownDependency{ID: "HW-002", Dependency: "HW-404"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRegistry(tt.records...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, r.IDs())
			assert.Equal(t, len(tt.wantIDs), r.Len())
		})
	}
}

func TestNewRegistry_cycle(t *testing.T) {
	_, err := NewRegistry(
		newTestCheck("A", Hardware, "C"),
		newTestCheck("B", Hardware, "A"),
		newTestCheck("C", Hardware, "B"),
	)

	var cycle ErrDependencyCycle
	require.True(t, errors.As(err, &cycle), "expected a cycle error, got %v", err)
	assert.Equal(t, cycle.Path[0], cycle.Path[len(cycle.Path)-1])
	assert.Len(t, cycle.Path, 4)
}

func TestRegistry_lookups(t *testing.T) {
	r := MustRegistry(
		newTestCheck("HW-001", Hardware),
		newTestCheck("STK-001", Stack),
		newTestCheck("HW-002", Hardware, "HW-001"),
	)

	got, ok := r.Get("HW-002")
	assert.True(t, ok)
	assert.Equal(t, []string{"HW-001"}, got.Dependencies)
	assert.Nil(t, got.Result)

	_, ok = r.Get("HW-404")
	assert.False(t, ok)
	assert.True(t, r.Has("STK-001"))

	hw := r.ByCategory(Hardware)
	require.Len(t, hw, 2)
	assert.Equal(t, "HW-001", hw[0].ID)
	assert.Equal(t, "HW-002", hw[1].ID)
	assert.Empty(t, r.ByCategory(Security))

	// mutating the returned slice must not touch the registry
	all := r.Checks()
	all[0].ID = "changed"
	assert.Equal(t, "HW-001", r.IDs()[0])
}

func TestMustRegistry_panics(t *testing.T) {
	assert.Panics(t, func() {
		MustRegistry(newTestCheck("X", Config), newTestCheck("X", Config))
	})
}
