package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/platform"
)

func TestNewRegistry(t *testing.T) {
	p := platform.Platform{
		System:      &platform.SystemMock{},
		Metadata:    &platform.MetadataMock{},
		Accelerator: &platform.AcceleratorMock{},
		Network:     &platform.NetworkMock{},
	}

	var reg *checks.Registry
	require.NotPanics(t, func() { reg = NewRegistry(p) })
	assert.Equal(t, 36, reg.Len())

	wantPerCategory := map[checks.Category]int{
		checks.Hardware:    6,
		checks.Stack:       7,
		checks.Performance: 5,
		checks.Io:          6,
		checks.Security:    7,
		checks.Config:      5,
	}
	for c, n := range wantPerCategory {
		assert.Len(t, reg.ByCategory(c), n, c.String())
	}

	ids := reg.IDs()
	assert.Equal(t, "HW-001", ids[0])
	assert.Equal(t, "CFG-005", ids[len(ids)-1])

	for _, c := range reg.Checks() {
		for _, dep := range c.Dependencies {
			assert.True(t, reg.Has(dep), "%s depends on unknown %s", c.ID, dep)
		}
	}
}
