// Package register assembles the catalogue of all checks.
package register

import (
	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/checks/audit"
	"github.com/caas-team/tpu-doc/pkg/checks/hardware"
	"github.com/caas-team/tpu-doc/pkg/checks/io"
	"github.com/caas-team/tpu-doc/pkg/checks/performance"
	"github.com/caas-team/tpu-doc/pkg/checks/security"
	"github.com/caas-team/tpu-doc/pkg/checks/stack"
	"github.com/caas-team/tpu-doc/pkg/platform"
)

// Catalogue returns every check bound to the probes of p, in catalogue order.
func Catalogue(p platform.Platform) []checks.Registered {
	var all []checks.Registered
	all = append(all, hardware.Checks(p.Accelerator)...)
	all = append(all, stack.Checks(p.System, p.Accelerator)...)
	all = append(all, performance.Checks(p.System, p.Accelerator)...)
	all = append(all, io.Checks(p.System, p.Metadata, p.Network)...)
	all = append(all, security.Checks(p.System, p.Metadata)...)
	all = append(all, audit.Checks(p.System)...)
	return all
}

// NewRegistry returns the registry of all checks. It panics if the
// catalogue is inconsistent, which is a programming error.
func NewRegistry(p platform.Platform) *checks.Registry {
	return checks.MustRegistry(Catalogue(p)...)
}
