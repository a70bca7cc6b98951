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

// Package audit inspects the XLA and JAX configuration of the environment
// for settings that hurt performance or break distributed training.
package audit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/checks/hardware"
	"github.com/caas-team/tpu-doc/pkg/checks/stack"
	"github.com/caas-team/tpu-doc/pkg/platform"
)

const (
	XLAFlagsID    = "CFG-001"
	JAXConfigID   = "CFG-002"
	MemoryID      = "CFG-003"
	DistributedID = "CFG-004"
	LoggingID     = "CFG-005"
)

const memFractionWarn = 0.95

var debugXLAFlags = []string{
	"--xla_dump_to",
	"--xla_dump_hlo",
	"--xla_log_all",
}

type probes struct {
	sys platform.System
}

// Checks returns the configuration audit checks.
func Checks(sys platform.System) []checks.Registered {
	p := &probes{sys: sys}
	return []checks.Registered{
		{
			Check:               checks.Check{ID: XLAFlagsID, Name: "XLA Flags Audit", Category: checks.Config, Description: "Check XLA_FLAGS for potential issues"},
			Probe:               p.xlaFlags,
			EstimatedDurationMs: 100,
		},
		{
			Check:               checks.Check{ID: JAXConfigID, Name: "JAX Configuration Audit", Category: checks.Config, Description: "Check JAX configuration values"},
			Probe:               p.jaxConfig,
			Dependencies:        []string{stack.JAXID},
			EstimatedDurationMs: 100,
		},
		{
			Check:               checks.Check{ID: MemoryID, Name: "Memory Preallocation Check", Category: checks.Config, Description: "Check memory preallocation settings"},
			Probe:               p.memory,
			EstimatedDurationMs: 100,
		},
		{
			Check:               checks.Check{ID: DistributedID, Name: "Distributed Configuration Check", Category: checks.Config, Description: "Check multi-host configuration"},
			Probe:               p.distributed,
			Dependencies:        []string{hardware.DeviceDetectionID},
			EstimatedDurationMs: 100,
		},
		{
			Check:               checks.Check{ID: LoggingID, Name: "Logging Configuration Check", Category: checks.Config, Description: "Check logging and debug settings"},
			Probe:               p.logging,
			EstimatedDurationMs: 100,
		},
	}
}

// env returns the value of a set, non-empty variable.
func (p *probes) env(name string) (string, bool) {
	v, ok := p.sys.Env(name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func (p *probes) xlaFlags(_ context.Context) checks.Result {
	start := time.Now()
	flags, ok := p.env("XLA_FLAGS")
	if !ok {
		return checks.Pass("XLA_FLAGS not set (using defaults)", checks.Elapsed(start))
	}

	var issues []string
	for _, f := range debugXLAFlags {
		if strings.Contains(flags, f) {
			issues = append(issues, fmt.Sprintf("Debug flag %s is set", f))
		}
	}
	if strings.Contains(flags, "--xla_disable_hlo_passes") {
		issues = append(issues, "HLO passes are disabled")
	}

	if len(issues) > 0 {
		return checks.Warn(fmt.Sprintf("XLA_FLAGS has %d potential issues", len(issues)), strings.Join(issues, "; "), checks.Elapsed(start))
	}
	return checks.Pass("XLA_FLAGS configuration is optimal", checks.Elapsed(start))
}

func (p *probes) jaxConfig(_ context.Context) checks.Result {
	start := time.Now()
	var issues []string
	if platforms, ok := p.env("JAX_PLATFORMS"); ok && !strings.Contains(strings.ToLower(platforms), "tpu") {
		issues = append(issues, "JAX_PLATFORMS does not include 'tpu'")
	}
	if v, ok := p.env("JAX_DISABLE_JIT"); ok && truthy(v) {
		issues = append(issues, "JAX_DISABLE_JIT is enabled (every op runs eagerly)")
	}

	if len(issues) > 0 {
		return checks.Warn("JAX configuration has potential issues", strings.Join(issues, "; "), checks.Elapsed(start))
	}
	return checks.Pass("JAX configuration appears correct", checks.Elapsed(start))
}

func (p *probes) memory(_ context.Context) checks.Result {
	start := time.Now()
	var notes []string

	if raw, ok := p.env("XLA_PYTHON_CLIENT_MEM_FRACTION"); ok {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f <= 0 || f > 1 {
			return checks.Fail(
				fmt.Sprintf("Invalid XLA_PYTHON_CLIENT_MEM_FRACTION: %s", raw),
				"Expected a fraction between 0 and 1",
				checks.Elapsed(start),
			)
		}
		if f > memFractionWarn {
			return checks.Warn(
				"Memory configuration may cause issues",
				fmt.Sprintf("High memory fraction: %s (risk of OOM)", raw),
				checks.Elapsed(start),
			)
		}
	}
	if v, ok := p.env("XLA_PYTHON_CLIENT_PREALLOCATE"); ok && strings.EqualFold(v, "false") {
		notes = append(notes, "preallocation disabled")
	}

	if len(notes) > 0 {
		return checks.Pass(fmt.Sprintf("Memory configuration is appropriate (%s)", strings.Join(notes, ", ")), checks.Elapsed(start))
	}
	return checks.Pass("Memory configuration is appropriate", checks.Elapsed(start))
}

func (p *probes) distributed(_ context.Context) checks.Result {
	start := time.Now()
	_, hasCoordinator := p.env("JAX_COORDINATOR_ADDRESS")
	hosts, _ := p.env("TPU_WORKER_HOSTNAMES")
	if !hasCoordinator && !strings.Contains(hosts, ",") {
		return checks.Skip("Single-host configuration")
	}

	if !hasCoordinator {
		return checks.Fail(
			"Multi-host detected but JAX_COORDINATOR_ADDRESS not set",
			"Set JAX_COORDINATOR_ADDRESS for distributed training",
			checks.Elapsed(start),
		)
	}
	if _, ok := p.env("TPU_WORKER_ID"); !ok {
		return checks.Warn(
			"Multi-host detected but TPU_WORKER_ID not set",
			"Each host needs a distinct TPU_WORKER_ID",
			checks.Elapsed(start),
		)
	}
	return checks.Pass("Distributed configuration is correct", checks.Elapsed(start))
}

func (p *probes) logging(_ context.Context) checks.Result {
	start := time.Now()
	var issues []string
	if level, ok := p.env("TF_CPP_MIN_LOG_LEVEL"); ok && level == "0" {
		issues = append(issues, "TF_CPP_MIN_LOG_LEVEL=0 (verbose logging)")
	}
	if v, ok := p.env("JAX_DEBUG_NANS"); ok && truthy(v) {
		issues = append(issues, "JAX_DEBUG_NANS is enabled (performance impact)")
	}

	if len(issues) > 0 {
		return checks.Warn("Debug logging may impact performance", strings.Join(issues, "; "), checks.Elapsed(start))
	}
	return checks.Pass("Logging configuration is production-appropriate", checks.Elapsed(start))
}
