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

// Package performance runs short JAX micro benchmarks on the TPU.
package performance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caas-team/tpu-doc/internal/logger"
	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/checks/hardware"
	"github.com/caas-team/tpu-doc/pkg/checks/stack"
	"github.com/caas-team/tpu-doc/pkg/platform"
)

const (
	MXUID            = "PERF-001"
	HBMBandwidthID   = "PERF-002"
	LatencyID        = "PERF-003"
	CompilationID    = "PERF-004"
	MemoryPressureID = "PERF-005"
)

const (
	python        = "python3"
	notOnTPU      = "Not running on a TPU VM"
	mxuFailPct    = 70.0
	mxuWarnPct    = 80.0
	hbmFailPct    = 70.0
	hbmWarnPct    = 85.0
	latencyWarnUs = 20.0
	compileWarnS  = 60.0
)

var (
	// per-chip HBM bandwidth in GB/s
	expectedHBMBandwidth = map[platform.DeviceType]float64{
		platform.TPUv4:      1200,
		platform.TPUv5e:     800,
		platform.TPUv5p:     1600,
		platform.TPUv6e:     1800,
		platform.TPUv7:      2000,
		platform.TPUUnknown: 800,
	}
	// per-chip bf16 peak in TFLOPS
	peakTFLOPS = map[platform.DeviceType]float64{
		platform.TPUv4:      275,
		platform.TPUv5e:     197,
		platform.TPUv5p:     459,
		platform.TPUv6e:     918,
		platform.TPUv7:      2307,
		platform.TPUUnknown: 197,
	}

	errJAXMissing = errors.New("JAX not installed")
)

type probes struct {
	sys platform.System
	tpu platform.Accelerator
}

// Checks returns the performance checks. Every check needs a TPU VM with
// python3 and JAX installed and is skipped otherwise.
func Checks(sys platform.System, acc platform.Accelerator) []checks.Registered {
	p := &probes{sys: sys, tpu: acc}
	return []checks.Registered{
		{
			Check: checks.Check{
				ID:          MXUID,
				Name:        "MXU Utilization Baseline",
				Category:    checks.Performance,
				Description: "Run standardized matrix multiplication and measure MXU utilization",
			},
			Probe:               p.mxu,
			Dependencies:        []string{hardware.DeviceDetectionID, stack.JAXID},
			EstimatedDurationMs: 10000,
		},
		{
			Check: checks.Check{
				ID:          HBMBandwidthID,
				Name:        "HBM Bandwidth Test",
				Category:    checks.Performance,
				Description: "Measure HBM memory bandwidth",
			},
			Probe:               p.hbmBandwidth,
			Dependencies:        []string{hardware.DeviceDetectionID, hardware.HBMID},
			EstimatedDurationMs: 5000,
		},
		{
			Check: checks.Check{
				ID:          LatencyID,
				Name:        "Chip-to-Chip Latency",
				Category:    checks.Performance,
				Description: "Measure latency between TPU chips",
			},
			Probe:               p.latency,
			Dependencies:        []string{hardware.DeviceDetectionID, hardware.InterconnectID},
			EstimatedDurationMs: 3000,
		},
		{
			Check: checks.Check{
				ID:          CompilationID,
				Name:        "XLA Compilation Latency",
				Category:    checks.Performance,
				Description: "Measure XLA compilation time for standard graph",
			},
			Probe:               p.compilation,
			Dependencies:        []string{stack.JAXID, stack.XLAID},
			EstimatedDurationMs: 60000,
		},
		{
			Check: checks.Check{
				ID:          MemoryPressureID,
				Name:        "Memory Pressure Test",
				Category:    checks.Performance,
				Description: "Allocate and free HBM to verify no fragmentation issues",
			},
			Probe:               p.memoryPressure,
			Dependencies:        []string{hardware.HBMID},
			EstimatedDurationMs: 5000,
		},
	}
}

// benchmark runs script with python3 and returns its KEY=value output.
func (p *probes) benchmark(ctx context.Context, script string) (map[string]string, error) {
	if _, err := p.sys.LookPath(python); err != nil {
		return nil, fmt.Errorf("could not run Python: %w", err)
	}

	out, err := p.sys.Command(ctx, python, "-c", script)
	if err != nil {
		if strings.Contains(out, "No module named 'jax'") {
			return nil, errJAXMissing
		}
		var cmdErr checks.ErrCommand
		if errors.As(err, &cmdErr) {
			first, _, _ := strings.Cut(out, "\n")
			if first == "" {
				first = "unknown error"
			}
			logger.FromContext(ctx).Debug("Benchmark failed", "error", err)
			return nil, fmt.Errorf("benchmark failed: %s", first)
		}
		return nil, err
	}
	return parseOutput(out), nil
}

// parseOutput collects KEY=value lines. Other lines are ignored.
func parseOutput(out string) map[string]string {
	values := map[string]string{}
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok || key == "" || strings.ToUpper(key) != key || strings.ContainsAny(key, " \t") {
			continue
		}
		values[key] = strings.TrimSpace(value)
	}
	return values
}

func floatValue(values map[string]string, key, what string) (float64, error) {
	v, ok := values[key]
	if !ok {
		return 0, fmt.Errorf("could not parse %s output", what)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse %s output", what)
	}
	return f, nil
}

func (p *probes) deviceType(ctx context.Context) platform.DeviceType {
	t, err := p.tpu.DeviceType(ctx)
	if err != nil {
		return platform.TPUUnknown
	}
	if _, ok := expectedHBMBandwidth[t]; !ok {
		return platform.TPUUnknown
	}
	return t
}

func (p *probes) mxu(ctx context.Context) checks.Result {
	start := time.Now()
	if !p.tpu.IsAcceleratorVM(ctx) {
		return checks.Skip(notOnTPU)
	}

	peak := strconv.FormatFloat(peakTFLOPS[p.deviceType(ctx)], 'f', 1, 64)
	values, err := p.benchmark(ctx, strings.ReplaceAll(mxuScript, "PEAK_TFLOPS", peak))
	if err != nil {
		return checks.Skip(fmt.Sprintf("MXU benchmark unavailable: %v", err))
	}
	pct, err := floatValue(values, "MXU_UTILIZATION", "MXU utilization")
	if err != nil {
		return checks.Skip(fmt.Sprintf("MXU benchmark unavailable: %v", err))
	}

	switch {
	case pct < mxuFailPct:
		return checks.Fail(fmt.Sprintf("MXU utilization too low: %.1f%%", pct), "Expected at least 70% utilization", checks.Elapsed(start))
	case pct < mxuWarnPct:
		return checks.Warn(fmt.Sprintf("MXU utilization below optimal: %.1f%%", pct), "Expected at least 80% utilization", checks.Elapsed(start))
	default:
		return checks.Pass(fmt.Sprintf("MXU utilization: %.1f%%", pct), checks.Elapsed(start))
	}
}

func (p *probes) hbmBandwidth(ctx context.Context) checks.Result {
	start := time.Now()
	if !p.tpu.IsAcceleratorVM(ctx) {
		return checks.Skip(notOnTPU)
	}
	expected := expectedHBMBandwidth[p.deviceType(ctx)]

	values, err := p.benchmark(ctx, hbmScript)
	if err != nil {
		return checks.Skip(fmt.Sprintf("HBM bandwidth test unavailable: %v", err))
	}
	measured, err := floatValue(values, "HBM_BANDWIDTH_GBPS", "bandwidth")
	if err != nil {
		return checks.Skip(fmt.Sprintf("HBM bandwidth test unavailable: %v", err))
	}

	pct := measured / expected * 100
	switch {
	case pct < hbmFailPct:
		return checks.Fail(
			fmt.Sprintf("HBM bandwidth too low: %.1f GB/s (%.1f%% of expected)", measured, pct),
			fmt.Sprintf("Expected at least %.1f GB/s", expected*hbmFailPct/100),
			checks.Elapsed(start),
		)
	case pct < hbmWarnPct:
		return checks.Warn(
			fmt.Sprintf("HBM bandwidth below optimal: %.1f GB/s (%.1f%% of expected)", measured, pct),
			fmt.Sprintf("Expected at least %.1f GB/s", expected*hbmWarnPct/100),
			checks.Elapsed(start),
		)
	default:
		return checks.Pass(fmt.Sprintf("HBM bandwidth: %.1f GB/s (%.1f%% of expected)", measured, pct), checks.Elapsed(start))
	}
}

func (p *probes) latency(ctx context.Context) checks.Result {
	start := time.Now()
	if !p.tpu.IsAcceleratorVM(ctx) {
		return checks.Skip(notOnTPU)
	}
	chips, err := p.tpu.ChipCount(ctx)
	if err != nil {
		return checks.Skip(fmt.Sprintf("Could not determine chip count: %v", err))
	}
	if chips <= 1 {
		return checks.Skip("Single-chip configuration - chip-to-chip latency not applicable")
	}

	values, err := p.benchmark(ctx, latencyScript)
	if err != nil {
		return checks.Skip(fmt.Sprintf("Latency test unavailable: %v", err))
	}
	if devices, ok := values["DEVICES"]; ok && devices == "1" {
		return checks.Skip("Latency test unavailable: single device - latency test not applicable")
	}
	us, err := floatValue(values, "LATENCY_US", "latency")
	if err != nil {
		return checks.Skip(fmt.Sprintf("Latency test unavailable: %v", err))
	}

	if us > latencyWarnUs {
		return checks.Warn(fmt.Sprintf("Chip-to-chip latency elevated: %.1fus", us), "Expected less than 10us for adjacent chips", checks.Elapsed(start))
	}
	return checks.Pass(fmt.Sprintf("Chip-to-chip latency: %.1fus", us), checks.Elapsed(start))
}

func (p *probes) compilation(ctx context.Context) checks.Result {
	start := time.Now()
	if !p.tpu.IsAcceleratorVM(ctx) {
		return checks.Skip(notOnTPU)
	}

	values, err := p.benchmark(ctx, compileScript)
	if err != nil {
		return checks.Skip(fmt.Sprintf("Compilation test unavailable: %v", err))
	}
	secs, err := floatValue(values, "COMPILE_SECONDS", "compilation")
	if err != nil {
		return checks.Skip(fmt.Sprintf("Compilation test unavailable: %v", err))
	}

	if secs > compileWarnS {
		return checks.Warn(fmt.Sprintf("XLA compilation unusually slow: %.1fs", secs), "Compilation took longer than 60 seconds", checks.Elapsed(start))
	}
	return checks.Pass(fmt.Sprintf("XLA compilation time: %.1fs", secs), checks.Elapsed(start))
}

func (p *probes) memoryPressure(ctx context.Context) checks.Result {
	start := time.Now()
	if !p.tpu.IsAcceleratorVM(ctx) {
		return checks.Skip(notOnTPU)
	}

	values, err := p.benchmark(ctx, memoryPressureScript)
	if err != nil {
		return checks.Skip(fmt.Sprintf("Memory pressure test unavailable: %v", err))
	}

	state, ok := values["MEMORY_PRESSURE"]
	switch {
	case ok && state == "OK":
		return checks.Pass("Memory allocation/deallocation successful", checks.Elapsed(start))
	case ok && strings.HasPrefix(state, "FAIL"):
		logger.FromContext(ctx).Warn("Memory pressure benchmark reported a failure", "output", state)
		return checks.Fail("Memory pressure test failed", "OOM or fragmentation issues detected", checks.Elapsed(start))
	default:
		return checks.Skip("Memory pressure test unavailable: unexpected output from memory test")
	}
}
