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

// Package hardware validates the TPU devices of the host.
package hardware

import (
	"context"
	"fmt"
	"time"

	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/platform"
)

const (
	DeviceDetectionID = "HW-001"
	HBMID             = "HW-002"
	ThermalID         = "HW-003"
	ErrorCountersID   = "HW-004"
	InterconnectID    = "HW-005"
	DriverID          = "HW-006"
)

const (
	hbmFailPct  = 50.0
	hbmWarnPct  = 90.0
	tempFailC   = 85.0
	tempWarnC   = 75.0
	notOnTPU    = "Not running on a TPU VM"
	bytesPerGiB = 1024.0 * 1024.0 * 1024.0
)

type probes struct {
	tpu platform.Accelerator
}

// Checks returns the hardware checks probing acc.
func Checks(acc platform.Accelerator) []checks.Registered {
	p := &probes{tpu: acc}
	return []checks.Registered{
		{
			Check: checks.Check{
				ID:          DeviceDetectionID,
				Name:        "TPU Device Detection",
				Category:    checks.Hardware,
				Description: "Verify expected number of TPU chips are present",
			},
			Probe:               p.deviceDetection,
			EstimatedDurationMs: 1000,
		},
		{
			Check: checks.Check{
				ID:          HBMID,
				Name:        "HBM Memory Availability",
				Category:    checks.Hardware,
				Description: "Check total HBM capacity and availability",
			},
			Probe:               p.hbm,
			Dependencies:        []string{DeviceDetectionID},
			EstimatedDurationMs: 1000,
		},
		{
			Check: checks.Check{
				ID:          ThermalID,
				Name:        "TPU Thermal Status",
				Category:    checks.Hardware,
				Description: "Check temperature of each TPU chip",
			},
			Probe:               p.thermal,
			Dependencies:        []string{DeviceDetectionID},
			EstimatedDurationMs: 500,
		},
		{
			Check: checks.Check{
				ID:          ErrorCountersID,
				Name:        "TPU Error Counters",
				Category:    checks.Hardware,
				Description: "Check for accumulated hardware errors",
			},
			Probe:               p.errorCounters,
			Dependencies:        []string{DeviceDetectionID},
			EstimatedDurationMs: 500,
		},
		{
			Check: checks.Check{
				ID:          InterconnectID,
				Name:        "ICI Interconnect Status",
				Category:    checks.Hardware,
				Description: "Verify inter-chip interconnect is functional",
			},
			Probe:               p.interconnect,
			Dependencies:        []string{DeviceDetectionID},
			EstimatedDurationMs: 1000,
		},
		{
			Check: checks.Check{
				ID:          DriverID,
				Name:        "Driver Status",
				Category:    checks.Hardware,
				Description: "Verify TPU driver kernel module is loaded",
			},
			Probe:               p.driver,
			EstimatedDurationMs: 500,
		},
	}
}

func (p *probes) deviceDetection(ctx context.Context) checks.Result {
	start := time.Now()
	if !p.tpu.IsAcceleratorVM(ctx) {
		return checks.Skip(notOnTPU)
	}

	count, err := p.tpu.ChipCount(ctx)
	if err != nil {
		return checks.Fail("Failed to detect TPU chips", err.Error(), checks.Elapsed(start))
	}
	expected, err := p.tpu.ExpectedChipCount(ctx)
	if err != nil {
		expected = count
	}

	switch {
	case count == 0:
		return checks.Fail("No TPU chips detected", "Expected at least one TPU chip but found none", checks.Elapsed(start))
	case count < expected:
		return checks.Fail(
			fmt.Sprintf("Fewer TPU chips than expected: %d found, %d expected", count, expected),
			"Some TPU chips may be offline or malfunctioning",
			checks.Elapsed(start),
		)
	case count > expected:
		return checks.Warn(
			fmt.Sprintf("More TPU chips than expected: %d found, %d expected", count, expected),
			"This is unusual but not necessarily an error",
			checks.Elapsed(start),
		)
	default:
		return checks.Pass(fmt.Sprintf("%d chips detected", count), checks.Elapsed(start))
	}
}

func (p *probes) hbm(ctx context.Context) checks.Result {
	start := time.Now()
	if !p.tpu.IsAcceleratorVM(ctx) {
		return checks.Skip(notOnTPU)
	}

	hbm, err := p.tpu.MemoryInfo(ctx)
	if err != nil {
		return checks.Skip(fmt.Sprintf("HBM info unavailable: %v", err))
	}

	var pct float64
	if hbm.TotalBytes > 0 {
		pct = float64(hbm.AvailableBytes) / float64(hbm.TotalBytes) * 100
	}
	totalGB := float64(hbm.TotalBytes) / bytesPerGiB
	availableGB := float64(hbm.AvailableBytes) / bytesPerGiB
	details := fmt.Sprintf("%.1fGB available of %.1fGB total", availableGB, totalGB)

	switch {
	case pct < hbmFailPct:
		return checks.Fail(fmt.Sprintf("HBM availability critically low: %.1f%%", pct), details, checks.Elapsed(start))
	case pct < hbmWarnPct:
		return checks.Warn(fmt.Sprintf("HBM availability below threshold: %.1f%%", pct), details, checks.Elapsed(start))
	default:
		return checks.Pass(fmt.Sprintf("%.1fGB available (%.1f%%)", availableGB, pct), checks.Elapsed(start))
	}
}

func (p *probes) thermal(ctx context.Context) checks.Result {
	start := time.Now()
	if !p.tpu.IsAcceleratorVM(ctx) {
		return checks.Skip(notOnTPU)
	}

	info, err := p.tpu.ThermalInfo(ctx)
	if err != nil {
		return checks.Skip(fmt.Sprintf("Thermal info unavailable: %v", err))
	}

	hottest := info.Max()
	switch {
	case hottest >= tempFailC:
		return checks.Fail(fmt.Sprintf("TPU temperature critical: %.1fC", hottest), "One or more chips above 85C threshold", checks.Elapsed(start))
	case hottest >= tempWarnC:
		return checks.Warn(fmt.Sprintf("TPU temperature elevated: %.1fC", hottest), "One or more chips above 75C warning threshold", checks.Elapsed(start))
	default:
		msg := fmt.Sprintf("Max temperature: %.1fC", hottest)
		if info.Estimated {
			msg += " (estimated)"
		}
		return checks.Pass(msg, checks.Elapsed(start))
	}
}

func (p *probes) errorCounters(ctx context.Context) checks.Result {
	start := time.Now()
	if !p.tpu.IsAcceleratorVM(ctx) {
		return checks.Skip(notOnTPU)
	}

	counters, err := p.tpu.ErrorCounters(ctx)
	if err != nil {
		return checks.Skip(fmt.Sprintf("Error counters unavailable: %v", err))
	}

	switch {
	case counters.Uncorrectable > 0:
		return checks.Fail(
			fmt.Sprintf("%d uncorrectable errors detected", counters.Uncorrectable),
			"Uncorrectable errors indicate hardware issues",
			checks.Elapsed(start),
		)
	case counters.Correctable > 0:
		return checks.Warn(
			fmt.Sprintf("%d correctable errors detected", counters.Correctable),
			"Correctable errors are handled but may indicate degradation",
			checks.Elapsed(start),
		)
	default:
		return checks.Pass("No hardware errors", checks.Elapsed(start))
	}
}

func (p *probes) interconnect(ctx context.Context) checks.Result {
	start := time.Now()
	if !p.tpu.IsAcceleratorVM(ctx) {
		return checks.Skip(notOnTPU)
	}

	count, err := p.tpu.ChipCount(ctx)
	if err != nil {
		return checks.Skip(fmt.Sprintf("Could not determine chip count: %v", err))
	}
	if count <= 1 {
		return checks.Skip("Single-chip configuration - ICI not applicable")
	}

	status, err := p.tpu.InterconnectStatus(ctx)
	if err != nil {
		return checks.Skip(fmt.Sprintf("ICI status unavailable: %v", err))
	}

	switch {
	case !status.Healthy || status.Links == 0:
		return checks.Fail("ICI interconnect errors detected", status.Details, checks.Elapsed(start))
	case status.NominalGbps > 0 && status.BandwidthGbps < status.NominalGbps:
		return checks.Warn(
			fmt.Sprintf("ICI bandwidth below nominal: %.1f GB/s", status.BandwidthGbps),
			fmt.Sprintf("Expected %.1f GB/s for this TPU type", status.NominalGbps),
			checks.Elapsed(start),
		)
	default:
		return checks.Pass(fmt.Sprintf("ICI healthy, bandwidth: %.1f GB/s", status.BandwidthGbps), checks.Elapsed(start))
	}
}

func (p *probes) driver(_ context.Context) checks.Result {
	start := time.Now()
	if !p.tpu.DriverLoaded() {
		return checks.Fail("TPU driver not loaded", "The TPU kernel module is not loaded", checks.Elapsed(start))
	}

	version, err := p.tpu.DriverVersion()
	if err != nil {
		return checks.Warn("Driver loaded but version unknown", err.Error(), checks.Elapsed(start))
	}
	return checks.Pass(fmt.Sprintf("Driver version: %s", version), checks.Elapsed(start))
}
