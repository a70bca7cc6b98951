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

package platform

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caas-team/tpu-doc/pkg/checks"
)

const gib = 1024 * 1024 * 1024

// DeviceType is the TPU generation.
type DeviceType string

const (
	TPUv4      DeviceType = "v4"
	TPUv5e     DeviceType = "v5e"
	TPUv5p     DeviceType = "v5p"
	TPUv6e     DeviceType = "v6e"
	TPUv7      DeviceType = "v7"
	TPUUnknown DeviceType = "unknown"
)

func (d DeviceType) String() string {
	return string(d)
}

type deviceSpec struct {
	chips         int
	coresPerChip  int
	hbmPerChipGiB uint64
	iciGbps       float64
}

var deviceSpecs = map[DeviceType]deviceSpec{
	TPUv4:      {chips: 4, coresPerChip: 2, hbmPerChipGiB: 32, iciGbps: 400},
	TPUv5e:     {chips: 8, coresPerChip: 1, hbmPerChipGiB: 16, iciGbps: 200},
	TPUv5p:     {chips: 8, coresPerChip: 2, hbmPerChipGiB: 95, iciGbps: 450},
	TPUv6e:     {chips: 4, coresPerChip: 1, hbmPerChipGiB: 32, iciGbps: 500},
	TPUv7:      {chips: 8, coresPerChip: 2, hbmPerChipGiB: 128, iciGbps: 600},
	TPUUnknown: {chips: 1, coresPerChip: 1, hbmPerChipGiB: 16, iciGbps: 200},
}

func (d DeviceType) spec() deviceSpec {
	if s, ok := deviceSpecs[d]; ok {
		return s
	}
	return deviceSpecs[TPUUnknown]
}

// DefaultChipCount returns the chips per host of a device type.
func (d DeviceType) DefaultChipCount() int {
	return d.spec().chips
}

// HBMPerChip returns the high bandwidth memory of one chip in bytes.
func (d DeviceType) HBMPerChip() uint64 {
	return d.spec().hbmPerChipGiB * gib
}

// NominalInterconnectGbps returns the nominal ICI bandwidth.
func (d DeviceType) NominalInterconnectGbps() float64 {
	return d.spec().iciGbps
}

// ParseDeviceType derives the generation from an accelerator name such as
// "v5litepod-8", "tpu-v5p-slice" or a machine type.
func ParseDeviceType(name string) DeviceType {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "v5litepod"), strings.Contains(lower, "v5e"), strings.Contains(lower, "ct5lp"):
		return TPUv5e
	case strings.Contains(lower, "v5p"), strings.Contains(lower, "ct5p"):
		return TPUv5p
	case strings.Contains(lower, "v6e"), strings.Contains(lower, "ct6e"):
		return TPUv6e
	case strings.Contains(lower, "v7"):
		return TPUv7
	case strings.Contains(lower, "v4"), strings.Contains(lower, "ct4p"):
		return TPUv4
	default:
		return TPUUnknown
	}
}

// Topology describes the chip layout of the host.
type Topology struct {
	Chips        int
	CoresPerChip int
	Shape        string
}

// HBMInfo describes the accelerator memory in bytes.
type HBMInfo struct {
	TotalBytes     uint64
	AvailableBytes uint64
	PerChipBytes   uint64
}

// Health is the reported health of the devices.
type Health string

const (
	HealthHealthy   Health = "healthy"
	HealthDegraded  Health = "degraded"
	HealthUnhealthy Health = "unhealthy"
	HealthUnknown   Health = "unknown"
)

// ThermalInfo holds one temperature in Celsius per chip.
type ThermalInfo struct {
	ChipTemperatures []float64
	// Estimated is true when no sensor was found and nominal values are reported
	Estimated bool
}

// Max returns the hottest chip temperature.
func (t ThermalInfo) Max() float64 {
	var hottest float64
	for _, c := range t.ChipTemperatures {
		if c > hottest {
			hottest = c
		}
	}
	return hottest
}

// ErrorCounters holds the memory error counters of the devices.
type ErrorCounters struct {
	Correctable   uint64
	Uncorrectable uint64
}

// InterconnectStatus describes the inter-chip interconnect.
type InterconnectStatus struct {
	Healthy       bool
	Links         int
	BandwidthGbps float64
	NominalGbps   float64
	Details       string
}

const (
	envTPUName          = "TPU_NAME"
	envAcceleratorType  = "TPU_ACCELERATOR_TYPE"
	envChipsPerHost     = "TPU_CHIPS_PER_HOST"
	envExpectedChips    = "TPU_EXPECTED_CHIPS"
	envTopology         = "TPU_TOPOLOGY"
	envHealth           = "TPU_HEALTH"
	envCorrectable      = "TPU_CORRECTABLE_ERRORS"
	envUncorrectable    = "TPU_UNCORRECTABLE_ERRORS"
	envDriverVersion    = "TPU_DRIVER_VERSION"
	envLibraryVersion   = "LIBTPU_VERSION"
	envICIBandwidthGbps = "TPU_ICI_BANDWIDTH_GBPS"

	accelClassGlob  = "/sys/class/accel/accel*"
	accelTypePath   = "/sys/class/accel/accel0/device/tpu_type"
	thermalZoneGlob = "/sys/class/thermal/thermal_zone*"
	modulesPath     = "/proc/modules"
	nominalTempC    = 65.0
)

var (
	driverVersionPaths = []string{"/sys/module/tpu/version", "/sys/module/accel/version"}
	libraryPaths       = []string{"/usr/local/lib/libtpu.so", "/usr/lib/libtpu.so"}
)

var _ Accelerator = (*TPU)(nil)

// TPU probes Cloud TPU devices. Facts are taken from the environment first,
// then sysfs, then the metadata server and finally the defaults of the
// device type.
type TPU struct {
	sys System
	md  Metadata
}

// NewAccelerator returns the TPU probe.
func NewAccelerator(sys System, md Metadata) *TPU {
	return &TPU{sys: sys, md: md}
}

func (t *TPU) env(name string) (string, bool) {
	v, ok := t.sys.Env(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (t *TPU) envUint(name string) (uint64, bool) {
	v, ok := t.env(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 64)
	return n, err == nil
}

func (t *TPU) accelDevices() []string {
	devs, err := t.sys.Glob(accelClassGlob)
	if err != nil {
		return nil
	}
	return devs
}

func (t *TPU) machineType(ctx context.Context) (string, bool) {
	if t.md == nil || !t.md.Reachable(ctx) {
		return "", false
	}
	mt, err := MachineType(ctx, t.md)
	return mt, err == nil
}

// IsAcceleratorVM combines the environment, sysfs, metadata and kernel modules.
func (t *TPU) IsAcceleratorVM(ctx context.Context) bool {
	if _, ok := t.env(envTPUName); ok {
		return true
	}
	if _, ok := t.env(envAcceleratorType); ok {
		return true
	}
	if len(t.accelDevices()) > 0 {
		return true
	}
	if mt, ok := t.machineType(ctx); ok && strings.Contains(strings.ToLower(mt), "tpu") {
		return true
	}
	if modules, err := t.sys.ReadFile(modulesPath); err == nil {
		return strings.Contains(modules, "tpu")
	}
	return false
}

// DeviceType resolves the generation: env, sysfs, metadata, machine type.
func (t *TPU) DeviceType(ctx context.Context) (DeviceType, error) {
	if !t.IsAcceleratorVM(ctx) {
		return "", checks.ErrNotOnAccelerator
	}
	return t.deviceType(ctx), nil
}

func (t *TPU) deviceType(ctx context.Context) DeviceType {
	if v, ok := t.env(envAcceleratorType); ok {
		return ParseDeviceType(v)
	}
	if v, ok := t.env(envTPUName); ok {
		if d := ParseDeviceType(v); d != TPUUnknown {
			return d
		}
	}
	if v, err := t.sys.ReadFile(accelTypePath); err == nil && v != "" {
		return ParseDeviceType(v)
	}
	if t.md != nil && t.md.Reachable(ctx) {
		if v, ok, err := t.md.InstanceAttribute(ctx, "accelerator-type"); err == nil && ok {
			return ParseDeviceType(v)
		}
		if mt, err := MachineType(ctx, t.md); err == nil {
			return ParseDeviceType(mt)
		}
	}
	return TPUUnknown
}

// ChipCount resolves the chips attached to this host: env, sysfs, type default.
func (t *TPU) ChipCount(ctx context.Context) (int, error) {
	if !t.IsAcceleratorVM(ctx) {
		return 0, checks.ErrNotOnAccelerator
	}
	return t.chipCount(ctx), nil
}

func (t *TPU) chipCount(ctx context.Context) int {
	if n, ok := t.envUint(envChipsPerHost); ok {
		return int(n) //nolint:gosec // chip counts are small
	}
	if devs := t.accelDevices(); len(devs) > 0 {
		return len(devs)
	}
	return t.deviceType(ctx).DefaultChipCount()
}

// ExpectedChipCount is the chip count the host should have.
func (t *TPU) ExpectedChipCount(ctx context.Context) (int, error) {
	if !t.IsAcceleratorVM(ctx) {
		return 0, checks.ErrNotOnAccelerator
	}
	if n, ok := t.envUint(envExpectedChips); ok {
		return int(n), nil //nolint:gosec // chip counts are small
	}
	if n, ok := t.envUint(envChipsPerHost); ok {
		return int(n), nil //nolint:gosec // chip counts are small
	}
	return t.deviceType(ctx).DefaultChipCount(), nil
}

func (t *TPU) Topology(ctx context.Context) (Topology, error) {
	if !t.IsAcceleratorVM(ctx) {
		return Topology{}, checks.ErrNotOnAccelerator
	}
	chips := t.chipCount(ctx)
	shape, ok := t.env(envTopology)
	if !ok {
		shape = fmt.Sprintf("%dx1", chips)
	}
	return Topology{
		Chips:        chips,
		CoresPerChip: t.deviceType(ctx).spec().coresPerChip,
		Shape:        shape,
	}, nil
}

// MemoryInfo estimates the HBM of the host from the device type.
// 95% of the memory is considered available to workloads.
func (t *TPU) MemoryInfo(ctx context.Context) (HBMInfo, error) {
	if !t.IsAcceleratorVM(ctx) {
		return HBMInfo{}, checks.ErrNotOnAccelerator
	}
	perChip := t.deviceType(ctx).HBMPerChip()
	total := perChip * uint64(t.chipCount(ctx)) //nolint:gosec // chip counts are small
	return HBMInfo{
		TotalBytes:     total,
		AvailableBytes: total / 100 * 95,
		PerChipBytes:   perChip,
	}, nil
}

func (t *TPU) Health(ctx context.Context) (Health, error) {
	if v, ok := t.env(envHealth); ok {
		switch h := Health(strings.ToLower(v)); h {
		case HealthHealthy, HealthDegraded, HealthUnhealthy:
			return h, nil
		default:
			return HealthUnknown, nil
		}
	}
	if !t.IsAcceleratorVM(ctx) {
		return HealthUnknown, checks.ErrNotOnAccelerator
	}
	return HealthHealthy, nil
}

// ThermalInfo reads thermal zones of type tpu or accel. Without sensors a
// nominal temperature is reported for every chip.
func (t *TPU) ThermalInfo(ctx context.Context) (ThermalInfo, error) {
	if !t.IsAcceleratorVM(ctx) {
		return ThermalInfo{}, checks.ErrNotOnAccelerator
	}

	var temps []float64
	zones, _ := t.sys.Glob(thermalZoneGlob)
	for _, z := range zones {
		typ, err := t.sys.ReadFile(filepath.Join(z, "type"))
		if err != nil || !(strings.Contains(typ, "tpu") || strings.Contains(typ, "accel")) {
			continue
		}
		raw, err := t.sys.ReadFile(filepath.Join(z, "temp"))
		if err != nil {
			continue
		}
		milli, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		temps = append(temps, float64(milli)/1000.0)
	}

	if len(temps) > 0 {
		return ThermalInfo{ChipTemperatures: temps}, nil
	}

	chips := t.chipCount(ctx)
	temps = make([]float64, chips)
	for i := range temps {
		temps[i] = nominalTempC
	}
	return ThermalInfo{ChipTemperatures: temps, Estimated: true}, nil
}

func (t *TPU) ErrorCounters(ctx context.Context) (ErrorCounters, error) {
	if !t.IsAcceleratorVM(ctx) {
		return ErrorCounters{}, checks.ErrNotOnAccelerator
	}
	c, _ := t.envUint(envCorrectable)
	u, _ := t.envUint(envUncorrectable)
	return ErrorCounters{Correctable: c, Uncorrectable: u}, nil
}

// InterconnectStatus reports the ICI links between the chips of the host.
// Single chip hosts have no interconnect and return checks.ErrIO.
func (t *TPU) InterconnectStatus(ctx context.Context) (InterconnectStatus, error) {
	if !t.IsAcceleratorVM(ctx) {
		return InterconnectStatus{}, checks.ErrNotOnAccelerator
	}
	chips := t.chipCount(ctx)
	if chips <= 1 {
		return InterconnectStatus{}, checks.ErrIO{Context: "interconnect status", Message: "single chip configuration"}
	}

	nominal := t.deviceType(ctx).NominalInterconnectGbps()
	status := InterconnectStatus{
		Healthy:       true,
		Links:         chips,
		BandwidthGbps: nominal,
		NominalGbps:   nominal,
		Details:       "ICI status inferred from TPU type",
	}
	if v, ok := t.env(envICIBandwidthGbps); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			status.BandwidthGbps = f
			status.Details = "ICI bandwidth reported by " + envICIBandwidthGbps
		}
	}
	if h, err := t.Health(ctx); err == nil && h == HealthUnhealthy {
		status.Healthy = false
		status.Details = "TPU reported unhealthy"
	}
	return status, nil
}

// DriverLoaded reports whether the TPU kernel driver is present.
func (t *TPU) DriverLoaded() bool {
	if modules, err := t.sys.ReadFile(modulesPath); err == nil {
		if strings.Contains(modules, "tpu") || strings.Contains(modules, "accel") {
			return true
		}
	}
	devs, err := t.sys.Glob("/dev/accel*")
	return err == nil && len(devs) > 0
}

func (t *TPU) DriverVersion() (string, error) {
	for _, p := range driverVersionPaths {
		if v, err := t.sys.ReadFile(p); err == nil && v != "" {
			return v, nil
		}
	}
	if v, ok := t.env(envDriverVersion); ok {
		return v, nil
	}
	return "", checks.ErrIO{Context: "driver version", Message: "driver version not available"}
}

// LibraryVersion returns the libtpu version. If only the shared object is
// found the version is reported as unknown.
func (t *TPU) LibraryVersion() (string, error) {
	if v, ok := t.env(envLibraryVersion); ok {
		return v, nil
	}
	for _, p := range libraryPaths {
		if t.sys.FileExists(p) {
			return LibraryVersionUnknown, nil
		}
	}
	return "", checks.ErrIO{Context: "libtpu version", Message: "libtpu not found"}
}

// LibraryVersionUnknown is returned when libtpu is installed without version information
const LibraryVersionUnknown = "available (version unknown)"
