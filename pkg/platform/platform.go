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

// Package platform contains the read-only probes the checks are computed from.
//
// Every probe returns a typed value or one of the error types of package
// checks. None of them panic.
package platform

import (
	"context"
	"time"

	"github.com/caas-team/tpu-doc/internal/helper"
)

// System exposes host level facts.
//
//go:generate moq -out system_moq.go . System
type System interface {
	// Hostname returns the host name
	Hostname() (string, error)
	// KernelVersion returns the running kernel release, e.g. "6.1.0-18-cloud-amd64"
	KernelVersion() (string, error)
	MemoryInfo() (MemoryInfo, error)
	CPUInfo() (CPUInfo, error)
	// DiskInfo returns the capacity of the filesystem holding path
	DiskInfo(path string) (DiskInfo, error)
	UnixTimestamp() int64
	// Env returns the value of an environment variable and whether it is set
	Env(name string) (string, bool)
	// ProcessRunning reports whether a process with the given command name exists
	ProcessRunning(name string) (bool, error)
	// ReadFile returns the whitespace trimmed content of a file
	ReadFile(path string) (string, error)
	// Glob returns the paths matching pattern
	Glob(pattern string) ([]string, error)
	FileExists(path string) bool
	// CheckWritable creates dir if missing, then creates and removes a file in it
	CheckWritable(dir string) error
	// ListeningSockets returns the TCP sockets in LISTEN state
	ListeningSockets() ([]Socket, error)
	// LookPath searches an executable in PATH
	LookPath(name string) (string, error)
	// Command runs an executable and returns its combined output
	Command(ctx context.Context, name string, args ...string) (string, error)
}

// Metadata is a client of the cloud instance metadata server.
//
//go:generate moq -out metadata_moq.go . Metadata
type Metadata interface {
	// Reachable reports whether the metadata server accepts connections
	Reachable(ctx context.Context) bool
	// Get returns the body of a metadata path relative to /computeMetadata/v1/
	Get(ctx context.Context, path string) (string, error)
	// InstanceAttribute returns a custom instance attribute. ok is false if the attribute does not exist.
	InstanceAttribute(ctx context.Context, name string) (value string, ok bool, err error)
	// UnauthenticatedStatus returns the status code of a request without the Metadata-Flavor header
	UnauthenticatedStatus(ctx context.Context) (int, error)
}

// Accelerator exposes the TPU devices of the host.
// All device queries return checks.ErrNotOnAccelerator on hosts without TPUs.
//
//go:generate moq -out accelerator_moq.go . Accelerator
type Accelerator interface {
	IsAcceleratorVM(ctx context.Context) bool
	DeviceType(ctx context.Context) (DeviceType, error)
	ChipCount(ctx context.Context) (int, error)
	ExpectedChipCount(ctx context.Context) (int, error)
	Topology(ctx context.Context) (Topology, error)
	MemoryInfo(ctx context.Context) (HBMInfo, error)
	Health(ctx context.Context) (Health, error)
	ThermalInfo(ctx context.Context) (ThermalInfo, error)
	ErrorCounters(ctx context.Context) (ErrorCounters, error)
	InterconnectStatus(ctx context.Context) (InterconnectStatus, error)
	DriverLoaded() bool
	DriverVersion() (string, error)
	LibraryVersion() (string, error)
}

// Network performs active network probes.
//
//go:generate moq -out network_moq.go . Network
type Network interface {
	Resolve(ctx context.Context, host string) (DNSResult, error)
	TCPConnect(ctx context.Context, host string, port int, timeout time.Duration) (ConnectResult, error)
	HTTPGet(ctx context.Context, url string, timeout time.Duration) (HTTPResult, error)
	Bandwidth(ctx context.Context, url string, timeout time.Duration) (BandwidthResult, error)
}

// Platform bundles the probes handed to the checks.
type Platform struct {
	System      System
	Metadata    Metadata
	Accelerator Accelerator
	Network     Network
}

// Config configures the probes of the real platform.
type Config struct {
	// Root is prepended to every procfs, sysfs and /etc path. Defaults to "/".
	Root string `yaml:"root" mapstructure:"root"`
	// MetadataURL is the base url of the metadata server
	MetadataURL string `yaml:"metadataUrl" mapstructure:"metadataUrl" validate:"omitempty,url"`
	// MetadataTimeout bounds every metadata request
	MetadataTimeout time.Duration `yaml:"metadataTimeout" mapstructure:"metadataTimeout"`
	// MetadataRetry configures the retries of failed metadata requests
	MetadataRetry helper.RetryConfig `yaml:"metadataRetry" mapstructure:"metadataRetry"`
}

// DefaultConfig returns the configuration used on a real host.
func DefaultConfig() Config {
	return Config{
		Root:            "/",
		MetadataURL:     DefaultMetadataURL,
		MetadataTimeout: DefaultMetadataTimeout,
		MetadataRetry: helper.RetryConfig{
			Count: 1,
			Delay: 200 * time.Millisecond,
		},
	}
}

// New returns the probes of the local Linux host on GCP.
func New(cfg Config) Platform {
	sys := NewSystem(cfg.Root)
	md := NewMetadata(cfg)
	return Platform{
		System:      sys,
		Metadata:    md,
		Accelerator: NewAccelerator(sys, md),
		Network:     NewNetwork(),
	}
}
