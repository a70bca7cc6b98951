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

// Package io validates storage and network paths used for training data
// and checkpoints.
package io

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/caas-team/tpu-doc/internal/logger"
	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/platform"
)

const (
	GCSThroughputID   = "IO-001"
	DiskThroughputID  = "IO-002"
	GCSConnectivityID = "IO-003"
	CheckpointID      = "IO-004"
	NetworkLatencyID  = "IO-005"
	DNSID             = "IO-006"
)

const (
	gcsHost         = "storage.googleapis.com"
	connectTimeout  = 5 * time.Second
	downloadTimeout = 30 * time.Second
	// object read from GCS_TEST_BUCKET when no object path is given
	defaultTestObject = "tpu-doc/throughput-test.bin"
	gcsWarnMBps       = 100.0
	diskWarnGBps      = 0.5
	diskTestMiB       = 100
	checkpointWarnGB  = 100.0
	latencyWarn       = 10 * time.Millisecond
	dnsWarn           = 100 * time.Millisecond
	bytesPerGiB       = 1024.0 * 1024.0 * 1024.0
)

type endpoint struct {
	host string
	port int
}

var (
	gcpServices = []endpoint{
		{host: "metadata.google.internal", port: 80},
		{host: gcsHost, port: 443},
		{host: "compute.googleapis.com", port: 443},
	}
	dnsHosts = []string{
		gcsHost,
		"metadata.google.internal",
		"compute.googleapis.com",
	}
)

type probes struct {
	sys platform.System
	md  platform.Metadata
	net platform.Network
}

// Checks returns the storage and network checks.
func Checks(sys platform.System, md platform.Metadata, nw platform.Network) []checks.Registered {
	p := &probes{sys: sys, md: md, net: nw}
	return []checks.Registered{
		{
			Check: checks.Check{
				ID:          GCSThroughputID,
				Name:        "GCS Read Throughput",
				Category:    checks.Io,
				Description: "Measure read throughput from Google Cloud Storage",
			},
			Probe:               p.gcsThroughput,
			Dependencies:        []string{GCSConnectivityID},
			EstimatedDurationMs: 10000,
		},
		{
			Check: checks.Check{
				ID:          DiskThroughputID,
				Name:        "Local Disk Throughput",
				Category:    checks.Io,
				Description: "Measure sequential write throughput to local SSD",
			},
			Probe:               p.diskThroughput,
			EstimatedDurationMs: 5000,
		},
		{
			Check: checks.Check{
				ID:          GCSConnectivityID,
				Name:        "GCS Connectivity",
				Category:    checks.Io,
				Description: "Verify connectivity to storage.googleapis.com",
			},
			Probe:               p.gcsConnectivity,
			Dependencies:        []string{DNSID},
			EstimatedDurationMs: 2000,
		},
		{
			Check: checks.Check{
				ID:          CheckpointID,
				Name:        "Checkpoint Directory Access",
				Category:    checks.Io,
				Description: "Verify checkpoint directory access and space",
			},
			Probe:               p.checkpoint,
			EstimatedDurationMs: 1000,
		},
		{
			Check: checks.Check{
				ID:          NetworkLatencyID,
				Name:        "Network Latency to GCP Services",
				Category:    checks.Io,
				Description: "Measure latency to GCP services",
			},
			Probe:               p.networkLatency,
			Dependencies:        []string{DNSID},
			EstimatedDurationMs: 5000,
		},
		{
			Check: checks.Check{
				ID:          DNSID,
				Name:        "DNS Resolution",
				Category:    checks.Io,
				Description: "Verify DNS resolution is working",
			},
			Probe:               p.dns,
			EstimatedDurationMs: 2000,
		},
	}
}

// testObjectURL turns "bucket", "gs://bucket" or "gs://bucket/object" into
// the public download url of the object.
func testObjectURL(bucket string) string {
	bucket = strings.TrimPrefix(strings.TrimSpace(bucket), "gs://")
	name, object, _ := strings.Cut(bucket, "/")
	if object == "" {
		object = defaultTestObject
	}
	return fmt.Sprintf("https://%s/%s", gcsHost, path.Join(name, object))
}

func (p *probes) gcsThroughput(ctx context.Context) checks.Result {
	start := time.Now()
	bucket, ok := p.sys.Env("GCS_TEST_BUCKET")
	if !ok || bucket == "" {
		return checks.Skip("GCS throughput test requires configured test bucket (GCS_TEST_BUCKET)")
	}
	if !p.md.Reachable(ctx) {
		return checks.Skip("Not running on GCP")
	}

	u := testObjectURL(bucket)
	res, err := p.net.Bandwidth(ctx, u, downloadTimeout)
	if err != nil {
		return checks.Fail("GCS read failed", err.Error(), checks.Elapsed(start))
	}
	if res.Bytes == 0 {
		return checks.Warn("GCS test object is empty", fmt.Sprintf("Object: %s", u), checks.Elapsed(start))
	}

	mbps := res.MBps()
	if mbps < gcsWarnMBps {
		return checks.Warn(
			fmt.Sprintf("GCS read throughput low: %.1f MB/s", mbps),
			fmt.Sprintf("Expected at least %.0f MB/s", gcsWarnMBps),
			checks.Elapsed(start),
		)
	}
	return checks.Pass(fmt.Sprintf("GCS read throughput: %.1f MB/s", mbps), checks.Elapsed(start))
}

func (p *probes) diskThroughput(ctx context.Context) checks.Result {
	start := time.Now()
	dir := "/tmp"
	if d, ok := p.sys.Env("CHECKPOINT_DIR"); ok && d != "" && p.sys.FileExists(d) {
		dir = d
	}
	file := path.Join(dir, ".tpu-doc-disk-test")

	out, err := p.sys.Command(ctx, "dd",
		"if=/dev/zero",
		"of="+file,
		"bs=1M",
		fmt.Sprintf("count=%d", diskTestMiB),
		"conv=fdatasync",
	)
	if _, rmErr := p.sys.Command(ctx, "rm", "-f", file); rmErr != nil {
		logger.FromContext(ctx).Warn("Failed to remove disk test file", "file", file, "error", rmErr)
	}
	if err != nil {
		return checks.Skip(fmt.Sprintf("Disk throughput test failed: %v", err))
	}

	gbps, ok := ParseDDThroughput(out)
	if !ok {
		return checks.Warn("Could not measure disk throughput", "dd output parsing failed", checks.Elapsed(start))
	}
	if gbps < diskWarnGBps {
		return checks.Warn(fmt.Sprintf("Local disk throughput low: %.2f GB/s", gbps), "Expected at least 1 GB/s for NVMe SSD", checks.Elapsed(start))
	}
	return checks.Pass(fmt.Sprintf("Local disk throughput: %.2f GB/s", gbps), checks.Elapsed(start))
}

func (p *probes) gcsConnectivity(ctx context.Context) checks.Result {
	start := time.Now()
	res, err := p.net.TCPConnect(ctx, gcsHost, 443, connectTimeout)
	if err != nil {
		return checks.Fail("GCS connectivity check failed", err.Error(), checks.Elapsed(start))
	}
	if !res.Success {
		return checks.Fail("Cannot connect to storage.googleapis.com", "TCP connection to port 443 failed", checks.Elapsed(start))
	}
	return checks.Pass(fmt.Sprintf("GCS connectivity OK, latency: %dms", res.Latency.Milliseconds()), checks.Elapsed(start))
}

func (p *probes) checkpoint(_ context.Context) checks.Result {
	start := time.Now()
	dir, ok := p.sys.Env("CHECKPOINT_DIR")
	if !ok || dir == "" {
		return checks.Skip("CHECKPOINT_DIR environment variable not set")
	}

	existed := p.sys.FileExists(dir)
	if err := p.sys.CheckWritable(dir); err != nil {
		if !existed {
			return checks.Fail("Cannot create checkpoint directory", fmt.Sprintf("Path: %s", dir), checks.Elapsed(start))
		}
		return checks.Fail("No write permission for checkpoint directory", fmt.Sprintf("Path: %s", dir), checks.Elapsed(start))
	}

	disk, err := p.sys.DiskInfo(dir)
	if err != nil {
		return checks.Warn("Could not check checkpoint directory space", err.Error(), checks.Elapsed(start))
	}
	gb := float64(disk.AvailableBytes) / bytesPerGiB
	if gb < checkpointWarnGB {
		return checks.Warn(
			fmt.Sprintf("Checkpoint directory space low: %.1f GB available", gb),
			"Recommended at least 100GB for checkpoints",
			checks.Elapsed(start),
		)
	}
	return checks.Pass(fmt.Sprintf("Checkpoint directory OK, %.1f GB available", gb), checks.Elapsed(start))
}

func (p *probes) networkLatency(ctx context.Context) checks.Result {
	start := time.Now()
	var (
		failures  []string
		latencies []string
		slowest   time.Duration
	)
	for _, svc := range gcpServices {
		res, err := p.net.TCPConnect(ctx, svc.host, svc.port, connectTimeout)
		switch {
		case err != nil:
			failures = append(failures, fmt.Sprintf("%s:%d - %v", svc.host, svc.port, err))
		case !res.Success:
			failures = append(failures, fmt.Sprintf("%s:%d - connection failed", svc.host, svc.port))
		default:
			latencies = append(latencies, fmt.Sprintf("%s: %dms", svc.host, res.Latency.Milliseconds()))
			slowest = max(slowest, res.Latency)
		}
	}

	if len(failures) == len(gcpServices) {
		return checks.Fail("No GCP service reachable", strings.Join(failures, "; "), checks.Elapsed(start))
	}
	if len(failures) > 0 {
		return checks.Warn(fmt.Sprintf("%d service(s) unreachable", len(failures)), strings.Join(failures, "; "), checks.Elapsed(start))
	}
	if slowest > latencyWarn {
		return checks.Warn(
			fmt.Sprintf("Network latency elevated: max %dms", slowest.Milliseconds()),
			strings.Join(latencies, ", "),
			checks.Elapsed(start),
		)
	}
	return checks.Pass(fmt.Sprintf("Network latency OK, max %dms", slowest.Milliseconds()), checks.Elapsed(start))
}

func (p *probes) dns(ctx context.Context) checks.Result {
	start := time.Now()
	var (
		failures []string
		slowest  time.Duration
	)
	for _, host := range dnsHosts {
		res, err := p.net.Resolve(ctx, host)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", host, err))
			continue
		}
		slowest = max(slowest, res.Latency)
	}

	if len(failures) > 0 {
		return checks.Fail("DNS resolution failed", strings.Join(failures, "; "), checks.Elapsed(start))
	}
	if slowest > dnsWarn {
		return checks.Warn(
			fmt.Sprintf("DNS resolution slow, max %dms", slowest.Milliseconds()),
			fmt.Sprintf("Expected less than %dms per lookup", dnsWarn.Milliseconds()),
			checks.Elapsed(start),
		)
	}
	return checks.Pass(fmt.Sprintf("DNS resolution OK, max %dms", slowest.Milliseconds()), checks.Elapsed(start))
}

var errNoRate = errors.New("no transfer rate")

// ParseDDThroughput extracts the transfer rate in GB/s from the output of dd.
// GNU ("1.3 GB/s"), busybox ("1.3G/s") and BSD ("(1262765060 bytes/sec)")
// formats are understood.
func ParseDDThroughput(out string) (float64, bool) {
	units := []struct {
		suffix string
		toGBps float64
	}{
		{"GB/s", 1},
		{"G/s", 1},
		{"MB/s", 1.0 / 1024},
		{"M/s", 1.0 / 1024},
		{"kB/s", 1.0 / (1024 * 1024)},
	}

	for _, line := range strings.Split(out, "\n") {
		for _, u := range units {
			if v, err := rate(line, u.suffix); err == nil {
				return v * u.toGBps, true
			}
		}
		if strings.Contains(line, "bytes/sec") || strings.Contains(line, "bytes/s") {
			if _, rest, ok := strings.Cut(line, "("); ok {
				num, _, _ := strings.Cut(rest, "bytes")
				if v, err := strconv.ParseFloat(strings.TrimSpace(num), 64); err == nil {
					return v / bytesPerGiB, true
				}
			}
		}
	}
	return 0, false
}

// rate returns the number in front of unit. The number may be separated by a
// space or attached to the unit, and may use a decimal comma.
func rate(line, unit string) (float64, error) {
	if !strings.Contains(line, unit) {
		return 0, errNoRate
	}
	fields := strings.Fields(line)
	for i, f := range fields {
		var num string
		switch {
		case f == unit && i > 0:
			num = fields[i-1]
		case strings.HasSuffix(f, unit) && f != unit:
			num = strings.TrimSuffix(f, unit)
		default:
			continue
		}
		if v, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", "."), 64); err == nil {
			return v, nil
		}
	}
	return 0, errNoRate
}
