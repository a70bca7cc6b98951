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

package io

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/platform"
)

func probe(t *testing.T, sys platform.System, md platform.Metadata, nw platform.Network, id string) checks.Result {
	t.Helper()
	for _, c := range Checks(sys, md, nw) {
		if c.ID == id {
			return c.Probe(context.Background())
		}
	}
	t.Fatalf("check %s not found", id)
	return checks.Result{}
}

func envSystem(env map[string]string) *platform.SystemMock {
	return &platform.SystemMock{
		EnvFunc: func(name string) (string, bool) {
			v, ok := env[name]
			return v, ok
		},
		FileExistsFunc: func(string) bool { return true },
	}
}

func onGCP(reachable bool) *platform.MetadataMock {
	return &platform.MetadataMock{ReachableFunc: func(context.Context) bool { return reachable }}
}

func TestParseDDThroughput(t *testing.T) {
	tests := []struct {
		name   string
		out    string
		want   float64
		wantOK bool
	}{
		{
			name:   "gnu coreutils",
			out:    "100+0 records in\n100+0 records out\n104857600 bytes (105 MB, 100 MiB) copied, 0.0831556 s, 1.3 GB/s",
			want:   1.3,
			wantOK: true,
		},
		{
			name:   "megabytes",
			out:    "104857600 bytes (105 MB, 100 MiB) copied, 0.2 s, 512 MB/s",
			want:   0.5,
			wantOK: true,
		},
		{
			name:   "decimal comma",
			out:    "104857600 Bytes (105 MB, 100 MiB) kopiert, 0,5 s, 204,8 MB/s",
			want:   0.2,
			wantOK: true,
		},
		{
			name:   "busybox attached unit",
			out:    "100+0 records in\n100+0 records out\n104857600 bytes (100.0MB) copied, 0.05 seconds, 2.0G/s",
			want:   2.0,
			wantOK: true,
		},
		{
			name:   "bsd",
			out:    "104857600 bytes transferred in 0.083 secs (1073741824 bytes/sec)",
			want:   1.0,
			wantOK: true,
		},
		{
			name:   "kilobytes",
			out:    "1048576 bytes copied, 1 s, 1048576 kB/s",
			want:   1.0,
			wantOK: true,
		},
		{
			name: "no rate",
			out:  "dd: failed to open '/ckpt/x': Permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDDThroughput(tt.out)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestTestObjectURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/data/tpu-doc/throughput-test.bin", testObjectURL("data"))
	assert.Equal(t, "https://storage.googleapis.com/data/tpu-doc/throughput-test.bin", testObjectURL("gs://data"))
	assert.Equal(t, "https://storage.googleapis.com/data/shards/0.tfrecord", testObjectURL("gs://data/shards/0.tfrecord"))
}

func TestGCSThroughput(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		gcp        bool
		result     platform.BandwidthResult
		err        error
		wantStatus checks.Status
	}{
		{name: "no bucket", gcp: true, wantStatus: checks.StatusSkip},
		{name: "not on gcp", env: map[string]string{"GCS_TEST_BUCKET": "b"}, wantStatus: checks.StatusSkip},
		{name: "fast", env: map[string]string{"GCS_TEST_BUCKET": "b"}, gcp: true, result: platform.BandwidthResult{Bytes: 500e6, Seconds: 1}, wantStatus: checks.StatusPass},
		{name: "slow", env: map[string]string{"GCS_TEST_BUCKET": "b"}, gcp: true, result: platform.BandwidthResult{Bytes: 50e6, Seconds: 1}, wantStatus: checks.StatusWarn},
		{name: "empty object", env: map[string]string{"GCS_TEST_BUCKET": "b"}, gcp: true, result: platform.BandwidthResult{Seconds: 1}, wantStatus: checks.StatusWarn},
		{name: "download error", env: map[string]string{"GCS_TEST_BUCKET": "b"}, gcp: true, err: checks.ErrIO{Context: "download", Message: "HTTP 403"}, wantStatus: checks.StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nw := &platform.NetworkMock{
				BandwidthFunc: func(_ context.Context, _ string, _ time.Duration) (platform.BandwidthResult, error) {
					return tt.result, tt.err
				},
			}
			got := probe(t, envSystem(tt.env), onGCP(tt.gcp), nw, GCSThroughputID)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestDiskThroughput(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		out        string
		err        error
		wantFile   string
		wantStatus checks.Status
	}{
		{
			name:       "fast tmp",
			out:        "104857600 bytes (105 MB, 100 MiB) copied, 0.08 s, 1.3 GB/s",
			wantFile:   "/tmp/.tpu-doc-disk-test",
			wantStatus: checks.StatusPass,
		},
		{
			name:       "slow checkpoint dir",
			env:        map[string]string{"CHECKPOINT_DIR": "/ckpt"},
			out:        "104857600 bytes (105 MB, 100 MiB) copied, 0.5 s, 200 MB/s",
			wantFile:   "/ckpt/.tpu-doc-disk-test",
			wantStatus: checks.StatusWarn,
		},
		{
			name:       "unparseable",
			out:        "done",
			wantFile:   "/tmp/.tpu-doc-disk-test",
			wantStatus: checks.StatusWarn,
		},
		{
			name:       "dd failed",
			err:        checks.ErrCommand{Command: "dd", Message: "exit status 1"},
			wantFile:   "/tmp/.tpu-doc-disk-test",
			wantStatus: checks.StatusSkip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := envSystem(tt.env)
			sys.CommandFunc = func(_ context.Context, name string, _ ...string) (string, error) {
				if name == "dd" {
					return tt.out, tt.err
				}
				return "", nil
			}

			got := probe(t, sys, onGCP(true), &platform.NetworkMock{}, DiskThroughputID)
			assert.Equal(t, tt.wantStatus, got.Status)

			calls := sys.CommandCalls()
			require.Len(t, calls, 2)
			assert.Contains(t, calls[0].Args, "of="+tt.wantFile)
			assert.Equal(t, []string{"-f", tt.wantFile}, calls[1].Args, "test file must be removed")
		})
	}
}

func TestGCSConnectivity(t *testing.T) {
	tests := []struct {
		name       string
		result     platform.ConnectResult
		err        error
		wantStatus checks.Status
		wantMsg    string
	}{
		{name: "ok", result: platform.ConnectResult{Success: true, Latency: 3 * time.Millisecond}, wantStatus: checks.StatusPass, wantMsg: "GCS connectivity OK, latency: 3ms"},
		{name: "refused", result: platform.ConnectResult{Latency: 5 * time.Second}, wantStatus: checks.StatusFail, wantMsg: "Cannot connect to storage.googleapis.com"},
		{name: "dns", err: checks.ErrIO{Context: "dns", Message: "no such host"}, wantStatus: checks.StatusFail, wantMsg: "GCS connectivity check failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nw := &platform.NetworkMock{
				TCPConnectFunc: func(_ context.Context, host string, port int, timeout time.Duration) (platform.ConnectResult, error) {
					return tt.result, tt.err
				},
			}
			got := probe(t, envSystem(nil), onGCP(true), nw, GCSConnectivityID)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantMsg, got.Message)

			require.Len(t, nw.TCPConnectCalls(), 1)
			call := nw.TCPConnectCalls()[0]
			assert.Equal(t, "storage.googleapis.com", call.Host)
			assert.Equal(t, 443, call.Port)
			assert.Equal(t, 5*time.Second, call.Timeout)
		})
	}
}

func TestCheckpoint(t *testing.T) {
	const gib = 1 << 30
	tests := []struct {
		name       string
		env        map[string]string
		exists     bool
		writeErr   error
		available  uint64
		diskErr    error
		wantStatus checks.Status
		wantMsg    string
	}{
		{name: "unset", wantStatus: checks.StatusSkip},
		{name: "plenty of space", env: map[string]string{"CHECKPOINT_DIR": "/ckpt"}, exists: true, available: 500 * gib, wantStatus: checks.StatusPass, wantMsg: "Checkpoint directory OK, 500.0 GB available"},
		{name: "low space", env: map[string]string{"CHECKPOINT_DIR": "/ckpt"}, exists: true, available: 20 * gib, wantStatus: checks.StatusWarn, wantMsg: "Checkpoint directory space low: 20.0 GB available"},
		{name: "read only", env: map[string]string{"CHECKPOINT_DIR": "/ckpt"}, exists: true, writeErr: checks.ErrPermissionDenied{Resource: "/ckpt"}, wantStatus: checks.StatusFail, wantMsg: "No write permission for checkpoint directory"},
		{name: "cannot create", env: map[string]string{"CHECKPOINT_DIR": "/ckpt"}, writeErr: checks.ErrPermissionDenied{Resource: "/ckpt"}, wantStatus: checks.StatusFail, wantMsg: "Cannot create checkpoint directory"},
		{name: "statfs error", env: map[string]string{"CHECKPOINT_DIR": "/ckpt"}, exists: true, diskErr: checks.ErrIO{Context: "disk info", Message: "ENOSYS"}, wantStatus: checks.StatusWarn, wantMsg: "Could not check checkpoint directory space"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := envSystem(tt.env)
			sys.FileExistsFunc = func(string) bool { return tt.exists }
			sys.CheckWritableFunc = func(string) error { return tt.writeErr }
			sys.DiskInfoFunc = func(string) (platform.DiskInfo, error) {
				return platform.DiskInfo{AvailableBytes: tt.available}, tt.diskErr
			}

			got := probe(t, sys, onGCP(true), &platform.NetworkMock{}, CheckpointID)
			assert.Equal(t, tt.wantStatus, got.Status)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, got.Message)
			}
		})
	}
}

func TestNetworkLatency(t *testing.T) {
	ok := func(ms int) platform.ConnectResult {
		return platform.ConnectResult{Success: true, Latency: time.Duration(ms) * time.Millisecond}
	}
	tests := []struct {
		name       string
		results    map[string]platform.ConnectResult
		wantStatus checks.Status
		wantMsg    string
	}{
		{
			name:       "fast",
			results:    map[string]platform.ConnectResult{"metadata.google.internal": ok(1), "storage.googleapis.com": ok(4), "compute.googleapis.com": ok(2)},
			wantStatus: checks.StatusPass,
			wantMsg:    "Network latency OK, max 4ms",
		},
		{
			name:       "slow",
			results:    map[string]platform.ConnectResult{"metadata.google.internal": ok(1), "storage.googleapis.com": ok(25), "compute.googleapis.com": ok(2)},
			wantStatus: checks.StatusWarn,
			wantMsg:    "Network latency elevated: max 25ms",
		},
		{
			name:       "one unreachable",
			results:    map[string]platform.ConnectResult{"metadata.google.internal": ok(1), "compute.googleapis.com": ok(2)},
			wantStatus: checks.StatusWarn,
			wantMsg:    "1 service(s) unreachable",
		},
		{
			name:       "all unreachable",
			results:    map[string]platform.ConnectResult{},
			wantStatus: checks.StatusFail,
			wantMsg:    "No GCP service reachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nw := &platform.NetworkMock{
				TCPConnectFunc: func(_ context.Context, host string, _ int, timeout time.Duration) (platform.ConnectResult, error) {
					if r, ok := tt.results[host]; ok {
						return r, nil
					}
					return platform.ConnectResult{Latency: timeout}, nil
				},
			}
			got := probe(t, envSystem(nil), onGCP(true), nw, NetworkLatencyID)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantMsg, got.Message)
			assert.Len(t, nw.TCPConnectCalls(), 3)
		})
	}
}

func TestDNS(t *testing.T) {
	tests := []struct {
		name       string
		latency    time.Duration
		failHost   string
		wantStatus checks.Status
	}{
		{name: "ok", latency: 2 * time.Millisecond, wantStatus: checks.StatusPass},
		{name: "slow", latency: 150 * time.Millisecond, wantStatus: checks.StatusWarn},
		{name: "failure", latency: time.Millisecond, failHost: "metadata.google.internal", wantStatus: checks.StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nw := &platform.NetworkMock{
				ResolveFunc: func(_ context.Context, host string) (platform.DNSResult, error) {
					if host == tt.failHost {
						return platform.DNSResult{}, checks.ErrIO{Context: "dns " + host, Message: "no such host"}
					}
					return platform.DNSResult{Host: host, Addresses: []string{"10.0.0.1"}, Latency: tt.latency}, nil
				},
			}
			got := probe(t, envSystem(nil), onGCP(true), nw, DNSID)
			assert.Equal(t, tt.wantStatus, got.Status)
			if tt.failHost != "" {
				assert.Contains(t, got.Details, fmt.Sprintf("%s: ", tt.failHost))
			}
			assert.Len(t, nw.ResolveCalls(), 3)
		})
	}
}
