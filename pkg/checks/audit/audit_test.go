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

package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/platform"
)

type env map[string]string

func run(t *testing.T, e env, id string) checks.Result {
	t.Helper()
	sys := &platform.SystemMock{
		EnvFunc: func(name string) (string, bool) {
			v, ok := e[name]
			return v, ok
		},
	}
	for _, c := range Checks(sys) {
		if c.ID == id {
			return c.Probe(context.Background())
		}
	}
	t.Fatalf("check %s not found", id)
	return checks.Result{}
}

func TestAudit(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		env        env
		wantStatus checks.Status
		wantMsg    string
	}{
		{name: "xla flags unset", id: XLAFlagsID, wantStatus: checks.StatusPass, wantMsg: "XLA_FLAGS not set (using defaults)"},
		{name: "xla flags clean", id: XLAFlagsID, env: env{"XLA_FLAGS": "--xla_tpu_enable_latency_hiding_scheduler=true"}, wantStatus: checks.StatusPass},
		{
			name:       "xla dump",
			id:         XLAFlagsID,
			env:        env{"XLA_FLAGS": "--xla_dump_to=/tmp/dump --xla_dump_hlo_as_text --xla_disable_hlo_passes=fusion"},
			wantStatus: checks.StatusWarn,
			wantMsg:    "XLA_FLAGS has 3 potential issues",
		},
		{name: "jax platforms unset", id: JAXConfigID, wantStatus: checks.StatusPass},
		{name: "jax platforms tpu", id: JAXConfigID, env: env{"JAX_PLATFORMS": "tpu,cpu"}, wantStatus: checks.StatusPass},
		{name: "jax platforms cpu", id: JAXConfigID, env: env{"JAX_PLATFORMS": "cpu"}, wantStatus: checks.StatusWarn},
		{name: "jit disabled", id: JAXConfigID, env: env{"JAX_DISABLE_JIT": "True"}, wantStatus: checks.StatusWarn},
		{name: "memory default", id: MemoryID, wantStatus: checks.StatusPass, wantMsg: "Memory configuration is appropriate"},
		{name: "memory fraction ok", id: MemoryID, env: env{"XLA_PYTHON_CLIENT_MEM_FRACTION": ".9"}, wantStatus: checks.StatusPass},
		{name: "memory fraction high", id: MemoryID, env: env{"XLA_PYTHON_CLIENT_MEM_FRACTION": "0.98"}, wantStatus: checks.StatusWarn},
		{name: "memory fraction garbage", id: MemoryID, env: env{"XLA_PYTHON_CLIENT_MEM_FRACTION": "most"}, wantStatus: checks.StatusFail},
		{name: "memory fraction above one", id: MemoryID, env: env{"XLA_PYTHON_CLIENT_MEM_FRACTION": "1.5"}, wantStatus: checks.StatusFail},
		{
			name:       "preallocation disabled",
			id:         MemoryID,
			env:        env{"XLA_PYTHON_CLIENT_PREALLOCATE": "false"},
			wantStatus: checks.StatusPass,
			wantMsg:    "Memory configuration is appropriate (preallocation disabled)",
		},
		{name: "single host", id: DistributedID, env: env{"TPU_WORKER_HOSTNAMES": "localhost"}, wantStatus: checks.StatusSkip},
		{name: "multi host without coordinator", id: DistributedID, env: env{"TPU_WORKER_HOSTNAMES": "w0,w1", "TPU_WORKER_ID": "0"}, wantStatus: checks.StatusFail},
		{name: "multi host without worker id", id: DistributedID, env: env{"TPU_WORKER_HOSTNAMES": "w0,w1", "JAX_COORDINATOR_ADDRESS": "w0:1234"}, wantStatus: checks.StatusWarn},
		{name: "multi host", id: DistributedID, env: env{"TPU_WORKER_HOSTNAMES": "w0,w1", "JAX_COORDINATOR_ADDRESS": "w0:1234", "TPU_WORKER_ID": "1"}, wantStatus: checks.StatusPass},
		{name: "logging quiet", id: LoggingID, env: env{"TF_CPP_MIN_LOG_LEVEL": "2"}, wantStatus: checks.StatusPass},
		{name: "logging verbose", id: LoggingID, env: env{"TF_CPP_MIN_LOG_LEVEL": "0"}, wantStatus: checks.StatusWarn},
		{name: "debug nans", id: LoggingID, env: env{"JAX_DEBUG_NANS": "1"}, wantStatus: checks.StatusWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(t, tt.env, tt.id)
			assert.Equal(t, tt.wantStatus, got.Status)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, got.Message)
			}
		})
	}
}
