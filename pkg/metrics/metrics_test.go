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

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/report"
)

func sample() report.ValidationReport {
	return report.ValidationReport{
		Timestamp:       1700000000,
		Hostname:        "h",
		TotalDurationMs: 2500,
		Checks: []checks.Check{
			checks.Check{ID: "HW-001", Category: checks.Hardware}.WithResult(checks.Pass("ok", 1500)),
			checks.Check{ID: "IO-002", Category: checks.Io}.WithResult(checks.Warn("slow", "disk", 250)),
			checks.Check{ID: "SEC-001", Category: checks.Security}.WithResult(checks.Skip("off gcp")),
			{ID: "CFG-001", Category: checks.Config},
		},
	}
}

func TestPrometheusMetrics_Record(t *testing.T) {
	m := NewMetrics().(*PrometheusMetrics)
	m.Record(sample())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkStatus.WithLabelValues("HW-001", "hardware", "pass")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.checkStatus.WithLabelValues("HW-001", "hardware", "fail")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkStatus.WithLabelValues("CFG-001", "config", "not_executed")))
	assert.Equal(t, 1.5, testutil.ToFloat64(m.checkDuration.WithLabelValues("HW-001", "hardware")))
	assert.Equal(t, 0.25, testutil.ToFloat64(m.checkDuration.WithLabelValues("IO-002", "io")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checksTotal.WithLabelValues("warn")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.checksTotal.WithLabelValues("fail")))
	assert.Equal(t, 2.5, testutil.ToFloat64(m.runDuration))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(m.lastRun))

	// status series: 4 checks x 5 statuses, durations only for executed checks
	assert.Equal(t, 20, testutil.CollectAndCount(m.checkStatus))
	assert.Equal(t, 3, testutil.CollectAndCount(m.checkDuration))
}

func TestPrometheusMetrics_Record_resets(t *testing.T) {
	m := NewMetrics().(*PrometheusMetrics)
	m.Record(sample())
	m.Record(report.ValidationReport{Checks: []checks.Check{
		checks.Check{ID: "HW-001", Category: checks.Hardware}.WithResult(checks.Fail("broken", "", 1)),
	}})

	assert.Equal(t, 5, testutil.CollectAndCount(m.checkStatus))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkStatus.WithLabelValues("HW-001", "hardware", "fail")))
}

func TestPrometheusMetrics_WriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.Record(sample())

	path := filepath.Join(t.TempDir(), "tpudoc.prom")
	require.NoError(t, m.WriteTextfile(path))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(out), `tpudoc_check_status{category="io",id="IO-002",status="warn"} 1`)
	assert.Contains(t, string(out), "tpudoc_run_duration_seconds 2.5")

	err = testutil.GatherAndCompare(m.GetRegistry(), strings.NewReader(`
# HELP tpudoc_checks Number of checks per status in the last run
# TYPE tpudoc_checks gauge
tpudoc_checks{status="fail"} 0
tpudoc_checks{status="not_executed"} 1
tpudoc_checks{status="pass"} 1
tpudoc_checks{status="skip"} 1
tpudoc_checks{status="warn"} 1
`), "tpudoc_checks")
	assert.NoError(t, err)

	assert.Error(t, m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom")))
}
