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

// Package metrics exports validation reports as Prometheus metrics, written
// in the text exposition format for the node_exporter textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/report"
)

type Metrics interface {
	// GetRegistry returns the prometheus registry instance
	// containing the registered prometheus collectors
	GetRegistry() *prometheus.Registry
	// Record replaces the metric values with the results of r
	Record(r report.ValidationReport)
	// WriteTextfile writes all metrics to path
	WriteTextfile(path string) error
}

var statuses = []checks.Status{
	checks.StatusPass,
	checks.StatusWarn,
	checks.StatusFail,
	checks.StatusSkip,
	checks.StatusNotExecuted,
}

type PrometheusMetrics struct {
	registry *prometheus.Registry

	checkStatus   *prometheus.GaugeVec
	checkDuration *prometheus.GaugeVec
	checksTotal   *prometheus.GaugeVec
	runDuration   prometheus.Gauge
	lastRun       prometheus.Gauge
}

func NewMetrics() Metrics {
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		checkStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tpudoc_check_status",
				Help: "1 for the current status of a check, 0 for all other statuses",
			},
			[]string{
				"id",
				"category",
				"status",
			},
		),
		checkDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tpudoc_check_duration_seconds",
				Help: "Duration of the last execution of a check",
			},
			[]string{
				"id",
				"category",
			},
		),
		checksTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tpudoc_checks",
				Help: "Number of checks per status in the last run",
			},
			[]string{
				"status",
			},
		),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tpudoc_run_duration_seconds",
			Help: "Wall clock duration of the last validation run",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tpudoc_last_run_timestamp_seconds",
			Help: "Unix time the last validation run started",
		}),
	}

	m.registry.MustRegister(
		m.checkStatus,
		m.checkDuration,
		m.checksTotal,
		m.runDuration,
		m.lastRun,
	)
	return m
}

func (m *PrometheusMetrics) GetRegistry() *prometheus.Registry {
	return m.registry
}

func (m *PrometheusMetrics) Record(r report.ValidationReport) {
	m.checkStatus.Reset()
	m.checkDuration.Reset()
	m.checksTotal.Reset()

	counts := make(map[checks.Status]int, len(statuses))
	for _, c := range r.Checks {
		current := c.Status()
		counts[current]++
		for _, s := range statuses {
			v := 0.0
			if s == current {
				v = 1
			}
			m.checkStatus.WithLabelValues(c.ID, c.Category.Lower(), s.String()).Set(v)
		}
		if c.Executed() {
			m.checkDuration.WithLabelValues(c.ID, c.Category.Lower()).Set(float64(c.Result.Duration()) / 1000)
		}
	}
	for _, s := range statuses {
		m.checksTotal.WithLabelValues(s.String()).Set(float64(counts[s]))
	}
	m.runDuration.Set(float64(r.TotalDurationMs) / 1000)
	m.lastRun.Set(float64(r.Timestamp))
}

// WriteTextfile writes the registry atomically to path.
func (m *PrometheusMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return checks.ErrIO{Context: path, Message: err.Error()}
	}
	return nil
}
