package engine

import (
	"slices"
	"sync"

	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/report"
)

// Aggregator collects check results of one run. It is safe for concurrent use.
type Aggregator struct {
	mu     sync.Mutex
	report report.ValidationReport
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add appends a finished (or not executed) check.
func (a *Aggregator) Add(c checks.Check) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.report.Checks = append(a.report.Checks, c)
}

// SetMetadata sets the run level fields of the report.
func (a *Aggregator) SetMetadata(hostname string, acceleratorType *string, totalDurationMs, timestamp int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.report.Hostname = hostname
	a.report.AcceleratorType = acceleratorType
	a.report.TotalDurationMs = totalDurationMs
	a.report.Timestamp = timestamp
}

func (a *Aggregator) HasFailures() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.ContainsFunc(a.report.Checks, func(c checks.Check) bool {
		return c.Status() == checks.StatusFail
	})
}

func (a *Aggregator) Summary() report.Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return report.Summarize(a.report.Checks)
}

func (a *Aggregator) ByCategory(c checks.Category) []checks.Check {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.report.ByCategory(c)
}

func (a *Aggregator) Failures() []checks.Check {
	return a.withStatus(checks.StatusFail)
}

func (a *Aggregator) Warnings() []checks.Check {
	return a.withStatus(checks.StatusWarn)
}

func (a *Aggregator) withStatus(s checks.Status) []checks.Check {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []checks.Check
	for _, c := range a.report.Checks {
		if c.Status() == s {
			out = append(out, c)
		}
	}
	return out
}

// Report returns a snapshot of the collected report.
func (a *Aggregator) Report() report.ValidationReport {
	a.mu.Lock()
	defer a.mu.Unlock()
	r := a.report
	r.Checks = slices.Clone(a.report.Checks)
	return r
}

// CompareToBaseline diffs the collected report against baseline.
func (a *Aggregator) CompareToBaseline(baseline *report.ValidationReport) report.Comparison {
	current := a.Report()
	return report.Compare(&current, baseline)
}
