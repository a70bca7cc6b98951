// Package baseline stores validation reports on disk so later runs can be
// compared against them.
package baseline

import (
	"encoding/json"
	"fmt"

	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/output"
	"github.com/caas-team/tpu-doc/pkg/report"
)

// Document is the on-disk shape of a report. It mirrors the JSON output.
type Document struct {
	Timestamp       int64      `json:"timestamp"`
	Hostname        string     `json:"hostname"`
	TPUType         *string    `json:"tpu_type,omitempty"`
	TotalDurationMs int64      `json:"total_duration_ms"`
	Summary         SummaryDoc `json:"summary"`
	Checks          []CheckDoc `json:"checks"`
}

type SummaryDoc struct {
	Passed  int `json:"passed"`
	Warned  int `json:"warned"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

type CheckDoc struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Result      *ResultDoc `json:"result,omitempty"`
}

type ResultDoc struct {
	Status     string  `json:"status"`
	Message    *string `json:"message,omitempty"`
	Details    *string `json:"details,omitempty"`
	Reason     *string `json:"reason,omitempty"`
	DurationMs *int64  `json:"duration_ms,omitempty"`
}

// Encode renders r as a pretty printed baseline document.
func Encode(r report.ValidationReport) []byte {
	return []byte(output.JSON{Pretty: true}.Format(r))
}

// Decode parses a baseline document. Unknown keys are ignored and the summary
// is derived from the checks.
func Decode(b []byte) (report.ValidationReport, error) {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return report.ValidationReport{}, checks.ErrParse{Context: "baseline", Message: err.Error()}
	}

	r := report.ValidationReport{
		Timestamp:       doc.Timestamp,
		Hostname:        doc.Hostname,
		AcceleratorType: doc.TPUType,
		TotalDurationMs: doc.TotalDurationMs,
		Checks:          make([]checks.Check, 0, len(doc.Checks)),
	}
	for i, cd := range doc.Checks {
		c, err := cd.check()
		if err != nil {
			return report.ValidationReport{}, fmt.Errorf("check %d: %w", i, err)
		}
		r.Checks = append(r.Checks, c)
	}
	return r, nil
}

func (cd CheckDoc) check() (checks.Check, error) {
	cat, err := checks.ParseCategory(cd.Category)
	if err != nil {
		return checks.Check{}, checks.ErrParse{Context: "category", Message: err.Error()}
	}
	c := checks.Check{ID: cd.ID, Name: cd.Name, Category: cat, Description: cd.Description}
	if cd.Result == nil {
		return c, nil
	}

	status, err := checks.ParseStatus(cd.Result.Status)
	if err != nil {
		return checks.Check{}, checks.ErrParse{Context: "status", Message: err.Error()}
	}
	res := cd.Result
	switch status {
	case checks.StatusPass:
		return c.WithResult(checks.Pass(deref(res.Message), deref(res.DurationMs))), nil
	case checks.StatusWarn:
		return c.WithResult(checks.Warn(deref(res.Message), deref(res.Details), deref(res.DurationMs))), nil
	case checks.StatusFail:
		return c.WithResult(checks.Fail(deref(res.Message), deref(res.Details), deref(res.DurationMs))), nil
	case checks.StatusSkip:
		return c.WithResult(checks.Skip(deref(res.Reason))), nil
	default:
		return c, nil
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
