package report

import "github.com/caas-team/tpu-doc/pkg/checks"

// Comparison classifies every check of a report against a baseline. The
// lists are disjoint and together hold every id of the current report, in
// report order.
type Comparison struct {
	NewFailures []string
	NewWarnings []string
	Resolved    []string
	Regressions []string
	Unchanged   []string
}

// HasRegressions reports whether a previously passing check now fails.
func (c Comparison) HasRegressions() bool {
	return len(c.Regressions) > 0
}

// Compare diffs current against baseline. Ids only present in the baseline
// are ignored.
func Compare(current, baseline *ValidationReport) Comparison {
	before := make(map[string]checks.Status, len(baseline.Checks))
	for _, c := range baseline.Checks {
		before[c.ID] = c.Status()
	}

	var cmp Comparison
	for _, c := range current.Checks {
		now := c.Status()
		was, known := before[c.ID]
		switch {
		case !known && now == checks.StatusFail:
			cmp.NewFailures = append(cmp.NewFailures, c.ID)
		case !known && now == checks.StatusWarn:
			cmp.NewWarnings = append(cmp.NewWarnings, c.ID)
		case was == checks.StatusPass && now == checks.StatusFail:
			cmp.Regressions = append(cmp.Regressions, c.ID)
		case was == checks.StatusPass && now == checks.StatusWarn:
			cmp.NewWarnings = append(cmp.NewWarnings, c.ID)
		case (was == checks.StatusFail || was == checks.StatusWarn) && now == checks.StatusPass:
			cmp.Resolved = append(cmp.Resolved, c.ID)
		default:
			cmp.Unchanged = append(cmp.Unchanged, c.ID)
		}
	}
	return cmp
}
