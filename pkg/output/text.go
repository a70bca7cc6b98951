package output

import (
	"fmt"
	"strings"

	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/report"
)

// Text renders the report for terminals.
type Text struct {
	// Color wraps status badges in ANSI colors
	Color bool
	// Verbose adds durations and details
	Verbose bool
	// Quiet only shows warnings and failures
	Quiet bool
}

var badgeColors = map[checks.Status]string{
	checks.StatusPass:        "32",
	checks.StatusWarn:        "33",
	checks.StatusFail:        "31",
	checks.StatusSkip:        "90",
	checks.StatusNotExecuted: "90",
}

func (t Text) Format(r report.ValidationReport) string {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("tpu-doc validation report\n")
	fmt.Fprintf(&b, "Host: %s\n", r.Hostname)
	if r.AcceleratorType != nil {
		fmt.Fprintf(&b, "TPU Type: %s\n", *r.AcceleratorType)
	}
	fmt.Fprintf(&b, "Timestamp: %s\n", formatTimestamp(r.Timestamp))
	b.WriteString(rule + "\n\n")

	for _, cat := range checks.Categories {
		cs := r.ByCategory(cat)
		if len(cs) == 0 || (t.Quiet && !hasIssues(cs)) {
			continue
		}
		b.WriteString(cat.Header() + "\n")
		for _, c := range cs {
			if t.Quiet && !isIssue(c) {
				continue
			}
			fmt.Fprintf(&b, "  %s %s: %s (%s)\n", t.badge(c.Status()), c.ID, c.Name, t.message(c))
		}
		b.WriteString("\n")
	}

	s := r.Summary()
	code := s.ExitCode()
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "SUMMARY: %d passed, %d warnings, %d failed, %d skipped\n", s.Passed, s.Warned, s.Failed, s.Skipped)
	fmt.Fprintf(&b, "Total time: %ss\n", seconds(r.TotalDurationMs, 1))
	fmt.Fprintf(&b, "Exit code: %d (%s)\n", code, report.ExitDescription(code))
	b.WriteString(rule)
	return b.String()
}

func (t Text) badge(s checks.Status) string {
	if !t.Color {
		return s.Badge()
	}
	return "\x1b[" + badgeColors[s] + "m" + s.Badge() + "\x1b[0m"
}

func (t Text) message(c checks.Check) string {
	res := c.Result
	switch c.Status() {
	case checks.StatusNotExecuted:
		return "Not executed"
	case checks.StatusSkip:
		return res.Reason
	case checks.StatusPass:
		if t.Verbose {
			return fmt.Sprintf("%s (%dms)", res.Message, res.DurationMs)
		}
	default:
		if t.Verbose {
			return fmt.Sprintf("%s - %s (%dms)", res.Message, res.Details, res.DurationMs)
		}
	}
	return res.Message
}

func isIssue(c checks.Check) bool {
	s := c.Status()
	return s == checks.StatusWarn || s == checks.StatusFail
}

func hasIssues(cs []checks.Check) bool {
	for _, c := range cs {
		if isIssue(c) {
			return true
		}
	}
	return false
}

// FormatComparison renders a baseline diff as a text block.
func FormatComparison(c report.Comparison) string {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("BASELINE COMPARISON\n")
	section := func(title string, ids []string) {
		if len(ids) == 0 {
			return
		}
		fmt.Fprintf(&b, "  %s (%d): %s\n", title, len(ids), strings.Join(ids, ", "))
	}
	section("Regressions", c.Regressions)
	section("New failures", c.NewFailures)
	section("New warnings", c.NewWarnings)
	section("Resolved", c.Resolved)
	fmt.Fprintf(&b, "  Unchanged: %d\n", len(c.Unchanged))
	b.WriteString(rule)
	return b.String()
}
