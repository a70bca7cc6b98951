package output

import (
	"fmt"
	"strings"

	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/report"
)

// JUnit renders the report as JUnit XML with one test suite per category.
type JUnit struct{}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// escapeXML escapes markup and replaces characters XML 1.0 cannot carry,
// such as the ANSI escapes in captured command output, with U+FFFD.
func escapeXML(s string) string {
	return xmlEscaper.Replace(strings.Map(xmlChar, s))
}

func xmlChar(r rune) rune {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return r
	case r < 0x20, r == 0xFFFE, r == 0xFFFF:
		return '\uFFFD'
	default:
		return r
	}
}

func (JUnit) Format(r report.ValidationReport) string {
	var b strings.Builder
	s := r.Summary()

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<testsuites tests="%d" failures="%d" errors="0" skipped="%d" time="%s">`+"\n",
		s.Total, s.Failed, s.Skipped, seconds(r.TotalDurationMs, 3))

	for _, cat := range checks.Categories {
		cs := r.ByCategory(cat)
		if len(cs) == 0 {
			continue
		}
		suite := report.Summarize(cs)
		fmt.Fprintf(&b, `  <testsuite name="%s" tests="%d" failures="%d" errors="0" skipped="%d" time="%s">`+"\n",
			cat.Lower(), len(cs), suite.Failed, suite.Skipped, seconds(suite.TotalDurationMs, 3))
		for _, c := range cs {
			testcase(&b, cat, c)
		}
		b.WriteString("  </testsuite>\n")
	}

	b.WriteString("</testsuites>")
	return b.String()
}

func testcase(b *strings.Builder, cat checks.Category, c checks.Check) {
	var ms int64
	if c.Result != nil {
		ms = c.Result.Duration()
	}
	fmt.Fprintf(b, `    <testcase name="%s" classname="tpu-doc.%s" time="%s"`, escapeXML(c.ID), cat.Lower(), seconds(ms, 3))
	if c.Result == nil {
		b.WriteString(" />\n")
		return
	}

	res := c.Result
	b.WriteString(">\n")
	switch res.Status {
	case checks.StatusPass:
		fmt.Fprintf(b, "      <system-out>%s</system-out>\n", escapeXML(res.Message))
	case checks.StatusWarn:
		fmt.Fprintf(b, "      <system-out>WARNING: %s - %s</system-out>\n", escapeXML(res.Message), escapeXML(res.Details))
	case checks.StatusFail:
		fmt.Fprintf(b, "      <failure message=\"%s\">%s</failure>\n", escapeXML(res.Message), escapeXML(res.Details))
	case checks.StatusSkip:
		fmt.Fprintf(b, "      <skipped message=\"%s\" />\n", escapeXML(res.Reason))
	}
	b.WriteString("    </testcase>\n")
}
