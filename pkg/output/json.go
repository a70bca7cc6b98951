package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/report"
)

// JSON renders the report as a JSON document. The field order is fixed.
type JSON struct {
	// Pretty indents with two spaces, otherwise no whitespace is emitted
	Pretty bool
}

// field is a key with an already encoded value.
type field struct {
	key   string
	value string
}

type jsonWriter struct {
	b      strings.Builder
	pretty bool
}

func (w *jsonWriter) newline(depth int) {
	if w.pretty {
		w.b.WriteByte('\n')
		w.b.WriteString(strings.Repeat("  ", depth))
	}
}

func (w *jsonWriter) key(k string) {
	w.b.WriteString(quote(k))
	w.b.WriteByte(':')
	if w.pretty {
		w.b.WriteByte(' ')
	}
}

// object writes fields as an object whose members sit at depth+1.
func (w *jsonWriter) object(depth int, fields []field) {
	w.b.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			w.b.WriteByte(',')
		}
		w.newline(depth + 1)
		w.key(f.key)
		w.b.WriteString(f.value)
	}
	w.newline(depth)
	w.b.WriteByte('}')
}

func (j JSON) Format(r report.ValidationReport) string {
	w := &jsonWriter{pretty: j.Pretty}
	s := r.Summary()

	w.b.WriteByte('{')
	w.newline(1)
	w.key("timestamp")
	w.b.WriteString(strconv.FormatInt(r.Timestamp, 10))
	w.b.WriteByte(',')
	w.newline(1)
	w.key("hostname")
	w.b.WriteString(quote(r.Hostname))
	w.b.WriteByte(',')
	if r.AcceleratorType != nil {
		w.newline(1)
		w.key("tpu_type")
		w.b.WriteString(quote(*r.AcceleratorType))
		w.b.WriteByte(',')
	}
	w.newline(1)
	w.key("total_duration_ms")
	w.b.WriteString(strconv.FormatInt(r.TotalDurationMs, 10))
	w.b.WriteByte(',')

	w.newline(1)
	w.key("summary")
	w.object(1, []field{
		{"passed", strconv.Itoa(s.Passed)},
		{"warned", strconv.Itoa(s.Warned)},
		{"failed", strconv.Itoa(s.Failed)},
		{"skipped", strconv.Itoa(s.Skipped)},
		{"total", strconv.Itoa(s.Total)},
	})
	w.b.WriteByte(',')

	w.newline(1)
	w.key("checks")
	w.b.WriteByte('[')
	for i, c := range r.Checks {
		if i > 0 {
			w.b.WriteByte(',')
		}
		w.newline(2)
		w.check(2, c)
	}
	if len(r.Checks) > 0 {
		w.newline(1)
	}
	w.b.WriteByte(']')

	w.newline(0)
	w.b.WriteByte('}')
	return w.b.String()
}

func (w *jsonWriter) check(depth int, c checks.Check) {
	w.b.WriteByte('{')
	for _, f := range []field{
		{"id", quote(c.ID)},
		{"name", quote(c.Name)},
		{"category", quote(c.Category.String())},
		{"description", quote(c.Description)},
	} {
		w.newline(depth + 1)
		w.key(f.key)
		w.b.WriteString(f.value)
		w.b.WriteByte(',')
	}
	w.newline(depth + 1)
	w.key("result")
	w.object(depth+1, resultFields(c.Result))
	w.newline(depth)
	w.b.WriteByte('}')
}

func resultFields(r *checks.Result) []field {
	status := field{"status", quote(checks.StatusOf(r).String())}
	if r == nil {
		return []field{status}
	}
	duration := field{"duration_ms", strconv.FormatInt(r.DurationMs, 10)}
	switch r.Status {
	case checks.StatusPass:
		return []field{status, {"message", quote(r.Message)}, duration}
	case checks.StatusWarn, checks.StatusFail:
		return []field{status, {"message", quote(r.Message)}, {"details", quote(r.Details)}, duration}
	case checks.StatusSkip:
		return []field{status, {"reason", quote(r.Reason)}}
	default:
		return []field{status}
	}
}

// quote encodes s as a JSON string. Quote, backslash and control characters
// are escaped, all other runes pass through unchanged.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
