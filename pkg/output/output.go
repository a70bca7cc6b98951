// Package output renders a validation report as text, JSON or JUnit XML.
// All renderers are deterministic and escape by hand.
package output

import (
	"fmt"
	"strings"

	"github.com/caas-team/tpu-doc/pkg/report"
)

// Formatter renders a report.
type Formatter interface {
	Format(r report.ValidationReport) string
}

// Format names a renderer.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatJUnit Format = "junit"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatJUnit}

// ParseFormat returns the format named s (case insensitive).
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q, expected one of text, json, junit", s)
}

// Options tune the renderers. Color, Verbose and Quiet only affect text,
// Compact only affects JSON.
type Options struct {
	Color   bool `json:"color" yaml:"color" mapstructure:"color"`
	Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
	Quiet   bool `json:"quiet" yaml:"quiet" mapstructure:"quiet"`
	Compact bool `json:"compact" yaml:"compact" mapstructure:"compact"`
}

// New returns the formatter for f.
func New(f Format, opts Options) (Formatter, error) {
	switch f {
	case FormatText:
		return Text{Color: opts.Color, Verbose: opts.Verbose, Quiet: opts.Quiet}, nil
	case FormatJSON:
		return JSON{Pretty: !opts.Compact}, nil
	case FormatJUnit:
		return JUnit{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", f)
	}
}

const rule = "--------------------------------------------------------------------------------"

// seconds formats milliseconds as fractional seconds.
func seconds(ms int64, precision int) string {
	return fmt.Sprintf("%.*f", precision, float64(ms)/1000)
}
