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

package config

import (
	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/engine"
	"github.com/caas-team/tpu-doc/pkg/output"
	"github.com/caas-team/tpu-doc/pkg/platform"
)

// Config is the complete configuration of a validation run.
// Flags, environment variables and the config file are merged into it.
type Config struct {
	Engine   engine.Config   `yaml:",inline" mapstructure:",squash"`
	Output   OutputConfig    `yaml:",inline" mapstructure:",squash"`
	Filter   FilterConfig    `yaml:",inline" mapstructure:",squash"`
	Baseline BaselineConfig  `yaml:",inline" mapstructure:",squash"`
	Platform platform.Config `yaml:"platform" mapstructure:"platform"`
	// MetricsFile is the path of the Prometheus textfile to write
	MetricsFile string `yaml:"metricsFile" mapstructure:"metricsFile"`
}

// OutputConfig controls how the report is rendered.
type OutputConfig struct {
	Format  output.Format `yaml:"format" mapstructure:"format" validate:"oneof=text json junit"`
	Verbose bool          `yaml:"verbose" mapstructure:"verbose"`
	Quiet   bool          `yaml:"quiet" mapstructure:"quiet"`
	NoColor bool          `yaml:"noColor" mapstructure:"noColor"`
	Compact bool          `yaml:"compact" mapstructure:"compact"`
	// File receives the report instead of stdout
	File string `yaml:"output" mapstructure:"output"`
}

// FilterConfig selects the checks of a run.
type FilterConfig struct {
	Categories []checks.Category `yaml:"categories" mapstructure:"categories"`
	Only       []string          `yaml:"only" mapstructure:"only"`
	Skip       []string          `yaml:"skip" mapstructure:"skip"`
}

// BaselineConfig configures the comparison with a previous run.
type BaselineConfig struct {
	// Path of the baseline to compare against
	Path string `yaml:"baseline" mapstructure:"baseline"`
	// FailOnRegression turns regressions and new failures into a failed run
	FailOnRegression bool `yaml:"failOnRegression" mapstructure:"failOnRegression"`
	// SaveTo is where the report of this run is stored as a new baseline
	SaveTo string `yaml:"saveBaseline" mapstructure:"saveBaseline"`
}

// NewConfig returns a config with all defaults set.
func NewConfig() *Config {
	return &Config{
		Engine:   engine.DefaultConfig(),
		Output:   OutputConfig{Format: output.FormatText},
		Platform: platform.DefaultConfig(),
	}
}

// Filter returns the check filter. Only takes precedence over skip, skip
// over categories.
func (c *Config) EngineFilter() engine.Filter {
	switch {
	case len(c.Filter.Only) > 0:
		return engine.RunOnly(c.Filter.Only...)
	case len(c.Filter.Skip) > 0:
		return engine.RunExcluding(c.Filter.Skip...)
	case len(c.Filter.Categories) > 0:
		return engine.RunCategories(c.Filter.Categories...)
	default:
		return engine.RunAll()
	}
}

// OutputOptions returns the renderer options. Color is only used when the
// caller allows it and NoColor is unset.
func (c *Config) OutputOptions(colorAllowed bool) output.Options {
	return output.Options{
		Color:   colorAllowed && !c.Output.NoColor,
		Verbose: c.Output.Verbose,
		Quiet:   c.Output.Quiet,
		Compact: c.Output.Compact,
	}
}
