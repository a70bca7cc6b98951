package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caas-team/tpu-doc/internal/httpclient"
	"github.com/caas-team/tpu-doc/internal/logger"
	"github.com/caas-team/tpu-doc/pkg/baseline"
	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/config"
	"github.com/caas-team/tpu-doc/pkg/engine"
	"github.com/caas-team/tpu-doc/pkg/metrics"
	"github.com/caas-team/tpu-doc/pkg/output"
	"github.com/caas-team/tpu-doc/pkg/report"
)

const envPrefix = "TPU_DOC"

// categoryFlags are the shortcut flags selecting a single category.
var categoryFlags = []struct {
	cli      string
	category checks.Category
}{
	{"hardware", checks.Hardware},
	{"stack", checks.Stack},
	{"performance", checks.Performance},
	{"io", checks.Io},
	{"security", checks.Security},
	{"config-audit", checks.Config},
}

// NewCmdCheck creates the check command, which runs the validation.
func NewCmdCheck(d *deps) *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the validation checks",
		Long: "Runs the diagnostic checks against this host and prints a report.\n" +
			"The exit code is 0 when all checks passed, 1 on failures, 2 on warnings and 3 on runtime errors.",
		Args: cobra.NoArgs,
		RunE: runCheck(d, v),
	}
	addCheckFlags(cmd, v)
	return cmd
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func addCheckFlags(cmd *cobra.Command, v *viper.Viper) {
	defaults := config.NewConfig()

	NewFlag(v, config.KeyConfig, "config").StringP("c").Bind(cmd, "", "path to a yaml config file")

	NewFlag(v, config.KeyFormat, "format").Enum(formatNames()...).Bind(cmd, string(defaults.Output.Format), "output format")
	NewFlag(v, config.KeyVerbose, "verbose").Bool().Bind(cmd, false, "show durations and details")
	NewFlag(v, config.KeyQuiet, "quiet").Bool().Bind(cmd, false, "only show warnings and failures")
	NewFlag(v, config.KeyNoColor, "no-color").Bool().Bind(cmd, false, "disable colored output")
	NewFlag(v, config.KeyCompact, "compact").Bool().Bind(cmd, false, "emit compact json")
	NewFlag(v, config.KeyOutput, "output").StringP("o").Bind(cmd, "", "write the report to this file instead of stdout")

	NewFlag(v, config.KeyCategories, "category").StringSlice().Bind(cmd, "run only checks of these categories")
	NewFlag(v, config.KeyOnly, "only").StringSlice().Bind(cmd, "run only these check ids")
	NewFlag(v, config.KeySkip, "skip").StringSlice().Bind(cmd, "skip these check ids")

	NewFlag(v, config.KeyParallel, "parallel").Bool().Bind(cmd, defaults.Engine.Parallel, "run independent checks concurrently")
	NewFlag(v, config.KeyMaxParallel, "max-parallel").Int().Bind(cmd, defaults.Engine.MaxParallel, "maximum number of concurrently running checks")
	NewFlag(v, config.KeyFailFast, "fail-fast").Bool().Bind(cmd, defaults.Engine.FailFast, "stop after the first failed check")
	NewFlag(v, config.KeyTimeout, "timeout").Int().Bind(cmd, int(defaults.Engine.Timeout.Milliseconds()), "timeout of a single check in milliseconds")

	NewFlag(v, config.KeyBaseline, "baseline").String().Bind(cmd, "", "compare the run against this baseline file")
	NewFlag(v, config.KeyFailOnRegression, "fail-on-regression").Bool().Bind(cmd, false, "exit with 1 when the baseline comparison finds regressions or new failures")
	NewFlag(v, config.KeySaveBaseline, "save-baseline").String().Bind(cmd, "", "store this run as a baseline (.zst compresses)")
	NewFlag(v, config.KeyMetricsFile, "metrics-file").String().Bind(cmd, "", "write prometheus metrics for the node_exporter textfile collector")

	cmd.Flags().Bool("all", false, "run all checks")
	names := []string{"all"}
	for _, cf := range categoryFlags {
		cmd.Flags().Bool(cf.cli, false, fmt.Sprintf("run only %s checks", cf.category.Lower()))
		names = append(names, cf.cli)
	}
	cmd.MarkFlagsMutuallyExclusive(names...)
}

func formatNames() []string {
	names := make([]string, 0, len(output.Formats))
	for _, f := range output.Formats {
		names = append(names, string(f))
	}
	return names
}

// loadConfig merges the config file, environment and flags into a validated config.
func loadConfig(ctx context.Context, cmd *cobra.Command, v *viper.Viper) (*config.Config, error) {
	if path := v.GetString(config.KeyConfig); path != "" {
		settings, err := config.ReadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := v.MergeConfigMap(settings); err != nil {
			return nil, fmt.Errorf("%w: %w", config.ErrReadConfigFile, err)
		}
	}

	cfg, err := config.FromSettings(v.AllSettings())
	if err != nil {
		return nil, err
	}
	if all, _ := cmd.Flags().GetBool("all"); all {
		cfg.Filter.Categories = nil
	}
	for _, cf := range categoryFlags {
		if on, _ := cmd.Flags().GetBool(cf.cli); on {
			cfg.Filter.Categories = []checks.Category{cf.category}
		}
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.Output.NoColor = true
	}

	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runCheck(d *deps, v *viper.Viper) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		log := logger.NewLogger().With("run", uuid.NewString())
		ctx := logger.IntoContext(cmd.Context(), log)

		cfg, err := loadConfig(ctx, cmd, v)
		if err != nil {
			log.Error("Failed to load configuration", "error", err)
			return runtimeError(err)
		}
		ctx = httpclient.IntoContext(ctx, httpclient.New(cfg.Engine.Timeout))

		var base *report.ValidationReport
		if cfg.Baseline.Path != "" {
			b, err := baseline.Load(cfg.Baseline.Path)
			if err != nil {
				log.Error("Failed to load baseline", "path", cfg.Baseline.Path, "error", err)
				return runtimeError(err)
			}
			base = &b
		}

		p := d.platform(cfg.Platform)
		orch := engine.New(d.source(p), p.System, p.Accelerator, cfg.Engine)
		r, err := orch.Run(ctx, cfg.EngineFilter())
		if err != nil {
			log.Error("Validation run aborted", "error", err)
			return runtimeError(err)
		}

		if err := writeReport(d, cfg, r); err != nil {
			log.Error("Failed to write report", "error", err)
			return runtimeError(err)
		}
		if cfg.Baseline.SaveTo != "" {
			if err := baseline.Save(cfg.Baseline.SaveTo, r); err != nil {
				log.Error("Failed to save baseline", "path", cfg.Baseline.SaveTo, "error", err)
				return runtimeError(err)
			}
			log.Info("Saved baseline", "path", cfg.Baseline.SaveTo)
		}
		if cfg.MetricsFile != "" {
			m := metrics.NewMetrics()
			m.Record(r)
			if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
				log.Error("Failed to write metrics", "path", cfg.MetricsFile, "error", err)
				return runtimeError(err)
			}
		}

		code := r.ExitCode()
		if base != nil {
			cmp := report.Compare(&r, base)
			fmt.Fprintln(d.stderr, output.FormatComparison(cmp))
			if cfg.Baseline.FailOnRegression {
				code = regressionExitCode(code, cmp)
			}
		}
		if code != report.ExitSuccess {
			return &ExitError{Code: code}
		}
		return nil
	}
}

// regressionExitCode judges a run relative to its baseline: only regressions
// and new failures fail it, known failures are downgraded to warnings.
func regressionExitCode(code int, cmp report.Comparison) int {
	switch {
	case cmp.HasRegressions() || len(cmp.NewFailures) > 0:
		return report.ExitFailures
	case code == report.ExitFailures:
		return report.ExitWarnings
	default:
		return code
	}
}

func writeReport(d *deps, cfg *config.Config, r report.ValidationReport) error {
	var w io.Writer = d.stdout
	colorAllowed := false
	if cfg.Output.File != "" {
		f, err := os.Create(cfg.Output.File)
		if err != nil {
			return checks.ErrIO{Context: cfg.Output.File, Message: err.Error()}
		}
		defer f.Close()
		w = f
	} else {
		colorAllowed = termenv.NewOutput(d.stdout).EnvColorProfile() != termenv.Ascii
	}

	f, err := output.New(cfg.Output.Format, cfg.OutputOptions(colorAllowed))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, f.Format(r)); err != nil {
		return checks.ErrIO{Context: "report", Message: err.Error()}
	}
	return nil
}
