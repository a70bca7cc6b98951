// Package engine schedules the registered checks of a run, isolates each probe
// and collects the results into a report.
package engine

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/caas-team/tpu-doc/internal/logger"
	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/platform"
	"github.com/caas-team/tpu-doc/pkg/report"
)

// Source provides the checks a run may select from.
type Source interface {
	Checks() []checks.Registered
}

var _ Source = (*checks.Registry)(nil)

// Orchestrator runs checks and builds the validation report.
type Orchestrator struct {
	src Source
	sys platform.System
	acc platform.Accelerator
	cfg Config
}

// New returns an orchestrator over the checks of src. A MaxParallel below one is raised to one.
func New(src Source, sys platform.System, acc platform.Accelerator, cfg Config) *Orchestrator {
	if cfg.MaxParallel < 1 {
		cfg.MaxParallel = 1
	}
	return &Orchestrator{src: src, sys: sys, acc: acc, cfg: cfg}
}

// Run executes the checks selected by filter. The error is only set when ctx
// is cancelled; check failures are part of the report.
func (o *Orchestrator) Run(ctx context.Context, filter Filter) (report.ValidationReport, error) {
	log := logger.FromContext(ctx)
	start := time.Now()
	timestamp := o.sys.UnixTimestamp()

	ordered := order(filter.Select(o.src.Checks()))
	log.Info("Starting validation run", "filter", filter.String(), "checks", len(ordered), "parallel", o.cfg.Parallel)

	agg := NewAggregator()
	if o.cfg.Parallel {
		o.runParallel(ctx, ordered, agg)
	} else {
		o.runSequential(ctx, ordered, agg)
	}
	if err := ctx.Err(); err != nil {
		return report.ValidationReport{}, err
	}

	agg.SetMetadata(o.hostname(), o.acceleratorType(ctx), time.Since(start).Milliseconds(), timestamp)
	r := agg.Report()
	log.Info("Validation run finished", "duration", time.Since(start), "exitCode", r.ExitCode())
	return r, nil
}

func (o *Orchestrator) runSequential(ctx context.Context, queue []checks.Registered, agg *Aggregator) {
	for i, rc := range queue {
		if ctx.Err() != nil {
			return
		}
		res := o.execute(ctx, rc)
		agg.Add(rc.WithResult(res))
		if o.cfg.FailFast && res.Status == checks.StatusFail {
			logger.FromContext(ctx).Info("Stopping after failure", "check", rc.ID)
			notExecuted(queue[i+1:], agg)
			return
		}
	}
}

func (o *Orchestrator) runParallel(ctx context.Context, queue []checks.Registered, agg *Aggregator) {
	log := logger.FromContext(ctx)
	inFilter := make(map[string]bool, len(queue))
	for _, rc := range queue {
		inFilter[rc.ID] = true
	}
	completed := map[string]bool{}
	remaining := slices.Clone(queue)

	for len(remaining) > 0 {
		if ctx.Err() != nil {
			return
		}
		var runnable []checks.Registered
		for _, rc := range remaining {
			if ready(rc, inFilter, completed) {
				runnable = append(runnable, rc)
			}
		}
		if len(runnable) == 0 {
			log.Warn("Unresolvable dependencies, running remaining checks sequentially", "remaining", len(remaining))
			o.runSequential(ctx, remaining, agg)
			return
		}

		batch := runnable[:min(o.cfg.MaxParallel, len(runnable))]
		log.Debug("Scheduling round", "checks", ids(batch))

		var g errgroup.Group
		for _, rc := range batch {
			g.Go(func() error {
				agg.Add(rc.WithResult(o.execute(ctx, rc)))
				return nil
			})
		}
		_ = g.Wait()
		for _, rc := range batch {
			completed[rc.ID] = true
		}
		remaining = slices.DeleteFunc(remaining, func(rc checks.Registered) bool {
			return completed[rc.ID]
		})

		if o.cfg.FailFast && agg.HasFailures() {
			log.Info("Stopping after failed round", "remaining", len(remaining))
			notExecuted(remaining, agg)
			return
		}
	}
}

func (o *Orchestrator) execute(ctx context.Context, rc checks.Registered) checks.Result {
	log := logger.FromContext(ctx).With(slog.String("check", rc.ID))
	log.Debug("Running check")
	res := Isolate(logger.IntoContext(ctx, log), rc.Probe, o.cfg.Timeout)
	log.Debug("Check finished", "status", res.Status.String(), "durationMs", res.Duration())
	return res
}

func (o *Orchestrator) hostname() string {
	h, err := o.sys.Hostname()
	if err != nil || h == "" {
		return "unknown"
	}
	return h
}

func (o *Orchestrator) acceleratorType(ctx context.Context) *string {
	if !o.acc.IsAcceleratorVM(ctx) {
		return nil
	}
	t, err := o.acc.DeviceType(ctx)
	if err != nil {
		return nil
	}
	s := t.String()
	return &s
}

// notExecuted appends the checks a fail-fast stop left unrun with a nil
// result, so every selected check appears in the report as not executed.
func notExecuted(rest []checks.Registered, agg *Aggregator) {
	for _, rc := range rest {
		agg.Add(rc.Check)
	}
}

// ready reports whether every dependency of rc inside the filtered set has completed.
func ready(rc checks.Registered, inFilter, completed map[string]bool) bool {
	for _, dep := range rc.Dependencies {
		if inFilter[dep] && !completed[dep] {
			return false
		}
	}
	return true
}

func ids(cs []checks.Registered) []string {
	out := make([]string, 0, len(cs))
	for _, rc := range cs {
		out = append(out, rc.ID)
	}
	return out
}

const (
	unvisited = iota
	visiting
	visited
)

// order sorts cs so every check follows its dependencies. Dependencies outside
// cs are ignored and ties keep the order of cs. Edges closing a cycle are dropped.
func order(cs []checks.Registered) []checks.Registered {
	index := make(map[string]int, len(cs))
	for i, rc := range cs {
		index[rc.ID] = i
	}
	state := make([]int, len(cs))
	out := make([]checks.Registered, 0, len(cs))

	var visit func(i int)
	visit = func(i int) {
		if state[i] != unvisited {
			return
		}
		state[i] = visiting
		for _, dep := range cs[i].Dependencies {
			if j, ok := index[dep]; ok {
				visit(j)
			}
		}
		state[i] = visited
		out = append(out, cs[i])
	}
	for i := range cs {
		visit(i)
	}
	return out
}
