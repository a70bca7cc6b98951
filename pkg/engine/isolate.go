package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/caas-team/tpu-doc/internal/logger"
	"github.com/caas-team/tpu-doc/pkg/checks"
)

// Isolate runs probe with a timeout and turns panics and overruns into failed
// results. A timeout <= 0 disables the cap. A probe that ignores the
// cancellation of its context keeps running and its late result is dropped.
func Isolate(ctx context.Context, probe checks.Probe, timeout time.Duration) checks.Result {
	log := logger.FromContext(ctx)
	start := time.Now()

	var (
		pctx    context.Context
		cancel  context.CancelFunc
		expired <-chan time.Time
	)
	if timeout > 0 {
		pctx, cancel = context.WithTimeout(ctx, timeout)
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	} else {
		pctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	done := make(chan checks.Result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Warn("Check panicked", "panic", r)
				done <- checks.Fail("Check panicked during execution", "An unexpected error occurred", checks.Elapsed(start))
			}
		}()
		done <- probe(pctx)
	}()

	select {
	case res := <-done:
		elapsed := time.Since(start)
		if timeout > 0 && elapsed >= timeout {
			log.Warn("Check returned after its timeout", "elapsed", elapsed, "timeout", timeout)
			return timedOut(elapsed)
		}
		return res
	case <-expired:
		elapsed := time.Since(start)
		log.Warn("Check timed out", "elapsed", elapsed, "timeout", timeout)
		return timedOut(elapsed)
	case <-ctx.Done():
		return checks.Fail("Check cancelled", ctx.Err().Error(), checks.Elapsed(start))
	}
}

func timedOut(elapsed time.Duration) checks.Result {
	ms := elapsed.Milliseconds()
	return checks.Fail(fmt.Sprintf("Check timed out after %dms", ms), "Check exceeded global timeout", ms)
}
