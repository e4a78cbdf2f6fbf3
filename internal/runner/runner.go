// Package runner executes the aggregate targets over a populated registry.
package runner

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/AndreyAkinshin/testreg/internal/errors"
	"github.com/AndreyAkinshin/testreg/internal/output"
	"github.com/AndreyAkinshin/testreg/internal/register"
	"github.com/AndreyAkinshin/testreg/internal/registry"
	"github.com/AndreyAkinshin/testreg/internal/results"
)

var out = output.New()

const (
	// minParallelWorkers ensures at least one worker to prevent semaphore
	// deadlock, even if runtime.NumCPU() returns 0 (which can happen in
	// containerized or restricted environments where CPU detection fails).
	minParallelWorkers = 1

	// maxParallelWorkers caps TESTREG_PARALLEL at 256 workers. Test
	// compilation and execution are subprocess-bound; beyond this limit
	// goroutine scheduling overhead outweighs any parallelism benefit.
	maxParallelWorkers = 256
)

// Runner executes the build-all-tests and run-all-tests aggregates.
// The registry is read-only at this point: registration has finished.
type Runner struct {
	registry   *registry.Registry
	compiler   Compiler
	execer     Execer
	resultFlag string // Prepended to the results path when invoking a test binary
}

// Options configures execution behavior.
type Options struct {
	// Parallel enables concurrent execution with a bounded worker pool.
	// Executables and run-wrappers are mutually independent, so parallel
	// execution of either aggregate is safe.
	Parallel bool

	// Continue controls whether building continues after a compile failure.
	// Running is unaffected: wrapper failures never stop the aggregate.
	Continue bool
}

// New creates a Runner.
func New(reg *registry.Registry, compiler Compiler, execer Execer, resultFlag string) *Runner {
	return &Runner{
		registry:   reg,
		compiler:   compiler,
		execer:     execer,
		resultFlag: resultFlag,
	}
}

// BuildAll executes the build-all-tests aggregate: compiles every registered
// test executable in dependency order.
func (r *Runner) BuildAll(ctx context.Context, opts Options) error {
	executables, err := r.aggregateDeps(register.AggregateBuild, registry.KindExecutable)
	if err != nil {
		return err
	}
	if len(executables) == 0 {
		out.WarningSimple("no tests registered; nothing to build")
		return nil
	}

	if opts.Parallel {
		return r.buildParallel(ctx, executables, opts)
	}
	return r.buildSequential(ctx, executables, opts)
}

// RunAll executes the run-all-tests aggregate: runs every wrapper and
// collects the results.
//
// A wrapper reports success regardless of its executable's exit status;
// failures live in the emitted result files and in the returned summary,
// never in the error. The error is reserved for infrastructure problems
// (unreadable registry, result directory cannot be created).
func (r *Runner) RunAll(ctx context.Context, opts Options) (*results.RunSummary, error) {
	wrappers, err := r.aggregateDeps(register.AggregateRun, registry.KindRunWrapper)
	if err != nil {
		return nil, err
	}
	if len(wrappers) == 0 {
		out.WarningSimple("no tests registered; nothing to run")
		return &results.RunSummary{}, nil
	}

	start := time.Now()
	var summary *results.RunSummary
	if opts.Parallel {
		summary, err = r.runParallel(ctx, wrappers)
	} else {
		summary, err = r.runSequential(ctx, wrappers)
	}
	if err != nil {
		return nil, err
	}
	summary.TotalDuration = time.Since(start)
	return summary, nil
}

// aggregateDeps returns the aggregate's transitive dependencies of one kind,
// in topological order. A missing aggregate means nothing was registered.
func (r *Runner) aggregateDeps(aggregate string, kind registry.Kind) ([]*registry.Target, error) {
	if !r.registry.Exists(aggregate) {
		return nil, nil
	}
	ordered, err := r.registry.TopologicalOrder([]string{aggregate})
	if err != nil {
		return nil, err
	}
	var filtered []*registry.Target
	for _, t := range ordered {
		if t.Kind() == kind {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (r *Runner) buildSequential(ctx context.Context, targets []*registry.Target, opts Options) error {
	var errs []error
	for _, t := range targets {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err := r.buildTarget(ctx, t); err != nil {
			errs = append(errs, err)
			if !opts.Continue {
				return errs[0]
			}
		}
	}
	return combineErrors(errs)
}

// buildParallel compiles targets concurrently using a bounded worker pool.
// Worker count comes from TESTREG_PARALLEL (default: runtime.NumCPU()).
// Executables never depend on each other, so ordering is irrelevant here.
func (r *Runner) buildParallel(ctx context.Context, targets []*registry.Target, opts Options) error {
	workers := getParallelWorkers()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var mu sync.Mutex
	var wg sync.WaitGroup
	var errs []error
	sem := make(chan struct{}, workers)

	for _, t := range targets {
		wg.Add(1)
		go func(t *registry.Target) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			err := r.buildTarget(ctx, t)

			var shouldCancel bool
			mu.Lock()
			if err != nil {
				errs = append(errs, err)
				shouldCancel = !opts.Continue
			}
			mu.Unlock()

			if shouldCancel {
				cancel()
			}
		}(t)
	}

	wg.Wait()
	return combineErrors(errs)
}

func (r *Runner) buildTarget(ctx context.Context, t *registry.Target) error {
	out.TargetStart(t.Name(), "build")

	if dir := filepath.Dir(t.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "create output directory")
		}
	}

	if err := r.compiler.Compile(ctx, t.SourceFile, t.OutputPath); err != nil {
		out.TargetFailed(t.Name(), "build", err)
		return err
	}
	out.TargetSuccess(t.Name(), "build")
	return nil
}

func (r *Runner) runSequential(ctx context.Context, wrappers []*registry.Target) (*results.RunSummary, error) {
	summary := &results.RunSummary{}
	for _, w := range wrappers {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		result, err := r.runWrapper(ctx, w)
		if err != nil {
			return nil, err
		}
		summary.Results = append(summary.Results, result)
	}
	return summary, nil
}

// runParallel executes wrappers concurrently. There is no fail-fast cancel:
// wrapper failures are not failures of the aggregate.
func (r *Runner) runParallel(ctx context.Context, wrappers []*registry.Target) (*results.RunSummary, error) {
	workers := getParallelWorkers()

	var mu sync.Mutex
	var wg sync.WaitGroup
	var errs []error
	sem := make(chan struct{}, workers)

	collected := make([]results.RunResult, len(wrappers))

	for i, w := range wrappers {
		wg.Add(1)
		go func(i int, w *registry.Target) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			result, err := r.runWrapper(ctx, w)

			mu.Lock()
			if err != nil {
				errs = append(errs, err)
			} else {
				collected[i] = result
			}
			mu.Unlock()
		}(i, w)
	}

	wg.Wait()
	if err := combineErrors(errs); err != nil {
		return nil, err
	}
	return &results.RunSummary{Results: collected}, nil
}

// runWrapper executes one run-wrapper: it invokes the wrapped executable with
// the result-output argument and records the outcome. The executable's exit
// status never propagates as an error.
func (r *Runner) runWrapper(ctx context.Context, w *registry.Target) (results.RunResult, error) {
	exe, ok := r.registry.Get(w.Wraps)
	if !ok {
		return results.RunResult{}, errors.UnknownTarget(w.Wraps)
	}

	if err := os.MkdirAll(filepath.Dir(w.ResultsPath), 0755); err != nil {
		return results.RunResult{}, errors.Wrap(err, "create results directory")
	}

	out.TargetStart(w.Name(), "run")
	start := time.Now()
	execResult := r.execer.Run(ctx, exe.OutputPath, []string{r.resultFlag + w.ResultsPath})
	duration := time.Since(start)

	result := results.RunResult{
		Name:     w.Name(),
		ExitCode: execResult.ExitCode,
		Duration: duration,
	}

	if counts, err := results.ParseJUnitFile(w.ResultsPath); err == nil {
		result.Counts = counts
	}

	if execResult.ExitCode == 0 {
		out.TargetSuccess(w.Name(), "run")
	} else {
		// Recorded, not propagated: the aggregate keeps going.
		out.Warning("[%s] %s exited with status %d", w.Name(), exe.Name(), execResult.ExitCode)
	}
	return result, nil
}

// defaultWorkerCount returns the default number of parallel workers based on
// CPU count, never less than minParallelWorkers.
func defaultWorkerCount() int {
	return max(minParallelWorkers, runtime.NumCPU())
}

// getParallelWorkers returns the number of parallel workers to use.
// Invalid TESTREG_PARALLEL values log a warning and fall back to the default.
func getParallelWorkers() int {
	env := os.Getenv("TESTREG_PARALLEL")
	if env == "" {
		return defaultWorkerCount()
	}

	n, err := strconv.Atoi(env)
	if err != nil {
		out.WarningSimple("invalid TESTREG_PARALLEL value %q (not a number), using default", env)
		return defaultWorkerCount()
	}

	if n < minParallelWorkers || n > maxParallelWorkers {
		out.WarningSimple("TESTREG_PARALLEL=%d out of range [%d-%d], using default", n, minParallelWorkers, maxParallelWorkers)
		return defaultWorkerCount()
	}

	return n
}

func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return stderrors.Join(errs...)
}
