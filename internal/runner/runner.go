// Package runner executes scenarios on a bounded pool of workers and
// reports what happened.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/swaglabs/shopcheck/internal/dataset"
	"github.com/swaglabs/shopcheck/internal/fixture"
	"github.com/swaglabs/shopcheck/internal/pages"
	"github.com/swaglabs/shopcheck/internal/report"
	"github.com/swaglabs/shopcheck/internal/scenario"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout is the budget of one test
const DefaultTimeout = 60 * time.Second

// DefaultGrace bounds teardown once a test has finished or timed out
const DefaultGrace = 30 * time.Second

// Options configures a Runner
type Options struct {
	Workers int
	// Timeout is the budget of one test, teardown excluded.
	Timeout time.Duration
	Grace   time.Duration
	// Inspect pauses a failed test before its session is closed.
	Inspect bool

	Profile string
	Browser string
	BaseURL string

	Logger *zap.Logger
}

// Runner runs scenarios. Failures never cancel sibling tests.
type Runner struct {
	provider *fixture.Provider
	data     *dataset.Store
	listener report.Listener
	opts     Options
	log      *zap.Logger
}

// New creates a Runner
func New(provider *fixture.Provider, data *dataset.Store, listener report.Listener, opts Options) *Runner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Grace <= 0 {
		opts.Grace = DefaultGrace
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Runner{
		provider: provider,
		data:     data,
		listener: listener,
		opts:     opts,
		log:      opts.Logger,
	}
}

// Run executes scenarios and returns their results in the given order.
// Cancelling ctx stops tests that have not started yet; they are reported
// as skipped.
func (r *Runner) Run(ctx context.Context, scenarios []scenario.Scenario) report.RunResult {
	run := report.RunResult{
		RunID:   uuid.NewString(),
		Profile: r.opts.Profile,
		Browser: r.opts.Browser,
		BaseURL: r.opts.BaseURL,
		Start:   time.Now(),
		Tests:   make([]report.TestResult, len(scenarios)),
	}
	r.listener.OnRunStart(report.RunInfo{
		RunID:   run.RunID,
		Profile: run.Profile,
		Browser: run.Browser,
		BaseURL: run.BaseURL,
		Tests:   len(scenarios),
		Workers: r.opts.Workers,
	})

	var g errgroup.Group
	g.SetLimit(r.opts.Workers)
	for i, s := range scenarios {
		g.Go(func() error {
			run.Tests[i] = r.runTest(ctx, s)
			return nil
		})
	}
	_ = g.Wait()

	run.Duration = time.Since(run.Start)
	r.listener.OnRunEnd(run)
	return run
}

func (r *Runner) runTest(ctx context.Context, s scenario.Scenario) report.TestResult {
	res := report.TestResult{
		ID:     s.ID,
		Name:   s.Name,
		File:   s.File,
		Tags:   s.Tags,
		Status: report.StatusPassed,
		Start:  time.Now(),
		Steps:  []report.StepResult{},
	}
	r.listener.OnTestStart(s.ID, s.Name)
	log := r.log.With(zap.String("test", s.ID))

	if err := ctx.Err(); err != nil {
		res.Status = report.StatusSkipped
		res.Error = fmt.Sprintf("not started: %v", err)
		r.listener.OnTestEnd(res)
		return res
	}

	err := r.execute(ctx, s, &res, log)
	res.Duration = time.Since(res.Start)
	if err != nil {
		res.Status = report.StatusFailed
		res.Kind = Classify(err)
		res.Error = err.Error()
	}
	r.listener.OnTestEnd(res)
	return res
}

func (r *Runner) execute(ctx context.Context, s scenario.Scenario, res *report.TestResult, log *zap.Logger) error {
	tctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	f, err := r.provider.Acquire(tctx, s.ID)
	if err != nil {
		return err
	}

	hooks := scenario.Hooks{
		StepStart: func(desc string) {
			r.listener.OnStepStart(s.ID, desc)
		},
		StepEnd: func(desc string, d time.Duration, err error) {
			step := report.StepResult{Name: desc, Status: report.StatusPassed, Duration: d}
			if err != nil {
				step.Status = report.StatusFailed
				step.Error = err.Error()
			}
			res.Steps = append(res.Steps, step)
			r.listener.OnStepEnd(s.ID, step)
		},
	}
	runErr := runScenario(s, scenario.NewT(tctx, f, r.data, hooks))
	failed := runErr != nil

	teardown := context.WithoutCancel(ctx)
	if failed && r.opts.Inspect {
		if err := f.Pages.Base.PauseForInspection(teardown); err != nil {
			log.Warn("Inspection pause failed", zap.Error(err))
		}
	}
	rctx, rcancel := context.WithTimeout(teardown, r.opts.Grace)
	defer rcancel()
	artifacts, relErr := f.Release(rctx, failed)
	res.Artifacts = artifacts
	if relErr != nil {
		log.Warn("Failed to release fixture", zap.Error(relErr))
		if runErr == nil {
			return fmt.Errorf("teardown: %w", relErr)
		}
	}
	return runErr
}

func runScenario(s scenario.Scenario, t *scenario.T) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return s.Run(t)
}

// Classify maps a test error to its report kind
func Classify(err error) report.ErrorKind {
	var (
		notReady   *pages.NotReadyError
		assertion  *pages.AssertionError
		navigation *pages.NavigationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &notReady):
		return report.KindNotReady
	case errors.As(err, &assertion):
		return report.KindAssertion
	case errors.As(err, &navigation):
		return report.KindNavigation
	case errors.Is(err, context.DeadlineExceeded):
		return report.KindTimeout
	default:
		return report.KindError
	}
}
