// Package execution runs registered tests through their category's modes.
package execution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tdd/internal/config"
	"tdd/internal/domain"
	"tdd/internal/expect"
	"tdd/internal/registry"
	"tdd/internal/ui"
)

// Executor executes tests and returns results
type Executor interface {
	Execute(ctx context.Context, tests []*registry.Descriptor) (*domain.RunResult, error)
}

// SequentialExecutor evaluates one scenario instance at a time, compile
// phase first.
type SequentialExecutor struct {
	config    *config.Config
	runner    *Runner
	scheduler Scheduler
	progress  *ui.ProgressBar
	logger    *slog.Logger
	out       io.Writer

	states map[*registry.Descriptor][]domain.State
}

// NewSequentialExecutor creates a new SequentialExecutor. Diagnostics go to
// out (stderr when nil).
func NewSequentialExecutor(cfg *config.Config, runner *Runner, scheduler Scheduler, logger *slog.Logger, out io.Writer) *SequentialExecutor {
	if logger == nil {
		logger = discardLogger()
	}
	return &SequentialExecutor{
		config:    cfg,
		runner:    runner,
		scheduler: scheduler,
		logger:    logger,
		out:       out,
	}
}

// SetProgress sets the progress bar updated after every evaluation
func (e *SequentialExecutor) SetProgress(progress *ui.ProgressBar) {
	e.progress = progress
}

// Evaluations returns how many body invocations tests will need.
func Evaluations(tests []*registry.Descriptor) int {
	n := 0
	for _, t := range tests {
		n += t.Instances() * len(t.Category.Modes())
	}
	return n
}

// Execute runs every evaluation of tests. The result is returned even when
// the run stops early; the error then says why: domain.ErrBuildFailed,
// domain.ErrBudgetExceeded, a usage error or the context's error.
func (e *SequentialExecutor) Execute(ctx context.Context, tests []*registry.Descriptor) (*domain.RunResult, error) {
	start := time.Now()
	counters := &expect.Counters{}
	rec := expect.NewRecorder(counters, e.config.MaxErrors, e.out)

	result := &domain.RunResult{RunID: uuid.NewString(), Tests: len(tests)}
	e.states = make(map[*registry.Descriptor][]domain.State, len(tests))
	for _, t := range tests {
		result.Instances += t.Instances()
		e.states[t] = make([]domain.State, t.Instances())
	}

	finish := func(err error) (*domain.RunResult, error) {
		if e.progress != nil {
			e.progress.Finish()
		}
		result.Completed = counters.Completed()
		result.Errors = counters.Errors()
		result.Failures = rec.Failures()
		result.Done = e.done()
		result.Duration = time.Since(start)
		e.logger.Debug("run finished", "run", result.RunID, "completed", result.Completed, "errors", result.Errors, "err", err)
		return result, err
	}

	for _, phase := range e.scheduler.Schedule(tests) {
		e.logger.Debug("phase", "mode", phase.Mode, "evaluations", len(phase.Evaluations))

		for _, ev := range phase.Evaluations {
			if err := ctx.Err(); err != nil {
				return finish(err)
			}

			err := e.runner.Run(ev, rec)
			var abort *expect.Abort
			switch {
			case err == nil:
			case errors.As(err, &abort) && errors.Is(abort, domain.ErrBuildFailed):
				rec.Report(abort.Failure)
				result.BuildFailures = append(result.BuildFailures, abort.Failure)
			case errors.Is(err, domain.ErrBudgetExceeded):
				counters.Complete()
				e.advance(ev)
				return finish(fmt.Errorf("stopped after %d errors: %w", counters.Errors(), err))
			default:
				return finish(err)
			}

			counters.Complete()
			e.advance(ev)
			if e.progress != nil {
				e.progress.Update(int(counters.Completed()), int(counters.Errors())+len(result.BuildFailures))
			}
		}

		if phase.Mode == domain.CompileMode && len(result.BuildFailures) > 0 {
			return finish(fmt.Errorf("%d assertion(s) rejected: %w", len(result.BuildFailures), domain.ErrBuildFailed))
		}
	}

	return finish(nil)
}

// advance moves the instance of ev to its next state, and to Done once every
// mode of its category has been evaluated.
func (e *SequentialExecutor) advance(ev Evaluation) {
	states := e.states[ev.Test]
	if states == nil {
		return
	}
	next := states[ev.Instance].Next(ev.Mode)
	modes := ev.Test.Category.Modes()
	if ev.Mode == modes[len(modes)-1] {
		next = domain.Done
	}
	states[ev.Instance] = next
}

func (e *SequentialExecutor) done() int {
	n := 0
	for _, states := range e.states {
		for _, s := range states {
			if s == domain.Done {
				n++
			}
		}
	}
	return n
}

// State returns the state of one instance of test after the last Execute.
func (e *SequentialExecutor) State(test *registry.Descriptor, instance int) domain.State {
	states := e.states[test]
	if instance < 0 || instance >= len(states) {
		return domain.NotRun
	}
	return states[instance]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
