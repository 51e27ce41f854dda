package execution

import (
	"errors"
	"fmt"
	"log/slog"

	"tdd/internal/domain"
	"tdd/internal/expect"
	"tdd/internal/registry"
)

// Runner performs a single evaluation of a test body
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a new Runner
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = discardLogger()
	}
	return &Runner{logger: logger}
}

// Run invokes the body of ev.Test with a T bound to ev and rec.
//
// The returned error is nil when the body returned normally or panicked at
// run time (the panic is then recorded as a failure). Otherwise it is an
// *expect.Abort for a build failure or an exhausted budget, or an error
// wrapping domain.ErrUsage.
func (r *Runner) Run(ev Evaluation, rec *expect.Recorder) (err error) {
	scenario := ev.Scenario.String()
	t := registry.NewT(ev.Test, ev.Scenario, rec.Asserter(ev.Test.Name, scenario, ev.Mode))

	defer func() {
		if v := recover(); v != nil {
			err = r.recovered(ev, scenario, rec, v)
		}
	}()

	r.logger.Debug("evaluate", "test", ev.Test.Name, "scenario", scenario, "mode", ev.Mode)
	ev.Test.Body(t)
	return nil
}

func (r *Runner) recovered(ev Evaluation, scenario string, rec *expect.Recorder, v any) error {
	if abort, ok := v.(*expect.Abort); ok {
		return abort
	}
	if err, ok := v.(error); ok && errors.Is(err, domain.ErrUsage) {
		return fmt.Errorf("test %s %s (%s): %w", ev.Test.Name, scenario, ev.Mode, err)
	}

	r.logger.Debug("body panicked", "test", ev.Test.Name, "scenario", scenario, "panic", v)
	f := domain.TestFailure{
		TestName: ev.Test.Name,
		Scenario: scenario,
		Mode:     ev.Mode.String(),
		File:     ev.Test.File,
		Line:     ev.Test.Line,
		Message:  fmt.Sprintf("panic: %v", v),
	}
	if ev.Mode == domain.CompileMode {
		return &expect.Abort{Err: domain.ErrBuildFailed, Failure: f}
	}
	return fail(rec, f)
}

// fail records f, turning a budget abort into a returned error.
func fail(rec *expect.Recorder, f domain.TestFailure) (err error) {
	defer func() {
		if abort, ok := recover().(*expect.Abort); ok {
			err = abort
		}
	}()
	rec.Fail(f)
	return nil
}
