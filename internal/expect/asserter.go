// Package expect evaluates assertions made inside test bodies and reports the
// failed ones.
package expect

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/fatih/color"

	"tdd/internal/domain"
)

// Counters are the run-wide tallies. They are only ever incremented.
type Counters struct {
	completed atomic.Uint64
	errors    atomic.Uint64
}

// Complete records one finished evaluation.
func (c *Counters) Complete() { c.completed.Add(1) }

// Completed returns the number of finished evaluations.
func (c *Counters) Completed() uint64 { return c.completed.Load() }

// Errors returns the number of failed runtime assertions.
func (c *Counters) Errors() uint64 { return c.errors.Load() }

// Location is a position in a source file.
type Location struct {
	File string
	Line int
}

// Abort is the panic value used to stop an evaluation early. Err is either
// domain.ErrBuildFailed (Failure holds the rejected assertion) or
// domain.ErrBudgetExceeded.
type Abort struct {
	Err     error
	Failure domain.TestFailure
}

func (a *Abort) Error() string { return a.Err.Error() }

func (a *Abort) Unwrap() error { return a.Err }

// Recorder collects the failures of one run.
type Recorder struct {
	counters  *Counters
	maxErrors uint64
	out       io.Writer

	mu       sync.Mutex
	failures []domain.TestFailure
}

// NewRecorder creates a Recorder writing diagnostics to out (stderr when nil).
// A maxErrors of 0 means unlimited.
func NewRecorder(counters *Counters, maxErrors int, out io.Writer) *Recorder {
	if out == nil {
		out = os.Stderr
	}
	if maxErrors < 0 {
		maxErrors = 0
	}
	return &Recorder{counters: counters, maxErrors: uint64(maxErrors), out: out}
}

// Counters returns the tallies the recorder increments.
func (r *Recorder) Counters() *Counters { return r.counters }

// Failures returns a copy of the runtime failures recorded so far, in order.
func (r *Recorder) Failures() []domain.TestFailure {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.TestFailure, len(r.failures))
	copy(out, r.failures)
	return out
}

// Fail records a runtime failure that did not come from Expect, such as a
// panicking body. It counts against the budget like any failed assertion.
func (r *Recorder) Fail(f domain.TestFailure) *Printer {
	r.Report(f)
	idx := r.add(f)
	r.charge()
	return &Printer{rec: r, idx: idx, w: r.out}
}

func (r *Recorder) add(f domain.TestFailure) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, f)
	return len(r.failures) - 1
}

func (r *Recorder) appendOutput(idx int, p []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[idx].Output += string(p)
}

// Report prints the failure line of f without counting it.
func (r *Recorder) Report(f domain.TestFailure) {
	bold := color.New(color.Bold)
	red := color.New(color.Bold, color.FgRed)
	bold.Fprintf(r.out, "%s: ", f.Location())
	red.Fprint(r.out, "error:")
	io.WriteString(r.out, " "+f.Message+"\n")
}

// charge counts one error and aborts when the budget is used up.
func (r *Recorder) charge() {
	n := r.counters.errors.Add(1)
	if r.maxErrors > 0 && n >= r.maxErrors {
		panic(&Abort{Err: domain.ErrBudgetExceeded})
	}
}

// Asserter evaluates assertions for one evaluation of one scenario instance.
type Asserter struct {
	rec      *Recorder
	test     string
	scenario string
	mode     domain.Mode
}

// Asserter returns an Asserter bound to one evaluation.
func (r *Recorder) Asserter(test, scenario string, mode domain.Mode) *Asserter {
	return &Asserter{rec: r, test: test, scenario: scenario, mode: mode}
}

// Mode returns the evaluation mode.
func (a *Asserter) Mode() domain.Mode { return a.mode }

// Expect checks cond. A true condition returns a silent printer. A false one
// is reported and counted at run time and returns a verbose printer; in
// compile mode it aborts the evaluation with a build failure.
func (a *Asserter) Expect(cond bool, loc Location, source string) *Printer {
	if cond {
		return silent
	}
	f := domain.TestFailure{
		TestName: a.test,
		Scenario: a.scenario,
		Mode:     a.mode.String(),
		File:     loc.File,
		Line:     loc.Line,
		Message:  "expected " + source,
	}
	if a.mode == domain.CompileMode {
		panic(&Abort{Err: domain.ErrBuildFailed, Failure: f})
	}
	return a.rec.Fail(f)
}
