// Package tdd declares parameterized unit tests and runs them.
//
// Tests are registered from package-level variable initializers, usually in
// files of the package under test so that unexported members can be selected:
//
//	var _ = tdd.Test("widgets", func(t *tdd.T) {
//		w := t.New(0).(*widget)
//		t.Expect(w.works())
//	}, tdd.With(tdd.Set(tdd.TypeOf[small](), tdd.TypeOf[large]())))
//
// A test body is evaluated once per scenario. CTest bodies run in the
// verification phase, where a failed expectation stops the run before any
// runtime test executes; CRTest bodies run in both phases. The binary built
// around the tests calls Main.
package tdd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"tdd/internal/access"
	"tdd/internal/cli/commands"
	"tdd/internal/domain"
	"tdd/internal/expect"
	"tdd/internal/registry"
	"tdd/internal/scenario"
)

type (
	// T is passed to a test body.
	T = registry.T
	// Descriptor is a registered test.
	Descriptor = registry.Descriptor
	// Axis is one combinatorial input of a test.
	Axis = scenario.Axis
	// Param is a bound scenario parameter.
	Param = scenario.Param
	// Selector is a handle to a member of a type under test.
	Selector = access.Selector
	// Printer receives diagnostics after a failed expectation.
	Printer = expect.Printer
)

// Version is reported by --version.
var Version = "dev"

// Option configures a test at registration.
type Option func(*registry.Descriptor)

// With declares the axes the test is expanded over, one per parameter slot.
func With(axes ...Axis) Option {
	return func(d *registry.Descriptor) { d.Axes = append(d.Axes, axes...) }
}

// Members declares the selectors the body may resolve by index.
func Members(sels ...Selector) Option {
	return func(d *registry.Descriptor) { d.Selectors = append(d.Selectors, sels...) }
}

// Test registers a test evaluated at run time.
func Test(name string, body func(*T), opts ...Option) *Descriptor {
	return register(domain.Runtime, name, body, opts)
}

// CTest registers a test evaluated in the verification phase only.
func CTest(name string, body func(*T), opts ...Option) *Descriptor {
	return register(domain.Compile, name, body, opts)
}

// CRTest registers a test evaluated in both phases.
func CRTest(name string, body func(*T), opts ...Option) *Descriptor {
	return register(domain.Both, name, body, opts)
}

func register(cat domain.Category, name string, body func(*T), opts []Option) *Descriptor {
	d := &registry.Descriptor{Name: name, Category: cat, Body: body}
	if _, file, line, ok := runtime.Caller(2); ok {
		d.File, d.Line = file, line
	}
	for _, opt := range opts {
		opt(d)
	}
	return registry.Default.MustRegister(d)
}

// Axis constructors
var (
	Single     = scenario.Single
	Set        = scenario.Set
	ForEach    = scenario.ForEach
	Range      = scenario.Range
	Seq        = scenario.Seq
	SeqFrom    = scenario.SeqFrom
	SeqStep    = scenario.SeqStep
	Parameters = scenario.Parameters
	Variants   = scenario.Variants
	AndPointer = scenario.AndPointer
	Value      = scenario.Value
)

// TypeOf returns a type parameter for X.
func TypeOf[X any]() Param { return scenario.TypeOf[X]() }

// Selector constructors
var (
	Method   = access.Method
	Static   = access.Static
	ReadOnly = access.ReadOnly
)

// Field selects the field of S whose address get returns.
func Field[S, F any](get func(*S) *F) Selector { return access.Field(get) }

// Type selects the type X.
func Type[X any]() Selector { return access.Type[X]() }

// Ref returns a pointer to the field or variable reached from root through
// path. A nil root resolves a static path.
func Ref[V any](t *T, root any, path ...int) *V {
	return registry.Ref[V](t, root, path...)
}

// Call resolves the method or function at path and returns it ready to be
// invoked with arguments.
func Call(t *T, root any, path ...int) func(args ...any) []any {
	return func(args ...any) []any {
		return t.Call(root, path, args...)
	}
}

// RegisterFormatter installs the function used by Printer.Print for values
// of type V.
func RegisterFormatter[V any](fn func(*Printer, V) *Printer) {
	expect.RegisterFormatter[V](fn)
}

// Main runs the command line over every registered test and exits. The exit
// status is non-zero when an expectation failed or a test was misused.
func Main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.NewRootCommand(registry.Default, Version).ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, domain.ErrTestsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
