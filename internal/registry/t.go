package registry

import (
	"reflect"
	"runtime"

	"tdd/internal/access"
	"tdd/internal/domain"
	"tdd/internal/expect"
	"tdd/internal/scenario"
)

// T is handed to a test body for one evaluation of one scenario instance.
type T struct {
	desc     *Descriptor
	scenario scenario.Scenario
	asserter *expect.Asserter
}

// NewT binds a descriptor, one of its scenarios and an asserter.
func NewT(d *Descriptor, s scenario.Scenario, a *expect.Asserter) *T {
	return &T{desc: d, scenario: s, asserter: a}
}

// Name returns the test name.
func (t *T) Name() string { return t.desc.Name }

// Scenario returns the bound parameters.
func (t *T) Scenario() scenario.Scenario { return t.scenario }

// X returns the first bound parameter, or the zero Param when the test has
// no axes.
func (t *T) X() scenario.Param {
	if len(t.scenario) == 0 {
		return scenario.Param{}
	}
	return t.scenario[0]
}

// Param returns the i-th bound parameter.
func (t *T) Param(i int) scenario.Param {
	if i < 0 || i >= len(t.scenario) {
		panic(domain.NewUsageError("param", "test %s: parameter %d out of range (%d bound)", t.desc.Name, i, len(t.scenario)))
	}
	return t.scenario[i]
}

// Type returns the type of the i-th parameter.
func (t *T) Type(i int) reflect.Type { return t.Param(i).Type() }

// Value returns the value of the i-th parameter.
func (t *T) Value(i int) any { return t.Param(i).Value() }

// New returns a pointer to a new zero value of the i-th parameter's type.
func (t *T) New(i int) any { return t.Param(i).New() }

// Mode returns the current evaluation mode.
func (t *T) Mode() domain.Mode { return t.asserter.Mode() }

// IsConstantEvaluated reports whether the body runs in the verification phase.
func (t *T) IsConstantEvaluated() bool { return t.Mode() == domain.CompileMode }

// Expect asserts cond. The text of the expression is read back from the
// caller's source file.
func (t *T) Expect(cond bool) *expect.Printer {
	loc := expect.Location{File: "unknown"}
	source := "condition"
	if pc, file, line, ok := runtime.Caller(1); ok {
		loc = expect.Location{File: file, Line: line}
		source = expect.SourceAt(pc, file, line)
	}
	return t.asserter.Expect(cond, loc, source)
}

// Prv resolves path against root using the test's selectors.
func (t *T) Prv(root any, path ...int) access.Result {
	res, err := access.Resolve(t.desc.Selectors, path, root)
	if err != nil {
		panic(err)
	}
	return res
}

// PrvStatic resolves a path made only of static selectors.
func (t *T) PrvStatic(path ...int) access.Result {
	res, err := access.ResolveStatic(t.desc.Selectors, path)
	if err != nil {
		panic(err)
	}
	return res
}

// PrvType returns the type a path resolves to. A nil root means a static path.
func (t *T) PrvType(root any, path ...int) reflect.Type {
	return t.Prv(root, path...).Type()
}

// Get returns a copy of the field or variable at path.
func (t *T) Get(root any, path ...int) any {
	return t.ref(root, path).Get()
}

// Set stores v into the field or variable at path.
func (t *T) Set(root any, v any, path ...int) {
	if err := t.ref(root, path).Set(v); err != nil {
		panic(err)
	}
}

// Call invokes the method or function at path with args.
func (t *T) Call(root any, path []int, args ...any) []any {
	fn, err := t.Prv(root, path...).Func()
	if err != nil {
		panic(err)
	}
	out, err := fn.Call(args...)
	if err != nil {
		panic(err)
	}
	return out
}

func (t *T) ref(root any, path []int) access.Ref {
	ref, err := t.Prv(root, path...).Ref()
	if err != nil {
		panic(err)
	}
	return ref
}

// Ref returns a typed pointer to the field or variable at path. Pointers
// obtained through different paths to the same member are equal.
func Ref[V any](t *T, root any, path ...int) *V {
	p, err := access.Ptr[V](t.ref(root, path))
	if err != nil {
		panic(err)
	}
	return p
}
