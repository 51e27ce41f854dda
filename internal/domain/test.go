package domain

// Category controls in which modes a test body is evaluated.
type Category int

const (
	// Runtime tests run once, at run time.
	Runtime Category = iota
	// Compile tests run once, during the verification phase.
	Compile
	// Both runs the body in the verification phase and again at run time.
	Both
)

// String returns the short tag used in listings
func (c Category) String() string {
	switch c {
	case Runtime:
		return "R"
	case Compile:
		return "C"
	case Both:
		return "CR"
	}
	return "?"
}

// Modes returns the evaluation modes of the category in execution order.
func (c Category) Modes() []Mode {
	switch c {
	case Compile:
		return []Mode{CompileMode}
	case Both:
		return []Mode{CompileMode, RuntimeMode}
	default:
		return []Mode{RuntimeMode}
	}
}

// Has reports whether the category evaluates in mode m.
func (c Category) Has(m Mode) bool {
	for _, mode := range c.Modes() {
		if mode == m {
			return true
		}
	}
	return false
}

// Mode is the evaluation context of a single body invocation.
type Mode int

const (
	RuntimeMode Mode = iota
	CompileMode
)

func (m Mode) String() string {
	if m == CompileMode {
		return "compile"
	}
	return "runtime"
}

// State is the progress of one scenario instance through its category.
type State int

const (
	NotRun State = iota
	CompileEvaluated
	RuntimeEvaluated
	Done
)

func (s State) String() string {
	switch s {
	case NotRun:
		return "not-run"
	case CompileEvaluated:
		return "compile-evaluated"
	case RuntimeEvaluated:
		return "runtime-evaluated"
	case Done:
		return "done"
	}
	return "unknown"
}

// Next returns the state reached after evaluating in mode m.
func (s State) Next(m Mode) State {
	if m == CompileMode {
		return CompileEvaluated
	}
	return RuntimeEvaluated
}
