package execution

import (
	"tdd/internal/domain"
	"tdd/internal/registry"
	"tdd/internal/scenario"
)

// Evaluation is one invocation of a test body: one scenario instance in one
// mode.
type Evaluation struct {
	Test     *registry.Descriptor
	Instance int
	Scenario scenario.Scenario
	Mode     domain.Mode
}

// Phase groups the evaluations that run in the same mode.
type Phase struct {
	Mode        domain.Mode
	Evaluations []Evaluation
}

// Scheduler orders the evaluations of a set of tests
type Scheduler interface {
	Schedule(tests []*registry.Descriptor) []Phase
}

// PhaseScheduler puts every compile-mode evaluation before any runtime one.
// Within a phase, tests keep registry order and instances expansion order.
type PhaseScheduler struct{}

// NewPhaseScheduler creates a new PhaseScheduler
func NewPhaseScheduler() *PhaseScheduler {
	return &PhaseScheduler{}
}

// Schedule returns the compile phase followed by the runtime phase
func (s *PhaseScheduler) Schedule(tests []*registry.Descriptor) []Phase {
	phases := []Phase{{Mode: domain.CompileMode}, {Mode: domain.RuntimeMode}}
	for i := range phases {
		for _, test := range tests {
			if !test.Category.Has(phases[i].Mode) {
				continue
			}
			for idx, sc := range test.Scenarios() {
				phases[i].Evaluations = append(phases[i].Evaluations, Evaluation{
					Test:     test,
					Instance: idx,
					Scenario: sc,
					Mode:     phases[i].Mode,
				})
			}
		}
	}
	return phases
}
