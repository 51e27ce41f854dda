package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tdd/internal/config"
	"tdd/internal/domain"
	"tdd/internal/registry"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to out (stdout when nil)
func NewFormatter(cfg *config.Config, out io.Writer) *Formatter {
	if out == nil {
		out = os.Stdout
	}
	return &Formatter{config: cfg, out: out}
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
	passed = color.New(color.FgGreen, color.Bold)
)

// PrintSummary prints the final "N tests, M errors." line, green when the run
// is clean.
func (f *Formatter) PrintSummary(result *domain.RunResult) {
	line := fmt.Sprintf("%d tests, %d errors.", result.Completed, result.Errors)
	if result.Passed() {
		passed.Fprintln(f.out, line)
	} else {
		fmt.Fprintln(f.out, line)
	}
	if n := len(result.BuildFailures); n > 0 {
		red.Fprintf(f.out, "%d assertion(s) failed in the verification phase, runtime phase skipped\n", n)
	}
}

// PrintMetaStats displays the statistics of a stored run
func (f *Formatter) PrintMetaStats(output *domain.TestResultsOutput) {
	meta := output.Meta

	// Print header
	fmt.Fprint(f.out, "\n")
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                    Test Execution Statistics                  ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	rows := []struct {
		label string
		value string
		c     *color.Color
	}{
		{"Tests", fmt.Sprint(meta.TotalTests), white},
		{"Scenario Instances", fmt.Sprint(meta.TotalInstances), white},
		{"Evaluations", fmt.Sprint(meta.Completed), green},
		{"Errors", fmt.Sprint(meta.Errors), red},
		{"Build Failures", fmt.Sprint(meta.BuildFailures), red},
		{"Max Errors", maxErrorsText(meta.MaxErrors), white},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white},
		{"Timestamp", meta.Timestamp, white},
	}

	// Print table
	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.c.Fprintf(f.out, "%-27s │\n", row.value)
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	// Print summary line
	fmt.Fprintln(f.out)
	if meta.Errors == 0 && meta.BuildFailures == 0 {
		green.Fprintln(f.out, "✓ All tests passed!")
		return
	}
	red.Fprintf(f.out, "✗ %d error(s), %d build failure(s)\n", meta.Errors, meta.BuildFailures)
	fmt.Fprintln(f.out)
	f.printFailedTestsTree(output.Details)
}

func maxErrorsText(n int) string {
	if n == 0 {
		return "unlimited"
	}
	return fmt.Sprint(n)
}

// printFailedTestsTree prints failures grouped by test, in first-seen order
func (f *Formatter) printFailedTestsTree(failures []domain.TestFailure) {
	var order []string
	byTest := make(map[string][]domain.TestFailure)
	for _, failure := range failures {
		if _, ok := byTest[failure.TestName]; !ok {
			order = append(order, failure.TestName)
		}
		byTest[failure.TestName] = append(byTest[failure.TestName], failure)
	}

	for i, name := range order {
		branch, stem := "├── ", "│   "
		if i == len(order)-1 {
			branch, stem = "└── ", "    "
		}
		yellow.Fprintf(f.out, "%s%s\n", branch, name)

		cases := byTest[name]
		for j, failure := range cases {
			leaf := "├── "
			if j == len(cases)-1 {
				leaf = "└── "
			}
			scenario := failure.Scenario
			if scenario == "" {
				scenario = "()"
			}
			fmt.Fprintf(f.out, "%s%s%s %s %s\n", stem, leaf,
				red.Sprint(scenario), failure.Location(), failure.Message)
		}
	}
}

// PrintTestList prints the registered tests as a tree, optionally with their
// scenarios. Tests named in failed (from the last run) are marked with [F].
func (f *Formatter) PrintTestList(tests []*registry.Descriptor, showScenarios bool, failed map[string]struct{}) {
	green.Fprintf(f.out, "Found %d test(s):\n", len(tests))

	for i, test := range tests {
		isLastTest := i == len(tests)-1
		branch, stem := "├── ", "│   "
		if isLastTest {
			branch, stem = "└── ", "    "
		}

		failMarker := ""
		if _, ok := failed[test.Name]; ok {
			failMarker = " " + red.Sprint("[F]")
		}
		fmt.Fprintf(f.out, "%s%s %s %s%s\n", branch,
			cyan.Sprint(test.Name),
			yellow.Sprintf("[%s]", test.Category),
			instancesText(test.Instances()),
			failMarker)

		if !showScenarios {
			continue
		}
		scenarios := test.Scenarios()
		for j, s := range scenarios {
			leaf := "├── "
			if j == len(scenarios)-1 {
				leaf = "└── "
			}
			fmt.Fprintf(f.out, "%s%s%s\n", stem, leaf, s)
		}
	}
}

func instancesText(n int) string {
	if n == 1 {
		return "1 scenario"
	}
	return fmt.Sprintf("%d scenarios", n)
}
