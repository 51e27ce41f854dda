package domain

import "time"

// RunResult is the outcome of executing the registry
type RunResult struct {
	RunID         string        // Identifier of this run
	Tests         int           // Tests selected for the run
	Instances     int           // Scenario instances across selected tests
	Done          int           // Instances that went through every mode of their category
	Completed     uint64        // Evaluations performed (compile and runtime)
	Errors        uint64        // Failed runtime assertions
	Failures      []TestFailure // Runtime assertion failures in order
	BuildFailures []TestFailure // Assertions rejected during the verification phase
	Duration      time.Duration // Time taken to execute
}

// Passed reports whether the run is clean
func (r *RunResult) Passed() bool {
	return r.Errors == 0 && len(r.BuildFailures) == 0
}

// TestResultsMeta contains metadata about a test run
type TestResultsMeta struct {
	RunID           string  `json:"run_id"`
	TotalTests      int     `json:"total_tests"`
	TotalInstances  int     `json:"total_instances"`
	Completed       uint64  `json:"completed"`
	Errors          uint64  `json:"errors"`
	BuildFailures   int     `json:"build_failures"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	MaxErrors       int     `json:"max_errors"`
	Timestamp       string  `json:"timestamp"`
}

// TestResultsOutput is the complete output structure for test results
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Details []TestFailure   `json:"details"`
}
