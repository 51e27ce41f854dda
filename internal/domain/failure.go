package domain

import "strconv"

// TestFailure represents a failed assertion inside one scenario instance
type TestFailure struct {
	TestName string `json:"test_name"`
	Scenario string `json:"scenario,omitempty"`
	Mode     string `json:"mode"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Message  string `json:"message"`
	Output   string `json:"output,omitempty"`
	Resolved bool   `json:"resolved,omitempty"` // Track if failure is marked as resolved in the viewer
}

// Location returns "file:line" for display.
func (f TestFailure) Location() string {
	if f.File == "" {
		return "unknown"
	}
	return f.File + ":" + strconv.Itoa(f.Line)
}
