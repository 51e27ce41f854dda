package ui

import "tdd/internal/domain"

// Viewer displays run results, interactively or not
type Viewer interface {
	View(results *domain.TestResultsOutput) error
}

// StatsViewer prints stored results as a table, for output that is not a
// terminal
type StatsViewer struct {
	formatter *Formatter
}

// NewStatsViewer creates a StatsViewer
func NewStatsViewer(f *Formatter) *StatsViewer {
	return &StatsViewer{formatter: f}
}

// View prints the statistics and the failure tree
func (v *StatsViewer) View(results *domain.TestResultsOutput) error {
	v.formatter.PrintMetaStats(results)
	return nil
}
