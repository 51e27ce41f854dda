package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"tdd/internal/domain"
)

func TestListItemText(t *testing.T) {
	failure := domain.TestFailure{TestName: "widgets", Scenario: "(int)"}

	assert.Equal(t, "[yellow]3.[white] widgets (int)", listItemText(failure, 2, false))
	assert.Equal(t, "[gray]✓ [yellow]3.[gray] widgets (int)[white]", listItemText(failure, 2, true))
	assert.Equal(t, "[yellow]1.[white] Failure 1", listItemText(domain.TestFailure{}, 0, false))
}

func TestFormatFailureDetails(t *testing.T) {
	failure := domain.TestFailure{
		TestName: "widgets",
		Scenario: "(int)",
		Mode:     "runtime",
		File:     "w.go",
		Line:     7,
		Message:  "expected w.Size() == 3",
		Output:   "2\n",
	}

	details := formatFailureDetails(failure)

	assert.Contains(t, details, "[red]✗ Test: widgets[white]")
	assert.Contains(t, details, "w.go:7")
	assert.Contains(t, details, "expected w.Size() == 3")
	assert.Contains(t, details, "runtime")
	assert.Contains(t, details, "  2\n")
}

func TestFormatFailureDetails_TruncatesOutput(t *testing.T) {
	var lines []string
	for i := 0; i < maxOutputLines+5; i++ {
		lines = append(lines, fmt.Sprint(i))
	}
	details := formatFailureDetails(domain.TestFailure{TestName: "long", Output: strings.Join(lines, "\n")})

	assert.Contains(t, details, "... and 5 more lines")
	assert.NotContains(t, details, fmt.Sprintf("  %d\n", maxOutputLines))
}

func TestFormatFailureStats(t *testing.T) {
	stats := formatFailureStats(domain.TestFailure{File: "c.go", Line: 2}, 4)
	assert.Equal(t, "[cyan]test:[white] [yellow]Failure 4[white] [cyan]at:[white] [yellow]c.go:2[white]\n", stats)
}

type memoryStorage struct {
	saved []*domain.TestResultsOutput
}

func (m *memoryStorage) Save(*domain.RunResult) error { return nil }

func (m *memoryStorage) Load() (*domain.TestResultsOutput, error) {
	return m.saved[len(m.saved)-1], nil
}

func (m *memoryStorage) SaveOutput(output *domain.TestResultsOutput) error {
	m.saved = append(m.saved, output)
	return nil
}

func TestFailureBrowser_ResolveAndSkip(t *testing.T) {
	results := &domain.TestResultsOutput{Details: []domain.TestFailure{
		{TestName: "a"},
		{TestName: "b", Resolved: true},
		{TestName: "c"},
	}}
	st := &memoryStorage{}
	b := newFailureBrowser(results, st)

	assert.Equal(t, 2, b.unresolved())

	b.toggleResolved()
	assert.True(t, results.Details[0].Resolved)
	assert.Equal(t, 1, b.unresolved())
	assert.Len(t, st.saved, 1)
	assert.Contains(t, b.header.GetText(true), "3 total, 1 unresolved")

	b.nextUnresolved()
	assert.Equal(t, 2, b.list.GetCurrentItem())

	b.toggleResolved()
	b.nextUnresolved()
	assert.Equal(t, 2, b.list.GetCurrentItem(), "selection stays when everything is resolved")
	assert.Equal(t, 0, b.unresolved())
}
