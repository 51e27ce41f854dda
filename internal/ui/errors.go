package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tdd/internal/config"
	"tdd/internal/domain"
	"tdd/internal/storage"
)

// ErrorViewer displays test failures in an interactive TUI
type ErrorViewer struct {
	config  *config.Config
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(cfg *config.Config, st storage.Storage) *ErrorViewer {
	return &ErrorViewer{
		config:  cfg,
		storage: st,
	}
}

// View displays test failures in an interactive TUI. Marking a failure
// resolved is written back to storage immediately.
func (ev *ErrorViewer) View(results *domain.TestResultsOutput) error {
	if len(results.Details) == 0 {
		green.Println("✓ No test failures found!")
		return nil
	}

	b := newFailureBrowser(results, ev.storage)
	if err := b.app.SetRoot(b.layout(), true).SetFocus(b.list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// failureBrowser is the list/details pair of the failures viewer.
type failureBrowser struct {
	results *domain.TestResultsOutput
	storage storage.Storage

	app     *tview.Application
	list    *tview.List
	header  *tview.TextView
	stats   *tview.TextView
	details *tview.TextView
}

func newFailureBrowser(results *domain.TestResultsOutput, st storage.Storage) *failureBrowser {
	b := &failureBrowser{
		results: results,
		storage: st,
		app:     tview.NewApplication(),
		list: tview.NewList().
			ShowSecondaryText(false).
			SetHighlightFullLine(true),
		header:  tview.NewTextView().SetTextAlign(tview.AlignCenter).SetDynamicColors(true),
		stats:   tview.NewTextView().SetDynamicColors(true).SetWrap(false),
		details: tview.NewTextView().SetDynamicColors(true).SetWrap(true).SetWordWrap(true),
	}

	for i, f := range results.Details {
		b.list.AddItem(listItemText(f, i, f.Resolved), "", 0, nil)
	}
	b.list.SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	b.list.SetChangedFunc(func(int, string, string, rune) { b.showSelected() })
	b.list.SetInputCapture(b.listKeys)
	b.details.SetInputCapture(b.detailsKeys)

	b.refreshHeader()
	b.showSelected()
	return b
}

// layout puts the header above the list (one third) and the details pane.
func (b *failureBrowser) layout() tview.Primitive {
	right := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(b.stats, 3, 0, false).
		AddItem(tview.NewFlex().AddItem(b.details, 0, 1, false).AddItem(tview.NewBox(), 2, 0, false), 0, 1, false)

	body := tview.NewFlex().
		AddItem(b.list, 0, 1, true).
		AddItem(right, 0, 2, false)

	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(b.header, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(body, 0, 1, true)
}

func (b *failureBrowser) unresolved() int {
	n := 0
	for _, f := range b.results.Details {
		if !f.Resolved {
			n++
		}
	}
	return n
}

func (b *failureBrowser) refreshHeader() {
	b.header.SetText(fmt.Sprintf(" Failures (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] resolve, [yellow]N[white] next unresolved, → details, ← back, Ctrl+C exit ",
		len(b.results.Details), b.unresolved()))
}

func (b *failureBrowser) showSelected() {
	i := b.list.GetCurrentItem()
	if i < 0 || i >= len(b.results.Details) {
		return
	}
	f := b.results.Details[i]
	b.stats.SetText(formatFailureStats(f, i+1))
	b.details.SetText(formatFailureDetails(f)).ScrollToBeginning()
}

// toggleResolved flips the resolved mark of the selected failure and saves it.
func (b *failureBrowser) toggleResolved() {
	i := b.list.GetCurrentItem()
	if i < 0 || i >= len(b.results.Details) {
		return
	}
	f := &b.results.Details[i]
	f.Resolved = !f.Resolved
	b.list.SetItemText(i, listItemText(*f, i, f.Resolved), "")
	b.refreshHeader()
	b.showSelected()
	if err := b.storage.SaveOutput(b.results); err != nil {
		b.stats.SetText(fmt.Sprintf("[red]failed to save: %v[white]", err))
	}
}

// nextUnresolved moves the selection to the next unresolved failure, wrapping.
func (b *failureBrowser) nextUnresolved() {
	n := len(b.results.Details)
	cur := b.list.GetCurrentItem()
	for step := 1; step <= n; step++ {
		i := (cur + step) % n
		if !b.results.Details[i].Resolved {
			b.list.SetCurrentItem(i)
			return
		}
	}
}

func (b *failureBrowser) listKeys(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEnter, tcell.KeyRight:
		b.app.SetFocus(b.details)
		return nil
	case tcell.KeyCtrlC:
		b.app.Stop()
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'r', 'R':
			b.toggleResolved()
			return nil
		case 'n', 'N':
			b.nextUnresolved()
			return nil
		}
	}
	return event
}

func (b *failureBrowser) detailsKeys(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyLeft, tcell.KeyEsc:
		b.app.SetFocus(b.list)
		return nil
	case tcell.KeyCtrlC:
		b.app.Stop()
		return nil
	}
	return event
}

// listItemText is the label of one failure in the list, tagged with tview colors
func listItemText(failure domain.TestFailure, index int, resolved bool) string {
	name := failure.TestName
	if name == "" {
		name = fmt.Sprintf("Failure %d", index+1)
	}
	if failure.Scenario != "" {
		name += " " + failure.Scenario
	}
	if resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
}

// formatFailureDetails formats a failure for display using tview color tags ([red], [cyan], etc.)
func formatFailureDetails(failure domain.TestFailure) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[red]✗ Test: %s[white]\n\n", failure.TestName)

	if failure.Scenario != "" {
		fmt.Fprintf(w, "[cyan]Scenario:\t%s[white]\n", tview.Escape(failure.Scenario))
	}
	fmt.Fprintf(w, "[cyan]Mode:\t%s[white]\n", failure.Mode)
	fmt.Fprintf(w, "[yellow]Location:\t%s[white]\n\n", failure.Location())

	if failure.Message != "" {
		fmt.Fprintf(w, "[yellow]Message:[white]\n%s\n\n", tview.Escape(failure.Message))
	}

	// Printer output chained after the assertion
	if failure.Output != "" {
		lines := strings.Split(strings.TrimRight(failure.Output, "\n"), "\n")
		fmt.Fprintf(w, "[yellow]Output:[white]\n")
		for i, line := range lines {
			if i == maxOutputLines {
				fmt.Fprintf(w, "  [gray]... and %d more lines[white]\n", len(lines)-maxOutputLines)
				break
			}
			fmt.Fprintf(w, "  %s\n", tview.Escape(line))
		}
	}

	w.Flush()
	return builder.String()
}

const maxOutputLines = 20

// formatFailureStats formats the stats header for a failure
func formatFailureStats(failure domain.TestFailure, number int) string {
	name := failure.TestName
	if name == "" {
		name = fmt.Sprintf("Failure %d", number)
	}
	return fmt.Sprintf("[cyan]test:[white] [yellow]%s[white] [cyan]at:[white] [yellow]%s[white]\n", name, failure.Location())
}
