// Package observability provides formatted output for the CLI: category
// listings, progress summaries and assignment checklists.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/jonathan/course-progress/internal/catalog"
	"github.com/jonathan/course-progress/internal/progress"
	"github.com/jonathan/course-progress/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// courseErrorMessage replaces the checklist of a course that failed to load
	courseErrorMessage = "Could not load assignments from this course"
)

// Printer handles formatted output for the CLI
type Printer struct {
	out   io.Writer
	theme progress.Theme
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer, theme progress.Theme) *Printer {
	return &Printer{out: out, theme: theme}
}

func (p *Printer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	if p.theme == progress.ThemeDark {
		t.SetStyle(table.StyleColoredDark)
	} else {
		t.SetStyle(table.StyleLight)
	}
	return t
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		line = text.Snip(line, boxWidth-4, "...")
		fmt.Fprintf(p.out, "│ %s │\n", text.Pad(line, boxWidth-4, ' '))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCategories lists the catalog, marking the selected category.
func (p *Printer) PrintCategories(cat *catalog.Catalog, selected string) {
	if cat == nil {
		return
	}

	t := p.newTable()
	t.AppendHeader(table.Row{"", "ID", "Name", "Courses"})
	for _, category := range cat.Categories {
		marker := ""
		if category.ID == selected {
			marker = "*"
		}
		t.AppendRow(table.Row{marker, category.ID, category.Name, len(category.Courses)})
	}
	t.Render()
}

// PrintSummary outputs overall progress, the countdown, pacing, and a
// per-course table.
func (p *Printer) PrintSummary(category types.Category, summary progress.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d of %d completed (%d%%)\n", summary.Completed, summary.Total, summary.Percent))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Time until last day: %s\n", summary.Countdown))
	sb.WriteString(pacing(summary))
	if summary.Orphaned > 0 {
		sb.WriteString(fmt.Sprintf("\n%d completed item(s) no longer listed", summary.Orphaned))
	}
	p.printBox(strings.ToUpper(category.Name)+" PROGRESS", sb.String())

	t := p.newTable()
	t.AppendHeader(table.Row{"Course", "Completed", "Progress"})
	for _, course := range summary.Courses {
		if course.Error {
			t.AppendRow(table.Row{course.Name, courseErrorMessage, ""})
			continue
		}
		t.AppendRow(table.Row{
			course.Name,
			fmt.Sprintf("%d/%d completed", course.Completed, course.Total),
			fmt.Sprintf("%d%%", course.Percent),
		})
	}
	t.AppendFooter(table.Row{"Total", fmt.Sprintf("%d/%d", summary.Completed, summary.Total), fmt.Sprintf("%d%%", summary.Percent)})
	t.Render()
}

func pacing(summary progress.Summary) string {
	if summary.Countdown.Ended {
		return "Pace: the deadline has passed"
	}
	if summary.Total-summary.Completed <= 0 {
		return "Pace: everything is done"
	}
	return fmt.Sprintf("Pace: %.2f assignments per day", summary.PerDay)
}

// PrintAssignments outputs every course's checklist. Courses that failed to
// load show an error line in place of their assignments.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintAssignments(result *types.CategoryResult, record types.CompletionRecord) {
	if result == nil {
		return
	}

	for i, url := range result.Order {
		course := result.Courses[url]
		if i > 0 {
			fmt.Fprintln(p.out)
		}
		fmt.Fprintf(p.out, "%s\n", course.Name)
		if course.Error {
			fmt.Fprintf(p.out, "  ⚠ %s\n", courseErrorMessage)
			continue
		}
		if len(course.Assignments) == 0 {
			fmt.Fprintln(p.out, "  (no assignments found)")
			continue
		}
		for _, assignment := range course.Assignments {
			mark := " "
			if record.Contains(url, assignment.Href) {
				mark = "x"
			}
			fmt.Fprintf(p.out, "  [%s] %s\n", mark, assignment.Name)
			fmt.Fprintf(p.out, "      %s\n", assignment.Href)
		}
	}
}

// PrintToggle reports the new state of a toggled assignment.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintToggle(href string, completed bool) {
	if completed {
		fmt.Fprintf(p.out, "✓ Marked complete: %s\n", href)
		return
	}
	fmt.Fprintf(p.out, "○ Marked incomplete: %s\n", href)
}
