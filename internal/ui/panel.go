package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/todolist/internal/app"
)

// ProgressBar renders a bar with a done/total counter.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf("] %d/%d", done, total)
}

// Panel draws lines inside a bordered box.
func Panel(w io.Writer, t Theme, lines []string) {
	fmt.Fprintln(w, panelString(t, strings.Join(lines, "\n")))
}

func panelString(t Theme, inner string) string {
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Render(inner)
}

// Stats counts done and pending rows.
func Stats(rows []app.Row) (done, pending int) {
	for _, r := range rows {
		if r.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

// RenderRows numbers rows from 1, the way `todo done <n>` addresses them.
func RenderRows(t Theme, rows []app.Row) []string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		title := r.Title
		if r.Done {
			title = t.Done.Render(title)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("%2d.", r.Index+1)), t.Box(r.Done), title))
	}
	return lines
}

// GroupLines splits rows into pending and done sections. Rows keep their
// list numbers so `todo done <n>` still addresses them.
func GroupLines(t Theme, rows []app.Row) []string {
	var pend, done []app.Row
	for _, r := range rows {
		if r.Done {
			done = append(done, r)
		} else {
			pend = append(pend, r)
		}
	}
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, RenderRows(t, pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, RenderRows(t, done)...)
	}
	return lines
}

// ListLines is the full `todo ls` panel body.
func ListLines(t Theme, labels app.Labels, rows []app.Row, group bool) []string {
	d, p := Stats(rows)
	header := fmt.Sprintf("%s  %s %d  %s %d",
		t.Title.Render(labels.Title),
		t.Success.Render(t.BoxChecked), d,
		t.Pending.Render("•"), p,
	)
	lines := []string{header, t.Muted.Render(ProgressBar(d, d+p, 28)), ""}
	switch {
	case len(rows) == 0:
		lines = append(lines, t.Muted.Render(labels.Empty))
	case group:
		lines = append(lines, GroupLines(t, rows)...)
	default:
		lines = append(lines, RenderRows(t, rows)...)
	}
	return lines
}

// OK prints a success line.
func OK(w io.Writer, t Theme, msg string) {
	fmt.Fprintln(w, t.Success.Render(t.SymOK+" "+msg))
}

// Fail prints an error line.
func Fail(w io.Writer, t Theme, msg string) {
	fmt.Fprintln(w, t.Error.Render(t.SymFail+" "+msg))
}
