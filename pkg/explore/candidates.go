package explore

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
)

// candidatesPane lists every interpretation covering the text cursor, in
// ranked order.
type candidatesPane struct {
	rows    []*types.Match
	cursor  int
	offset  int
	width   int
	height  int
	focused bool

	// Column widths
	colRecognizer int
	colText       int
	colPriority   int
	colSpan       int
}

func newCandidatesPane() candidatesPane {
	return candidatesPane{}
}

// setRows replaces the rows, keeping the cursor on the same match when it
// is still present.
func (cp *candidatesPane) setRows(rows []*types.Match) {
	prev := cp.selected()
	cp.rows = rows
	cp.cursor = 0
	if prev != nil {
		for i, r := range rows {
			if r.Key() == prev.Key() {
				cp.cursor = i
				break
			}
		}
	}
	cp.ensureVisible()
}

// reset drops the rows so the next setRows starts at the top.
func (cp *candidatesPane) reset() {
	cp.rows = nil
	cp.cursor = 0
	cp.offset = 0
}

func (cp candidatesPane) selected() *types.Match {
	if cp.cursor < 0 || cp.cursor >= len(cp.rows) {
		return nil
	}
	return cp.rows[cp.cursor]
}

func (cp candidatesPane) Update(msg tea.Msg) (candidatesPane, tea.Cmd) {
	if !cp.focused {
		return cp, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case keyMatches(msg, defaultKeys.Up):
			if cp.cursor > 0 {
				cp.cursor--
				cp.ensureVisible()
			}
		case keyMatches(msg, defaultKeys.Down):
			if cp.cursor < len(cp.rows)-1 {
				cp.cursor++
				cp.ensureVisible()
			}
		case keyMatches(msg, defaultKeys.Home):
			cp.cursor = 0
			cp.offset = 0
		case keyMatches(msg, defaultKeys.End):
			cp.cursor = max(0, len(cp.rows)-1)
			cp.ensureVisible()
		case keyMatches(msg, defaultKeys.PageDown):
			cp.cursor = max(0, min(cp.cursor+cp.visibleRows(), len(cp.rows)-1))
			cp.ensureVisible()
		case keyMatches(msg, defaultKeys.PageUp):
			cp.cursor = max(cp.cursor-cp.visibleRows(), 0)
			cp.ensureVisible()
		}
	}

	return cp, nil
}

func (cp candidatesPane) View() string {
	if cp.width <= 0 || cp.height <= 0 {
		return ""
	}

	// Calculate column widths
	contentWidth := cp.width - 4 // borders
	cp.colPriority = 4
	cp.colSpan = 9
	cp.colRecognizer = min(24, contentWidth/3)
	cp.colText = contentWidth - cp.colRecognizer - cp.colPriority - cp.colSpan - 4 // separators
	if cp.colText < 6 {
		cp.colText = 6
	}

	var b strings.Builder

	header := fmt.Sprintf(" %-*s %-*s %*s %-*s",
		cp.colRecognizer, "Recognizer",
		cp.colText, "Text",
		cp.colPriority, "Pri",
		cp.colSpan, "Span",
	)
	b.WriteString(headerRowStyle.Width(contentWidth).Render(truncateString(header, contentWidth)))
	b.WriteString("\n")

	// Separator
	b.WriteString(strings.Repeat("─", contentWidth))
	b.WriteString("\n")

	if len(cp.rows) == 0 {
		b.WriteString(padRight("  No candidates at cursor", contentWidth))
	}

	// Data rows
	visibleEnd := min(cp.offset+cp.visibleRows(), len(cp.rows))
	for i := cp.offset; i < visibleEnd; i++ {
		row := cp.rows[i]

		line := fmt.Sprintf(" %-*s %-*s %*d %-*s",
			cp.colRecognizer, truncateString(row.Recognizer.Name, cp.colRecognizer),
			cp.colText, truncateString(oneLine(row.Text), cp.colText),
			cp.colPriority, row.Priority(),
			cp.colSpan, fmt.Sprintf("%d-%d", row.Start, row.End),
		)

		if i == cp.cursor && cp.focused {
			line = selectedRowStyle.Width(contentWidth).Render(stripAnsi(line))
		}

		b.WriteString(padRight(line, contentWidth))
		if i < visibleEnd-1 {
			b.WriteString("\n")
		}
	}

	title := titleStyle.Render(fmt.Sprintf(" Candidates (%d) ", len(cp.rows)))

	borderStyle := inactiveBorderStyle
	if cp.focused {
		borderStyle = activeBorderStyle
	}

	content := borderStyle.
		Width(cp.width - 2).
		Height(cp.height - 3).
		Render(b.String())

	return lipgloss.JoinVertical(lipgloss.Left, title, content)
}

func (cp candidatesPane) visibleRows() int {
	return max(1, cp.height-6) // title + border + header + separator
}

func (cp *candidatesPane) ensureVisible() {
	if cp.cursor < cp.offset {
		cp.offset = cp.cursor
	}
	if cp.cursor >= cp.offset+cp.visibleRows() {
		cp.offset = cp.cursor - cp.visibleRows() + 1
	}
}

func (cp *candidatesPane) setSize(w, h int) {
	cp.width = w
	cp.height = h
}

// oneLine flattens line breaks so a match fits in a table cell.
func oneLine(s string) string {
	return strings.NewReplacer("\n", "⏎", "\t", " ").Replace(s)
}
