package explore

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
)

// selectionsPane lists the committed selections in text order.
type selectionsPane struct {
	rows    []*types.Selection
	cursor  int
	offset  int
	width   int
	height  int
	focused bool
}

func newSelectionsPane() selectionsPane {
	return selectionsPane{}
}

func (sp *selectionsPane) setRows(rows []*types.Selection) {
	sp.rows = rows
	if sp.cursor >= len(sp.rows) {
		sp.cursor = max(0, len(sp.rows)-1)
	}
	sp.ensureVisible()
}

func (sp selectionsPane) selected() *types.Selection {
	if sp.cursor < 0 || sp.cursor >= len(sp.rows) {
		return nil
	}
	return sp.rows[sp.cursor]
}

func (sp selectionsPane) staleCount() int {
	n := 0
	for _, s := range sp.rows {
		if s.Stale {
			n++
		}
	}
	return n
}

func (sp selectionsPane) Update(msg tea.Msg) (selectionsPane, tea.Cmd) {
	if !sp.focused {
		return sp, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case keyMatches(msg, defaultKeys.Up):
			if sp.cursor > 0 {
				sp.cursor--
				sp.ensureVisible()
			}
		case keyMatches(msg, defaultKeys.Down):
			if sp.cursor < len(sp.rows)-1 {
				sp.cursor++
				sp.ensureVisible()
			}
		case keyMatches(msg, defaultKeys.Home):
			sp.cursor = 0
			sp.offset = 0
		case keyMatches(msg, defaultKeys.End):
			sp.cursor = max(0, len(sp.rows)-1)
			sp.ensureVisible()
		}
	}

	return sp, nil
}

func (sp selectionsPane) View() string {
	if sp.width <= 0 || sp.height <= 0 {
		return ""
	}

	contentWidth := sp.width - 4
	var b strings.Builder

	if len(sp.rows) == 0 {
		b.WriteString(padRight("  Nothing selected", contentWidth))
	}

	visibleEnd := min(sp.offset+sp.visibleRows(), len(sp.rows))
	for i := sp.offset; i < visibleEnd; i++ {
		s := sp.rows[i]

		marker := "  "
		if s.Stale {
			marker = "! "
		}
		line := fmt.Sprintf("%s%s %q -> %s",
			marker, s.RecognizerName, oneLine(s.Text), s.EmitPattern)
		line = truncateString(line, contentWidth)

		switch {
		case i == sp.cursor && sp.focused:
			line = selectedRowStyle.Width(contentWidth).Render(line)
		case s.Stale:
			line = staleStyle.Render(line)
		default:
			line = selectionStyles[i%len(selectionStyles)].Render(line)
		}

		b.WriteString(padRight(line, contentWidth))
		if i < visibleEnd-1 {
			b.WriteString("\n")
		}
	}

	title := fmt.Sprintf(" Selections (%d) ", len(sp.rows))
	if n := sp.staleCount(); n > 0 {
		title = fmt.Sprintf(" Selections (%d, %d stale) ", len(sp.rows), n)
	}

	borderStyle := inactiveBorderStyle
	if sp.focused {
		borderStyle = activeBorderStyle
	}

	content := borderStyle.
		Width(sp.width - 2).
		Height(sp.height - 3).
		Render(b.String())

	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), content)
}

func (sp selectionsPane) visibleRows() int {
	return max(1, sp.height-3) // title + border
}

func (sp *selectionsPane) ensureVisible() {
	if sp.cursor < sp.offset {
		sp.offset = sp.cursor
	}
	if sp.cursor >= sp.offset+sp.visibleRows() {
		sp.offset = sp.cursor - sp.visibleRows() + 1
	}
}

func (sp *selectionsPane) setSize(w, h int) {
	sp.width = w
	sp.height = h
}

// Helper functions

func keyMatches(msg tea.KeyMsg, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func truncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, width int) string {
	visLen := lipgloss.Width(s)
	if visLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visLen)
}

// stripAnsi removes ANSI escape sequences for re-styling.
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}
