package explore

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
)

// spanKind classifies how a rune of the sample text is drawn.
type spanKind int

const (
	kindPlain spanKind = iota
	kindCandidate
	kindStale
	kindCursor
	kindSelection // kindSelection+i for the i-th selection style
)

// textPane shows the sample text with selections and the highlighted
// candidate, and owns the rune cursor.
type textPane struct {
	runes      []rune
	lineStarts []int
	matches    []*types.Match
	selections []*types.Selection
	highlight  *types.Span

	cursor  int // rune offset
	offset  int // first visible line
	hscroll int
	width   int
	height  int
	focused bool
}

func newTextPane() textPane {
	return textPane{lineStarts: []int{0}}
}

func (tp *textPane) setText(text string, matches []*types.Match) {
	tp.runes = []rune(text)
	tp.matches = matches
	tp.lineStarts = []int{0}
	for i, r := range tp.runes {
		if r == '\n' {
			tp.lineStarts = append(tp.lineStarts, i+1)
		}
	}
	tp.moveTo(tp.cursor)
}

// moveTo clamps pos into the text and scrolls it into view.
func (tp *textPane) moveTo(pos int) {
	tp.cursor = max(0, min(pos, len(tp.runes)-1))
	tp.ensureVisible()
}

func (tp textPane) lineOf(pos int) int {
	return sort.SearchInts(tp.lineStarts, pos+1) - 1
}

// lineEnd is the offset of the newline ending line i, or the text length.
func (tp textPane) lineEnd(i int) int {
	if i+1 < len(tp.lineStarts) {
		return tp.lineStarts[i+1] - 1
	}
	return len(tp.runes)
}

// moveLines moves the cursor n lines, keeping its column where possible.
func (tp *textPane) moveLines(n int) {
	line := tp.lineOf(tp.cursor)
	col := tp.cursor - tp.lineStarts[line]
	target := max(0, min(line+n, len(tp.lineStarts)-1))
	if target == line {
		return
	}
	pos := min(tp.lineStarts[target]+col, tp.lineEnd(target))
	tp.moveTo(pos)
}

// nextMatchStart returns the closest match start after the cursor.
func (tp textPane) nextMatchStart() (int, bool) {
	best, ok := 0, false
	for _, m := range tp.matches {
		if m.Start > tp.cursor && (!ok || m.Start < best) {
			best, ok = m.Start, true
		}
	}
	return best, ok
}

// prevMatchStart returns the closest match start before the cursor.
func (tp textPane) prevMatchStart() (int, bool) {
	best, ok := 0, false
	for _, m := range tp.matches {
		if m.Start < tp.cursor && (!ok || m.Start > best) {
			best, ok = m.Start, true
		}
	}
	return best, ok
}

// selectionAt returns the selection covering the cursor, if any.
func (tp textPane) selectionAt() *types.Selection {
	for _, s := range tp.selections {
		if s.Contains(tp.cursor) {
			return s
		}
	}
	return nil
}

func (tp textPane) Update(msg tea.Msg) (textPane, tea.Cmd) {
	if !tp.focused || len(tp.runes) == 0 {
		return tp, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case keyMatches(msg, defaultKeys.Left):
			tp.moveTo(tp.cursor - 1)
		case keyMatches(msg, defaultKeys.Right):
			tp.moveTo(tp.cursor + 1)
		case keyMatches(msg, defaultKeys.Up):
			tp.moveLines(-1)
		case keyMatches(msg, defaultKeys.Down):
			tp.moveLines(1)
		case keyMatches(msg, defaultKeys.PageUp):
			tp.moveLines(-tp.visibleRows())
		case keyMatches(msg, defaultKeys.PageDown):
			tp.moveLines(tp.visibleRows())
		case keyMatches(msg, defaultKeys.NextMatch):
			if pos, ok := tp.nextMatchStart(); ok {
				tp.moveTo(pos)
			}
		case keyMatches(msg, defaultKeys.PrevMatch):
			if pos, ok := tp.prevMatchStart(); ok {
				tp.moveTo(pos)
			}
		case keyMatches(msg, defaultKeys.Home):
			tp.moveTo(0)
		case keyMatches(msg, defaultKeys.End):
			tp.moveTo(len(tp.runes) - 1)
		}
	}

	return tp, nil
}

func (tp textPane) kindAt(pos int) spanKind {
	if pos == tp.cursor {
		return kindCursor
	}
	for i, s := range tp.selections {
		if s.Contains(pos) {
			if s.Stale {
				return kindStale
			}
			return kindSelection + spanKind(i%len(selectionStyles))
		}
	}
	if tp.highlight != nil && tp.highlight.Contains(pos) {
		return kindCandidate
	}
	return kindPlain
}

func styleFor(k spanKind) lipgloss.Style {
	switch {
	case k == kindCursor:
		return cursorStyle
	case k == kindStale:
		return staleStyle
	case k == kindCandidate:
		return candidateStyle
	case k >= kindSelection:
		return selectionStyles[int(k-kindSelection)]
	}
	return lipgloss.NewStyle()
}

// renderLine draws runes [from, to) grouping equally styled runs.
func (tp textPane) renderLine(from, to int) string {
	var b strings.Builder
	runStart := from
	flush := func(end int) {
		if end <= runStart {
			return
		}
		seg := strings.ReplaceAll(string(tp.runes[runStart:end]), "\t", " ")
		k := tp.kindAt(runStart)
		if k == kindPlain {
			b.WriteString(seg)
		} else {
			b.WriteString(styleFor(k).Render(seg))
		}
		runStart = end
	}
	for pos := from; pos < to; pos++ {
		if tp.kindAt(pos) != tp.kindAt(runStart) {
			flush(pos)
		}
	}
	flush(to)
	return b.String()
}

func (tp textPane) View() string {
	if tp.width <= 0 || tp.height <= 0 {
		return ""
	}

	contentWidth := tp.width - 4

	var lines []string
	if len(tp.runes) == 0 {
		lines = append(lines, "  No text (press t to enter some)")
	} else {
		end := min(tp.offset+tp.visibleRows(), len(tp.lineStarts))
		for i := tp.offset; i < end; i++ {
			from := min(tp.lineStarts[i]+tp.hscroll, tp.lineEnd(i))
			to := min(tp.lineEnd(i), from+contentWidth)
			line := tp.renderLine(from, to)
			// The cursor may rest on the newline itself.
			if tp.cursor == tp.lineEnd(i) && tp.cursor < len(tp.runes) && to == tp.lineEnd(i) {
				line += cursorStyle.Render(" ")
			}
			lines = append(lines, line)
		}
	}

	var b strings.Builder
	for i, line := range lines {
		b.WriteString(padRight(line, contentWidth))
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	for i := len(lines); i < tp.visibleRows(); i++ {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", contentWidth))
	}

	pos := types.ComputeLineColumn(tp.runes, tp.cursor)
	title := titleStyle.Render(" Text ")
	if len(tp.runes) > 0 {
		title = titleStyle.Render(" Text " + formatPoint(pos) + " ")
	}

	borderStyle := inactiveBorderStyle
	if tp.focused {
		borderStyle = activeBorderStyle
	}

	content := borderStyle.
		Width(tp.width - 2).
		Height(tp.height - 3).
		Render(b.String())

	return lipgloss.JoinVertical(lipgloss.Left, title, content)
}

func (tp textPane) visibleRows() int {
	return max(1, tp.height-3) // title + border
}

func (tp *textPane) ensureVisible() {
	line := tp.lineOf(tp.cursor)
	if line < tp.offset {
		tp.offset = line
	}
	if line >= tp.offset+tp.visibleRows() {
		tp.offset = line - tp.visibleRows() + 1
	}

	col := tp.cursor - tp.lineStarts[max(0, line)]
	contentWidth := max(1, tp.width-4)
	if col < tp.hscroll {
		tp.hscroll = col
	}
	if col >= tp.hscroll+contentWidth {
		tp.hscroll = col - contentWidth + 1
	}
}

func (tp *textPane) setSize(w, h int) {
	tp.width = w
	tp.height = h
	tp.ensureVisible()
}
