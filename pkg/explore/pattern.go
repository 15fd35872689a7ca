package explore

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/praetorian-inc/rxbuilder/pkg/composer"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
)

// patternPane shows the composed pattern, the option toggles and the
// highlighted candidate.
type patternPane struct {
	pattern   composer.Pattern
	options   types.Options
	candidate *types.Match
	text      []rune
	width     int
	height    int
}

func newPatternPane() patternPane {
	return patternPane{}
}

func (pp patternPane) View() string {
	if pp.width <= 0 || pp.height <= 0 {
		return ""
	}

	contentWidth := pp.width - 4

	var lines []string
	for _, chunk := range wrapRunes(pp.pattern.Body, contentWidth-2) {
		lines = append(lines, "  "+patternStyle.Render(chunk))
	}
	if pp.pattern.Body == "" {
		lines = append(lines, "  "+helpDescStyle.Render("(empty)"))
	}

	flags := pp.pattern.Flags
	if flags == "" {
		flags = "(none)"
	}
	lines = append(lines, fmt.Sprintf("  %s %s",
		fieldLabelStyle.Render("Flags:"),
		fieldValueStyle.Render(flags)))

	o := pp.options
	lines = append(lines, "  "+strings.Join([]string{
		renderFlag("I ignore case", o.CaseInsensitive),
		renderFlag("M multiline", o.Multiline),
		renderFlag("S dot all", o.DotMatchesNewline),
		renderFlag("W whole line", o.MatchWholeLine),
		renderFlag("L lowercase", o.GenerateLowercase),
	}, "  "))

	if c := pp.candidate; c != nil {
		lines = append(lines, "")
		lines = append(lines, renderCandidateDetails(c, pp.text, contentWidth)...)
	}

	if len(lines) > pp.visibleRows() {
		lines = lines[:pp.visibleRows()]
	}

	var b strings.Builder
	for i, line := range lines {
		b.WriteString(padRight(line, contentWidth))
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}

	title := titleStyle.Render(" Pattern ")

	content := inactiveBorderStyle.
		Width(pp.width - 2).
		Height(pp.height - 3).
		Render(b.String())

	return lipgloss.JoinVertical(lipgloss.Left, title, content)
}

func renderCandidateDetails(m *types.Match, text []rune, maxWidth int) []string {
	r := m.Recognizer
	lines := []string{
		fmt.Sprintf("  %s %s",
			fieldLabelStyle.Render("Candidate:"),
			fieldValueStyle.Render(fmt.Sprintf("%s (%s, priority %d)", r.Name, r.ID, r.Priority))),
		fmt.Sprintf("  %s %s - %s (chars %d-%d)",
			fieldLabelStyle.Render("Location:"),
			formatPoint(types.ComputeLineColumn(text, m.Start)),
			formatPoint(types.ComputeLineColumn(text, m.End)),
			m.Start, m.End),
		fmt.Sprintf("  %s %s",
			fieldLabelStyle.Render("Emits:"),
			patternStyle.Render(truncateString(r.Emit, maxWidth-10))),
	}
	if r.Description != "" {
		lines = append(lines, "  "+helpDescStyle.Render(truncateString(r.Description, maxWidth-2)))
	}
	return lines
}

func formatPoint(p types.SourcePoint) string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// wrapRunes splits s into chunks of at most width runes.
func wrapRunes(s string, width int) []string {
	if s == "" {
		return nil
	}
	if width <= 0 {
		return []string{s}
	}
	r := []rune(s)
	var out []string
	for len(r) > width {
		out = append(out, string(r[:width]))
		r = r[width:]
	}
	return append(out, string(r))
}

func (pp patternPane) visibleRows() int {
	return max(1, pp.height-3) // title + border
}

func (pp *patternPane) setSize(w, h int) {
	pp.width = w
	pp.height = h
}
