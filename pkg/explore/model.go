// Package explore is the interactive terminal pattern builder: the user moves
// a cursor through the sample text, picks interpretations from the ranked
// candidates, and watches the composed pattern update.
package explore

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/praetorian-inc/rxbuilder/pkg/composer"
	"github.com/praetorian-inc/rxbuilder/pkg/session"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
)

// focusedPane tracks which pane has keyboard focus.
type focusedPane int

const (
	paneText focusedPane = iota
	paneCandidates
	paneSelections
	paneCount // sentinel
)

// overlay tracks which modal overlay is active.
type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayInput
)

// inputTarget records what the input overlay edits.
type inputTarget int

const (
	inputText       inputTarget = iota // replace the sample text
	inputEmit                          // change a selection's emitted fragment
	inputSelectEmit                    // select a candidate with a custom fragment
)

// Model is the root Bubble Tea model for the explore TUI.
type Model struct {
	session    *session.Session
	text       textPane
	candidates candidatesPane
	selections selectionsPane
	pattern    patternPane

	focus         focusedPane
	activeOverlay overlay

	// Help state
	helpContent string
	helpOffset  int

	// Input overlay state
	input       textinput.Model
	inputTarget inputTarget
	inputTitle  string
	inputID     string
	inputMatch  *types.Match

	status    string
	statusErr bool

	width  int
	height int
}

// New creates a Model over sess. The session's current text, selections and
// options are shown as they are.
func New(sess *session.Session) Model {
	m := Model{
		session:    sess,
		text:       newTextPane(),
		candidates: newCandidatesPane(),
		selections: newSelectionsPane(),
		pattern:    newPatternPane(),
		focus:      paneText,
	}
	m.text.focused = true

	m.refresh()
	return m
}

// Pattern returns the pattern composed from the current selections.
func (m Model) Pattern() composer.Pattern {
	return m.session.Compose()
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("rxbuilder explore")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		// Handle overlays first
		if m.activeOverlay != overlayNone {
			return m.updateOverlay(msg)
		}

		// Global keys (work regardless of focus)
		switch {
		case keyMatches(msg, defaultKeys.ForceQuit):
			return m, tea.Quit
		case keyMatches(msg, defaultKeys.Quit):
			return m, tea.Quit
		case keyMatches(msg, defaultKeys.ToggleHelp):
			m.activeOverlay = overlayHelp
			m.helpOffset = 0
			m.helpContent = renderHelp()
			return m, nil
		case keyMatches(msg, defaultKeys.FocusText):
			m.setFocus(paneText)
			return m, nil
		case keyMatches(msg, defaultKeys.FocusCandidates):
			m.setFocus(paneCandidates)
			return m, nil
		case keyMatches(msg, defaultKeys.FocusSelections):
			m.setFocus(paneSelections)
			return m, nil
		case keyMatches(msg, defaultKeys.CycleFocus):
			m.setFocus((m.focus + 1) % paneCount)
			return m, nil
		case keyMatches(msg, defaultKeys.AutoSelect):
			added := m.session.AutoSelect()
			m.setStatus(fmt.Sprintf("auto-selected %d", len(added)))
			m.refresh()
			return m, nil
		case keyMatches(msg, defaultKeys.Clear):
			m.session.ClearSelections()
			m.setStatus("selections cleared")
			m.refresh()
			return m, nil
		case keyMatches(msg, defaultKeys.EditText):
			return m, m.startTextInput()
		}

		if m.toggleOption(msg) {
			m.refresh()
			return m, nil
		}

		// Delegate to focused pane
		switch m.focus {
		case paneText:
			return m.updateText(msg)
		case paneCandidates:
			return m.updateCandidates(msg)
		case paneSelections:
			return m.updateSelections(msg)
		}
	}

	return m, nil
}

func (m Model) updateText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, defaultKeys.Select):
		m.selectCandidate(m.candidates.selected())
		return m, nil
	case keyMatches(msg, defaultKeys.Deselect):
		if s := m.text.selectionAt(); s != nil {
			m.deselect(s.ID)
		}
		return m, nil
	case keyMatches(msg, defaultKeys.EditEmit):
		if s := m.text.selectionAt(); s != nil {
			return m, m.startEmitInput(s)
		}
		return m, nil
	}

	prevCursor := m.text.cursor
	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	if m.text.cursor != prevCursor {
		m.candidates.reset()
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateCandidates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, defaultKeys.Select):
		m.selectCandidate(m.candidates.selected())
		return m, nil
	case keyMatches(msg, defaultKeys.EditEmit):
		if c := m.candidates.selected(); c != nil {
			return m, m.startSelectEmitInput(c)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.candidates, cmd = m.candidates.Update(msg)
	m.syncHighlight()
	return m, cmd
}

func (m Model) updateSelections(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.selections.selected()
	switch {
	case keyMatches(msg, defaultKeys.Select):
		if s != nil {
			m.text.moveTo(s.Start)
			m.candidates.reset()
			m.refresh()
		}
		return m, nil
	case keyMatches(msg, defaultKeys.Deselect):
		if s != nil {
			m.deselect(s.ID)
		}
		return m, nil
	case keyMatches(msg, defaultKeys.EditEmit):
		if s != nil {
			return m, m.startEmitInput(s)
		}
		return m, nil
	case keyMatches(msg, defaultKeys.Reanchor):
		if s != nil {
			m.reanchor(s, m.candidates.selected())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.selections, cmd = m.selections.Update(msg)
	return m, cmd
}

func (m *Model) updateOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.activeOverlay {
	case overlayHelp:
		switch {
		case keyMatches(msg, defaultKeys.Quit),
			keyMatches(msg, defaultKeys.ForceQuit),
			keyMatches(msg, defaultKeys.ToggleHelp):
			m.activeOverlay = overlayNone
		case keyMatches(msg, defaultKeys.Down):
			m.helpOffset++
		case keyMatches(msg, defaultKeys.Up):
			if m.helpOffset > 0 {
				m.helpOffset--
			}
		case keyMatches(msg, defaultKeys.PageDown):
			m.helpOffset += m.height / 2
		case keyMatches(msg, defaultKeys.PageUp):
			m.helpOffset = max(0, m.helpOffset-m.height/2)
		}
	case overlayInput:
		switch msg.String() {
		case "enter":
			m.commitInput()
			m.activeOverlay = overlayNone
			m.input.Blur()
		case "esc", "ctrl+c":
			m.activeOverlay = overlayNone
			m.input.Blur()
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return *m, cmd
		}
	}
	return *m, nil
}

// toggleOption flips a pattern option bound to msg.
func (m *Model) toggleOption(msg tea.KeyMsg) bool {
	o := m.session.Options()
	switch {
	case keyMatches(msg, defaultKeys.ToggleIgnoreCase):
		o.CaseInsensitive = !o.CaseInsensitive
	case keyMatches(msg, defaultKeys.ToggleMultiline):
		o.Multiline = !o.Multiline
	case keyMatches(msg, defaultKeys.ToggleDotAll):
		o.DotMatchesNewline = !o.DotMatchesNewline
	case keyMatches(msg, defaultKeys.ToggleWholeLine):
		o.MatchWholeLine = !o.MatchWholeLine
	case keyMatches(msg, defaultKeys.ToggleLowercase):
		o.GenerateLowercase = !o.GenerateLowercase
	default:
		return false
	}
	m.session.SetOptions(o)
	return true
}

func (m *Model) selectCandidate(c *types.Match) {
	if c == nil {
		m.setError(fmt.Errorf("no candidate at cursor"))
		return
	}
	sel, err := m.session.Select(c.Start, c.End, c.RecognizerID())
	if err != nil {
		m.setError(err)
		return
	}
	m.setStatus(fmt.Sprintf("selected %s %q", sel.RecognizerName, sel.Text))
	m.refresh()
}

func (m *Model) deselect(id string) {
	if m.session.Deselect(id) {
		m.setStatus("deselected")
	}
	m.refresh()
}

func (m *Model) reanchor(s *types.Selection, c *types.Match) {
	if c == nil {
		m.setError(fmt.Errorf("move the text cursor onto the new location first"))
		return
	}
	if err := m.session.Reanchor(s.ID, c.Start, c.End, c.RecognizerID()); err != nil {
		m.setError(err)
		return
	}
	m.setStatus(fmt.Sprintf("reanchored to %d-%d", c.Start, c.End))
	m.refresh()
}

func (m *Model) newInput(title, value string) tea.Cmd {
	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.inputTitle = title
	m.activeOverlay = overlayInput
	return m.input.Focus()
}

func (m *Model) startTextInput() tea.Cmd {
	if strings.Contains(m.session.Text(), "\n") {
		m.setError(fmt.Errorf("multi-line text cannot be edited here; pass it with --file"))
		return nil
	}
	m.inputTarget = inputText
	return m.newInput(" Text (enter to rescan, esc to cancel) ", m.session.Text())
}

func (m *Model) startEmitInput(s *types.Selection) tea.Cmd {
	m.inputTarget = inputEmit
	m.inputID = s.ID
	return m.newInput(" Emit pattern (enter to save, esc to cancel) ", s.EmitPattern)
}

func (m *Model) startSelectEmitInput(c *types.Match) tea.Cmd {
	m.inputTarget = inputSelectEmit
	m.inputMatch = c
	return m.newInput(" Select with pattern (enter to select, esc to cancel) ", c.Recognizer.Emit)
}

func (m *Model) commitInput() {
	value := m.input.Value()
	switch m.inputTarget {
	case inputText:
		stale := m.session.SetText(value)
		m.candidates.reset()
		if len(stale) > 0 {
			m.setStatus(fmt.Sprintf("%d selections went stale", len(stale)))
		} else {
			m.setStatus("rescanned")
		}
	case inputEmit:
		if err := m.session.SetEmitPattern(m.inputID, value); err != nil {
			m.setError(err)
			return
		}
		m.setStatus("emit pattern updated")
	case inputSelectEmit:
		c := m.inputMatch
		if c == nil {
			return
		}
		if _, err := m.session.SelectWithPattern(c.Start, c.End, c.RecognizerID(), value); err != nil {
			m.setError(err)
			return
		}
		m.setStatus("selected with custom pattern")
	}
	m.refresh()
}

// refresh pulls the session state into every pane.
func (m *Model) refresh() {
	m.text.selections = m.session.Selections()
	m.text.setText(m.session.Text(), m.session.Matches())
	m.candidates.setRows(m.session.Candidates(m.text.cursor))
	m.selections.setRows(m.text.selections)
	m.pattern.pattern = m.session.Compose()
	m.pattern.options = m.session.Options()
	m.pattern.text = m.text.runes
	m.syncHighlight()
}

func (m *Model) syncHighlight() {
	c := m.candidates.selected()
	m.pattern.candidate = c
	if c == nil {
		m.text.highlight = nil
		return
	}
	span := c.Span
	m.text.highlight = &span
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	if kind := types.Kind(err); kind != "internal" {
		m.status = kind + ": " + err.Error()
	} else {
		m.status = err.Error()
	}
	m.statusErr = true
}

func (m *Model) setFocus(p focusedPane) {
	m.text.focused = p == paneText
	m.candidates.focused = p == paneCandidates
	m.selections.focused = p == paneSelections
	m.focus = p
}

// updateLayout sizes the panes for the current terminal.
func (m *Model) updateLayout() {
	contentHeight := m.height - 2 // status bar + padding
	patternHeight := min(10, contentHeight/3)
	textHeight := (contentHeight - patternHeight) / 2
	listHeight := contentHeight - patternHeight - textHeight

	candidatesWidth := m.width * 55 / 100

	m.text.setSize(m.width, textHeight)
	m.candidates.setSize(candidatesWidth, listHeight)
	m.selections.setSize(m.width-candidatesWidth, listHeight)
	m.pattern.setSize(m.width, patternHeight)
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Render overlays
	if m.activeOverlay != overlayNone {
		return m.renderOverlay()
	}

	m.updateLayout()

	lists := lipgloss.JoinHorizontal(lipgloss.Top, m.candidates.View(), m.selections.View())
	mainContent := lipgloss.JoinVertical(lipgloss.Left, m.text.View(), lists, m.pattern.View())

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, m.renderStatusBar())
}

func (m *Model) renderStatusBar() string {
	left := statusBarStyle.Render(" " + m.status)
	if m.statusErr {
		left = " " + errorStyle.Render(m.status)
	}

	right := fmt.Sprintf("%s:%s  %s:%s  %s:%s  %s:%s  %s:%s  %s:%s  %s:%s",
		helpKeyStyle.Render("h/l"), helpDescStyle.Render("move"),
		helpKeyStyle.Render("w/b"), helpDescStyle.Render("match"),
		helpKeyStyle.Render("enter"), helpDescStyle.Render("select"),
		helpKeyStyle.Render("x"), helpDescStyle.Render("deselect"),
		helpKeyStyle.Render("a"), helpDescStyle.Render("auto"),
		helpKeyStyle.Render("tab"), helpDescStyle.Render("pane"),
		helpKeyStyle.Render("?"), helpDescStyle.Render("help"),
	)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) renderOverlay() string {
	overlayWidth := m.width * 80 / 100
	overlayHeight := m.height * 80 / 100

	var content string
	var title string

	switch m.activeOverlay {
	case overlayHelp:
		title = " Help (q to close) "
		content = m.renderHelpContent(overlayHeight - 4)
	case overlayInput:
		title = m.inputTitle
		overlayWidth = min(80, m.width-4)
		overlayHeight = 5
		content = "\n  " + m.input.View() + "\n"
	}

	box := modalStyle.
		Width(overlayWidth - 4).
		Height(overlayHeight - 2).
		Render(content)

	titleRendered := titleStyle.Render(title)

	overlayView := lipgloss.JoinVertical(lipgloss.Left, titleRendered, box)

	// Center on screen
	hPad := (m.width - lipgloss.Width(overlayView)) / 2
	vPad := (m.height - lipgloss.Height(overlayView)) / 2

	return strings.Repeat("\n", max(0, vPad)) +
		lipgloss.NewStyle().PaddingLeft(max(0, hPad)).Render(overlayView)
}

func (m *Model) renderHelpContent(height int) string {
	lines := strings.Split(m.helpContent, "\n")
	if m.helpOffset >= len(lines) {
		m.helpOffset = max(0, len(lines)-1)
	}
	end := min(m.helpOffset+height, len(lines))
	visible := lines[m.helpOffset:end]
	return strings.Join(visible, "\n")
}

// renderHelp generates help text.
func renderHelp() string {
	return `rxbuilder explore - Interactive Pattern Builder

TEXT
  h/l or Left/Right Move cursor one character
  j/k or Up/Down    Move cursor one line
  w/b               Jump to next/previous match start
  g/G               Jump to start/end
  enter             Select the highlighted candidate
  x                 Deselect the selection under the cursor
  e                 Edit the emit pattern of the selection under the cursor
  t                 Replace the sample text and rescan

FOCUS
  F1                Focus text pane
  F2                Focus candidates pane
  F3                Focus selections pane
  tab               Cycle panes

CANDIDATES
  j/k               Choose among interpretations at the cursor
  enter             Select it
  e                 Select it with an edited pattern

SELECTIONS
  enter             Move the text cursor to the selection
  x                 Deselect
  e                 Edit emit pattern
  r                 Reanchor onto the highlighted candidate

PATTERN
  a                 Auto-select high-priority matches
  Ctrl+r            Clear all selections
  I/M/S             Toggle ignore case / multiline / dot all
  W                 Toggle whole-line anchors
  L                 Toggle lowercase character ranges (with ignore case)

QUIT
  q                 Quit and print the pattern
  Ctrl+c            Force quit
  ?                 Toggle this help screen
`
}
