package explore

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/praetorian-inc/rxbuilder/pkg/catalog"
	"github.com/praetorian-inc/rxbuilder/pkg/scanner"
	"github.com/praetorian-inc/rxbuilder/pkg/session"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
)

func newModel(t *testing.T, text string) Model {
	t.Helper()
	c, err := catalog.New([]*types.Recognizer{
		{ID: "ip", Name: "IP", Detect: `\b\d+\.\d+\.\d+\.\d+\b`, Emit: `\d+(?:\.\d+){3}`, Priority: 80},
		{ID: "int", Name: "Integer", Detect: `\b\d+\b`, Emit: `\d+`, Priority: 20},
		{ID: "word", Name: "Word", Detect: `\b[A-Za-z]+\b`, Emit: `[A-Za-z]+`, Priority: 10},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	sc, err := scanner.New(c)
	if err != nil {
		t.Fatalf("scanner: %v", err)
	}

	n := 0
	sess := session.New(sc, session.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("sel-%d", n)
	}))

	sess.SetText(text)

	return update(New(sess), tea.WindowSizeMsg{Width: 120, Height: 40})
}

func update(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

var namedKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEscape,
	"tab":    tea.KeyTab,
	"ctrl+r": tea.KeyCtrlR,
	"f1":     tea.KeyF1,
	"f2":     tea.KeyF2,
	"f3":     tea.KeyF3,
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		if kt, ok := namedKeys[k]; ok {
			msg = tea.KeyMsg{Type: kt}
		}
		m = update(m, msg)
	}
	return m
}

func TestNew(t *testing.T) {
	m := newModel(t, "host 10.0.0.1 up")

	if m.text.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", m.text.cursor)
	}
	c := m.candidates.selected()
	if c == nil || c.RecognizerID() != "word" {
		t.Fatalf("expected word candidate at start, got %v", c)
	}
	if got := m.Pattern().Body; got != `host\ 10\.0\.0\.1\ up` {
		t.Errorf("unexpected initial pattern %q", got)
	}
}

func TestNextMatchAndSelect(t *testing.T) {
	m := newModel(t, "host 10.0.0.1 up")

	m = press(m, "w")
	if m.text.cursor != 5 {
		t.Fatalf("expected cursor at 5, got %d", m.text.cursor)
	}
	if c := m.candidates.selected(); c == nil || c.RecognizerID() != "ip" {
		t.Fatalf("expected ip candidate first, got %v", c)
	}
	if m.text.highlight == nil || *m.text.highlight != (types.Span{Start: 5, End: 13}) {
		t.Errorf("expected highlight 5-13, got %v", m.text.highlight)
	}

	m = press(m, "enter")
	if len(m.selections.rows) != 1 {
		t.Fatalf("expected 1 selection, got %d", len(m.selections.rows))
	}
	if got := m.Pattern().Body; got != `host\ \d+(?:\.\d+){3}\ up` {
		t.Errorf("unexpected pattern %q", got)
	}
	if m.statusErr {
		t.Errorf("unexpected error status %q", m.status)
	}
}

func TestPrevMatch(t *testing.T) {
	m := newModel(t, "host 10.0.0.1 up")

	m = press(m, "G", "b")
	if m.text.cursor != 14 {
		t.Errorf("expected cursor at 14, got %d", m.text.cursor)
	}

	m = press(m, "b")
	if m.text.cursor != 12 {
		t.Errorf("expected cursor at 12, got %d", m.text.cursor)
	}
}

func TestSelectOverlapReportsKind(t *testing.T) {
	m := newModel(t, "host 10.0.0.1 up")
	m = press(m, "w", "enter", "l")

	// Second interpretation of "10" overlaps the IP selection.
	m = press(m, "f2", "j", "enter")

	if !m.statusErr {
		t.Fatal("expected error status")
	}
	if !strings.HasPrefix(m.status, "OverlapConflict") {
		t.Errorf("expected OverlapConflict status, got %q", m.status)
	}
	if len(m.selections.rows) != 1 {
		t.Errorf("expected selections unchanged, got %d", len(m.selections.rows))
	}
}

func TestDeselectUnderCursor(t *testing.T) {
	m := newModel(t, "host 10.0.0.1 up")
	m = press(m, "w", "enter", "l", "x")

	if len(m.selections.rows) != 0 {
		t.Errorf("expected no selections, got %d", len(m.selections.rows))
	}
}

func TestDeselectFromSelectionsPane(t *testing.T) {
	m := newModel(t, "host 10.0.0.1 up")
	m = press(m, "enter", "w", "enter")
	if len(m.selections.rows) != 2 {
		t.Fatalf("expected 2 selections, got %d", len(m.selections.rows))
	}

	m = press(m, "f3", "j", "x")
	if len(m.selections.rows) != 1 {
		t.Fatalf("expected 1 selection, got %d", len(m.selections.rows))
	}
	if m.selections.rows[0].RecognizerID != "word" {
		t.Errorf("expected word selection to remain, got %s", m.selections.rows[0].RecognizerID)
	}
}

func TestToggleOptions(t *testing.T) {
	m := newModel(t, "host 10.0.0.1 up")
	m = press(m, "enter", "I", "L")

	p := m.Pattern()
	if p.Flags != "i" {
		t.Errorf("expected flags i, got %q", p.Flags)
	}
	if p.Body != `[a-z]+\ 10\.0\.0\.1\ up` {
		t.Errorf("unexpected pattern %q", p.Body)
	}
	if !m.pattern.options.GenerateLowercase {
		t.Error("expected pattern pane to show lowercase option")
	}

	m = press(m, "W")
	if got := m.Pattern().Body; !strings.HasPrefix(got, "^") || !strings.HasSuffix(got, "$") {
		t.Errorf("expected anchored pattern, got %q", got)
	}
}

func TestAutoSelect(t *testing.T) {
	m := newModel(t, "host 10.0.0.1 up")
	m = press(m, "a")

	if len(m.selections.rows) != 1 {
		t.Fatalf("expected 1 auto selection, got %d", len(m.selections.rows))
	}
	if m.selections.rows[0].RecognizerID != "ip" {
		t.Errorf("expected ip selection, got %s", m.selections.rows[0].RecognizerID)
	}

	m = press(m, "ctrl+r")
	if len(m.selections.rows) != 0 {
		t.Errorf("expected selections cleared, got %d", len(m.selections.rows))
	}
}

func TestEditTextThenReanchor(t *testing.T) {
	m := newModel(t, "host 10.0.0.1 up")
	m = press(m, "w", "enter")

	m = press(m, "t")
	if m.activeOverlay != overlayInput {
		t.Fatal("expected input overlay")
	}
	m.input.SetValue("host 10.0.0.22 up")
	m = press(m, "enter")

	if m.activeOverlay != overlayNone {
		t.Error("expected overlay closed")
	}
	if n := m.selections.staleCount(); n != 1 {
		t.Fatalf("expected 1 stale selection, got %d", n)
	}
	if !strings.Contains(m.status, "stale") {
		t.Errorf("expected stale status, got %q", m.status)
	}

	// Cursor still rests on the new address.
	m = press(m, "f3", "r")
	if m.statusErr {
		t.Fatalf("reanchor failed: %s", m.status)
	}
	if n := m.selections.staleCount(); n != 0 {
		t.Errorf("expected no stale selections, got %d", n)
	}
	if got := m.selections.rows[0].Span; got != (types.Span{Start: 5, End: 14}) {
		t.Errorf("expected span 5-14, got %v", got)
	}
}

func TestEditEmit(t *testing.T) {
	m := newModel(t, "host 10.0.0.1 up")
	m = press(m, "w", "enter", "e")

	if m.activeOverlay != overlayInput || m.input.Value() != `\d+(?:\.\d+){3}` {
		t.Fatalf("expected emit input prefilled, got %q", m.input.Value())
	}

	m.input.SetValue(`[\d.]+`)
	m = press(m, "enter")
	if got := m.Pattern().Body; got != `host\ [\d.]+\ up` {
		t.Errorf("unexpected pattern %q", got)
	}

	m = press(m, "e")
	m.input.SetValue(`(`)
	m = press(m, "enter")
	if !m.statusErr || !strings.HasPrefix(m.status, "InvalidPattern") {
		t.Errorf("expected InvalidPattern status, got %q", m.status)
	}
	if got := m.Pattern().Body; got != `host\ [\d.]+\ up` {
		t.Errorf("expected pattern unchanged, got %q", got)
	}
}

func TestSelectWithCustomPattern(t *testing.T) {
	m := newModel(t, "host 10.0.0.1 up")
	m = press(m, "f2", "e")

	if m.input.Value() != `[A-Za-z]+` {
		t.Fatalf("expected candidate emit prefilled, got %q", m.input.Value())
	}
	m.input.SetValue(`\w+`)
	m = press(m, "enter")

	if got := m.Pattern().Body; got != `\w+\ 10\.0\.0\.1\ up` {
		t.Errorf("unexpected pattern %q", got)
	}
}

func TestEscCancelsInput(t *testing.T) {
	m := newModel(t, "host 10.0.0.1 up")
	m = press(m, "t")
	m.input.SetValue("something else")
	m = press(m, "esc")

	if m.activeOverlay != overlayNone {
		t.Error("expected overlay closed")
	}
	if m.session.Text() != "host 10.0.0.1 up" {
		t.Errorf("expected text unchanged, got %q", m.session.Text())
	}
}

func TestMultilineTextNotEditable(t *testing.T) {
	m := newModel(t, "a\nb")
	m = press(m, "t")

	if m.activeOverlay != overlayNone {
		t.Error("expected no input overlay for multi-line text")
	}
	if !m.statusErr {
		t.Error("expected error status")
	}
}

func TestNewKeepsSessionState(t *testing.T) {
	m := newModel(t, "host 10.0.0.1 up")
	m = press(m, "a")

	fresh := New(m.session)
	if len(fresh.selections.rows) != 1 {
		t.Errorf("expected existing selection, got %d", len(fresh.selections.rows))
	}
	if fresh.Pattern() != m.Pattern() {
		t.Errorf("expected same pattern, got %v", fresh.Pattern())
	}
}

func TestCycleFocus(t *testing.T) {
	m := newModel(t, "host")

	want := []focusedPane{paneCandidates, paneSelections, paneText}
	for _, w := range want {
		m = press(m, "tab")
		if m.focus != w {
			t.Errorf("expected focus %d, got %d", w, m.focus)
		}
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t, "host")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestView(t *testing.T) {
	m := newModel(t, "host 10.0.0.1 up")

	view := m.View()
	for _, want := range []string{"Text", "Candidates", "Selections", "Pattern"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}

	m = press(m, "?")
	if !strings.Contains(m.View(), "Interactive Pattern Builder") {
		t.Error("expected help overlay")
	}
	m = press(m, "q")
	if m.activeOverlay != overlayNone {
		t.Error("expected help closed")
	}
}

func TestViewBeforeSize(t *testing.T) {
	c, err := catalog.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	sc, err := scanner.New(c)
	if err != nil {
		t.Fatal(err)
	}

	sess := session.New(sc)
	sess.SetText("hello")

	m := New(sess)
	if m.View() != "Loading..." {
		t.Errorf("expected loading view, got %q", m.View())
	}
}
