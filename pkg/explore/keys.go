package explore

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	NextMatch key.Binding
	PrevMatch key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding

	// Focus switching
	FocusText       key.Binding
	FocusCandidates key.Binding
	FocusSelections key.Binding
	CycleFocus      key.Binding

	// Selection actions
	Select     key.Binding
	Deselect   key.Binding
	Reanchor   key.Binding
	EditEmit   key.Binding
	AutoSelect key.Binding
	Clear      key.Binding
	EditText   key.Binding

	// Pattern options
	ToggleIgnoreCase key.Binding
	ToggleMultiline  key.Binding
	ToggleDotAll     key.Binding
	ToggleWholeLine  key.Binding
	ToggleLowercase  key.Binding

	// Views
	ToggleHelp key.Binding

	// Quit
	Quit      key.Binding
	ForceQuit key.Binding
}

var defaultKeys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("k/up", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/dn", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("h", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("l", "right"),
	),
	NextMatch: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "next match"),
	),
	PrevMatch: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "previous match"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+b"),
		key.WithHelp("C-b", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+f"),
		key.WithHelp("C-f", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "start"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "end"),
	),
	FocusText: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("F1", "text"),
	),
	FocusCandidates: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("F2", "candidates"),
	),
	FocusSelections: key.NewBinding(
		key.WithKeys("f3"),
		key.WithHelp("F3", "selections"),
	),
	CycleFocus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next pane"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Deselect: key.NewBinding(
		key.WithKeys("x", "delete"),
		key.WithHelp("x", "deselect"),
	),
	Reanchor: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reanchor"),
	),
	EditEmit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit emit"),
	),
	AutoSelect: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "auto-select"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "clear selections"),
	),
	EditText: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "edit text"),
	),
	ToggleIgnoreCase: key.NewBinding(
		key.WithKeys("I"),
		key.WithHelp("I", "ignore case"),
	),
	ToggleMultiline: key.NewBinding(
		key.WithKeys("M"),
		key.WithHelp("M", "multiline"),
	),
	ToggleDotAll: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "dot all"),
	),
	ToggleWholeLine: key.NewBinding(
		key.WithKeys("W"),
		key.WithHelp("W", "whole line"),
	),
	ToggleLowercase: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "lowercase ranges"),
	),
	ToggleHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}
