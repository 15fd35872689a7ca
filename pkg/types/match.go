package types

import "fmt"

// Match is a single located occurrence of a recognizer's detection pattern.
// Matches belong to one version of the input text and are discarded when the
// text changes.
type Match struct {
	Recognizer *Recognizer `json:"-"` // not owned; recognizers outlive matches
	Span
	Text string `json:"text"` // text[Start:End], cached for display and staleness checks
}

// NewMatch builds a match for r covering text[start:end].
func NewMatch(r *Recognizer, text []rune, start, end int) *Match {
	return &Match{
		Recognizer: r,
		Span:       Span{Start: start, End: end},
		Text:       string(text[start:end]),
	}
}

// RecognizerID returns the ID of the recognizer that produced the match.
func (m *Match) RecognizerID() string {
	if m.Recognizer == nil {
		return ""
	}
	return m.Recognizer.ID
}

// Priority returns the producing recognizer's priority.
func (m *Match) Priority() int {
	if m.Recognizer == nil {
		return 0
	}
	return m.Recognizer.Priority
}

// CatalogIndex returns the producing recognizer's catalog position.
func (m *Match) CatalogIndex() int {
	if m.Recognizer == nil {
		return 0
	}
	return m.Recognizer.Index
}

// Key identifies a match within one text version, e.g. "net.ipv4@7:18".
func (m *Match) Key() string {
	return fmt.Sprintf("%s@%d:%d", m.RecognizerID(), m.Start, m.End)
}

// MatchView is the serialized form of a Match, flattening the recognizer
// reference into its identifying fields.
type MatchView struct {
	RecognizerID   string `json:"recognizer_id"`
	RecognizerName string `json:"recognizer_name"`
	Priority       int    `json:"priority"`
	Start          int    `json:"start"`
	End            int    `json:"end"`
	Text           string `json:"text"`
	Emit           string `json:"emit"`
}

// View returns the serializable form of the match.
func (m *Match) View() MatchView {
	v := MatchView{
		Start: m.Start,
		End:   m.End,
		Text:  m.Text,
	}
	if m.Recognizer != nil {
		v.RecognizerID = m.Recognizer.ID
		v.RecognizerName = m.Recognizer.Name
		v.Priority = m.Recognizer.Priority
		v.Emit = m.Recognizer.Emit
	}
	return v
}

// Views converts a slice of matches to their serializable forms.
func Views(matches []*Match) []MatchView {
	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		views = append(views, m.View())
	}
	return views
}
