package types

// Selection is a user decision to use one match's interpretation for a region
// of the text. The range and text are copied from the match at selection time;
// a selection never references the match itself.
type Selection struct {
	ID             string `json:"id"`
	Span                  // copied from the chosen match
	Text           string `json:"text"` // text captured when the selection was made
	RecognizerID   string `json:"recognizer_id"`
	RecognizerName string `json:"recognizer_name"`
	EmitPattern    string `json:"emit_pattern"`
	Stale          bool   `json:"stale"` // captured text no longer at Span in the current text
}

// Clone returns a copy of the selection.
func (s *Selection) Clone() *Selection {
	c := *s
	return &c
}

// Matches reports whether text still holds the captured text at the selection's span.
func (s *Selection) Matches(text []rune) bool {
	if !s.Valid(len(text)) {
		return false
	}
	return string(text[s.Start:s.End]) == s.Text
}
