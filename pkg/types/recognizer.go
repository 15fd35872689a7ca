package types

// Recognizer pairs a detection pattern with the pattern fragment emitted when
// one of its matches is chosen. Recognizers are loaded once and never mutated.
type Recognizer struct {
	ID               string   // e.g., "net.ipv4"
	Name             string   // human-readable name
	Detect           string   // pattern used to find candidates in input text
	Emit             string   // pattern fragment placed in the composed output
	Priority         int      // higher wins ties at a shared position
	Index            int      // position in the catalog (assigned at load)
	Description      string   // optional
	Examples         []string // positive test cases
	NegativeExamples []string // negative test cases
	Keywords         []string // every match contains at least one of these, for prefiltering
	Categories       []string // classification tags
}

// HasKeywords reports whether the recognizer can be gated by the prefilter.
func (r *Recognizer) HasKeywords() bool {
	return len(r.Keywords) > 0
}

// RecognizerView is the serialized form of a Recognizer.
type RecognizerView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Priority    int      `json:"priority"`
	Index       int      `json:"index"`
	Detect      string   `json:"detect"`
	Emit        string   `json:"emit"`
	Description string   `json:"description,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

// View returns the serializable form of the recognizer.
func (r *Recognizer) View() RecognizerView {
	return RecognizerView{
		ID:          r.ID,
		Name:        r.Name,
		Priority:    r.Priority,
		Index:       r.Index,
		Detect:      r.Detect,
		Emit:        r.Emit,
		Description: r.Description,
		Categories:  r.Categories,
	}
}

// RecognizerViews converts recognizers to their serializable forms.
func RecognizerViews(recognizers []*Recognizer) []RecognizerView {
	views := make([]RecognizerView, 0, len(recognizers))
	for _, r := range recognizers {
		views = append(views, r.View())
	}
	return views
}
