package types

// Span is a character range [Start, End) - half-open interval.
// Characters are Unicode code points, not bytes.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of characters covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether pos falls inside the span.
func (s Span) Contains(pos int) bool {
	return pos >= s.Start && pos < s.End
}

// Overlaps reports whether [start, end) intersects the span.
func (s Span) Overlaps(start, end int) bool {
	return s.Start < end && start < s.End
}

// Valid reports whether the span is non-empty and lies within a text of n characters.
func (s Span) Valid(n int) bool {
	return s.Start >= 0 && s.Start < s.End && s.End <= n
}

// SourcePoint is line:column position (1-based).
type SourcePoint struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}
