package types

// ComputeLineColumn computes line and column numbers from a character offset in text.
// Lines and columns are 1-indexed (first line is 1, first column is 1).
func ComputeLineColumn(text []rune, offset int) SourcePoint {
	p := SourcePoint{Line: 1, Column: 1}
	for i := 0; i < offset && i < len(text); i++ {
		if text[i] == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}
	return p
}

// Slice returns text[start:end] clamped to the bounds of text.
func Slice(text []rune, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start >= end {
		return ""
	}
	return string(text[start:end])
}
