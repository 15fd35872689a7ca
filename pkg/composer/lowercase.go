package composer

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Case-paired ranges in either order, e.g. A-Za-z or a-fA-F.
var (
	upperThenLower = regexp2.MustCompile(`([A-Z])-([A-Z])([a-z])-([a-z])`, regexp2.None)
	lowerThenUpper = regexp2.MustCompile(`([a-z])-([a-z])([A-Z])-([A-Z])`, regexp2.None)
)

// LowercaseRanges rewrites character class ranges that pair an uppercase
// range with the same lowercase range down to the lowercase half:
// [A-Za-z0-9] becomes [a-z0-9]. Only ranges inside a bracket expression are
// touched, and only when both halves cover the same letters.
func LowercaseRanges(fragment string) string {
	if !strings.Contains(fragment, "[") {
		return fragment
	}
	out := fragment
	for _, re := range []*regexp2.Regexp{upperThenLower, lowerThenUpper} {
		// Positions shift after the first pass, so recompute.
		inClass := classPositions([]rune(out))
		rewritten, err := re.ReplaceFunc(out, func(m regexp2.Match) string {
			if !inClass[m.Index] {
				return m.String()
			}
			g := func(n int) string { return m.GroupByNumber(n).String() }
			first, second := g(1)+g(2), g(3)+g(4)
			if strings.ToLower(first) != strings.ToLower(second) {
				return m.String()
			}
			lower := strings.ToLower(first)
			return lower[:1] + "-" + lower[1:]
		}, -1, -1)
		if err != nil {
			return fragment
		}
		out = rewritten
	}
	return out
}

// classPositions marks the rune positions of p that sit inside a bracket
// expression, honoring backslash escapes.
func classPositions(p []rune) []bool {
	marks := make([]bool, len(p))
	inClass := false
	for i := 0; i < len(p); i++ {
		switch {
		case p[i] == '\\':
			marks[i] = inClass
			if i+1 < len(p) {
				i++
				marks[i] = inClass
			}
		case !inClass && p[i] == '[':
			inClass = true
			// A leading ] or ^] is a literal member.
			if i+1 < len(p) && p[i+1] == '^' {
				i++
				marks[i] = true
			}
			if i+1 < len(p) && p[i+1] == ']' {
				i++
				marks[i] = true
			}
		case inClass && p[i] == ']':
			inClass = false
		default:
			marks[i] = inClass
		}
	}
	return marks
}
