package types

import "strings"

// Options configures composition output.
type Options struct {
	CaseInsensitive   bool `json:"case_insensitive" yaml:"case_insensitive"`
	Multiline         bool `json:"multiline" yaml:"multiline"`
	DotMatchesNewline bool `json:"dot_matches_newline" yaml:"dot_matches_newline"`
	MatchWholeLine    bool `json:"match_whole_line" yaml:"match_whole_line"`
	GenerateLowercase bool `json:"generate_lowercase" yaml:"generate_lowercase"`
}

// Flags derives the flags string ("i", "m", "s" in that order) that a
// consumer combines with the pattern body. Flags are never embedded inline.
func (o Options) Flags() string {
	var b strings.Builder
	if o.CaseInsensitive {
		b.WriteByte('i')
	}
	if o.Multiline {
		b.WriteByte('m')
	}
	if o.DotMatchesNewline {
		b.WriteByte('s')
	}
	return b.String()
}

// SimplifyCase reports whether case-paired ranges may be reduced to lowercase.
func (o Options) SimplifyCase() bool {
	return o.GenerateLowercase && o.CaseInsensitive
}
