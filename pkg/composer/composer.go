// Package composer assembles selections and the literal text between them into
// one pattern.
package composer

import (
	"slices"
	"strings"

	"github.com/praetorian-inc/rxbuilder/pkg/pattern"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
)

// Pattern is a composed pattern body and the flags that go with it. Flags are
// kept apart from the body; the consumer decides how to attach them.
type Pattern struct {
	Body  string `json:"body"`
	Flags string `json:"flags"`
}

// Build composes text and selections and derives the flags for opts.
func Build(text string, selections []*types.Selection, opts types.Options) Pattern {
	return Pattern{
		Body:  Compose(text, selections, opts),
		Flags: Flags(opts),
	}
}

// Flags returns the flag letters enabled by opts, in the order i, m, s.
func Flags(opts types.Options) string {
	return opts.Flags()
}

// Compose walks the selections in start order. Text between selections is
// escaped so it matches itself; each selection contributes its emit pattern
// verbatim. Selections that are stale, out of range or overlap an earlier one
// are skipped, leaving their text to the literal gap.
//
// Compose never fails and depends only on its arguments; the order of
// selections in the slice does not matter.
func Compose(text string, selections []*types.Selection, opts types.Options) string {
	runes := []rune(text)

	ordered := slices.Clone(selections)
	slices.SortStableFunc(ordered, func(a, b *types.Selection) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return strings.Compare(a.ID, b.ID)
	})

	var body strings.Builder
	cursor := 0
	for _, sel := range ordered {
		if sel == nil || sel.Stale || sel.Start < cursor || !sel.Valid(len(runes)) {
			continue
		}
		if sel.Start > cursor {
			body.WriteString(pattern.Escape(string(runes[cursor:sel.Start])))
		}
		fragment := sel.EmitPattern
		if opts.SimplifyCase() {
			fragment = LowercaseRanges(fragment)
		}
		body.WriteString(fragment)
		cursor = sel.End
	}
	if cursor < len(runes) {
		body.WriteString(pattern.Escape(string(runes[cursor:])))
	}

	if opts.MatchWholeLine {
		return "^" + body.String() + "$"
	}
	return body.String()
}
