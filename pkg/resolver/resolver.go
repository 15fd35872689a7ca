// Package resolver ranks competing interpretations of overlapping text.
//
// All functions are pure: they never modify the match slices they are given
// and an empty result is never an error.
package resolver

import (
	"slices"

	"github.com/praetorian-inc/rxbuilder/pkg/types"
)

// Compare orders matches for presentation: priority descending, then length
// descending (the more specific interpretation first), then catalog index
// ascending, then start ascending. The order is total for matches from
// distinct recognizers or distinct positions.
func Compare(a, b *types.Match) int {
	if a.Priority() != b.Priority() {
		return b.Priority() - a.Priority()
	}
	if a.Len() != b.Len() {
		return b.Len() - a.Len()
	}
	if a.CatalogIndex() != b.CatalogIndex() {
		return a.CatalogIndex() - b.CatalogIndex()
	}
	return a.Start - b.Start
}

// Rank returns a ranked copy of matches.
func Rank(matches []*types.Match) []*types.Match {
	ranked := slices.Clone(matches)
	slices.SortStableFunc(ranked, Compare)
	return ranked
}

// CandidatesAt returns every match whose range contains pos, ranked.
func CandidatesAt(matches []*types.Match, pos int) []*types.Match {
	var out []*types.Match
	for _, m := range matches {
		if m.Contains(pos) {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, Compare)
	return out
}

// CandidatesOverlapping returns every match intersecting [start, end), ranked.
func CandidatesOverlapping(matches []*types.Match, start, end int) []*types.Match {
	var out []*types.Match
	for _, m := range matches {
		if m.Overlaps(start, end) {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, Compare)
	return out
}

// Group is a maximal run of matches connected by overlapping ranges.
type Group struct {
	types.Span
	Matches []*types.Match // ranked
}

// Groups partitions matches into candidate groups, ordered by start.
// Two matches share a group when a chain of pairwise overlaps links them.
func Groups(matches []*types.Match) []Group {
	if len(matches) == 0 {
		return nil
	}

	byStart := slices.Clone(matches)
	slices.SortStableFunc(byStart, func(a, b *types.Match) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.CatalogIndex() - b.CatalogIndex()
	})

	var groups []Group
	cur := Group{Span: byStart[0].Span, Matches: []*types.Match{byStart[0]}}
	for _, m := range byStart[1:] {
		if m.Start < cur.End {
			cur.Matches = append(cur.Matches, m)
			cur.End = max(cur.End, m.End)
			continue
		}
		groups = append(groups, cur)
		cur = Group{Span: m.Span, Matches: []*types.Match{m}}
	}
	groups = append(groups, cur)

	for i := range groups {
		slices.SortStableFunc(groups[i].Matches, Compare)
	}
	return groups
}

// DefaultPicks suggests one interpretation per region: matches are taken
// best-first and kept when they do not overlap an earlier pick. The result
// is ordered by start and is pairwise disjoint.
func DefaultPicks(matches []*types.Match) []*types.Match {
	var picks []*types.Match
	for _, m := range Rank(matches) {
		if overlapsAny(picks, m) {
			continue
		}
		picks = append(picks, m)
	}
	slices.SortFunc(picks, func(a, b *types.Match) int {
		return a.Start - b.Start
	})
	return picks
}

func overlapsAny(picks []*types.Match, m *types.Match) bool {
	for _, p := range picks {
		if p.Overlaps(m.Start, m.End) {
			return true
		}
	}
	return false
}
