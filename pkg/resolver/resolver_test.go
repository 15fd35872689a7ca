package resolver

import (
	"math/rand"
	"testing"

	"github.com/praetorian-inc/rxbuilder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	recIPv4   = &types.Recognizer{ID: "net.ipv4", Priority: 80, Index: 0}
	recSemver = &types.Recognizer{ID: "id.semver", Priority: 65, Index: 1}
	recDec    = &types.Recognizer{ID: "num.decimal", Priority: 30, Index: 2}
	recInt    = &types.Recognizer{ID: "num.integer", Priority: 20, Index: 3}
	recWord   = &types.Recognizer{ID: "text.word", Priority: 10, Index: 4}
	recIdent  = &types.Recognizer{ID: "text.identifier", Priority: 10, Index: 5}
)

func m(r *types.Recognizer, start, end int) *types.Match {
	return &types.Match{Recognizer: r, Span: types.Span{Start: start, End: end}}
}

func keys(matches []*types.Match) []string {
	out := make([]string, 0, len(matches))
	for _, x := range matches {
		out = append(out, x.Key())
	}
	return out
}

// "Server 192.168.1.1 responded"
func sample() []*types.Match {
	return []*types.Match{
		m(recWord, 0, 6),
		m(recIdent, 0, 6),
		m(recIPv4, 7, 18),
		m(recSemver, 7, 16),
		m(recDec, 7, 14),
		m(recInt, 7, 10),
		m(recDec, 15, 18),
		m(recWord, 19, 28),
	}
}

func TestCandidatesAt(t *testing.T) {
	got := CandidatesAt(sample(), 8)

	assert.Equal(t, []string{
		"net.ipv4@7:18",
		"id.semver@7:16",
		"num.decimal@7:14",
		"num.integer@7:10",
	}, keys(got))
}

func TestCandidatesAt_LengthBreaksPriorityTie(t *testing.T) {
	short := m(recWord, 0, 3)
	long := &types.Match{Recognizer: &types.Recognizer{ID: "text.long", Priority: 10, Index: 9}, Span: types.Span{Start: 0, End: 8}}

	got := CandidatesAt([]*types.Match{short, long}, 1)

	assert.Equal(t, []string{"text.long@0:8", "text.word@0:3"}, keys(got))
}

func TestCandidatesAt_CatalogIndexBreaksRemainingTie(t *testing.T) {
	got := CandidatesAt(sample(), 0)

	assert.Equal(t, []string{"text.word@0:6", "text.identifier@0:6"}, keys(got))
}

func TestCandidatesAt_Empty(t *testing.T) {
	assert.Empty(t, CandidatesAt(sample(), 6), "the space between tokens has no candidates")
	assert.Empty(t, CandidatesAt(nil, 0))
	assert.Empty(t, CandidatesAt(sample(), 18), "end offsets are exclusive")
}

func TestCandidatesAt_InputOrderIrrelevant(t *testing.T) {
	want := keys(CandidatesAt(sample(), 15))

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := sample()
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, keys(CandidatesAt(shuffled, 15)))
	}
}

func TestCompare_TotalOrder(t *testing.T) {
	ranked := Rank(sample())

	for i := 1; i < len(ranked); i++ {
		a, b := ranked[i-1], ranked[i]
		assert.LessOrEqual(t, Compare(a, b), 0, "%s before %s", a.Key(), b.Key())
		assert.GreaterOrEqual(t, Compare(b, a), 0)
	}
	assert.Equal(t, 0, Compare(ranked[0], ranked[0]))
}

func TestCandidatesOverlapping(t *testing.T) {
	got := CandidatesOverlapping(sample(), 5, 8)

	assert.Equal(t, []string{
		"net.ipv4@7:18",
		"id.semver@7:16",
		"num.decimal@7:14",
		"num.integer@7:10",
		"text.word@0:6",
		"text.identifier@0:6",
	}, keys(got))

	assert.Empty(t, CandidatesOverlapping(sample(), 6, 7))
}

func TestGroups(t *testing.T) {
	groups := Groups(sample())

	require.Len(t, groups, 3)
	assert.Equal(t, types.Span{Start: 0, End: 6}, groups[0].Span)
	assert.Equal(t, types.Span{Start: 7, End: 18}, groups[1].Span)
	assert.Equal(t, types.Span{Start: 19, End: 28}, groups[2].Span)
	assert.Equal(t, "net.ipv4@7:18", groups[1].Matches[0].Key())
	assert.Len(t, groups[1].Matches, 5)

	assert.Nil(t, Groups(nil))
}

func TestGroups_Chained(t *testing.T) {
	// a overlaps b, b overlaps c, a and c are disjoint
	groups := Groups([]*types.Match{m(recWord, 0, 4), m(recInt, 3, 7), m(recDec, 6, 9)})

	require.Len(t, groups, 1)
	assert.Equal(t, types.Span{Start: 0, End: 9}, groups[0].Span)
}

func TestDefaultPicks(t *testing.T) {
	picks := DefaultPicks(sample())

	assert.Equal(t, []string{"text.word@0:6", "net.ipv4@7:18", "text.word@19:28"}, keys(picks))

	for i := 1; i < len(picks); i++ {
		assert.LessOrEqual(t, picks[i-1].End, picks[i].Start)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	in := sample()
	before := keys(in)

	Rank(in)
	CandidatesAt(in, 8)
	Groups(in)
	DefaultPicks(in)

	assert.Equal(t, before, keys(in))
}
