package scanner

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/praetorian-inc/rxbuilder/pkg/catalog"
	"github.com/praetorian-inc/rxbuilder/pkg/pattern"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func builtinScanner(t *testing.T, opts ...Option) *Scanner {
	t.Helper()
	c, err := catalog.Builtin()
	require.NoError(t, err)
	s, err := New(c, opts...)
	require.NoError(t, err)
	return s
}

func customScanner(t *testing.T, recognizers []*types.Recognizer, opts ...Option) *Scanner {
	t.Helper()
	c, err := catalog.New(recognizers)
	require.NoError(t, err)
	s, err := New(c, opts...)
	require.NoError(t, err)
	return s
}

func findByRecognizer(matches []*types.Match, id string) []*types.Match {
	var out []*types.Match
	for _, m := range matches {
		if m.RecognizerID() == id {
			out = append(out, m)
		}
	}
	return out
}

func TestNew_NilCatalog(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrConfig))
}

func TestScan_IPv4(t *testing.T) {
	s := builtinScanner(t)

	matches := s.Scan("Server 192.168.1.1 responded")

	ipv4 := findByRecognizer(matches, "net.ipv4")
	require.Len(t, ipv4, 1)
	assert.Equal(t, 7, ipv4[0].Start)
	assert.Equal(t, 18, ipv4[0].End)
	assert.Equal(t, "192.168.1.1", ipv4[0].Text)

	words := findByRecognizer(matches, "text.word")
	require.Len(t, words, 2)
	assert.Equal(t, "Server", words[0].Text)
	assert.Equal(t, "responded", words[1].Text)
}

func TestScan_MatchBounds(t *testing.T) {
	s := builtinScanner(t)

	texts := []string{
		"",
		"Server 192.168.1.1 responded",
		"2024-01-15 ERROR disk full",
		"GET https://api.example.com/v1/users?id=42 200 0.35s",
		"café ☃ 10.0.0.1 user@example.com 123e4567-e89b-12d3-a456-426614174000",
		"mac 00:1A:2B:3C:4D:5E at 2024-01-15T10:30:00Z version v1.2.3-rc.1",
		"\"quoted\" 0xFF -3.5 WARNING\tdone",
	}

	for _, text := range texts {
		runes := []rune(text)
		for _, m := range s.Scan(text) {
			assert.GreaterOrEqual(t, m.Start, 0, "%s in %q", m.Key(), text)
			assert.Less(t, m.Start, m.End, "%s in %q", m.Key(), text)
			assert.LessOrEqual(t, m.End, len(runes), "%s in %q", m.Key(), text)
			assert.Equal(t, string(runes[m.Start:m.End]), m.Text, "%s in %q", m.Key(), text)
		}
	}
}

func TestScan_Ordering(t *testing.T) {
	s := builtinScanner(t)

	matches := s.Scan("GET https://api.example.com/v1 200 at 2024-01-15T10:30:00Z from 10.0.0.1")
	require.NotEmpty(t, matches)

	for i := 1; i < len(matches); i++ {
		prev, cur := matches[i-1], matches[i]
		if prev.Start == cur.Start {
			assert.Less(t, prev.CatalogIndex(), cur.CatalogIndex(), "ties broken by catalog order")
		} else {
			assert.Less(t, prev.Start, cur.Start)
		}
	}
}

func TestScan_NoOverlapWithinRecognizer(t *testing.T) {
	s := builtinScanner(t)

	matches := s.Scan("10.0.0.1 10.0.0.2 10.0.0.3 and 1.1.1.1")

	byRecognizer := make(map[string][]*types.Match)
	for _, m := range matches {
		byRecognizer[m.RecognizerID()] = append(byRecognizer[m.RecognizerID()], m)
	}
	for id, ms := range byRecognizer {
		for i := 1; i < len(ms); i++ {
			assert.LessOrEqual(t, ms[i-1].End, ms[i].Start, "recognizer %s overlaps itself", id)
		}
	}
	assert.Len(t, byRecognizer["net.ipv4"], 4)
}

func TestScan_CharacterOffsets(t *testing.T) {
	s := builtinScanner(t)

	matches := findByRecognizer(s.Scan("café ☃ 10.0.0.1"), "net.ipv4")

	require.Len(t, matches, 1)
	assert.Equal(t, 7, matches[0].Start, "offsets count characters, not bytes")
	assert.Equal(t, 15, matches[0].End)
}

func TestScan_DropsEmptyMatches(t *testing.T) {
	s := customScanner(t, []*types.Recognizer{
		{ID: "x.run", Name: "X Run", Detect: `x*`, Emit: `x+`},
	})

	matches := s.Scan("axxbx")

	require.Len(t, matches, 2)
	assert.Equal(t, "xx", matches[0].Text)
	assert.Equal(t, "x", matches[1].Text)
}

func TestScan_Deterministic(t *testing.T) {
	s := builtinScanner(t)
	text := "2024-01-15 ERROR disk full on 10.0.0.1"

	first := types.Views(s.Scan(text))
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, types.Views(s.Scan(text)))
	}
}

func TestScanDetailed_PrefilterSkips(t *testing.T) {
	recognizers := []*types.Recognizer{
		{ID: "net.url", Name: "URL", Detect: `https?://\S+`, Emit: `https?://\S+`, Keywords: []string{"://"}},
		{ID: "text.word", Name: "Word", Detect: `[a-z]+`, Emit: `[a-z]+`},
	}

	result := customScanner(t, recognizers).ScanDetailed("plain words only")

	stat, ok := result.Stat("net.url")
	require.True(t, ok)
	assert.Equal(t, RecognizerSkipped, stat.Status)
	assert.Equal(t, 1, result.Summary.Skipped)
	assert.Equal(t, 1, result.Summary.Completed)

	result = customScanner(t, recognizers, WithoutPrefilter()).ScanDetailed("plain words only")
	stat, _ = result.Stat("net.url")
	assert.Equal(t, RecognizerCompleted, stat.Status)
	assert.Equal(t, 0, stat.Matches)
}

func TestScanDetailed_BudgetExceeded(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := customScanner(t, []*types.Recognizer{
		{ID: "bad.backtrack", Name: "Backtracker", Detect: `(a+)+$`, Emit: `a+`},
		{ID: "ok.bang", Name: "Bang", Detect: `!`, Emit: `!`},
	}, WithBudget(20*time.Millisecond), WithLogger(zap.New(core)))

	text := strings.Repeat("a", 32) + "!"

	began := time.Now()
	result := s.ScanDetailed(text)
	assert.Less(t, time.Since(began), 5*time.Second, "scan must not hang")

	stat, ok := result.Stat("bad.backtrack")
	require.True(t, ok)
	assert.Equal(t, RecognizerBudgetExceeded, stat.Status)
	assert.True(t, errors.Is(stat.Error, types.ErrScanBudgetExceeded))
	assert.Equal(t, 1, result.Summary.BudgetExceeded)

	bang := findByRecognizer(result.Matches, "ok.bang")
	require.Len(t, bang, 1, "other recognizers still contribute")
	assert.Equal(t, 32, bang[0].Start)

	assert.Equal(t, 1, logs.FilterMessage("recognizer abandoned").Len())
}

func TestScanDetailed_BudgetBound(t *testing.T) {
	// slack for goroutine scheduling on loaded hosts
	const slack = 25 * time.Millisecond

	for _, budget := range []time.Duration{10 * time.Millisecond, DefaultBudget} {
		t.Run(budget.String(), func(t *testing.T) {
			s := customScanner(t, []*types.Recognizer{
				{ID: "bad.nested", Name: "Nested", Detect: `(a+)+b`, Emit: `a+b`},
			}, WithBudget(budget))

			began := time.Now()
			result := s.ScanDetailed(strings.Repeat("a", 2000) + "c")
			elapsed := time.Since(began)

			stat, ok := result.Stat("bad.nested")
			require.True(t, ok)
			assert.Equal(t, RecognizerBudgetExceeded, stat.Status)
			assert.LessOrEqual(t, elapsed, budget+2*pattern.TimeoutResolution+slack)
		})
	}
}

func TestDefaultBudget_Interactive(t *testing.T) {
	assert.Less(t, DefaultBudget+2*pattern.TimeoutResolution, 100*time.Millisecond)
}

func TestRecognizerStatus_TextRoundTrip(t *testing.T) {
	for _, status := range []RecognizerStatus{
		RecognizerCompleted, RecognizerSkipped, RecognizerBudgetExceeded, RecognizerError,
	} {
		t.Run(status.String(), func(t *testing.T) {
			data, err := json.Marshal(RecognizerStat{RecognizerID: "net.ipv4", Status: status})
			require.NoError(t, err)
			assert.Contains(t, string(data), `"status":"`+status.String()+`"`)

			var got RecognizerStat
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, status, got.Status)
		})
	}

	var rs RecognizerStatus
	assert.Error(t, rs.UnmarshalText([]byte("finished")))
}

func TestRecognizerStatus_String(t *testing.T) {
	assert.Equal(t, "completed", RecognizerCompleted.String())
	assert.Equal(t, "skipped", RecognizerSkipped.String())
	assert.Equal(t, "budget_exceeded", RecognizerBudgetExceeded.String())
	assert.Equal(t, "error", RecognizerError.String())
	assert.Equal(t, "unknown", RecognizerStatus(99).String())
}

func TestScanner_Budget(t *testing.T) {
	assert.Equal(t, DefaultBudget, builtinScanner(t).Budget())
	assert.Equal(t, time.Second, builtinScanner(t, WithBudget(time.Second)).Budget())
}
