// Package scanner finds every recognizer's occurrences in an input text.
package scanner

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/rxbuilder/pkg/catalog"
	"github.com/praetorian-inc/rxbuilder/pkg/pattern"
	"github.com/praetorian-inc/rxbuilder/pkg/prefilter"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
	"go.uber.org/zap"
)

// Scanner runs a catalog's detection patterns against text.
//
// A Scanner holds no per-scan state: Scan is a pure function of the catalog
// and the text, and compiled patterns are read-only after New, so one
// Scanner may be shared.
type Scanner struct {
	recognizers  []*types.Recognizer
	regexCache   map[string]*regexp2.Regexp // keyed by recognizer ID, read-only after init
	prefilter    *prefilter.Prefilter
	usePrefilter bool
	budget       time.Duration
	logger       *zap.Logger
}

// New creates a scanner over the recognizers of c.
func New(c *catalog.Catalog, opts ...Option) (*Scanner, error) {
	if c == nil || c.Len() == 0 {
		return nil, fmt.Errorf("%w: no recognizers provided", types.ErrConfig)
	}

	s := &Scanner{
		recognizers:  c.All(),
		regexCache:   make(map[string]*regexp2.Regexp, c.Len()),
		usePrefilter: true,
		budget:       DefaultBudget,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Pre-compile all patterns to catch errors early
	for _, r := range s.recognizers {
		re, err := pattern.Compile(r.Detect)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to compile pattern %q for recognizer %s: %v",
				types.ErrConfig, r.Detect, r.ID, err)
		}
		if s.budget > 0 {
			re.MatchTimeout = s.budget
		}
		s.regexCache[r.ID] = re
	}

	if s.usePrefilter {
		s.prefilter = prefilter.New(s.recognizers)
	}

	return s, nil
}

// Budget returns the per-recognizer execution budget.
func (s *Scanner) Budget() time.Duration {
	return s.budget
}

// Recognizers returns the recognizers the scanner runs, in catalog order.
func (s *Scanner) Recognizers() []*types.Recognizer {
	return slices.Clone(s.recognizers)
}

// Scan returns every match in text, ordered by start offset with ties broken
// by catalog order.
func (s *Scanner) Scan(text string) []*types.Match {
	return s.ScanDetailed(text).Matches
}

// ScanDetailed scans text and reports per-recognizer statistics alongside
// the matches. A recognizer that exceeds its budget contributes the matches
// it found before being abandoned; the scan itself always completes.
func (s *Scanner) ScanDetailed(text string) *Result {
	runes := []rune(text)
	result := &Result{
		Matches: make([]*types.Match, 0),
		Stats:   make([]RecognizerStat, 0, len(s.recognizers)),
	}

	var candidates map[*types.Recognizer]bool
	if s.prefilter != nil {
		candidates = s.prefilter.Candidates(text)
	}

	for _, r := range s.recognizers {
		stat := RecognizerStat{RecognizerID: r.ID}

		if candidates != nil && !candidates[r] {
			stat.Status = RecognizerSkipped
			result.record(stat)
			continue
		}

		began := time.Now()
		found, err := s.scanRecognizer(r, text, runes, began)
		stat.Duration = time.Since(began)
		stat.Matches = len(found)
		result.Matches = append(result.Matches, found...)

		switch {
		case err == nil:
			stat.Status = RecognizerCompleted
		case errors.Is(err, types.ErrScanBudgetExceeded):
			stat.Status = RecognizerBudgetExceeded
			stat.Error = err
			s.logger.Warn("recognizer abandoned",
				zap.String("recognizer", r.ID),
				zap.Duration("budget", s.budget),
				zap.Int("text_len", len(runes)),
				zap.Int("matches_kept", len(found)))
		default:
			stat.Status = RecognizerError
			stat.Error = err
			s.logger.Warn("recognizer failed",
				zap.String("recognizer", r.ID),
				zap.Error(err))
		}
		result.record(stat)
	}

	slices.SortStableFunc(result.Matches, func(a, b *types.Match) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.CatalogIndex() - b.CatalogIndex()
	})

	return result
}

// scanRecognizer collects all non-overlapping, non-empty, leftmost-first
// matches of one recognizer.
func (s *Scanner) scanRecognizer(r *types.Recognizer, text string, runes []rune, began time.Time) ([]*types.Match, error) {
	re := s.regexCache[r.ID]
	if re == nil {
		return nil, nil
	}

	var found []*types.Match

	match, err := re.FindStringMatch(text)
	for match != nil && err == nil {
		// regexp2 reports offsets in runes
		start := match.Index
		end := start + match.Length
		if end > start {
			found = append(found, types.NewMatch(r, runes, start, end))
		}

		if s.budget > 0 && time.Since(began) > s.budget {
			return found, fmt.Errorf("%w: recognizer %s exceeded %s",
				types.ErrScanBudgetExceeded, r.ID, s.budget)
		}

		match, err = re.FindNextMatch(match)
	}

	if err != nil {
		if pattern.IsTimeout(err) {
			return found, fmt.Errorf("%w: recognizer %s exceeded %s",
				types.ErrScanBudgetExceeded, r.ID, s.budget)
		}
		return found, fmt.Errorf("regex match error for recognizer %s: %w", r.ID, err)
	}

	return found, nil
}
