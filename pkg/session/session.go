// Package session ties the scanner, overlap resolver, selection set and
// composer to one piece of text that the user is editing.
package session

import (
	"fmt"

	"github.com/praetorian-inc/rxbuilder/pkg/composer"
	"github.com/praetorian-inc/rxbuilder/pkg/resolver"
	"github.com/praetorian-inc/rxbuilder/pkg/scanner"
	"github.com/praetorian-inc/rxbuilder/pkg/selection"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
	"go.uber.org/zap"
)

// DefaultAutoSelectPriority is the lowest recognizer priority AutoSelect
// will pick. Generic words and numbers rank below it and stay literal.
const DefaultAutoSelectPriority = 40

// Session holds the current text, its matches, the user's selections and
// the composition options.
//
// Matches are replaced on every SetText; selections survive text changes and
// are revalidated instead. A Session is not safe for concurrent use; callers
// that share one must serialize access.
type Session struct {
	scanner     *scanner.Scanner
	selections  *selection.Set
	options     types.Options
	minPriority int
	logger      *zap.Logger

	text   string
	result *scanner.Result
}

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	options     types.Options
	minPriority int
	logger      *zap.Logger
	setOptions  []selection.Option
}

// WithOptions sets the initial composition options.
func WithOptions(o types.Options) Option {
	return func(c *sessionConfig) {
		c.options = o
	}
}

// WithAutoSelectPriority sets the priority threshold used by AutoSelect.
func WithAutoSelectPriority(p int) Option {
	return func(c *sessionConfig) {
		c.minPriority = p
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *sessionConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithIDGenerator replaces the selection ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *sessionConfig) {
		c.setOptions = append(c.setOptions, selection.WithIDGenerator(fn))
	}
}

// New creates a session with empty text.
func New(sc *scanner.Scanner, opts ...Option) *Session {
	cfg := sessionConfig{
		minPriority: DefaultAutoSelectPriority,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Session{
		scanner:     sc,
		selections:  selection.NewSet(cfg.setOptions...),
		options:     cfg.options,
		minPriority: cfg.minPriority,
		logger:      cfg.logger,
		result:      &scanner.Result{Matches: []*types.Match{}},
	}
}

// Recognizers returns the recognizers this session scans with.
func (s *Session) Recognizers() []*types.Recognizer {
	return s.scanner.Recognizers()
}

// Text returns the current text.
func (s *Session) Text() string {
	return s.text
}

// SetText replaces the text, re-scans it and revalidates the selections.
// Returns the selections whose captured text is no longer in place.
func (s *Session) SetText(text string) []*types.Selection {
	s.text = text
	s.result = s.scanner.ScanDetailed(text)

	if n := s.result.Summary.BudgetExceeded; n > 0 {
		s.logger.Debug("scan completed with abandoned recognizers",
			zap.Int("budget_exceeded", n),
			zap.Int("matches", len(s.result.Matches)))
	}

	stale := s.selections.Revalidate(text)
	if len(stale) > 0 {
		s.logger.Debug("selections went stale", zap.Int("count", len(stale)))
	}
	return stale
}

// Matches returns every match in the current text.
func (s *Session) Matches() []*types.Match {
	return s.result.Matches
}

// ScanResult returns the full result of the last scan.
func (s *Session) ScanResult() *scanner.Result {
	return s.result
}

// Candidates returns the matches covering pos, best first.
func (s *Session) Candidates(pos int) []*types.Match {
	return resolver.CandidatesAt(s.result.Matches, pos)
}

// Groups returns the current matches grouped into overlapping clusters.
func (s *Session) Groups() []resolver.Group {
	return resolver.Groups(s.result.Matches)
}

// FindMatch looks up the match of recognizerID covering exactly [start, end).
func (s *Session) FindMatch(start, end int, recognizerID string) (*types.Match, error) {
	for _, m := range s.result.Matches {
		if m.Start == start && m.End == end && m.RecognizerID() == recognizerID {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s@%d:%d", types.ErrMatchNotFound, recognizerID, start, end)
}

// Select selects the match identified by its range and recognizer, emitting
// the recognizer's default pattern.
func (s *Session) Select(start, end int, recognizerID string) (*types.Selection, error) {
	m, err := s.FindMatch(start, end, recognizerID)
	if err != nil {
		return nil, err
	}
	return s.selections.Select(m)
}

// SelectWithPattern is Select with a caller-supplied emit pattern.
func (s *Session) SelectWithPattern(start, end int, recognizerID, emit string) (*types.Selection, error) {
	m, err := s.FindMatch(start, end, recognizerID)
	if err != nil {
		return nil, err
	}
	return s.selections.SelectWithPattern(m, emit)
}

// Deselect removes a selection. Unknown IDs are ignored.
func (s *Session) Deselect(id string) bool {
	return s.selections.Deselect(id)
}

// SetEmitPattern replaces a selection's emit pattern.
func (s *Session) SetEmitPattern(id, emit string) error {
	return s.selections.SetEmitPattern(id, emit)
}

// Reanchor moves a selection onto a match in the current text.
func (s *Session) Reanchor(id string, start, end int, recognizerID string) error {
	m, err := s.FindMatch(start, end, recognizerID)
	if err != nil {
		return err
	}
	return s.selections.Reanchor(id, m)
}

// ClearSelections removes every selection.
func (s *Session) ClearSelections() {
	s.selections.Clear()
}

// Selections returns the selections in start order.
func (s *Session) Selections() []*types.Selection {
	return s.selections.All()
}

// Options returns the composition options.
func (s *Session) Options() types.Options {
	return s.options
}

// SetOptions replaces the composition options.
func (s *Session) SetOptions(o types.Options) {
	s.options = o
}

// AutoSelect selects the best non-overlapping matches whose recognizer
// priority reaches the session threshold, leaving existing selections alone.
// Returns the selections it added.
func (s *Session) AutoSelect() []*types.Selection {
	eligible := make([]*types.Match, 0, len(s.result.Matches))
	for _, m := range s.result.Matches {
		if m.Priority() >= s.minPriority {
			eligible = append(eligible, m)
		}
	}

	var added []*types.Selection
	for _, m := range resolver.DefaultPicks(eligible) {
		sel, err := s.selections.Select(m)
		if err != nil {
			s.logger.Debug("auto-select skipped match",
				zap.String("match", m.Key()), zap.Error(err))
			continue
		}
		added = append(added, sel)
	}
	return added
}

// Compose builds the pattern for the current text, selections and options.
func (s *Session) Compose() composer.Pattern {
	return composer.Build(s.text, s.selections.All(), s.options)
}
