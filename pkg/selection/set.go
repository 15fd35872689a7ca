// Package selection keeps the user's chosen interpretations: at most one per
// region of text, always sorted by start and pairwise disjoint.
package selection

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/praetorian-inc/rxbuilder/pkg/pattern"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
)

// Set is an ordered collection of non-overlapping selections.
//
// Every mutation either succeeds completely or leaves the set unchanged.
// Selections handed out are copies; changing them does not affect the set.
// A Set is not safe for concurrent use.
type Set struct {
	items []*types.Selection // sorted by Start, pairwise disjoint
	newID func() string
}

// Option configures a Set.
type Option func(*Set)

// WithIDGenerator replaces the UUID generator used for selection IDs.
func WithIDGenerator(fn func() string) Option {
	return func(s *Set) {
		s.newID = fn
	}
}

// NewSet creates an empty selection set.
func NewSet(opts ...Option) *Set {
	s := &Set{newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select records m with its recognizer's emit pattern.
func (s *Set) Select(m *types.Match) (*types.Selection, error) {
	if m == nil || m.Recognizer == nil {
		return nil, fmt.Errorf("%w: match has no recognizer", types.ErrMatchNotFound)
	}
	return s.SelectWithPattern(m, m.Recognizer.Emit)
}

// SelectWithPattern records m with a caller-supplied emit pattern. It fails
// with types.ErrInvalidPattern when the pattern does not compile and with an
// *types.OverlapError when m intersects an existing selection.
func (s *Set) SelectWithPattern(m *types.Match, emit string) (*types.Selection, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: match is nil", types.ErrMatchNotFound)
	}
	if err := pattern.ValidateFragment(emit); err != nil {
		return nil, err
	}
	if conflicts := s.overlapping(m.Start, m.End, ""); len(conflicts) > 0 {
		return nil, &types.OverlapError{Span: m.Span, Conflicts: conflicts}
	}

	sel := &types.Selection{
		ID:          s.newID(),
		Span:        m.Span,
		Text:        m.Text,
		EmitPattern: emit,
	}
	if m.Recognizer != nil {
		sel.RecognizerID = m.Recognizer.ID
		sel.RecognizerName = m.Recognizer.Name
	}

	s.insert(sel)
	return sel.Clone(), nil
}

// Deselect removes the selection with the given ID. Removing an absent ID
// is a no-op; the return value reports whether anything was removed.
func (s *Set) Deselect(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// SetEmitPattern replaces the emit pattern of one selection. The prior value
// is kept when the new pattern does not compile.
func (s *Set) SetEmitPattern(id, emit string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", types.ErrSelectionNotFound, id)
	}
	if err := pattern.ValidateFragment(emit); err != nil {
		return err
	}
	s.items[i].EmitPattern = emit
	return nil
}

// Reanchor moves a selection onto a new match, keeping its ID and emit
// pattern. Used to recover a stale selection after the text changed.
func (s *Set) Reanchor(id string, m *types.Match) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", types.ErrSelectionNotFound, id)
	}
	if m == nil {
		return fmt.Errorf("%w: match is nil", types.ErrMatchNotFound)
	}
	if conflicts := s.overlapping(m.Start, m.End, id); len(conflicts) > 0 {
		return &types.OverlapError{Span: m.Span, Conflicts: conflicts}
	}

	sel := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)

	sel.Span = m.Span
	sel.Text = m.Text
	sel.Stale = false
	if m.Recognizer != nil {
		sel.RecognizerID = m.Recognizer.ID
		sel.RecognizerName = m.Recognizer.Name
	}
	s.insert(sel)
	return nil
}

// Revalidate checks every selection against text and marks those whose
// captured text is no longer at their range as stale (and clears the mark on
// those that match again). Stale selections are kept so the user can
// reanchor or remove them. Returns the stale selections.
func (s *Set) Revalidate(text string) []*types.Selection {
	runes := []rune(text)
	for _, sel := range s.items {
		sel.Stale = !sel.Matches(runes)
	}
	return s.Stale()
}

// Stale returns the selections currently marked stale, in start order.
func (s *Set) Stale() []*types.Selection {
	var out []*types.Selection
	for _, sel := range s.items {
		if sel.Stale {
			out = append(out, sel.Clone())
		}
	}
	return out
}

// Get returns a copy of the selection with the given ID.
func (s *Set) Get(id string) (*types.Selection, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return s.items[i].Clone(), true
}

// All returns copies of every selection in start order.
func (s *Set) All() []*types.Selection {
	out := make([]*types.Selection, 0, len(s.items))
	for _, sel := range s.items {
		out = append(out, sel.Clone())
	}
	return out
}

// Len returns the number of selections.
func (s *Set) Len() int {
	return len(s.items)
}

// Clear removes every selection.
func (s *Set) Clear() {
	s.items = nil
}

// overlapping returns copies of selections intersecting [start, end),
// ignoring the selection with ID skip.
func (s *Set) overlapping(start, end int, skip string) []*types.Selection {
	var out []*types.Selection
	for _, sel := range s.items {
		if sel.ID != skip && sel.Overlaps(start, end) {
			out = append(out, sel.Clone())
		}
	}
	return out
}

func (s *Set) insert(sel *types.Selection) {
	i, _ := slices.BinarySearchFunc(s.items, sel.Start, func(e *types.Selection, start int) int {
		return e.Start - start
	})
	s.items = slices.Insert(s.items, i, sel)
}

func (s *Set) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(sel *types.Selection) bool {
		return sel.ID == id
	})
}
