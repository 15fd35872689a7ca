package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfig marks a recognizer catalog that cannot be loaded. Fatal at startup.
	ErrConfig = errors.New("config error")

	// ErrOverlapConflict marks a selection that intersects an existing one.
	ErrOverlapConflict = errors.New("overlap conflict")

	// ErrInvalidPattern marks a pattern fragment that does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrScanBudgetExceeded marks a recognizer abandoned mid-scan.
	ErrScanBudgetExceeded = errors.New("scan budget exceeded")

	// ErrSelectionNotFound marks an operation on an unknown selection ID.
	ErrSelectionNotFound = errors.New("selection not found")

	// ErrMatchNotFound marks a request for a match absent from the current scan.
	ErrMatchNotFound = errors.New("match not found")
)

// OverlapError reports the selections that block a proposed range.
type OverlapError struct {
	Span      Span
	Conflicts []*Selection
}

func (e *OverlapError) Error() string {
	ids := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		ids = append(ids, fmt.Sprintf("%s [%d,%d)", c.ID, c.Start, c.End))
	}
	return fmt.Sprintf("%s: range [%d,%d) overlaps %s",
		ErrOverlapConflict, e.Span.Start, e.Span.End, strings.Join(ids, ", "))
}

// Unwrap lets errors.Is match ErrOverlapConflict.
func (e *OverlapError) Unwrap() error {
	return ErrOverlapConflict
}

// Kind maps err to its taxonomy name for protocol responses.
// Returns "" for nil and "internal" for errors outside the taxonomy.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfig):
		return "ConfigError"
	case errors.Is(err, ErrOverlapConflict):
		return "OverlapConflict"
	case errors.Is(err, ErrInvalidPattern):
		return "InvalidPattern"
	case errors.Is(err, ErrScanBudgetExceeded):
		return "ScanBudgetExceeded"
	case errors.Is(err, ErrSelectionNotFound):
		return "SelectionNotFound"
	case errors.Is(err, ErrMatchNotFound):
		return "MatchNotFound"
	default:
		return "internal"
	}
}
