package scanner

import (
	"fmt"
	"time"

	"github.com/praetorian-inc/rxbuilder/pkg/types"
)

// RecognizerStatus represents how a recognizer's search ended
type RecognizerStatus int

const (
	// RecognizerCompleted indicates the recognizer searched the whole text
	RecognizerCompleted RecognizerStatus = iota
	// RecognizerSkipped indicates the prefilter ruled the recognizer out
	RecognizerSkipped
	// RecognizerBudgetExceeded indicates the search was abandoned mid-text
	RecognizerBudgetExceeded
	// RecognizerError indicates the regex engine failed for another reason
	RecognizerError
)

// String returns the string representation of RecognizerStatus
func (rs RecognizerStatus) String() string {
	switch rs {
	case RecognizerCompleted:
		return "completed"
	case RecognizerSkipped:
		return "skipped"
	case RecognizerBudgetExceeded:
		return "budget_exceeded"
	case RecognizerError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText lets the status serialize by name.
func (rs RecognizerStatus) MarshalText() ([]byte, error) {
	return []byte(rs.String()), nil
}

// UnmarshalText parses a status name written by MarshalText.
func (rs *RecognizerStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "completed":
		*rs = RecognizerCompleted
	case "skipped":
		*rs = RecognizerSkipped
	case "budget_exceeded":
		*rs = RecognizerBudgetExceeded
	case "error":
		*rs = RecognizerError
	default:
		return fmt.Errorf("unknown recognizer status %q", text)
	}
	return nil
}

// RecognizerStat contains statistics about a single recognizer's search
type RecognizerStat struct {
	RecognizerID string           `json:"recognizer_id"`
	Status       RecognizerStatus `json:"status"`
	Duration     time.Duration    `json:"duration"`
	Matches      int              `json:"matches"`
	Error        error            `json:"-"`
}

// Summary provides aggregate statistics for a scan
type Summary struct {
	TotalRecognizers int `json:"total_recognizers"`
	Completed        int `json:"completed"`
	Skipped          int `json:"skipped"`
	BudgetExceeded   int `json:"budget_exceeded"`
	Errors           int `json:"errors"`
}

// Result contains matches and execution statistics
type Result struct {
	Matches []*types.Match   `json:"matches"` // ordered by start, then catalog index
	Stats   []RecognizerStat `json:"stats"`   // in catalog order
	Summary Summary          `json:"summary"`
}

// Stat returns the statistics for one recognizer.
func (r *Result) Stat(recognizerID string) (RecognizerStat, bool) {
	for _, s := range r.Stats {
		if s.RecognizerID == recognizerID {
			return s, true
		}
	}
	return RecognizerStat{}, false
}

func (r *Result) record(stat RecognizerStat) {
	r.Stats = append(r.Stats, stat)
	r.Summary.TotalRecognizers++
	switch stat.Status {
	case RecognizerCompleted:
		r.Summary.Completed++
	case RecognizerSkipped:
		r.Summary.Skipped++
	case RecognizerBudgetExceeded:
		r.Summary.BudgetExceeded++
	case RecognizerError:
		r.Summary.Errors++
	}
}
