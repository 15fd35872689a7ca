package scanner

import (
	"time"

	"go.uber.org/zap"
)

// DefaultBudget is the per-recognizer execution budget for one scan.
// Input is user-supplied and rescanned on every edit, so a recognizer that
// backtracks catastrophically must be cut off well inside interactive latency.
// Each regex call overshoots by at most 2*pattern.TimeoutResolution.
const DefaultBudget = 25 * time.Millisecond

// Option configures a Scanner.
type Option func(*Scanner)

// WithBudget sets the per-recognizer execution budget (0 = no limit).
func WithBudget(d time.Duration) Option {
	return func(s *Scanner) {
		s.budget = d
	}
}

// WithLogger sets the logger used to report abandoned recognizers.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithoutPrefilter disables keyword gating so every recognizer runs.
func WithoutPrefilter() Option {
	return func(s *Scanner) {
		s.usePrefilter = false
	}
}
