// Package pattern wraps regexp2 compilation and escaping for recognizer
// detection patterns and emitted fragments.
package pattern

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
)

// TimeoutResolution is how often regexp2 samples its timeout clock. A match
// with a MatchTimeout of d is abandoned within d + 2*TimeoutResolution.
const TimeoutResolution = 5 * time.Millisecond

// detectOptions apply on both syntax paths so ^ and $ always anchor lines.
const detectOptions = regexp2.Multiline

func init() {
	regexp2.SetTimeoutCheckPeriod(TimeoutResolution)
}

// Compile compiles expr for detection. RE2 syntax is tried first (no
// backtracking-only constructs, (?P<name>) groups allowed); Perl-compatible
// syntax is the fallback for patterns that need it, like (?x).
func Compile(expr string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(expr, detectOptions|regexp2.RE2)
	if err == nil {
		return re, nil
	}
	re, err = regexp2.Compile(expr, detectOptions)
	if err != nil {
		return nil, err
	}
	return re, nil
}

// ValidateFragment checks that fragment compiles on its own as a pattern.
// Returns an error wrapping types.ErrInvalidPattern.
func ValidateFragment(fragment string) error {
	if strings.TrimSpace(fragment) == "" {
		return fmt.Errorf("%w: fragment is empty", types.ErrInvalidPattern)
	}
	if _, err := Compile(fragment); err != nil {
		return fmt.Errorf("%w: %q: %v", types.ErrInvalidPattern, fragment, err)
	}
	return nil
}

// Escape returns literal with every metacharacter and whitespace character
// escaped so the result matches literal and nothing else.
func Escape(literal string) string {
	return regexp2.Escape(literal)
}

// IsTimeout reports whether err came from a regexp2 match timeout.
func IsTimeout(err error) bool {
	return err != nil && strings.Contains(err.Error(), "match timeout")
}
