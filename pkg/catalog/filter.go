package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/praetorian-inc/rxbuilder/pkg/types"
)

// FilterConfig specifies include and exclude patterns for recognizer filtering.
type FilterConfig struct {
	Include []string // Regex patterns - only matching recognizer IDs included
	Exclude []string // Regex patterns - matching recognizer IDs excluded
}

// ParsePatterns splits a comma-separated string into individual patterns.
// Patterns are trimmed of whitespace.
func ParsePatterns(patterns string) []string {
	if patterns == "" {
		return []string{}
	}

	parts := strings.Split(patterns, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Filter applies include and exclude patterns to recognizers, preserving order.
// Include is applied first, then exclude.
// Empty include means "include all".
// Returns error if any pattern is invalid regex.
func Filter(recognizers []*types.Recognizer, config FilterConfig) ([]*types.Recognizer, error) {
	if len(recognizers) == 0 {
		return recognizers, nil
	}

	includeRegexes, err := compileAll(config.Include)
	if err != nil {
		return nil, err
	}
	excludeRegexes, err := compileAll(config.Exclude)
	if err != nil {
		return nil, err
	}

	filtered := recognizers
	if len(includeRegexes) > 0 {
		filtered = keep(filtered, func(id string) bool { return matchesAny(id, includeRegexes) })
	}
	if len(excludeRegexes) > 0 {
		filtered = keep(filtered, func(id string) bool { return !matchesAny(id, excludeRegexes) })
	}

	return filtered, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	var regexes []*regexp.Regexp
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", p, err)
		}
		regexes = append(regexes, re)
	}
	return regexes, nil
}

func keep(recognizers []*types.Recognizer, pred func(id string) bool) []*types.Recognizer {
	result := make([]*types.Recognizer, 0)
	for _, r := range recognizers {
		if pred(r.ID) {
			result = append(result, r)
		}
	}
	return result
}

func matchesAny(id string, regexes []*regexp.Regexp) bool {
	for _, re := range regexes {
		if re.MatchString(id) {
			return true
		}
	}
	return false
}
