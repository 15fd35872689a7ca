package catalog

import (
	"fmt"
	"strings"

	"github.com/praetorian-inc/rxbuilder/pkg/pattern"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
)

// ValidateRecognizer checks recognizer consistency and required fields.
// Detection patterns and emitted fragments must compile, every example must
// be detected, and no negative example may be.
func ValidateRecognizer(r *types.Recognizer) error {
	if r == nil {
		return fmt.Errorf("recognizer is nil")
	}

	if r.ID == "" {
		return fmt.Errorf("recognizer ID is required")
	}
	if r.Name == "" {
		return fmt.Errorf("recognizer %s: name is required", r.ID)
	}
	if r.Detect == "" {
		return fmt.Errorf("recognizer %s: detect pattern is required", r.ID)
	}
	if r.Emit == "" {
		return fmt.Errorf("recognizer %s: emit pattern is required", r.ID)
	}

	re, err := pattern.Compile(r.Detect)
	if err != nil {
		return fmt.Errorf("invalid detect pattern for recognizer %s: %w", r.ID, err)
	}
	if err := pattern.ValidateFragment(r.Emit); err != nil {
		return fmt.Errorf("invalid emit pattern for recognizer %s: %w", r.ID, err)
	}

	for _, example := range r.Examples {
		ok, err := re.MatchString(example)
		if err != nil {
			return fmt.Errorf("recognizer %s: example %q: %w", r.ID, example, err)
		}
		if !ok {
			return fmt.Errorf("recognizer %s: example %q is not detected", r.ID, example)
		}
		if r.HasKeywords() && !containsAny(example, r.Keywords) {
			return fmt.Errorf("recognizer %s: example %q lacks keywords %v", r.ID, example, r.Keywords)
		}
	}

	for _, example := range r.NegativeExamples {
		ok, err := re.MatchString(example)
		if err != nil {
			return fmt.Errorf("recognizer %s: negative example %q: %w", r.ID, example, err)
		}
		if ok {
			return fmt.Errorf("recognizer %s: negative example %q is detected", r.ID, example)
		}
	}

	return nil
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
