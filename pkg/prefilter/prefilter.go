// Package prefilter gates recognizers on the presence of their required
// literal keywords using a single Aho-Corasick pass over the input.
package prefilter

import (
	"github.com/cloudflare/ahocorasick"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
)

// Prefilter uses Aho-Corasick for efficient keyword matching.
type Prefilter struct {
	matcher       *ahocorasick.Matcher
	keywords      []string                       // keyword at each index
	keywordRecs   map[string][]*types.Recognizer // keyword -> recognizers needing it
	noKeywordRecs []*types.Recognizer            // recognizers without keywords (always run)
}

// New creates a prefilter from recognizers.
func New(recognizers []*types.Recognizer) *Prefilter {
	pf := &Prefilter{
		keywordRecs:   make(map[string][]*types.Recognizer),
		noKeywordRecs: make([]*types.Recognizer, 0),
	}

	keywordSet := make(map[string]bool)
	for _, r := range recognizers {
		if !r.HasKeywords() {
			pf.noKeywordRecs = append(pf.noKeywordRecs, r)
			continue
		}
		for _, keyword := range r.Keywords {
			if !keywordSet[keyword] {
				keywordSet[keyword] = true
				pf.keywords = append(pf.keywords, keyword)
			}
			pf.keywordRecs[keyword] = append(pf.keywordRecs[keyword], r)
		}
	}

	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}

	return pf
}

// Candidates returns the set of recognizers that might match text: those
// without keywords plus those with at least one keyword present.
// Membership is keyed by recognizer pointer; callers keep their own order.
func (pf *Prefilter) Candidates(text string) map[*types.Recognizer]bool {
	result := make(map[*types.Recognizer]bool, len(pf.noKeywordRecs))
	for _, r := range pf.noKeywordRecs {
		result[r] = true
	}

	if pf.matcher == nil {
		return result
	}

	for _, hit := range pf.matcher.Match([]byte(text)) {
		for _, r := range pf.keywordRecs[pf.keywords[hit]] {
			result[r] = true
		}
	}

	return result
}
