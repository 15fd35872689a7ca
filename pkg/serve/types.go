package serve

import (
	"encoding/json"

	"github.com/praetorian-inc/rxbuilder/pkg/composer"
	"github.com/praetorian-inc/rxbuilder/pkg/scanner"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "set_text" | "candidates" | "select" | ... | "close"
	Payload json.RawMessage `json:"payload"`
}

// SetTextPayload is the payload for "set_text" requests
type SetTextPayload struct {
	Text string `json:"text"`
}

// CandidatesPayload is the payload for "candidates" requests
type CandidatesPayload struct {
	Pos int `json:"pos"`
}

// SelectPayload is the payload for "select" requests. Emit overrides the
// recognizer's default fragment when set.
type SelectPayload struct {
	Start        int     `json:"start"`
	End          int     `json:"end"`
	RecognizerID string  `json:"recognizer_id"`
	Emit         *string `json:"emit,omitempty"`
}

// ReanchorPayload is the payload for "reanchor" requests
type ReanchorPayload struct {
	ID           string `json:"id"`
	Start        int    `json:"start"`
	End          int    `json:"end"`
	RecognizerID string `json:"recognizer_id"`
}

// DeselectPayload is the payload for "deselect" requests
type DeselectPayload struct {
	ID string `json:"id"`
}

// SetEmitPayload is the payload for "set_emit" requests
type SetEmitPayload struct {
	ID   string `json:"id"`
	Emit string `json:"emit"`
}

// SetOptionsPayload is the payload for "set_options" requests
type SetOptionsPayload struct {
	Options types.Options `json:"options"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // request type echoed back, or "ready"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Kind    string          `json:"kind,omitempty"` // error taxonomy name, e.g. "OverlapConflict"
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version     string `json:"version"`
	Recognizers int    `json:"recognizers"`
}

// SetTextData is the data field for "set_text" responses
type SetTextData struct {
	Matches []types.MatchView  `json:"matches"`
	Stale   []*types.Selection `json:"stale"`
	Summary scanner.Summary    `json:"summary"`
	Pattern composer.Pattern   `json:"pattern"`
}

// CandidatesData is the data field for "candidates" responses
type CandidatesData struct {
	Pos        int               `json:"pos"`
	Candidates []types.MatchView `json:"candidates"`
}

// SelectionData is the data field for responses that change one selection
type SelectionData struct {
	Selection *types.Selection `json:"selection"`
	Pattern   composer.Pattern `json:"pattern"`
}

// SelectionsData is the data field for responses listing selections
type SelectionsData struct {
	Selections []*types.Selection `json:"selections"`
	Pattern    composer.Pattern   `json:"pattern"`
}

// DeselectData is the data field for "deselect" responses
type DeselectData struct {
	Removed bool             `json:"removed"`
	Pattern composer.Pattern `json:"pattern"`
}
