package serve

import (
	"encoding/json"
	"errors"

	"github.com/praetorian-inc/rxbuilder/pkg/session"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
	"go.uber.org/zap"
)

// Handler answers protocol requests against one session. It does no I/O, so
// the same protocol can be served over stdio or from the wasm bridge.
// A Handler is not safe for concurrent use.
type Handler struct {
	session *session.Session
	logger  *zap.Logger
}

// NewHandler creates a handler for sess.
func NewHandler(sess *session.Session, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{session: sess, logger: logger}
}

// Ready returns the response announcing the protocol version.
func (h *Handler) Ready() Response {
	data, _ := json.Marshal(ReadyData{
		Version:     Version,
		Recognizers: len(h.session.Recognizers()),
	})
	return Response{
		Success: true,
		Type:    "ready",
		Data:    data,
	}
}

// Handle processes one request. The second result is true for "close",
// in which case there is no response to send.
func (h *Handler) Handle(req Request) (Response, bool) {
	h.logger.Debug("request", zap.String("type", req.Type))

	var (
		data any
		err  error
	)
	switch req.Type {
	case "set_text":
		data, err = h.handleSetText(req.Payload)
	case "candidates":
		data, err = h.handleCandidates(req.Payload)
	case "select":
		data, err = h.handleSelect(req.Payload)
	case "reanchor":
		data, err = h.handleReanchor(req.Payload)
	case "deselect":
		data, err = h.handleDeselect(req.Payload)
	case "set_emit":
		data, err = h.handleSetEmit(req.Payload)
	case "set_options":
		data, err = h.handleSetOptions(req.Payload)
	case "auto_select":
		data = h.selectionsData(h.session.AutoSelect())
	case "selections":
		data = h.selectionsData(h.session.Selections())
	case "compose":
		data = h.session.Compose()
	case "recognizers":
		data = types.RecognizerViews(h.session.Recognizers())
	case "close":
		return Response{}, true
	default:
		return Response{
			Success: false,
			Type:    "unknown",
			Error:   "unknown request type: " + req.Type,
		}, false
	}

	if err != nil {
		return ErrorResponse(req.Type, err), false
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return ErrorResponse(req.Type, err), false
	}
	return Response{
		Success: true,
		Type:    req.Type,
		Data:    raw,
	}, false
}

// ErrorResponse builds a failed response carrying the error's kind.
// JSON decoding failures are reported as "BadRequest".
func ErrorResponse(reqType string, err error) Response {
	kind := types.Kind(err)
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if kind == "internal" && (errors.As(err, &syntaxErr) || errors.As(err, &typeErr)) {
		kind = "BadRequest"
	}
	return Response{
		Success: false,
		Type:    reqType,
		Error:   err.Error(),
		Kind:    kind,
	}
}

func (h *Handler) handleSetText(payload json.RawMessage) (any, error) {
	var p SetTextPayload
	if err := decodePayload(payload, &p); err != nil {
		return nil, err
	}

	stale := h.session.SetText(p.Text)
	if stale == nil {
		stale = []*types.Selection{}
	}
	return SetTextData{
		Matches: types.Views(h.session.Matches()),
		Stale:   stale,
		Summary: h.session.ScanResult().Summary,
		Pattern: h.session.Compose(),
	}, nil
}

func (h *Handler) handleCandidates(payload json.RawMessage) (any, error) {
	var p CandidatesPayload
	if err := decodePayload(payload, &p); err != nil {
		return nil, err
	}
	return CandidatesData{
		Pos:        p.Pos,
		Candidates: types.Views(h.session.Candidates(p.Pos)),
	}, nil
}

func (h *Handler) handleSelect(payload json.RawMessage) (any, error) {
	var p SelectPayload
	if err := decodePayload(payload, &p); err != nil {
		return nil, err
	}

	var (
		sel *types.Selection
		err error
	)
	if p.Emit != nil {
		sel, err = h.session.SelectWithPattern(p.Start, p.End, p.RecognizerID, *p.Emit)
	} else {
		sel, err = h.session.Select(p.Start, p.End, p.RecognizerID)
	}
	if err != nil {
		return nil, err
	}
	return SelectionData{Selection: sel, Pattern: h.session.Compose()}, nil
}

func (h *Handler) handleReanchor(payload json.RawMessage) (any, error) {
	var p ReanchorPayload
	if err := decodePayload(payload, &p); err != nil {
		return nil, err
	}
	if err := h.session.Reanchor(p.ID, p.Start, p.End, p.RecognizerID); err != nil {
		return nil, err
	}
	return h.selectionData(p.ID), nil
}

func (h *Handler) handleDeselect(payload json.RawMessage) (any, error) {
	var p DeselectPayload
	if err := decodePayload(payload, &p); err != nil {
		return nil, err
	}
	removed := h.session.Deselect(p.ID)
	return DeselectData{Removed: removed, Pattern: h.session.Compose()}, nil
}

func (h *Handler) handleSetEmit(payload json.RawMessage) (any, error) {
	var p SetEmitPayload
	if err := decodePayload(payload, &p); err != nil {
		return nil, err
	}
	if err := h.session.SetEmitPattern(p.ID, p.Emit); err != nil {
		return nil, err
	}
	return h.selectionData(p.ID), nil
}

func (h *Handler) handleSetOptions(payload json.RawMessage) (any, error) {
	var p SetOptionsPayload
	if err := decodePayload(payload, &p); err != nil {
		return nil, err
	}
	h.session.SetOptions(p.Options)
	return h.session.Compose(), nil
}

func (h *Handler) selectionData(id string) SelectionData {
	var sel *types.Selection
	for _, x := range h.session.Selections() {
		if x.ID == id {
			sel = x
			break
		}
	}
	return SelectionData{Selection: sel, Pattern: h.session.Compose()}
}

func (h *Handler) selectionsData(sels []*types.Selection) SelectionsData {
	if sels == nil {
		sels = []*types.Selection{}
	}
	return SelectionsData{Selections: sels, Pattern: h.session.Compose()}
}

// decodePayload tolerates a missing payload; the zero value is used.
func decodePayload(payload json.RawMessage, v any) error {
	if len(payload) == 0 || string(payload) == "null" {
		return nil
	}
	return json.Unmarshal(payload, v)
}
