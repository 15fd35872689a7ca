package serve

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/praetorian-inc/rxbuilder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(t *testing.T, typ string, payload any) Request {
	t.Helper()
	req := Request{Type: typ}
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		req.Payload = raw
	}
	return req
}

func TestHandler_Ready(t *testing.T) {
	h := NewHandler(newSession(t), nil)

	resp := h.Ready()
	assert.True(t, resp.Success)
	assert.Equal(t, "ready", resp.Type)
	assert.Equal(t, Version, decodeData[ReadyData](t, resp).Version)
}

func TestHandler_MissingPayload(t *testing.T) {
	h := NewHandler(newSession(t), nil)

	resp, done := h.Handle(Request{Type: "set_text"})
	require.False(t, done)
	assert.True(t, resp.Success)

	data := decodeData[SetTextData](t, resp)
	assert.Empty(t, data.Matches)
	assert.NotNil(t, data.Stale)
}

func TestHandler_Close(t *testing.T) {
	h := NewHandler(newSession(t), nil)

	_, done := h.Handle(Request{Type: "close"})
	assert.True(t, done)
}

func TestHandler_SelectThenSetOptions(t *testing.T) {
	h := NewHandler(newSession(t), nil)

	resp, _ := h.Handle(request(t, "set_text", SetTextPayload{Text: "user_42 logged in"}))
	require.True(t, resp.Success)

	resp, _ = h.Handle(request(t, "select", SelectPayload{Start: 0, End: 7, RecognizerID: "text.identifier"}))
	require.True(t, resp.Success, resp.Error)

	resp, _ = h.Handle(request(t, "set_options", SetOptionsPayload{
		Options: types.Options{CaseInsensitive: true, GenerateLowercase: true},
	}))
	require.True(t, resp.Success)

	p := decodeData[struct {
		Body  string `json:"body"`
		Flags string `json:"flags"`
	}](t, resp)
	assert.Equal(t, `[a-z_]\w*\ logged\ in`, p.Body)
	assert.Equal(t, "i", p.Flags)
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		err  error
		kind string
	}{
		{fmt.Errorf("wrap: %w", types.ErrInvalidPattern), "InvalidPattern"},
		{&types.OverlapError{}, "OverlapConflict"},
		{json.Unmarshal([]byte("{"), &struct{}{}), "BadRequest"},
		{errors.New("boom"), "internal"},
	}

	for _, tt := range tests {
		resp := ErrorResponse("select", tt.err)
		assert.False(t, resp.Success)
		assert.Equal(t, "select", resp.Type)
		assert.Equal(t, tt.kind, resp.Kind, tt.err.Error())
	}
}
