//go:build wasm

package main

import (
	"encoding/json"
	"syscall/js"
	"testing"

	"github.com/praetorian-inc/rxbuilder/pkg/serve"
)

func mustHandle(t *testing.T, recognizers string) int {
	t.Helper()
	result := newSession(js.Value{}, []js.Value{js.ValueOf(recognizers)})

	resultMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected map result, got %T", result)
	}
	if errMsg, hasError := resultMap["error"]; hasError {
		t.Fatalf("Failed to create session: %v", errMsg)
	}
	return resultMap["handle"].(int)
}

func send(t *testing.T, handle int, req string) serve.Response {
	t.Helper()
	result := request(js.Value{}, []js.Value{js.ValueOf(handle), js.ValueOf(req)})

	out, ok := result.(string)
	if !ok {
		t.Fatalf("Expected JSON string, got %T: %v", result, result)
	}

	var resp serve.Response
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	return resp
}

// TestSessionCreation tests creating a session with builtin recognizers
func TestSessionCreation(t *testing.T) {
	handle := mustHandle(t, "builtin")
	closeSession(js.Value{}, []js.Value{js.ValueOf(handle)})
}

// TestSessionWithCustomRecognizers tests a recognizers document given as JSON
func TestSessionWithCustomRecognizers(t *testing.T) {
	doc := `{"recognizers": [{"id": "test.ticket", "name": "Ticket", "priority": 50,
		"detect": "\\bTKT-[0-9]+\\b", "emit": "TKT-\\d+"}]}`

	handle := mustHandle(t, doc)
	defer closeSession(js.Value{}, []js.Value{js.ValueOf(handle)})

	resp := send(t, handle, `{"type":"set_text","payload":{"text":"closed TKT-1234"}}`)
	if !resp.Success {
		t.Fatalf("set_text failed: %s", resp.Error)
	}

	resp = send(t, handle, `{"type":"select","payload":{"start":7,"end":15,"recognizer_id":"test.ticket"}}`)
	if !resp.Success {
		t.Fatalf("select failed: %s", resp.Error)
	}

	resp = send(t, handle, `{"type":"compose"}`)
	var pattern struct {
		Body string `json:"body"`
	}
	if err := json.Unmarshal(resp.Data, &pattern); err != nil {
		t.Fatalf("Failed to parse pattern: %v", err)
	}
	if pattern.Body != `closed\ TKT-\d+` {
		t.Errorf("Expected body %q, got %q", `closed\ TKT-\d+`, pattern.Body)
	}
}

// TestSessionInvalidRecognizers tests that a broken document is reported
func TestSessionInvalidRecognizers(t *testing.T) {
	result := newSession(js.Value{}, []js.Value{js.ValueOf(`{"recognizers": [{"id": "bad", "detect": "(", "emit": "x"}]}`)})

	resultMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected map result, got %T", result)
	}
	if _, hasError := resultMap["error"]; !hasError {
		t.Fatal("Expected error for invalid recognizer")
	}
}

// TestRequestOverlapKind tests that error kinds survive the bridge
func TestRequestOverlapKind(t *testing.T) {
	handle := mustHandle(t, "builtin")
	defer closeSession(js.Value{}, []js.Value{js.ValueOf(handle)})

	send(t, handle, `{"type":"set_text","payload":{"text":"GET http://example.com/a 200"}}`)

	resp := send(t, handle, `{"type":"select","payload":{"start":0,"end":3,"recognizer_id":"net.http_method"}}`)
	if !resp.Success {
		t.Fatalf("select failed: %s", resp.Error)
	}

	resp = send(t, handle, `{"type":"select","payload":{"start":0,"end":3,"recognizer_id":"net.http_method"}}`)
	if resp.Success {
		t.Fatal("Expected overlapping select to fail")
	}
	if resp.Kind != "OverlapConflict" {
		t.Errorf("Expected kind OverlapConflict, got %q", resp.Kind)
	}
}

// TestRequestMalformedJSON tests a request that is not JSON
func TestRequestMalformedJSON(t *testing.T) {
	handle := mustHandle(t, "builtin")
	defer closeSession(js.Value{}, []js.Value{js.ValueOf(handle)})

	resp := send(t, handle, `{not json`)
	if resp.Success {
		t.Fatal("Expected failure for malformed request")
	}
	if resp.Kind != "BadRequest" {
		t.Errorf("Expected kind BadRequest, got %q", resp.Kind)
	}
}

// TestInvalidHandle tests requests against a closed session
func TestInvalidHandle(t *testing.T) {
	handle := mustHandle(t, "builtin")
	closeSession(js.Value{}, []js.Value{js.ValueOf(handle)})

	result := request(js.Value{}, []js.Value{js.ValueOf(handle), js.ValueOf(`{"type":"compose"}`)})
	resultMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected map result, got %T", result)
	}
	if resultMap["error"] != "invalid session handle" {
		t.Errorf("Unexpected error: %v", resultMap["error"])
	}
}

// TestGetBuiltinRecognizers tests the builtin recognizer listing
func TestGetBuiltinRecognizers(t *testing.T) {
	result := getBuiltinRecognizers(js.Value{}, nil)

	out, ok := result.(string)
	if !ok {
		t.Fatalf("Expected JSON string, got %T", result)
	}

	var recognizers []map[string]interface{}
	if err := json.Unmarshal([]byte(out), &recognizers); err != nil {
		t.Fatalf("Failed to parse recognizers: %v", err)
	}
	if len(recognizers) == 0 {
		t.Fatal("Expected builtin recognizers")
	}
}
