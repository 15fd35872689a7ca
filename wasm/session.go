//go:build wasm

package main

import (
	"encoding/json"
	"sync"
	"syscall/js"

	"github.com/praetorian-inc/rxbuilder/pkg/catalog"
	"github.com/praetorian-inc/rxbuilder/pkg/scanner"
	"github.com/praetorian-inc/rxbuilder/pkg/serve"
	"github.com/praetorian-inc/rxbuilder/pkg/session"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
)

// handle pairs a session's protocol handler with the lock that serializes
// requests against it.
type handle struct {
	mu      sync.Mutex
	handler *serve.Handler
}

var (
	handles   = make(map[int]*handle)
	handlesMu sync.RWMutex
	nextID    int
)

// newSession creates a session over the builtin recognizers or a
// recognizers document (YAML or JSON).
// JS: RxbuilderNewSession(recognizers) -> {handle} or {error}
func newSession(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "recognizers argument required"}
	}

	c, err := loadCatalog(args[0].String())
	if err != nil {
		return map[string]interface{}{"error": "failed to load recognizers: " + err.Error()}
	}

	sc, err := scanner.New(c)
	if err != nil {
		return map[string]interface{}{"error": "failed to create scanner: " + err.Error()}
	}

	h := &handle{handler: serve.NewHandler(session.New(sc), nil)}

	handlesMu.Lock()
	id := nextID
	nextID++
	handles[id] = h
	handlesMu.Unlock()

	return map[string]interface{}{"handle": id}
}

func loadCatalog(doc string) (*catalog.Catalog, error) {
	if doc == "" || doc == "builtin" {
		return catalog.Builtin()
	}
	recognizers, err := catalog.NewLoader().Load([]byte(doc))
	if err != nil {
		return nil, err
	}
	return catalog.New(recognizers)
}

// request runs one protocol request (the same NDJSON line "rxbuilder serve"
// accepts) against a session.
// JS: RxbuilderRequest(handle, requestJSON) -> JSON response or {error}
func request(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and requestJSON arguments required"}
	}

	handlesMu.RLock()
	h, ok := handles[args[0].Int()]
	handlesMu.RUnlock()

	if !ok {
		return map[string]interface{}{"error": "invalid session handle"}
	}

	var req serve.Request
	var resp serve.Response
	if err := json.Unmarshal([]byte(args[1].String()), &req); err != nil {
		resp = serve.ErrorResponse("decode", err)
	} else {
		h.mu.Lock()
		var done bool
		resp, done = h.handler.Handle(req)
		h.mu.Unlock()
		if done {
			return nil
		}
	}

	jsonBytes, err := json.Marshal(resp)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal response: " + err.Error()}
	}

	return string(jsonBytes)
}

// closeSession releases a session.
// JS: RxbuilderCloseSession(handle)
func closeSession(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "handle argument required"}
	}

	handle := args[0].Int()

	handlesMu.Lock()
	_, ok := handles[handle]
	if ok {
		delete(handles, handle)
	}
	handlesMu.Unlock()

	if !ok {
		return map[string]interface{}{"error": "invalid session handle"}
	}

	return nil
}

// getBuiltinRecognizers returns the built-in recognizers as JSON.
// JS: RxbuilderGetBuiltinRecognizers() -> JSON recognizer array
func getBuiltinRecognizers(this js.Value, args []js.Value) interface{} {
	c, err := catalog.Builtin()
	if err != nil {
		return map[string]interface{}{"error": "failed to load builtin recognizers: " + err.Error()}
	}

	jsonBytes, err := json.Marshal(types.RecognizerViews(c.All()))
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal recognizers: " + err.Error()}
	}

	return string(jsonBytes)
}
