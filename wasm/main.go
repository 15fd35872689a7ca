//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	// Export functions to JavaScript
	js.Global().Set("RxbuilderNewSession", js.FuncOf(newSession))
	js.Global().Set("RxbuilderRequest", js.FuncOf(request))
	js.Global().Set("RxbuilderCloseSession", js.FuncOf(closeSession))
	js.Global().Set("RxbuilderGetBuiltinRecognizers", js.FuncOf(getBuiltinRecognizers))

	// Keep WASM running
	<-make(chan struct{})
}
