//go:build js && wasm
// +build js,wasm

package debug

import (
	"fmt"
	"syscall/js"
)

// Enabled が false の間は何も出力しない
var Enabled = false

func Log(format string, args ...any) {
	if !Enabled {
		return
	}
	js.Global().Get("console").Call("log", fmt.Sprintf(format, args...))
}
