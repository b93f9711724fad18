//go:build !(js && wasm)

package debug

import (
	"log"
	"os"
)

// Enabled が false の間は何も出力しない
var Enabled = false

var logger = log.New(os.Stderr, "[debug] ", log.Lmsgprefix)

func Log(format string, args ...any) {
	if !Enabled {
		return
	}
	logger.Printf(format, args...)
}
