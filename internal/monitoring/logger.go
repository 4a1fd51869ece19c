// Package monitoring provides the package-level diagnostic logger shared by
// the analysis pipeline.
package monitoring

import (
	"log"
	"sync/atomic"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

var debugEnabled atomic.Bool

// EnableDebug toggles per-frame diagnostic output. Off by default; per-frame
// logging is far too chatty for live sessions.
func EnableDebug(on bool) { debugEnabled.Store(on) }

// DebugEnabled reports whether per-frame diagnostics are on.
func DebugEnabled() bool { return debugEnabled.Load() }

// Debugf logs through Logf only when debug diagnostics are enabled.
func Debugf(format string, v ...interface{}) {
	if debugEnabled.Load() {
		Logf(format, v...)
	}
}
