// Package rttlog is a tiny leveled logger for the firmware side, writing
// informational ASCII lines to the device's debug transport: a channel
// entirely separate from the USB-CDC endpoint the protocol task owns, so log
// output never interleaves with protocol bytes. It deliberately avoids any
// third-party logging library: none of the retrieved example firmware
// packages import one for this target, and go.uber.org/zap's
// allocation-heavy encoder pipeline is unsuitable for a no-OS,
// RAM-constrained microcontroller.
package rttlog

import "io"

type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "?"
	}
}

// Logger writes leveled lines to an underlying writer, typically a debug
// UART on the device, or os.Stdout in tests.
type Logger struct {
	w     io.Writer
	level Level
}

// New returns a Logger that writes to w, suppressing messages below min.
func New(w io.Writer, min Level) *Logger {
	return &Logger{w: w, level: min}
}

func (l *Logger) log(lvl Level, msg string) {
	if lvl < l.level {
		return
	}
	l.w.Write([]byte(lvl.String()))
	l.w.Write([]byte(": "))
	l.w.Write([]byte(msg))
	l.w.Write([]byte("\n"))
}

func (l *Logger) Debug(msg string) { l.log(LevelDebug, msg) }
func (l *Logger) Info(msg string)  { l.log(LevelInfo, msg) }
func (l *Logger) Warn(msg string)  { l.log(LevelWarn, msg) }
func (l *Logger) Error(msg string) { l.log(LevelError, msg) }
