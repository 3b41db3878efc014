// Package klog routes kernel diagnostics and the boot/dispatch trace
// output through a structured logger instead of bare fmt.Printf, while
// keeping the exact trace text byte-for-byte (single-character boot
// marker, "[prev→next]" dispatch lines, single-letter SVC markers) so
// the wire-visible UART stream is unaffected.
package klog

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// traceFormatter emits only the message: no timestamps or level
// prefixes on the trace channel, since its bytes are part of the
// UART's observable output.
type traceFormatter struct{}

func (traceFormatter) Format(e *logrus.Entry) ([]byte, error) {
	return []byte(e.Message), nil
}

// Logger wraps a logrus.Logger split into two channels: Trace for the
// byte-exact UART stream, and Diag for leveled kernel diagnostics
// (resource exhaustion, malformed arguments).
type Logger struct {
	trace *logrus.Logger
	diag  *logrus.Logger
}

// New builds a Logger writing its trace stream to uart and its
// diagnostics to stderr at info level.
func New(uart io.Writer) *Logger {
	trace := logrus.New()
	trace.SetOutput(uart)
	trace.SetFormatter(traceFormatter{})
	trace.SetLevel(logrus.TraceLevel)

	diag := logrus.New()
	diag.SetOutput(os.Stderr)
	diag.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	diag.SetLevel(logrus.InfoLevel)

	return &Logger{trace: trace, diag: diag}
}

// Boot emits the single-character boot marker ('R' for reset).
func (l *Logger) Boot() {
	l.trace.Trace("R")
}

// Switch emits a "[prev→next]" dispatch trace line. A pid of -1 is
// rendered as '?' (no prev/next process exists yet).
func (l *Logger) Switch(prev, next int) {
	l.trace.Trace(fmt.Sprintf("[%s→%s]", pidStr(prev), pidStr(next)))
}

func pidStr(pid int) string {
	if pid < 0 {
		return "?"
	}
	return fmt.Sprintf("%d", pid)
}

// SVCMarker emits the single-letter marker for fork/exit/exec/kill/nice.
func (l *Logger) SVCMarker(letter byte) {
	l.trace.Trace(string(letter))
}

// Diagnostic kinds, matching the error taxonomy.
func (l *Logger) Exhausted(what string) {
	l.diag.WithField("kind", "exhaustion").Warn(what)
}

func (l *Logger) BadArg(what string) {
	l.diag.WithField("kind", "malformed-argument").Warn(what)
}

func (l *Logger) Info(msg string) {
	l.diag.Info(msg)
}
