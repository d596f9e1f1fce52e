// Package trace provides the debug trace sink `set_debug` writes
// through, adapted from the teacher's output-writer package: a small
// interface plus a couple of concrete writers rather than a single
// hard-coded fmt.Fprintf call.
package trace

import (
	"fmt"
	"io"
)

// Sink receives per-opcode trace lines from an interp.Interpreter
// running with debug enabled.
type Sink interface {
	Tracef(format string, args ...interface{})
}

// WriterSink adapts any io.Writer (typically os.Stderr) into a Sink.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink creates a Sink that writes each trace line, newline
// terminated, to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Tracef formats and writes a single trace line.
func (s *WriterSink) Tracef(format string, args ...interface{}) {
	fmt.Fprintf(s.w, format+"\n", args...)
}

// Func adapts a Sink into the plain function shape
// interp.WithTracer expects.
func Func(sink Sink) func(format string, args ...interface{}) {
	return func(format string, args ...interface{}) {
		sink.Tracef(format, args...)
	}
}

// NoopSink discards every trace line.
type NoopSink struct{}

// Tracef discards its arguments.
func (NoopSink) Tracef(format string, args ...interface{}) {}
