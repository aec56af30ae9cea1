package search

import (
	"fmt"
	"io"
	"sync"
)

// WriterSink emits report lines to an io.Writer, one line per Emit call.
// Write errors are logged and swallowed: the report protocol guarantees
// marker emission regardless of sink health, and the engine does not
// depend on sink durability.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a sink writing newline-terminated lines to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Emit(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintln(s.w, line); err != nil {
		logger().Warnf("failed to write report line: %v", err)
	}
}
