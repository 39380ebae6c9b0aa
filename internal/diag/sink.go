package diag

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Sink receives non-fatal diagnostic messages from the simulation.
// Implementations must tolerate being called every frame.
type Sink interface {
	Logf(format string, args ...any)
}

type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter returns a Sink that writes one line per message to w.
func NewWriter(w io.Writer) Sink {
	return &writerSink{w: w}
}

// Stderr is the default sink used when none is injected.
func Stderr() Sink {
	return NewWriter(os.Stderr)
}

func (s *writerSink) Logf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, format+"\n", args...)
}

type discardSink struct{}

func (discardSink) Logf(string, ...any) {}

// Discard drops all messages. Useful in tests and benchmarks.
func Discard() Sink {
	return discardSink{}
}
