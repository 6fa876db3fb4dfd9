package interp

import (
	"fmt"
	"io"

	"github.com/arnavsurve/transpile/internal/compiler/value"
)

// Sink receives every printed value, in program order.
type Sink interface {
	Print(v value.Value)
}

// SinkFunc adapts a plain function to a Sink.
type SinkFunc func(v value.Value)

func (f SinkFunc) Print(v value.Value) { f(v) }

// Collector keeps printed values in memory.
type Collector struct {
	Values []value.Value
}

func (c *Collector) Print(v value.Value) {
	c.Values = append(c.Values, v)
}

// Lines returns the printed values as they would appear on a terminal.
func (c *Collector) Lines() []string {
	lines := make([]string, len(c.Values))
	for i, v := range c.Values {
		lines[i] = v.String()
	}
	return lines
}

// WriterSink writes one value per line to W. The first write error is kept in
// Err and later values are dropped.
type WriterSink struct {
	W   io.Writer
	Err error
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{W: w}
}

func (s *WriterSink) Print(v value.Value) {
	if s.Err != nil {
		return
	}
	_, s.Err = fmt.Fprintln(s.W, v)
}
