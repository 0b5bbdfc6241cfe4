package output

import (
	"fmt"
	"io"
	"sync"
)

// EmitSink writes an additional structured stream, typically to stdout
// while the console goes to stderr.
//
// Formats:
//   - json: aggregates batch reports and writes a single JSON array on Close
//   - ndjson: streams Event values (one JSON object per line)
type EmitSink struct {
	writer io.Writer
	mu     sync.Mutex
	data   structured
}

func NewEmitSink(w io.Writer, format string) (*EmitSink, error) {
	if w == nil {
		return nil, fmt.Errorf("emit sink writer must not be nil")
	}
	if format != "json" && format != "ndjson" {
		return nil, fmt.Errorf("unsupported emit format: %s", format)
	}
	return &EmitSink{writer: w, data: structured{format: format}}, nil
}

func (s *EmitSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.write(s.writer, v)
}

func (s *EmitSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.close(s.writer)
}
