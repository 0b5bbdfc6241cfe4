package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type FileSink struct {
	path string
	file *os.File
	mu   sync.Mutex
	data structured
}

// InferFormat maps an output path's extension onto json or ndjson.
func InferFormat(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return "json", nil
	case ".ndjson", ".jsonl":
		return "ndjson", nil
	default:
		return "", fmt.Errorf("cannot infer output format from file extension %q", ext)
	}
}

func NewFileSink(path string, format string) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("output path required")
	}

	if format == "" {
		inferred, err := InferFormat(path)
		if err != nil {
			return nil, err
		}
		format = inferred
	}
	if format != "json" && format != "ndjson" {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &FileSink{path: path, file: f, data: structured{format: format}}, nil
}

func (s *FileSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.write(s.file, v)
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.data.close(s.file)
	if closeErr := s.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
