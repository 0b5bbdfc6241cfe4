package output

import (
	"encoding/json"
	"fmt"
	"io"

	"taskmcp/internal/deps"
)

// structured is the json/ndjson behaviour shared by every sink. The caller
// holds the sink's lock.
type structured struct {
	format  string // "json" | "ndjson"
	reports []deps.BatchReport
}

func (s *structured) write(w io.Writer, v any) error {
	switch s.format {
	case "json":
		if r, ok := v.(deps.BatchReport); ok {
			s.reports = append(s.reports, r)
		}
		return nil
	case "ndjson":
		e, ok := asEvent(v)
		if !ok {
			return nil
		}
		if err := json.NewEncoder(w).Encode(e); err != nil {
			return err
		}
		return flushIfPossible(w)
	default:
		return fmt.Errorf("unsupported structured format: %s", s.format)
	}
}

func (s *structured) close(w io.Writer) error {
	if s.format != "json" {
		return nil
	}
	reports := s.reports
	if reports == nil {
		reports = []deps.BatchReport{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(reports); err != nil {
		return err
	}
	return flushIfPossible(w)
}
