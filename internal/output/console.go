package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"taskmcp/internal/deps"
	"taskmcp/internal/render"
)

type ConsoleSink struct {
	writer io.Writer
	format string // "text", "json", "ndjson"
	mu     sync.Mutex
	data   structured

	heading *color.Color
	ok      *color.Color
	bad     *color.Color
}

// NewConsoleSink writes to w (stdout when nil). colorize toggles ANSI colour
// in text mode regardless of what fatih/color detected for the terminal.
func NewConsoleSink(w io.Writer, format string, colorize bool) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}

	s := &ConsoleSink{
		writer:  w,
		format:  format,
		data:    structured{format: format},
		heading: color.New(color.Bold),
		ok:      color.New(color.FgGreen),
		bad:     color.New(color.FgRed),
	}
	for _, c := range []*color.Color{s.heading, s.ok, s.bad} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.format {
	case "json", "ndjson":
		return s.data.write(s.writer, v)
	case "text":
		return s.writeText(v)
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

// writeText prints whole reports only; per-edge events would come out in
// completion order.
func (s *ConsoleSink) writeText(v any) error {
	switch t := v.(type) {
	case deps.BatchReport:
		if err := s.writeReport(t); err != nil {
			return err
		}
	case Event:
		if t.Type != EventBatchFailed {
			return nil
		}
		if _, err := s.bad.Fprintf(s.writer, "❌ %s %s: %s\n", kindVerb(t.Kind), t.TaskID, t.Error); err != nil {
			return err
		}
	default:
		return nil
	}
	return flushIfPossible(s.writer)
}

func (s *ConsoleSink) writeReport(r deps.BatchReport) error {
	if r.Kind == deps.KindUnlink && r.FromSnapshot && r.Empty() {
		_, err := fmt.Fprintf(s.writer, "%s (%s)\n", render.NothingToUnlink, r.PrimaryID)
		return err
	}

	title := fmt.Sprintf("%s %s", kindVerb(r.Kind), r.PrimaryID)
	if r.FromSnapshot {
		title += " (all dependencies)"
	}
	if _, err := s.heading.Fprintln(s.writer, title); err != nil {
		return err
	}
	for _, o := range r.Outcomes {
		c := s.ok
		if !o.Succeeded {
			c = s.bad
		}
		if _, err := c.Fprintln(s.writer, "  "+render.OutcomeLine(o)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(s.writer, render.Counts(r))
	return err
}

func kindVerb(k deps.Kind) string {
	if k == deps.KindUnlink {
		return "unlink"
	}
	return "link"
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.format {
	case "json", "ndjson":
		return s.data.close(s.writer)
	case "text":
		return nil
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}
