package output

import (
	"errors"
	"fmt"

	"taskmcp/internal/deps"
)

// Sink is a destination for batch results and lifecycle events.
type Sink interface {
	Write(v any) error
	Close() error
}

// Manager fans every value out to all registered sinks.
type Manager struct {
	sinks []Sink
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) AddSink(s Sink) error {
	if m == nil {
		return fmt.Errorf("output manager is nil")
	}
	if s == nil {
		return fmt.Errorf("sink must not be nil")
	}
	m.sinks = append(m.sinks, s)
	return nil
}

// Len reports how many sinks are registered.
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.sinks)
}

func (m *Manager) Write(v any) error {
	if m == nil {
		return fmt.Errorf("output manager is nil")
	}
	var errs []error
	for _, s := range m.sinks {
		if err := s.Write(v); err != nil {
			errs = append(errs, fmt.Errorf("write %T: %w", s, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors writing to sinks: %w", errors.Join(errs...))
	}
	return nil
}

// Started announces a batch before it is dispatched.
func (m *Manager) Started(taskID string, kind deps.Kind) error {
	return m.Write(Event{Type: EventBatchStarted, TaskID: taskID, Kind: kind})
}

// Observe is shaped for deps.WithObserver. Write errors are dropped because
// the executor has nowhere to report them; the final report is written again
// through Write.
func (m *Manager) Observe(o deps.EdgeOutcome) {
	_ = m.Write(o)
}

// Failed records a batch that was rejected before any edge ran.
func (m *Manager) Failed(taskID string, kind deps.Kind, err error, exitCode int) error {
	return m.Write(Event{Type: EventBatchFailed, TaskID: taskID, Kind: kind, Error: err.Error(), ExitCode: exitCode})
}

// Finished closes the run with its process exit code.
func (m *Manager) Finished(exitCode int) error {
	return m.Write(Event{Type: EventRunFinished, ExitCode: exitCode})
}

func (m *Manager) Close() error {
	if m == nil {
		return fmt.Errorf("output manager is nil")
	}
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %T: %w", s, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing sinks: %w", errors.Join(errs...))
	}
	return nil
}
