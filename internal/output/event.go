package output

import "taskmcp/internal/deps"

const (
	EventBatchStarted  = "batch.started"
	EventEdgeOutcome   = "edge.outcome"
	EventBatchFinished = "batch.finished"
	EventBatchFailed   = "batch.failed"
	EventRunFinished   = "run.finished"
)

// Event is one line of NDJSON output.
//
// edge.outcome events arrive in completion order while the batch runs;
// batch.finished carries the counts once every edge is terminal. JSON mode
// ignores events and aggregates deps.BatchReport values instead.
type Event struct {
	Type      string            `json:"type"`
	TaskID    string            `json:"task_id,omitempty"`
	Kind      deps.Kind         `json:"kind,omitempty"`
	Outcome   *deps.EdgeOutcome `json:"outcome,omitempty"`
	Edges     int               `json:"edges,omitempty"`
	Succeeded int               `json:"succeeded,omitempty"`
	Failed    int               `json:"failed,omitempty"`
	Error     string            `json:"error,omitempty"`
	ExitCode  int               `json:"exit_code,omitempty"`
}

func eventFromOutcome(o deps.EdgeOutcome) Event {
	return Event{Type: EventEdgeOutcome, TaskID: o.Request.PrimaryID, Kind: o.Request.Kind, Outcome: &o}
}

func eventFromReport(r deps.BatchReport) Event {
	return Event{
		Type:      EventBatchFinished,
		TaskID:    r.PrimaryID,
		Kind:      r.Kind,
		Edges:     len(r.Outcomes),
		Succeeded: r.Succeeded,
		Failed:    r.Failed,
	}
}

// asEvent maps any value a sink accepts onto its NDJSON event.
func asEvent(v any) (Event, bool) {
	switch t := v.(type) {
	case Event:
		return t, true
	case deps.EdgeOutcome:
		return eventFromOutcome(t), true
	case deps.BatchReport:
		return eventFromReport(t), true
	default:
		return Event{}, false
	}
}
