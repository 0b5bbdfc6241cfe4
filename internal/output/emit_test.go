package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"taskmcp/internal/deps"
)

func TestEmitSink_JSON(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewEmitSink(&buf, "json")
	if err != nil {
		t.Fatalf("NewEmitSink returned error: %v", err)
	}

	_ = s.Write(sampleReport())
	_ = s.Write(deps.Aggregate(taskID, deps.KindUnlink, true, nil))
	_ = s.Write(Event{Type: EventRunFinished, ExitCode: 2})
	if err := s.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	var got []deps.BatchReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal json output: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(got))
	}
	if got[1].Outcomes == nil || len(got[1].Outcomes) != 0 {
		t.Fatalf("expected empty outcomes array for nothing-to-unlink, got %#v", got[1].Outcomes)
	}
}

func TestEmitSink_NDJSON(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewEmitSink(&buf, "ndjson")
	if err != nil {
		t.Fatalf("NewEmitSink returned error: %v", err)
	}

	r := sampleReport()
	_ = s.Write(Event{Type: EventBatchStarted, TaskID: taskID, Kind: deps.KindLink})
	_ = s.Write(r.Outcomes[1])
	_ = s.Write(r.Outcomes[0])
	_ = s.Write(r)
	_ = s.Write("ignored")
	if err := s.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 ndjson lines, got %d", len(lines))
	}
	var events []Event
	for _, line := range lines {
		var e Event
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		events = append(events, e)
	}

	if events[1].Type != EventEdgeOutcome || events[1].Outcome == nil {
		t.Fatalf("expected edge.outcome with payload, got %#v", events[1])
	}
	if events[1].Outcome.Request.OtherID != depB || events[1].Outcome.Succeeded {
		t.Fatalf("unexpected outcome payload: %#v", events[1].Outcome)
	}
	if events[1].TaskID != taskID || events[1].Kind != deps.KindLink {
		t.Fatalf("outcome event missing batch identity: %#v", events[1])
	}

	fin := events[3]
	if fin.Type != EventBatchFinished || fin.Edges != 2 || fin.Succeeded != 1 || fin.Failed != 1 {
		t.Fatalf("unexpected batch.finished event: %#v", fin)
	}
	if fin.Outcome != nil {
		t.Fatalf("batch.finished should carry counts only, got %#v", fin.Outcome)
	}
}

func TestEmitSink_InvalidFormat(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewEmitSink(&buf, "text"); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestEmitSink_NilWriter(t *testing.T) {
	if _, err := NewEmitSink(nil, "json"); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
