package deps

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// rejectedError stands in for the api package's status error.
type rejectedError struct {
	code int
	msg  string
}

func (e *rejectedError) Error() string {
	return fmt.Sprintf("POST /api/tasks/x/dependencies/y: %d %s", e.code, http.StatusText(e.code))
}
func (e *rejectedError) HTTPStatus() int       { return e.code }
func (e *rejectedError) RemoteMessage() string { return e.msg }

type fakeEdgeClient struct {
	mu sync.Mutex

	latency  map[string]time.Duration
	failures map[string]error
	panics   map[string]bool
	deps     []DependencyRef
	listErr  error

	calls     atomic.Int32
	listCalls atomic.Int32
	inFlight  atomic.Int32
	peak      atomic.Int32
	seen      []string
}

func newFakeEdgeClient() *fakeEdgeClient {
	return &fakeEdgeClient{
		latency:  map[string]time.Duration{},
		failures: map[string]error{},
		panics:   map[string]bool{},
	}
}

func (f *fakeEdgeClient) edge(ctx context.Context, otherID string) error {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	f.mu.Lock()
	f.seen = append(f.seen, otherID)
	d := f.latency[otherID]
	err := f.failures[otherID]
	shouldPanic := f.panics[otherID]
	f.mu.Unlock()

	if d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return fmt.Errorf("Post \"http://svc/api/tasks\": %w", ctx.Err())
		}
	}
	if shouldPanic {
		panic("boom")
	}
	return err
}

func (f *fakeEdgeClient) LinkEdge(ctx context.Context, _, otherID string) error {
	return f.edge(ctx, otherID)
}

func (f *fakeEdgeClient) UnlinkEdge(ctx context.Context, _, otherID string) error {
	return f.edge(ctx, otherID)
}

func (f *fakeEdgeClient) ListDependencies(_ context.Context, _ string) ([]DependencyRef, error) {
	f.listCalls.Add(1)
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]DependencyRef, len(f.deps))
	copy(out, f.deps)
	return out, nil
}

func (f *fakeEdgeClient) totalCalls() int32 {
	return f.calls.Load() + f.listCalls.Load()
}
