package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"
)

const (
	taskA = "0b0c9f8e-6a43-4d1e-9a7b-1d2b6f6f0a01"
	taskB = "0b0c9f8e-6a43-4d1e-9a7b-1d2b6f6f0a02"
	taskC = "0b0c9f8e-6a43-4d1e-9a7b-1d2b6f6f0a03"
)

// isolate keeps the developer's config and SYNAPTIK_* variables out of the
// test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{
		"SYNAPTIK_CONFIG", "SYNAPTIK_API_TOKEN", "SYNAPTIK_TOKEN",
		"SYNAPTIK_API_BASE_URL", "SYNAPTIK_RUNTIME_TIMEZONE", "SYNAPTIK_SERVER_TOOLS",
	} {
		t.Setenv(k, "")
	}
}

// run executes the command line in-process and returns stdout and the
// process exit code.
func run(t *testing.T, args ...string) (string, int, error) {
	t.Helper()
	isolate(t)

	var stdout, stderr bytes.Buffer
	a := &app{
		stdin:  strings.NewReader(""),
		stdout: &stdout,
		stderr: &stderr,
		log:    zaptest.NewLogger(t),
	}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), exitCode(err), err
}

// edgeService fakes the dependency endpoints of the task service. Linking
// to or unlinking from a task in reject answers 409.
type edgeService struct {
	mu     sync.Mutex
	calls  []string
	reject map[string]bool
	deps   []map[string]string
}

func newEdgeService(t *testing.T) (*edgeService, string) {
	t.Helper()
	svc := &edgeService{reject: map[string]bool{}}

	mux := http.NewServeMux()
	edge := func(w http.ResponseWriter, r *http.Request) {
		svc.mu.Lock()
		svc.calls = append(svc.calls, r.Method+" "+r.PathValue("dep"))
		rejected := svc.reject[r.PathValue("dep")]
		svc.mu.Unlock()
		if rejected {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message":"would create a cycle"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
	mux.HandleFunc("POST /api/tasks/{id}/dependencies/{dep}", edge)
	mux.HandleFunc("DELETE /api/tasks/{id}/dependencies/{dep}", edge)
	mux.HandleFunc("GET /api/tasks/{id}/dependencies", func(w http.ResponseWriter, r *http.Request) {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		list := svc.deps
		if list == nil {
			list = []map[string]string{}
		}
		_ = json.NewEncoder(w).Encode(list)
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return svc, ts.URL
}

func (s *edgeService) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}
