package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"taskmcp/internal/api"
	"taskmcp/internal/deps"
)

const (
	taskA = "0b0c9f8e-6a43-4d1e-9a7b-1d2b6f6f0a01"
	taskB = "0b0c9f8e-6a43-4d1e-9a7b-1d2b6f6f0a02"
	taskC = "0b0c9f8e-6a43-4d1e-9a7b-1d2b6f6f0a03"
	projP = "5d7e3c1a-9f0b-4c2d-8e6f-7a8b9c0d1e2f"
)

// fakeService is an in-process task service. Handlers are registered per
// test; every request is recorded.
type fakeService struct {
	mux *http.ServeMux

	mu     sync.Mutex
	calls  []string
	bodies map[string]string
}

func newFakeService() *fakeService {
	return &fakeService{mux: http.NewServeMux(), bodies: make(map[string]string)}
}

func (f *fakeService) handle(pattern string, h http.HandlerFunc) {
	f.mux.HandleFunc(pattern, h)
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	key := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.bodies[key] = string(b)
	f.mu.Unlock()
	r.Body = io.NopCloser(bytes.NewReader(b))
	f.mux.ServeHTTP(w, r)
}

func (f *fakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeService) Body(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[key]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestRegistry(t *testing.T, svc *fakeService) *Registry {
	t.Helper()
	server := httptest.NewServer(svc)
	t.Cleanup(server.Close)

	log := zaptest.NewLogger(t)
	client, err := api.NewClient(context.Background(), server.URL, "", api.WithLogger(log))
	require.NoError(t, err)
	exec, err := deps.NewExecutor(client, deps.WithLogger(log))
	require.NoError(t, err)
	linker, err := deps.NewLinker(client, exec, log)
	require.NoError(t, err)

	return Build(&Env{API: client, Linker: linker, Timezone: "Europe/Berlin", Log: log})
}

func call(t *testing.T, r *Registry, name string, args map[string]any) (string, bool) {
	t.Helper()
	tool, ok := r.Get(name)
	require.True(t, ok, "tool %s not registered", name)

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := tool.Handle(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text, res.IsError
}
