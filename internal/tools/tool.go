// Package tools defines the named operations exposed to agents. Each tool
// validates its arguments, calls the task service and renders the answer as
// text.
package tools

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"taskmcp/internal/deps"
	"taskmcp/internal/domain"
)

// Tool is one named operation.
type Tool interface {
	Name() string
	Description() string
	// Definition is the schema advertised to agents.
	Definition() mcp.Tool
	// Handle never returns a protocol error for a failed operation; the
	// failure is reported as a text result.
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// Service is the task service surface the tools call.
type Service interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	CreateTask(ctx context.Context, req domain.TaskRequest) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, req domain.TaskRequest) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	SetTaskStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
	PendingTasks(ctx context.Context) ([]domain.Task, error)
	ActiveTasks(ctx context.Context) ([]domain.Task, error)
	CompletedTasks(ctx context.Context) ([]domain.Task, error)
	OverdueTasks(ctx context.Context, tz string) ([]domain.Task, error)
	TodayTasks(ctx context.Context, tz string) ([]domain.Task, error)
	SearchTasks(ctx context.Context, f domain.SearchFilter) ([]domain.Task, error)
	TaskGraph(ctx context.Context, statuses []string) (*domain.TaskGraph, error)
	TaskNeighbors(ctx context.Context, id string, depth int, includePlaceholders bool) (*domain.TaskGraph, error)
	TaskDependencies(ctx context.Context, id string) ([]domain.Task, error)
	TaskDependents(ctx context.Context, id string) ([]domain.Task, error)

	ListProjects(ctx context.Context) ([]domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	CreateProject(ctx context.Context, req domain.ProjectRequest) (*domain.Project, error)
	ActiveProjects(ctx context.Context) ([]domain.Project, error)
	OverdueProjects(ctx context.Context) ([]domain.Project, error)
	StartProject(ctx context.Context, id string) (*domain.Project, error)
	CompleteProject(ctx context.Context, id string) (*domain.Project, error)
}

// Env is what every tool handler needs.
type Env struct {
	API    Service
	Linker *deps.Linker
	// Timezone is sent with date-relative queries.
	Timezone string
	// Verbose keeps full error strings in failure text.
	Verbose bool
	Log     *zap.Logger
}

func (e *Env) logger() *zap.Logger {
	if e == nil || e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

// Failure is an operation failure whose text is already fit for the agent.
type Failure struct {
	Text string
}

func (f *Failure) Error() string { return f.Text }

func fail(format string, a ...any) error {
	return &Failure{Text: fmt.Sprintf(format, a...)}
}

const (
	msgInvalidTaskID    = "❌ Invalid task ID format. Please provide a valid UUID."
	msgInvalidProjectID = "❌ Invalid project ID format. Please provide a valid UUID."
	msgTaskIDRequired   = "❌ Task ID is required"
)

// Args reads tool arguments. Agents do not always respect the declared
// string type, so numbers and booleans are accepted too.
type Args map[string]any

func (a Args) String(name string) string {
	v, ok := a[name]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, strings.TrimSpace(fmt.Sprint(p)))
		}
		return strings.Join(parts, ",")
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// Raw returns the argument untrimmed, for comma lists that are split later.
func (a Args) Raw(name string) string {
	if s, ok := a[name].(string); ok {
		return s
	}
	return a.String(name)
}

type runFunc func(ctx context.Context, env *Env, args Args) (string, error)

// textTool adapts a runFunc to Tool.
type textTool struct {
	def    mcp.Tool
	action string // used in "Failed to <action>" texts
	env    *Env
	run    runFunc
}

func (t *textTool) Name() string         { return t.def.Name }
func (t *textTool) Description() string  { return t.def.Description }
func (t *textTool) Definition() mcp.Tool { return t.def }

func (t *textTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := t.env.logger()
	start := time.Now()

	text, err := t.run(ctx, t.env, Args(req.GetArguments()))
	dur := time.Since(start).Truncate(time.Millisecond)
	if err != nil {
		var f *Failure
		if !errors.As(err, &f) {
			log.Warn("tool call failed", zap.String("tool", t.def.Name), zap.Duration("after", dur), zap.Error(err))
			return mcp.NewToolResultError(fmt.Sprintf("❌ Failed to %s: %s", t.action, deps.Describe(err, t.env.Verbose))), nil
		}
		log.Debug("tool call rejected", zap.String("tool", t.def.Name), zap.String("reason", f.Text))
		return mcp.NewToolResultError(f.Text), nil
	}
	log.Debug("tool call", zap.String("tool", t.def.Name), zap.Duration("latency", dur))
	return mcp.NewToolResultText(text), nil
}

func newTool(env *Env, action string, run runFunc, name string, opts ...mcp.ToolOption) Tool {
	return &textTool{def: mcp.NewTool(name, opts...), action: action, env: env, run: run}
}
