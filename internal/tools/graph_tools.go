package tools

import (
	"context"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"taskmcp/internal/render"
	"taskmcp/internal/validate"
)

func graphTools(env *Env) []Tool {
	taskID := mcp.WithString("taskId", mcp.Required(), mcp.Description("Task ID"))

	return []Tool{
		newTool(env, "get task graph", taskGraph, "getTaskGraph",
			mcp.WithDescription("Get task dependency graph with optional status filtering"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithString("statuses", mcp.Description("Comma-separated task statuses to filter (optional): PENDING,ACTIVE,COMPLETED")),
		),
		newTool(env, "get task neighbors", taskNeighbors, "getTaskNeighbors",
			mcp.WithDescription("Get task neighbors (dependencies and dependents) for a specific task"),
			mcp.WithReadOnlyHintAnnotation(true),
			taskID,
			mcp.WithString("depth", mcp.Description("Depth of neighbors to include (default: 1)")),
			mcp.WithString("includePlaceholders", mcp.Description("Include placeholder tasks (default: true)")),
		),
		newTool(env, "get task dependencies", related(render.Dependencies), "getTaskDependencies",
			mcp.WithDescription("Get tasks that this task depends on"),
			mcp.WithReadOnlyHintAnnotation(true),
			taskID,
		),
		newTool(env, "get task dependents", related(render.Dependents), "getTaskDependents",
			mcp.WithDescription("Get tasks that depend on this task"),
			mcp.WithReadOnlyHintAnnotation(true),
			taskID,
		),
	}
}

func taskGraph(ctx context.Context, env *Env, args Args) (string, error) {
	g, err := env.API.TaskGraph(ctx, validate.Statuses(args.Raw("statuses")))
	if err != nil {
		return "", err
	}
	return render.Graph(g), nil
}

func taskNeighbors(ctx context.Context, env *Env, args Args) (string, error) {
	id, err := taskIDArg(args, "taskId")
	if err != nil {
		return "", err
	}

	depth := 1
	if raw := args.String("depth"); raw != "" {
		depth, err = strconv.Atoi(raw)
		if err != nil {
			return "", fail("❌ Invalid depth value. Please provide a valid integer.")
		}
	}
	includePlaceholders := true
	if raw := args.String("includePlaceholders"); raw != "" {
		includePlaceholders, err = strconv.ParseBool(raw)
		if err != nil {
			return "", fail("❌ Invalid includePlaceholders value. Please provide true or false.")
		}
	}

	g, err := env.API.TaskNeighbors(ctx, id, depth, includePlaceholders)
	if err != nil {
		return "", err
	}
	return render.Neighbors(id, depth, includePlaceholders, g), nil
}

func related(rel render.Relation) runFunc {
	return func(ctx context.Context, env *Env, args Args) (string, error) {
		if args.String("taskId") == "" {
			return "", fail(msgTaskIDRequired)
		}
		id, err := taskIDArg(args, "taskId")
		if err != nil {
			return "", err
		}
		fetch := env.API.TaskDependencies
		if rel == render.Dependents {
			fetch = env.API.TaskDependents
		}
		tasks, err := fetch(ctx, id)
		if err != nil {
			return "", err
		}
		return render.Related(id, rel, tasks), nil
	}
}
