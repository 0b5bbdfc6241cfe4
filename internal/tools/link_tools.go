package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"taskmcp/internal/deps"
	"taskmcp/internal/render"
)

func linkTools(env *Env) []Tool {
	return []Tool{
		newTool(env, "link tasks", linkTasks, "linkTasks",
			mcp.WithDescription("Link tasks together by creating dependencies"),
			mcp.WithString("taskId", mcp.Required(), mcp.Description("Task ID that should depend on other tasks")),
			mcp.WithString("dependsOnTaskIds", mcp.Required(), mcp.Description("Comma-separated list of task IDs that this task depends on")),
		),
		newTool(env, "unlink tasks", unlinkTasks, "unlinkTasks",
			mcp.WithDescription("Unlink tasks by removing dependencies"),
			mcp.WithString("taskId", mcp.Required(), mcp.Description("Task ID to remove dependencies from")),
			mcp.WithString("dependencyIdsToRemove", mcp.Description("Comma-separated list of dependency task IDs to remove (leave empty to remove all dependencies)")),
		),
	}
}

// A batch report is always a regular result, even when edges failed: the
// per-edge lines carry the failures.
func linkTasks(ctx context.Context, env *Env, args Args) (string, error) {
	taskID := args.String("taskId")
	if taskID == "" {
		return "", fail(msgTaskIDRequired)
	}
	report, err := env.Linker.Link(ctx, taskID, args.Raw("dependsOnTaskIds"))
	if err != nil {
		return "", batchFailure(taskID, err, env.Verbose)
	}
	return render.Batch(report), nil
}

func unlinkTasks(ctx context.Context, env *Env, args Args) (string, error) {
	taskID := args.String("taskId")
	if taskID == "" {
		return "", fail(msgTaskIDRequired)
	}
	report, err := env.Linker.Unlink(ctx, taskID, args.Raw("dependencyIdsToRemove"))
	if err != nil {
		return "", batchFailure(taskID, err, env.Verbose)
	}
	return render.Batch(report), nil
}

func batchFailure(taskID string, err error, verbose bool) error {
	switch {
	case errors.Is(err, deps.ErrInvalidIdentifier):
		return fail("%s (%v)", msgInvalidTaskID, err)
	case errors.Is(err, deps.ErrEmptyBatch):
		return fail("❌ At least one dependency task ID is required")
	case errors.Is(err, deps.ErrPrefetchFailed):
		return fail("❌ Failed to get task dependencies for: %s: %s", taskID, deps.Describe(err, verbose))
	default:
		return err
	}
}
