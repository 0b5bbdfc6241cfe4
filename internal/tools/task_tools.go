package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"taskmcp/internal/api"
	"taskmcp/internal/domain"
	"taskmcp/internal/render"
	"taskmcp/internal/validate"
)

func taskIDArg(args Args, name string) (string, error) {
	id, err := validate.ID(args.String(name))
	if err != nil {
		return "", fail(msgInvalidTaskID)
	}
	return id, nil
}

func taskTools(env *Env) []Tool {
	taskID := mcp.WithString("taskId", mcp.Required(), mcp.Description("Task ID"))

	return []Tool{
		newTool(env, "get tasks", listTasks(func(ctx context.Context, s Service) ([]domain.Task, error) {
			return s.ListTasks(ctx)
		}, "All tasks", "📋"),
			"getAllTasks",
			mcp.WithDescription("Get all tasks from Synaptik"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		newTool(env, "get task", getTask, "getTask",
			mcp.WithDescription("Get a specific task by ID"),
			mcp.WithReadOnlyHintAnnotation(true),
			taskID,
		),
		newTool(env, "create task", createTask, "createTask",
			mcp.WithDescription("Create a new task"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
			mcp.WithString("description", mcp.Description("Task description (optional)")),
			mcp.WithString("priority", mcp.Description("Task priority: HIGH, MEDIUM, LOW, NONE")),
			mcp.WithString("project", mcp.Description("Project name (optional)")),
			mcp.WithString("assignee", mcp.Description("Assignee name (optional)")),
			mcp.WithString("dueDate", mcp.Description("Due date in ISO format (optional)")),
			mcp.WithString("tags", mcp.Description("Tags comma-separated (optional)")),
		),
		newTool(env, "update task", updateTask, "updateTask",
			mcp.WithDescription("Update an existing task"),
			taskID,
			mcp.WithString("title", mcp.Description("New title (optional)")),
			mcp.WithString("description", mcp.Description("New description (optional)")),
			mcp.WithString("priority", mcp.Description("New priority: HIGH, MEDIUM, LOW, NONE (optional)")),
			mcp.WithString("project", mcp.Description("New project name (optional)")),
			mcp.WithString("assignee", mcp.Description("New assignee (optional)")),
			mcp.WithString("dueDate", mcp.Description("New due date in ISO format (optional)")),
			mcp.WithString("tags", mcp.Description("New tags comma-separated (optional)")),
		),
		newTool(env, "delete task", deleteTask, "deleteTask",
			mcp.WithDescription("Delete a task"),
			mcp.WithDestructiveHintAnnotation(true),
			taskID,
		),
		newTool(env, "start task", setStatus(domain.TaskStatusActive, "✅ Task started"), "startTask",
			mcp.WithDescription("Start working on a task"),
			taskID,
		),
		newTool(env, "stop task", setStatus(domain.TaskStatusPending, "✅ Task stopped"), "stopTask",
			mcp.WithDescription("Stop working on a task"),
			taskID,
		),
		newTool(env, "mark task as done", setStatus(domain.TaskStatusCompleted, "✅ Task marked as done"), "markTaskDone",
			mcp.WithDescription("Mark a task as done/completed"),
			taskID,
		),
		newTool(env, "get pending tasks", listTasks(func(ctx context.Context, s Service) ([]domain.Task, error) {
			return s.PendingTasks(ctx)
		}, "Pending tasks", "⏳"),
			"getPendingTasks",
			mcp.WithDescription("Get all pending tasks"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		newTool(env, "get active tasks", listTasks(func(ctx context.Context, s Service) ([]domain.Task, error) {
			return s.ActiveTasks(ctx)
		}, "Active tasks", "🔄"),
			"getActiveTasks",
			mcp.WithDescription("Get all active tasks"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		newTool(env, "get completed tasks", listTasks(func(ctx context.Context, s Service) ([]domain.Task, error) {
			return s.CompletedTasks(ctx)
		}, "Completed tasks", "✅"),
			"getCompletedTasks",
			mcp.WithDescription("Get all completed tasks"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		newTool(env, "get overdue tasks", datedTasks("Overdue tasks", func(ctx context.Context, s Service, tz string) ([]domain.Task, error) {
			return s.OverdueTasks(ctx, tz)
		}),
			"getOverdueTasks",
			mcp.WithDescription("Get all overdue tasks"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		newTool(env, "get today's tasks", datedTasks("Today's tasks", func(ctx context.Context, s Service, tz string) ([]domain.Task, error) {
			return s.TodayTasks(ctx, tz)
		}),
			"getTodayTasks",
			mcp.WithDescription("Get today's tasks"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		newTool(env, "search tasks", searchTasks, "searchTasks",
			mcp.WithDescription("Search tasks with multiple filters"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithString("assignee", mcp.Description("Assignee name (partial match, optional)")),
			mcp.WithString("dateFrom", mcp.Description("Date from (ISO format, optional): 2024-01-01T00:00:00Z")),
			mcp.WithString("dateTo", mcp.Description("Date to (ISO format, optional): 2024-12-31T23:59:59Z")),
			mcp.WithString("projectId", mcp.Description("Project ID (exact UUID match, optional)")),
			mcp.WithString("status", mcp.Description("Task statuses (comma-separated, optional): PENDING,ACTIVE,COMPLETED")),
			mcp.WithString("title", mcp.Description("Task title (partial match, optional)")),
			mcp.WithString("timezone", mcp.Description("Timezone (optional, default: server timezone)")),
		),
	}
}

func listTasks(fetch func(context.Context, Service) ([]domain.Task, error), title, icon string) runFunc {
	return func(ctx context.Context, env *Env, _ Args) (string, error) {
		tasks, err := fetch(ctx, env.API)
		if err != nil {
			return "", err
		}
		return render.TasksWithIcon(tasks, title, icon), nil
	}
}

func datedTasks(title string, fetch func(context.Context, Service, string) ([]domain.Task, error)) runFunc {
	return func(ctx context.Context, env *Env, _ Args) (string, error) {
		tasks, err := fetch(ctx, env.API, env.Timezone)
		if err != nil {
			return "", err
		}
		return render.Tasks(tasks, fmt.Sprintf("%s (timezone: %s)", title, env.Timezone)), nil
	}
}

func getTask(ctx context.Context, env *Env, args Args) (string, error) {
	id, err := taskIDArg(args, "taskId")
	if err != nil {
		return "", err
	}
	task, err := env.API.GetTask(ctx, id)
	if err != nil {
		if api.IsNotFound(err) {
			return "", fail("❌ Task not found with ID: %s", id)
		}
		return "", err
	}
	return render.Task(*task, "Task retrieved successfully"), nil
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func createTask(ctx context.Context, env *Env, args Args) (string, error) {
	req := domain.TaskRequest{
		Title:       args.String("title"),
		Description: args.String("description"),
		Project:     args.String("project"),
		Assignee:    args.String("assignee"),
		DueDate:     args.String("dueDate"),
		Tags:        splitTags(args.Raw("tags")),
	}
	if req.Title == "" {
		return "", fail("❌ Task title is required")
	}
	if raw := args.String("priority"); raw != "" {
		p, err := validate.Priority(raw)
		if err != nil {
			p = domain.TaskPriorityMedium
		}
		req.Priority = p
	}
	if err := validate.Struct(req); err != nil {
		return "", fail("❌ Invalid task: %v", err)
	}

	task, err := env.API.CreateTask(ctx, req)
	if err != nil {
		return "", err
	}
	return render.Task(*task, "✅ Task created successfully"), nil
}

func updateTask(ctx context.Context, env *Env, args Args) (string, error) {
	id, err := taskIDArg(args, "taskId")
	if err != nil {
		return "", err
	}
	req := domain.TaskRequest{
		Title:       args.String("title"),
		Description: args.String("description"),
		Project:     args.String("project"),
		Assignee:    args.String("assignee"),
		DueDate:     args.String("dueDate"),
		Tags:        splitTags(args.Raw("tags")),
	}
	if raw := args.String("priority"); raw != "" {
		p, err := validate.Priority(raw)
		if err != nil {
			return "", fail("❌ Invalid priority. Use: HIGH, MEDIUM, LOW, NONE")
		}
		req.Priority = p
	}
	if err := validate.Struct(req); err != nil {
		return "", fail("❌ Invalid task: %v", err)
	}

	task, err := env.API.UpdateTask(ctx, id, req)
	if err != nil {
		return "", err
	}
	return render.Task(*task, "✅ Task updated successfully"), nil
}

func deleteTask(ctx context.Context, env *Env, args Args) (string, error) {
	id, err := taskIDArg(args, "taskId")
	if err != nil {
		return "", err
	}
	if err := env.API.DeleteTask(ctx, id); err != nil {
		return "", err
	}
	return "✅ Task deleted successfully", nil
}

func setStatus(status domain.TaskStatus, message string) runFunc {
	return func(ctx context.Context, env *Env, args Args) (string, error) {
		id, err := taskIDArg(args, "taskId")
		if err != nil {
			return "", err
		}
		task, err := env.API.SetTaskStatus(ctx, id, status)
		if err != nil {
			return "", err
		}
		return render.Task(*task, message), nil
	}
}

func searchTasks(ctx context.Context, env *Env, args Args) (string, error) {
	f := domain.SearchFilter{
		Assignee: args.String("assignee"),
		DateFrom: args.String("dateFrom"),
		DateTo:   args.String("dateTo"),
		Title:    args.String("title"),
		Statuses: validate.Statuses(args.Raw("status")),
		Timezone: args.String("timezone"),
	}
	if f.Timezone == "" {
		f.Timezone = env.Timezone
	}
	if raw := args.String("projectId"); raw != "" {
		id, err := validate.ID(raw)
		if err != nil {
			return "", fail(msgInvalidProjectID)
		}
		f.ProjectID = id
	}

	tasks, err := env.API.SearchTasks(ctx, f)
	if err != nil {
		return "", err
	}
	return render.Tasks(tasks, "🔍 Task search results ("+searchCriteria(f)+")"), nil
}

func searchCriteria(f domain.SearchFilter) string {
	var parts []string
	add := func(label, v string) {
		if v != "" {
			parts = append(parts, label+v)
		}
	}
	add("👤 Assignee: ", f.Assignee)
	add("📝 Title: ", f.Title)
	add("📊 Status: ", strings.Join(f.Statuses, ","))
	add("📁 Project: ", f.ProjectID)
	add("📅 From: ", f.DateFrom)
	add("📅 To: ", f.DateTo)
	add("🌍 Timezone: ", f.Timezone)
	return strings.Join(parts, " ")
}
