package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"taskmcp/internal/api"
	"taskmcp/internal/domain"
	"taskmcp/internal/render"
	"taskmcp/internal/validate"
)

func projectIDArg(args Args) (string, error) {
	id, err := validate.ID(args.String("projectId"))
	if err != nil {
		return "", fail(msgInvalidProjectID)
	}
	return id, nil
}

func projectTools(env *Env) []Tool {
	projectID := mcp.WithString("projectId", mcp.Required(), mcp.Description("Project ID"))

	return []Tool{
		newTool(env, "get projects", listProjects("All projects", Service.ListProjects), "getAllProjects",
			mcp.WithDescription("Get all projects"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		newTool(env, "get project", getProject, "getProject",
			mcp.WithDescription("Get a specific project by ID"),
			mcp.WithReadOnlyHintAnnotation(true),
			projectID,
		),
		newTool(env, "create project", createProject, "createProject",
			mcp.WithDescription("Create a new project"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Project name")),
			mcp.WithString("description", mcp.Description("Project description (optional)")),
			mcp.WithString("owner", mcp.Description("Project owner (optional)")),
			mcp.WithString("dueDate", mcp.Description("Due date in ISO format (optional): 2024-12-31T23:59:59")),
		),
		newTool(env, "get active projects", listProjects("Active projects", Service.ActiveProjects), "getActiveProjects",
			mcp.WithDescription("Get active projects"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		newTool(env, "get overdue projects", listProjects("Overdue projects", Service.OverdueProjects), "getOverdueProjects",
			mcp.WithDescription("Get overdue projects"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		newTool(env, "start project", transitionProject(Service.StartProject, "✅ Project started"), "activateProject",
			mcp.WithDescription("Start a project"),
			projectID,
		),
		newTool(env, "complete project", transitionProject(Service.CompleteProject, "✅ Project completed"), "completeProject",
			mcp.WithDescription("Complete a project"),
			projectID,
		),
	}
}

func listProjects(title string, fetch func(Service, context.Context) ([]domain.Project, error)) runFunc {
	return func(ctx context.Context, env *Env, _ Args) (string, error) {
		projects, err := fetch(env.API, ctx)
		if err != nil {
			return "", err
		}
		return render.Projects(projects, title), nil
	}
}

func getProject(ctx context.Context, env *Env, args Args) (string, error) {
	id, err := projectIDArg(args)
	if err != nil {
		return "", err
	}
	p, err := env.API.GetProject(ctx, id)
	if err != nil {
		if api.IsNotFound(err) {
			return "", fail("❌ Project not found with ID: %s", id)
		}
		return "", err
	}
	return render.Project(*p, "Project retrieved successfully"), nil
}

func createProject(ctx context.Context, env *Env, args Args) (string, error) {
	req := domain.ProjectRequest{
		Name:        args.String("name"),
		Description: args.String("description"),
		Owner:       args.String("owner"),
	}
	if raw := args.String("dueDate"); raw != "" {
		due, err := validate.ISODateTime(raw)
		if err != nil {
			return "", fail("❌ Invalid date format. Please use ISO format like: 2024-12-31T23:59:59")
		}
		req.DueDate = due
	}
	if err := validate.Struct(req); err != nil {
		return "", fail("❌ Project name is required")
	}

	p, err := env.API.CreateProject(ctx, req)
	if err != nil {
		return "", err
	}
	return render.Project(*p, "✅ Project created successfully"), nil
}

func transitionProject(do func(Service, context.Context, string) (*domain.Project, error), message string) runFunc {
	return func(ctx context.Context, env *Env, args Args) (string, error) {
		id, err := projectIDArg(args)
		if err != nil {
			return "", err
		}
		p, err := do(env.API, ctx, id)
		if err != nil {
			return "", err
		}
		return render.Project(*p, message), nil
	}
}
