package api

import (
	"context"
	"net/http"

	"taskmcp/internal/domain"
)

func (c *Client) listProjects(ctx context.Context, path string) ([]domain.Project, error) {
	var projects []domain.Project
	if err := c.get(ctx, call{path: path}, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return c.listProjects(ctx, "/api/projects")
}

func (c *Client) ActiveProjects(ctx context.Context) ([]domain.Project, error) {
	return c.listProjects(ctx, "/api/projects/active")
}

func (c *Client) OverdueProjects(ctx context.Context) ([]domain.Project, error) {
	return c.listProjects(ctx, "/api/projects/overdue")
}

func (c *Client) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	var p domain.Project
	if err := c.get(ctx, call{path: "/api/projects/{id}", params: map[string]string{"id": id}}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProject(ctx context.Context, req domain.ProjectRequest) (*domain.Project, error) {
	var p domain.Project
	if err := c.exec(ctx, call{method: http.MethodPost, path: "/api/projects", body: req}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) StartProject(ctx context.Context, id string) (*domain.Project, error) {
	return c.projectTransition(ctx, id, "start")
}

func (c *Client) CompleteProject(ctx context.Context, id string) (*domain.Project, error) {
	return c.projectTransition(ctx, id, "complete")
}

func (c *Client) projectTransition(ctx context.Context, id, action string) (*domain.Project, error) {
	var p domain.Project
	cl := call{
		method: http.MethodPut,
		path:   "/api/projects/{id}/{action}",
		params: map[string]string{"id": id, "action": action},
	}
	if err := c.exec(ctx, cl, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
