package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"taskmcp/internal/domain"
)

func taskParams(id string) map[string]string {
	return map[string]string{"id": id}
}

func tzQuery(tz string) url.Values {
	q := url.Values{}
	if tz != "" {
		q.Set("tz", tz)
	}
	return q
}

func (c *Client) listTasks(ctx context.Context, cl call) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.get(ctx, cl, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return c.listTasks(ctx, call{path: "/api/tasks"})
}

func (c *Client) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	var t domain.Task
	if err := c.get(ctx, call{path: "/api/tasks/{id}", params: taskParams(id)}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) CreateTask(ctx context.Context, req domain.TaskRequest) (*domain.Task, error) {
	var t domain.Task
	if err := c.exec(ctx, call{method: http.MethodPost, path: "/api/tasks", body: req}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, req domain.TaskRequest) (*domain.Task, error) {
	var t domain.Task
	if err := c.exec(ctx, call{method: http.MethodPut, path: "/api/tasks/{id}", params: taskParams(id), body: req}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.exec(ctx, call{method: http.MethodDelete, path: "/api/tasks/{id}", params: taskParams(id)}, nil)
}

// SetTaskStatus moves a task to status. The body is the status as a JSON
// string.
func (c *Client) SetTaskStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	body, err := json.Marshal(status)
	if err != nil {
		return nil, err
	}
	var t domain.Task
	if err := c.exec(ctx, call{method: http.MethodPut, path: "/api/tasks/{id}/status", params: taskParams(id), body: body}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) PendingTasks(ctx context.Context) ([]domain.Task, error) {
	return c.listTasks(ctx, call{path: "/api/tasks/pending"})
}

func (c *Client) ActiveTasks(ctx context.Context) ([]domain.Task, error) {
	return c.listTasks(ctx, call{path: "/api/tasks/active"})
}

func (c *Client) CompletedTasks(ctx context.Context) ([]domain.Task, error) {
	return c.listTasks(ctx, call{path: "/api/tasks/completed"})
}

func (c *Client) OverdueTasks(ctx context.Context, tz string) ([]domain.Task, error) {
	return c.listTasks(ctx, call{path: "/api/tasks/overdue", query: tzQuery(tz)})
}

func (c *Client) TodayTasks(ctx context.Context, tz string) ([]domain.Task, error) {
	return c.listTasks(ctx, call{path: "/api/tasks/today", query: tzQuery(tz)})
}

func (c *Client) SearchTasks(ctx context.Context, f domain.SearchFilter) ([]domain.Task, error) {
	q := tzQuery(f.Timezone)
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("assignee", f.Assignee)
	set("dateFrom", f.DateFrom)
	set("dateTo", f.DateTo)
	set("projectId", f.ProjectID)
	set("title", f.Title)
	for _, s := range f.Statuses {
		q.Add("status", s)
	}
	return c.listTasks(ctx, call{path: "/api/tasks/search", query: q})
}

func (c *Client) TaskGraph(ctx context.Context, statuses []string) (*domain.TaskGraph, error) {
	q := url.Values{}
	if len(statuses) > 0 {
		q.Set("statuses", strings.Join(statuses, ","))
	}
	var g domain.TaskGraph
	if err := c.get(ctx, call{path: "/api/tasks/graph", query: q}, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Client) TaskNeighbors(ctx context.Context, id string, depth int, includePlaceholders bool) (*domain.TaskGraph, error) {
	q := url.Values{}
	q.Set("depth", strconv.Itoa(depth))
	q.Set("includePlaceholders", strconv.FormatBool(includePlaceholders))
	var g domain.TaskGraph
	if err := c.get(ctx, call{path: "/api/tasks/{id}/neighbors", params: taskParams(id), query: q}, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// TaskDependencies lists the tasks that id depends on.
func (c *Client) TaskDependencies(ctx context.Context, id string) ([]domain.Task, error) {
	return c.listTasks(ctx, call{path: "/api/tasks/{id}/dependencies", params: taskParams(id)})
}

// TaskDependents lists the tasks that depend on id.
func (c *Client) TaskDependents(ctx context.Context, id string) ([]domain.Task, error) {
	return c.listTasks(ctx, call{path: "/api/tasks/{id}/dependents", params: taskParams(id)})
}
