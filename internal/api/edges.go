package api

import (
	"context"
	"net/http"

	"taskmcp/internal/deps"
)

var _ deps.EdgeClient = (*Client)(nil)

func edgeParams(taskID, dependsOnID string) map[string]string {
	return map[string]string{"id": taskID, "dep": dependsOnID}
}

// LinkEdge makes taskID depend on dependsOnID.
func (c *Client) LinkEdge(ctx context.Context, taskID, dependsOnID string) error {
	return c.exec(ctx, call{
		method: http.MethodPost,
		path:   "/api/tasks/{id}/dependencies/{dep}",
		params: edgeParams(taskID, dependsOnID),
	}, nil)
}

// UnlinkEdge removes the depends-on edge from taskID to dependsOnID.
func (c *Client) UnlinkEdge(ctx context.Context, taskID, dependsOnID string) error {
	return c.exec(ctx, call{
		method: http.MethodDelete,
		path:   "/api/tasks/{id}/dependencies/{dep}",
		params: edgeParams(taskID, dependsOnID),
	}, nil)
}

// ListDependencies returns the current dependencies of taskID as id/title
// pairs, in the order the service lists them.
func (c *Client) ListDependencies(ctx context.Context, taskID string) ([]deps.DependencyRef, error) {
	tasks, err := c.TaskDependencies(ctx, taskID)
	if err != nil {
		return nil, err
	}
	refs := make([]deps.DependencyRef, 0, len(tasks))
	for _, t := range tasks {
		refs = append(refs, deps.DependencyRef{ID: t.ID, Title: t.Title})
	}
	return refs, nil
}
