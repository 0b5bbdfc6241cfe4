package tools

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTask_InvalidIDMakesNoCall(t *testing.T) {
	svc := newFakeService()
	r := newTestRegistry(t, svc)

	text, isErr := call(t, r, "getTask", map[string]any{"taskId": "not-a-uuid"})
	assert.True(t, isErr)
	assert.Equal(t, msgInvalidTaskID, text)
	assert.Empty(t, svc.Calls())
}

func TestGetTask_FoundAndNotFound(t *testing.T) {
	svc := newFakeService()
	svc.handle("GET /api/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != taskA {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Task not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": taskA, "title": "Write docs", "status": "PENDING", "priority": "LOW"})
	})
	r := newTestRegistry(t, svc)

	text, isErr := call(t, r, "getTask", map[string]any{"taskId": " " + taskA + " "})
	assert.False(t, isErr)
	assert.True(t, strings.HasPrefix(text, "Task retrieved successfully\n\n📋 Task Details:\n"))
	assert.Contains(t, text, "  Title: Write docs\n")

	text, isErr = call(t, r, "getTask", map[string]any{"taskId": taskB})
	assert.True(t, isErr)
	assert.Equal(t, "❌ Task not found with ID: "+taskB, text)
}

func TestCreateTask_UnknownPriorityFallsBackToMedium(t *testing.T) {
	svc := newFakeService()
	svc.handle("POST /api/tasks", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"id": taskA, "title": "Ship", "priority": "MEDIUM"})
	})
	r := newTestRegistry(t, svc)

	text, isErr := call(t, r, "createTask", map[string]any{
		"title":    "Ship",
		"priority": "urgent",
		"tags":     "release, q4,,",
	})
	require.False(t, isErr, text)
	assert.True(t, strings.HasPrefix(text, "✅ Task created successfully"))

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(svc.Body("POST /api/tasks")), &body))
	assert.Equal(t, "MEDIUM", body["priority"])
	assert.Equal(t, []any{"release", "q4"}, body["tags"])
	assert.NotContains(t, body, "description")
}

func TestCreateTask_TitleRequired(t *testing.T) {
	svc := newFakeService()
	r := newTestRegistry(t, svc)

	text, isErr := call(t, r, "createTask", map[string]any{"title": "   "})
	assert.True(t, isErr)
	assert.Equal(t, "❌ Task title is required", text)
	assert.Empty(t, svc.Calls())
}

func TestUpdateTask_InvalidPriorityIsRejected(t *testing.T) {
	svc := newFakeService()
	r := newTestRegistry(t, svc)

	text, isErr := call(t, r, "updateTask", map[string]any{"taskId": taskA, "priority": "urgent"})
	assert.True(t, isErr)
	assert.Equal(t, "❌ Invalid priority. Use: HIGH, MEDIUM, LOW, NONE", text)
	assert.Empty(t, svc.Calls())
}

func TestUpdateTask_SendsOnlySuppliedFields(t *testing.T) {
	svc := newFakeService()
	svc.handle("PUT /api/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": taskA, "title": "Renamed", "priority": "HIGH"})
	})
	r := newTestRegistry(t, svc)

	text, isErr := call(t, r, "updateTask", map[string]any{"taskId": taskA, "title": "Renamed", "priority": "high"})
	require.False(t, isErr, text)
	assert.True(t, strings.HasPrefix(text, "✅ Task updated successfully"))
	assert.JSONEq(t, `{"title":"Renamed","priority":"HIGH"}`, svc.Body("PUT /api/tasks/"+taskA))
}

func TestStatusTools(t *testing.T) {
	svc := newFakeService()
	svc.handle("PUT /api/tasks/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		var status string
		_ = json.NewDecoder(r.Body).Decode(&status)
		writeJSON(w, http.StatusOK, map[string]any{"id": r.PathValue("id"), "title": "T", "status": status})
	})
	r := newTestRegistry(t, svc)

	cases := []struct {
		tool, status, message string
	}{
		{"startTask", "ACTIVE", "✅ Task started"},
		{"stopTask", "PENDING", "✅ Task stopped"},
		{"markTaskDone", "COMPLETED", "✅ Task marked as done"},
	}
	for _, tc := range cases {
		t.Run(tc.tool, func(t *testing.T) {
			text, isErr := call(t, r, tc.tool, map[string]any{"taskId": taskA})
			require.False(t, isErr, text)
			assert.True(t, strings.HasPrefix(text, tc.message))
			assert.Contains(t, text, "  Status: ")
			assert.Contains(t, text, tc.status)
		})
	}
}

func TestDeleteTask(t *testing.T) {
	svc := newFakeService()
	svc.handle("DELETE /api/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r := newTestRegistry(t, svc)

	text, isErr := call(t, r, "deleteTask", map[string]any{"taskId": taskA})
	assert.False(t, isErr)
	assert.Equal(t, "✅ Task deleted successfully", text)
}

func TestListTools_EmptyAndRemoteFailure(t *testing.T) {
	svc := newFakeService()
	svc.handle("GET /api/tasks/pending", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})
	svc.handle("GET /api/tasks", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "database down"})
	})
	r := newTestRegistry(t, svc)

	text, isErr := call(t, r, "getPendingTasks", nil)
	assert.False(t, isErr)
	assert.Equal(t, "⏳ Pending tasks: No tasks found", text)

	text, isErr = call(t, r, "getAllTasks", nil)
	assert.True(t, isErr)
	assert.Equal(t, "❌ Failed to get tasks: rejected (500 Internal Server Error): database down", text)
}

func TestDatedTasks_SendConfiguredTimezone(t *testing.T) {
	svc := newFakeService()
	var tz string
	svc.handle("GET /api/tasks/overdue", func(w http.ResponseWriter, r *http.Request) {
		tz = r.URL.Query().Get("tz")
		writeJSON(w, http.StatusOK, []any{})
	})
	r := newTestRegistry(t, svc)

	text, _ := call(t, r, "getOverdueTasks", nil)
	assert.Equal(t, "Europe/Berlin", tz)
	assert.Equal(t, "📋 Overdue tasks (timezone: Europe/Berlin): No tasks found", text)
}

func TestSearchTasks(t *testing.T) {
	svc := newFakeService()
	var query map[string][]string
	svc.handle("GET /api/tasks/search", func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		writeJSON(w, http.StatusOK, []map[string]any{{"id": taskA, "title": "Write docs", "status": "ACTIVE"}})
	})
	r := newTestRegistry(t, svc)

	text, isErr := call(t, r, "searchTasks", map[string]any{"assignee": "ana", "status": "pending, active"})
	require.False(t, isErr, text)
	assert.Equal(t, []string{"PENDING", "ACTIVE"}, query["status"])
	assert.Equal(t, []string{"Europe/Berlin"}, query["tz"])
	assert.Contains(t, text, "🔍 Task search results (👤 Assignee: ana 📊 Status: PENDING,ACTIVE 🌍 Timezone: Europe/Berlin) (1 tasks):")

	text, isErr = call(t, r, "searchTasks", map[string]any{"projectId": "nope"})
	assert.True(t, isErr)
	assert.Equal(t, msgInvalidProjectID, text)
}

func TestTaskNeighbors(t *testing.T) {
	svc := newFakeService()
	var query map[string][]string
	svc.handle("GET /api/tasks/{id}/neighbors", func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		writeJSON(w, http.StatusOK, map[string]any{"centerId": taskA, "nodes": []any{}, "edges": []any{}})
	})
	r := newTestRegistry(t, svc)

	text, isErr := call(t, r, "getTaskNeighbors", map[string]any{"taskId": taskA})
	require.False(t, isErr, text)
	assert.Equal(t, []string{"1"}, query["depth"])
	assert.Equal(t, []string{"true"}, query["includePlaceholders"])
	assert.Contains(t, text, "📊 Depth: 1\n🔗 Include placeholders: true")
	assert.Contains(t, text, "🎯 Center Task: "+taskA)

	// Numeric arguments are accepted as well as strings.
	_, isErr = call(t, r, "getTaskNeighbors", map[string]any{"taskId": taskA, "depth": float64(3), "includePlaceholders": false})
	require.False(t, isErr)
	assert.Equal(t, []string{"3"}, query["depth"])
	assert.Equal(t, []string{"false"}, query["includePlaceholders"])

	text, isErr = call(t, r, "getTaskNeighbors", map[string]any{"taskId": taskA, "depth": "deep"})
	assert.True(t, isErr)
	assert.Equal(t, "❌ Invalid depth value. Please provide a valid integer.", text)
}

func TestTaskGraph(t *testing.T) {
	svc := newFakeService()
	var statuses string
	svc.handle("GET /api/tasks/graph", func(w http.ResponseWriter, r *http.Request) {
		statuses = r.URL.Query().Get("statuses")
		writeJSON(w, http.StatusOK, map[string]any{
			"nodes":     []map[string]any{{"id": taskA, "title": "A"}, {"id": taskB, "title": "B"}},
			"edges":     []map[string]any{{"from": taskA, "to": taskB}},
			"hasCycles": false,
		})
	})
	r := newTestRegistry(t, svc)

	text, isErr := call(t, r, "getTaskGraph", map[string]any{"statuses": "pending,active"})
	require.False(t, isErr, text)
	assert.Equal(t, "PENDING,ACTIVE", statuses)
	assert.Contains(t, text, "🕸️ Task Dependency Graph")
	assert.Contains(t, text, "  "+taskA+" → "+taskB)
}

func TestDependenciesAndDependents(t *testing.T) {
	svc := newFakeService()
	svc.handle("GET /api/tasks/{id}/dependencies", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"id": taskB, "title": "Design", "status": "COMPLETED", "priority": "HIGH"}})
	})
	svc.handle("GET /api/tasks/{id}/dependents", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})
	r := newTestRegistry(t, svc)

	text, isErr := call(t, r, "getTaskDependencies", map[string]any{"taskId": taskA})
	require.False(t, isErr, text)
	assert.Contains(t, text, "**Dependencies:** 1 task(s)")
	assert.Contains(t, text, "🔗 **Design**")

	text, _ = call(t, r, "getTaskDependents", map[string]any{"taskId": taskA})
	assert.Contains(t, text, "**Dependents:** None (no other tasks depend on this one)")

	text, isErr = call(t, r, "getTaskDependents", map[string]any{})
	assert.True(t, isErr)
	assert.Equal(t, msgTaskIDRequired, text)
}

func TestLinkTasks_PartialFailureIsReported(t *testing.T) {
	svc := newFakeService()
	svc.handle("POST /api/tasks/{id}/dependencies/{dep}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("dep") == taskC {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Dependency task not found"})
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	r := newTestRegistry(t, svc)

	text, isErr := call(t, r, "linkTasks", map[string]any{"taskId": taskA, "dependsOnTaskIds": taskB + ", " + taskC})
	assert.False(t, isErr)

	want := "🔗 Task linking results:\n\n" +
		"**Task ID:** " + taskA + "\n" +
		"**Link Operations:**\n" +
		"  ✅ Linked to " + taskB + "\n" +
		"  ❌ Failed to link to " + taskC + ": rejected (404 Not Found): Dependency task not found\n" +
		"\n📊 1 of 2 succeeded, 1 failed"
	assert.Equal(t, want, text)
}

func TestLinkTasks_RejectedBatchMakesNoCalls(t *testing.T) {
	svc := newFakeService()
	r := newTestRegistry(t, svc)

	text, isErr := call(t, r, "linkTasks", map[string]any{"taskId": taskA, "dependsOnTaskIds": taskB + ",bogus"})
	assert.True(t, isErr)
	assert.True(t, strings.HasPrefix(text, msgInvalidTaskID), text)
	assert.Contains(t, text, `"bogus"`)

	text, isErr = call(t, r, "linkTasks", map[string]any{"taskId": taskA, "dependsOnTaskIds": " , "})
	assert.True(t, isErr)
	assert.Equal(t, "❌ At least one dependency task ID is required", text)

	text, isErr = call(t, r, "linkTasks", map[string]any{"dependsOnTaskIds": taskB})
	assert.True(t, isErr)
	assert.Equal(t, msgTaskIDRequired, text)

	assert.Empty(t, svc.Calls())
}

func TestUnlinkTasks_AllUsesSnapshot(t *testing.T) {
	svc := newFakeService()
	svc.handle("GET /api/tasks/{id}/dependencies", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": taskB, "title": "Design"},
			{"id": taskC, "title": "Review"},
		})
	})
	svc.handle("DELETE /api/tasks/{id}/dependencies/{dep}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r := newTestRegistry(t, svc)

	text, isErr := call(t, r, "unlinkTasks", map[string]any{"taskId": taskA})
	require.False(t, isErr, text)
	assert.True(t, strings.HasPrefix(text, "🔓 Removed all dependencies:\n\n"))
	assert.Contains(t, text, "  ✅ Unlinked from Design ("+taskB+")\n  ✅ Unlinked from Review ("+taskC+")\n")
	assert.True(t, strings.HasSuffix(text, "📊 2 of 2 succeeded"))

	calls := svc.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "GET /api/tasks/"+taskA+"/dependencies", calls[0])
	assert.ElementsMatch(t, []string{
		"DELETE /api/tasks/" + taskA + "/dependencies/" + taskB,
		"DELETE /api/tasks/" + taskA + "/dependencies/" + taskC,
	}, calls[1:])
}

func TestUnlinkTasks_NothingToRemove(t *testing.T) {
	svc := newFakeService()
	svc.handle("GET /api/tasks/{id}/dependencies", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})
	r := newTestRegistry(t, svc)

	text, isErr := call(t, r, "unlinkTasks", map[string]any{"taskId": taskA, "dependencyIdsToRemove": ""})
	assert.False(t, isErr)
	assert.Equal(t, "ℹ️ Task has no dependencies to remove", text)
}

func TestUnlinkTasks_PrefetchFailure(t *testing.T) {
	svc := newFakeService()
	svc.handle("GET /api/tasks/{id}/dependencies", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	r := newTestRegistry(t, svc)

	text, isErr := call(t, r, "unlinkTasks", map[string]any{"taskId": taskA})
	assert.True(t, isErr)
	assert.Equal(t, "❌ Failed to get task dependencies for: "+taskA+": rejected (503 Service Unavailable)", text)
	assert.Len(t, svc.Calls(), 1)
}

func TestUnlinkTasks_Explicit(t *testing.T) {
	svc := newFakeService()
	svc.handle("DELETE /api/tasks/{id}/dependencies/{dep}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r := newTestRegistry(t, svc)

	text, isErr := call(t, r, "unlinkTasks", map[string]any{"taskId": taskA, "dependencyIdsToRemove": taskB})
	require.False(t, isErr, text)
	assert.True(t, strings.HasPrefix(text, "🔓 Task unlinking results:\n\n"))
	assert.Contains(t, text, "  ✅ Unlinked from "+taskB+"\n")
	assert.Equal(t, []string{"DELETE /api/tasks/" + taskA + "/dependencies/" + taskB}, svc.Calls())
}

func TestProjectTools(t *testing.T) {
	svc := newFakeService()
	svc.handle("GET /api/projects/active", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"id": projP, "name": "Launch", "status": "ACTIVE"}})
	})
	svc.handle("GET /api/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, nil)
	})
	svc.handle("PUT /api/projects/{id}/complete", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": projP, "name": "Launch", "status": "COMPLETED"})
	})
	svc.handle("POST /api/projects", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"id": projP, "name": "Launch"})
	})
	r := newTestRegistry(t, svc)

	text, _ := call(t, r, "getActiveProjects", nil)
	assert.Equal(t, "📁 Active projects (1 projects):\n\n📁 Launch [ACTIVE] (ID: "+projP+")\n", text)

	text, isErr := call(t, r, "getProject", map[string]any{"projectId": projP})
	assert.True(t, isErr)
	assert.Equal(t, "❌ Project not found with ID: "+projP, text)

	text, isErr = call(t, r, "completeProject", map[string]any{"projectId": projP})
	require.False(t, isErr, text)
	assert.True(t, strings.HasPrefix(text, "✅ Project completed\n\n📁 Project Details:\n"))

	text, isErr = call(t, r, "activateProject", map[string]any{"projectId": "x"})
	assert.True(t, isErr)
	assert.Equal(t, msgInvalidProjectID, text)

	text, isErr = call(t, r, "createProject", map[string]any{"name": "Launch", "dueDate": "31/12/2024"})
	assert.True(t, isErr)
	assert.Equal(t, "❌ Invalid date format. Please use ISO format like: 2024-12-31T23:59:59", text)

	text, isErr = call(t, r, "createProject", map[string]any{"name": "Launch", "dueDate": "2024-12-31T23:59:59"})
	require.False(t, isErr, text)
	assert.JSONEq(t, `{"name":"Launch","dueDate":"2024-12-31T23:59:59"}`, svc.Body("POST /api/projects"))

	text, isErr = call(t, r, "createProject", map[string]any{})
	assert.True(t, isErr)
	assert.Equal(t, "❌ Project name is required", text)
}
