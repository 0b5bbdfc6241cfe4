package render

import (
	"fmt"
	"strings"

	"taskmcp/internal/domain"
)

// Tasks renders a task list under title with the default list icon.
func Tasks(tasks []domain.Task, title string) string {
	return TasksWithIcon(tasks, title, "📋")
}

func TasksWithIcon(tasks []domain.Task, title, icon string) string {
	if len(tasks) == 0 {
		return icon + " " + title + ": No tasks found"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%d tasks):\n\n", icon, title, len(tasks))
	for _, t := range tasks {
		b.WriteString(TaskSummary(t))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n📊 Total: %d tasks", len(tasks))
	return b.String()
}

// TaskSummary is the one-line form used in lists.
func TaskSummary(t domain.Task) string {
	var b strings.Builder
	b.WriteString(StatusIcon(t.Status))
	b.WriteString(" ")
	b.WriteString(PriorityIcon(t.Priority))
	b.WriteString(" ")
	b.WriteString(t.Title)

	switch {
	case t.ProjectName != nil:
		fmt.Fprintf(&b, " [%s]", *t.ProjectName)
	case t.ProjectID != nil:
		fmt.Fprintf(&b, " [Project: %s]", *t.ProjectID)
	case t.Project != nil:
		fmt.Fprintf(&b, " [%s]", *t.Project)
	}
	if t.DueDate != nil {
		fmt.Fprintf(&b, " 📅 %s", *t.DueDate)
	}
	fmt.Fprintf(&b, " (ID: %s)", t.ID)
	return b.String()
}

// Task renders message followed by the full task details.
func Task(t domain.Task, message string) string {
	return message + "\n\n" + TaskDetails(t)
}

func TaskDetails(t domain.Task) string {
	var b strings.Builder
	b.WriteString("📋 Task Details:\n")
	fmt.Fprintf(&b, "  ID: %s\n", t.ID)
	fmt.Fprintf(&b, "  Title: %s\n", t.Title)
	fmt.Fprintf(&b, "  Status: %s %s\n", StatusIcon(t.Status), t.Status)
	fmt.Fprintf(&b, "  Priority: %s %s\n", PriorityIcon(t.Priority), t.Priority)

	if t.Description != nil {
		fmt.Fprintf(&b, "  Description: %s\n", *t.Description)
	}
	switch {
	case t.ProjectName != nil:
		fmt.Fprintf(&b, "  Project: %s\n", *t.ProjectName)
	case t.ProjectID != nil:
		fmt.Fprintf(&b, "  Project ID: %s\n", *t.ProjectID)
	case t.Project != nil:
		fmt.Fprintf(&b, "  Project: %s\n", *t.Project)
	}
	if t.Assignee != nil {
		fmt.Fprintf(&b, "  Assignee: %s\n", *t.Assignee)
	}
	if t.DueDate != nil {
		fmt.Fprintf(&b, "  Due Date: %s\n", *t.DueDate)
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(&b, "  Tags: %s\n", strings.Join(t.Tags, ", "))
	}
	if t.Urgency != nil {
		fmt.Fprintf(&b, "  Urgency: %.1f\n", *t.Urgency)
	}
	if len(t.DependsOn) > 0 {
		fmt.Fprintf(&b, "  Depends On: %s\n", strings.Join(t.DependsOn, ", "))
	}
	if t.CreatedAt != nil {
		fmt.Fprintf(&b, "  Created: %s\n", t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	}
	if t.UpdatedAt != nil {
		fmt.Fprintf(&b, "  Updated: %s\n", t.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"))
	}
	return b.String()
}

// Relation renders the dependencies or dependents of taskID.
type Relation int

const (
	Dependencies Relation = iota
	Dependents
)

func Related(taskID string, rel Relation, tasks []domain.Task) string {
	var b strings.Builder
	heading, label := "📋 Task Dependencies", "**Dependencies:**"
	if rel == Dependents {
		heading, label = "📋 Task Dependents", "**Dependents:**"
	}
	b.WriteString(heading + "\n\n")
	fmt.Fprintf(&b, "**Task ID:** %s\n", taskID)

	if len(tasks) == 0 {
		if rel == Dependents {
			b.WriteString(label + " None (no other tasks depend on this one)\n")
		} else {
			b.WriteString(label + " None\n")
		}
		return b.String()
	}

	if rel == Dependents {
		fmt.Fprintf(&b, "%s %d task(s) depend on this one\n\n", label, len(tasks))
	} else {
		fmt.Fprintf(&b, "%s %d task(s)\n\n", label, len(tasks))
	}
	for _, t := range tasks {
		fmt.Fprintf(&b, "🔗 **%s**\n", t.Title)
		fmt.Fprintf(&b, "   ID: %s\n", t.ID)
		fmt.Fprintf(&b, "   Status: %s\n", t.Status)
		fmt.Fprintf(&b, "   Priority: %s\n", t.Priority)
		if present(t.Description) {
			fmt.Fprintf(&b, "   Description: %s\n", *t.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}
