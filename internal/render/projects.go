package render

import (
	"fmt"
	"strings"

	"taskmcp/internal/domain"
)

func Projects(projects []domain.Project, title string) string {
	if len(projects) == 0 {
		return "📁 " + title + ": No projects found"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📁 %s (%d projects):\n\n", title, len(projects))
	for _, p := range projects {
		b.WriteString(ProjectSummary(p))
		b.WriteString("\n")
	}
	return b.String()
}

func ProjectSummary(p domain.Project) string {
	var b strings.Builder
	b.WriteString("📁 ")
	b.WriteString(p.Name)
	if p.Status != nil {
		fmt.Fprintf(&b, " [%s]", *p.Status)
	}
	if p.Owner != nil {
		fmt.Fprintf(&b, " 👤 %s", *p.Owner)
	}
	if p.DueDate != nil {
		fmt.Fprintf(&b, " 📅 %s", *p.DueDate)
	}
	fmt.Fprintf(&b, " (ID: %s)", p.ID)
	return b.String()
}

// Project renders message followed by the full project details.
func Project(p domain.Project, message string) string {
	return message + "\n\n" + ProjectDetails(p)
}

func ProjectDetails(p domain.Project) string {
	var b strings.Builder
	b.WriteString("📁 Project Details:\n")
	fmt.Fprintf(&b, "  ID: %s\n", p.ID)
	fmt.Fprintf(&b, "  Name: %s\n", p.Name)
	if p.Status != nil {
		fmt.Fprintf(&b, "  Status: %s\n", *p.Status)
	}
	if p.Description != nil {
		fmt.Fprintf(&b, "  Description: %s\n", *p.Description)
	}
	if p.Owner != nil {
		fmt.Fprintf(&b, "  Owner: %s\n", *p.Owner)
	}
	if p.DueDate != nil {
		fmt.Fprintf(&b, "  Due Date: %s\n", *p.DueDate)
	}
	if p.Progress != nil {
		fmt.Fprintf(&b, "  Progress: %.0f%%\n", *p.Progress)
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "  Tags: %s\n", strings.Join(p.Tags, ", "))
	}
	return b.String()
}
