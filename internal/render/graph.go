package render

import (
	"fmt"
	"strings"

	"taskmcp/internal/domain"
)

func Graph(g *domain.TaskGraph) string {
	if g == nil {
		return "❌ No graph data available"
	}

	var b strings.Builder
	b.WriteString("🕸️ Task Dependency Graph\n")
	b.WriteString("═══════════════════════\n\n")
	if present(g.CenterID) {
		fmt.Fprintf(&b, "🎯 Center Task: %s\n", *g.CenterID)
	}
	fmt.Fprintf(&b, "📊 Nodes: %d\n", len(g.Nodes))
	fmt.Fprintf(&b, "🔗 Edges: %d\n", len(g.Edges))
	if g.HasCycles {
		b.WriteString("🔄 Has Cycles: Yes ⚠️\n\n")
	} else {
		b.WriteString("🔄 Has Cycles: No ✅\n\n")
	}

	if len(g.Nodes) > 0 {
		b.WriteString("📋 Tasks in Graph:\n")
		b.WriteString("─────────────────\n")
		for _, n := range g.Nodes {
			b.WriteString(graphNode(n))
			b.WriteString("\n")
		}
	}

	if len(g.Edges) > 0 {
		b.WriteString("\n🔗 Dependencies:\n")
		b.WriteString("───────────────\n")
		for _, e := range g.Edges {
			fmt.Fprintf(&b, "  %s → %s\n", e.From, e.To)
		}
	}
	return b.String()
}

func graphNode(n domain.GraphNode) string {
	var b strings.Builder
	b.WriteString(StatusIcon(n.Status))
	b.WriteString(" ")
	b.WriteString(PriorityIcon(domain.TaskPriority(strings.TrimSpace(n.Priority))))
	b.WriteString(" ")
	b.WriteString(n.Title)
	if n.Placeholder {
		b.WriteString(" 👻 (placeholder)")
	}
	if strings.TrimSpace(n.Project) != "" {
		fmt.Fprintf(&b, " 📁 %s", n.Project)
	}
	if strings.TrimSpace(n.Assignee) != "" {
		fmt.Fprintf(&b, " 👤 %s", n.Assignee)
	}
	if n.Urgency != nil {
		fmt.Fprintf(&b, " ⚡ %.1f", *n.Urgency)
	}
	return b.String()
}

// Neighbors renders the neighborhood of taskID with the query parameters
// that produced it.
func Neighbors(taskID string, depth int, includePlaceholders bool, g *domain.TaskGraph) string {
	return fmt.Sprintf("✅ Task neighbors retrieved successfully for task: %s\n📊 Depth: %d\n🔗 Include placeholders: %t\n\n%s",
		taskID, depth, includePlaceholders, Graph(g))
}
