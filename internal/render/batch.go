package render

import (
	"fmt"
	"strings"

	"taskmcp/internal/deps"
)

// NothingToUnlink is the whole report for an unlink-all on a task without
// dependencies.
const NothingToUnlink = "ℹ️ Task has no dependencies to remove"

// Batch renders a link or unlink report: a header, one line per edge in
// input order, then the counts.
func Batch(r deps.BatchReport) string {
	if r.Kind == deps.KindUnlink && r.FromSnapshot && r.Empty() {
		return NothingToUnlink
	}

	var b strings.Builder
	switch {
	case r.Kind == deps.KindLink:
		b.WriteString("🔗 Task linking results:\n\n")
	case r.FromSnapshot:
		b.WriteString("🔓 Removed all dependencies:\n\n")
	default:
		b.WriteString("🔓 Task unlinking results:\n\n")
	}
	fmt.Fprintf(&b, "**Task ID:** %s\n", r.PrimaryID)
	if r.Kind == deps.KindLink {
		b.WriteString("**Link Operations:**\n")
	} else {
		b.WriteString("**Unlink Operations:**\n")
	}
	for _, o := range r.Outcomes {
		b.WriteString("  ")
		b.WriteString(OutcomeLine(o))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(Counts(r))
	return b.String()
}

// OutcomeLine is the single line for one edge, including the failure reason.
func OutcomeLine(o deps.EdgeOutcome) string {
	target := o.Detail
	if o.Request.Label != "" && o.Request.Label != o.Request.OtherID {
		target = fmt.Sprintf("%s (%s)", o.Request.Label, o.Request.OtherID)
	}
	if target == "" {
		target = o.Request.OtherID
	}

	verb, failedVerb := "Linked to", "Failed to link to"
	if o.Request.Kind == deps.KindUnlink {
		verb, failedVerb = "Unlinked from", "Failed to unlink from"
	}
	if o.Succeeded {
		return "✅ " + verb + " " + target
	}
	line := "❌ " + failedVerb + " " + target
	if o.Reason != "" {
		line += ": " + o.Reason
	}
	return line
}

// Counts is the summary line of a report.
func Counts(r deps.BatchReport) string {
	total := len(r.Outcomes)
	switch {
	case r.Failed == 0:
		return fmt.Sprintf("📊 %d of %d succeeded", r.Succeeded, total)
	case r.Succeeded == 0:
		return fmt.Sprintf("📊 All %d failed", total)
	default:
		return fmt.Sprintf("📊 %d of %d succeeded, %d failed", r.Succeeded, total, r.Failed)
	}
}
