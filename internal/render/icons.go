// Package render turns task service responses and batch reports into the
// text handed back to agents and operators.
package render

import (
	"strings"

	"taskmcp/internal/domain"
)

func StatusIcon(s domain.TaskStatus) string {
	switch s {
	case domain.TaskStatusPending:
		return "⏳"
	case domain.TaskStatusActive:
		return "🔄"
	case domain.TaskStatusCompleted:
		return "✅"
	case domain.TaskStatusDeleted:
		return "🗑️"
	default:
		return "❓"
	}
}

// PriorityIcon maps a priority to its icon. Unknown or missing priorities
// render as NONE.
func PriorityIcon(p domain.TaskPriority) string {
	switch domain.TaskPriority(strings.ToUpper(string(p))) {
	case domain.TaskPriorityHigh:
		return "🔴"
	case domain.TaskPriorityMedium:
		return "🟡"
	case domain.TaskPriorityLow:
		return "🟢"
	default:
		return "⚪"
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
