package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusActive    TaskStatus = "ACTIVE"
	TaskStatusCompleted TaskStatus = "COMPLETED"
	TaskStatusDeleted   TaskStatus = "DELETED"
)

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityNone   TaskPriority = "NONE"
)

// Task mirrors the task document returned by the task service.
//
// Optional fields are pointers or omitempty slices so that rendering can tell
// "absent" apart from "empty".
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	Status      TaskStatus   `json:"status,omitempty"`
	Priority    TaskPriority `json:"priority,omitempty"`
	Project     *string      `json:"project,omitempty"`
	ProjectID   *string      `json:"projectId,omitempty"`
	ProjectName *string      `json:"projectName,omitempty"`
	Assignee    *string      `json:"assignee,omitempty"`
	DueDate     *string      `json:"dueDate,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Urgency     *float64     `json:"urgency,omitempty"`
	DependsOn   []string     `json:"depends,omitempty"`
	CreatedAt   *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time   `json:"updatedAt,omitempty"`
}

// TaskRequest is the body for create and update calls. Empty fields are
// omitted so an update only touches what the caller supplied.
type TaskRequest struct {
	Title       string       `json:"title,omitempty" validate:"omitempty,max=500"`
	Description string       `json:"description,omitempty"`
	Priority    TaskPriority `json:"priority,omitempty" validate:"omitempty,oneof=HIGH MEDIUM LOW NONE"`
	Project     string       `json:"project,omitempty"`
	Assignee    string       `json:"assignee,omitempty"`
	DueDate     string       `json:"dueDate,omitempty"`
	Tags        []string     `json:"tags,omitempty" validate:"omitempty,dive,min=1"`
}

type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Owner       *string  `json:"owner,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Progress    *float64 `json:"progress,omitempty"`
	DueDate     *string  `json:"dueDate,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type ProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Owner       string `json:"owner,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
}

// TaskGraph is the dependency graph view computed by the task service. This
// module never computes it locally.
type TaskGraph struct {
	CenterID  *string     `json:"centerId,omitempty"`
	Nodes     []GraphNode `json:"nodes"`
	Edges     []GraphEdge `json:"edges"`
	HasCycles bool        `json:"hasCycles"`
}

type GraphNode struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Status      TaskStatus `json:"status,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Project     string     `json:"project,omitempty"`
	Assignee    string     `json:"assignee,omitempty"`
	Urgency     *float64   `json:"urgency,omitempty"`
	Placeholder bool       `json:"placeholder"`
}

type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SearchFilter holds the optional criteria of a task search. Empty fields are
// not sent.
type SearchFilter struct {
	Assignee  string
	DateFrom  string
	DateTo    string
	ProjectID string
	Statuses  []string
	Title     string
	Timezone  string
}
