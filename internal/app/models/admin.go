package models

import "time"

// Task priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Task is a unit of admin work, optionally attached to a workflow step
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Priority     string     `json:"priority"`
	Status       TaskStatus `json:"status"`
	AssignedTo   string     `json:"assignedTo,omitempty"`
	AssignedToID string     `json:"assignedToId,omitempty"`
	AssignedAt   *time.Time `json:"assignedAt,omitempty"`
	WorkflowID   string     `json:"workflowId,omitempty"`
	DueAt        *time.Time `json:"dueAt,omitempty"`
	CreatedByID  string     `json:"createdById"`
	Timestamps
}

func (t Task) EntityID() string { return t.ID }

// Overdue reports whether an unfinished task is past its due date
func (t Task) Overdue(now time.Time) bool {
	if t.DueAt == nil || t.Status == TaskCompleted || t.Status == TaskCancelled {
		return false
	}
	return t.DueAt.Before(now)
}

// WorkflowStep is one ordered step of a workflow
type WorkflowStep struct {
	Name        string     `json:"name"`
	AssigneeID  string     `json:"assigneeId,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CompletedBy string     `json:"completedBy,omitempty"`
}

// Workflow is an ordered checklist run by administrators
type Workflow struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Category    string         `json:"category,omitempty"`
	Steps       []WorkflowStep `json:"steps"`
	CurrentStep int            `json:"currentStep"`
	Status      WorkflowStatus `json:"status"`
	CreatedByID string         `json:"createdById"`
	StartedAt   *time.Time     `json:"startedAt,omitempty"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	Timestamps
}

func (w Workflow) EntityID() string { return w.ID }

// CompletedSteps counts finished steps
func (w Workflow) CompletedSteps() int {
	n := 0
	for _, s := range w.Steps {
		if s.CompletedAt != nil {
			n++
		}
	}
	return n
}

// Audit severities
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// AuditLog records an administrative action
type AuditLog struct {
	ID         string            `json:"id"`
	ActorID    string            `json:"actorId"`
	Action     string            `json:"action"`
	EntityType string            `json:"entityType"`
	EntityRef  string            `json:"entityId"`
	Details    map[string]string `json:"details,omitempty"`
	Severity   string            `json:"severity"`
	IPAddress  string            `json:"ipAddress,omitempty"`
	Timestamps
}

func (a AuditLog) EntityID() string { return a.ID }
