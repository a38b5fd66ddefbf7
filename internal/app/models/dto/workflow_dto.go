package dto

import "time"

// CreateWorkflowRequest defines an ordered checklist
type CreateWorkflowRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Steps       []string `json:"steps" binding:"required,min=1,dive,required"`
}

// CreateTaskRequest represents an admin task
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	WorkflowID  string     `json:"workflowId"`
	DueAt       *time.Time `json:"dueAt"`
}

// AssignTaskRequest is the body of the assignment endpoint
type AssignTaskRequest struct {
	AssignedTo   string `json:"assignedTo" binding:"required"`
	AssignedToID string `json:"assignedToId" binding:"required"`
}

// AssignmentResponse echoes the assignment record
type AssignmentResponse struct {
	TaskID       string    `json:"taskId"`
	AssignedTo   string    `json:"assignedTo"`
	AssignedToID string    `json:"assignedToId"`
	AssignedBy   string    `json:"assignedBy"`
	AssignedAt   time.Time `json:"assignedAt"`
}

// UpdateTaskStatusRequest moves a task through its lifecycle
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress completed cancelled"`
}
