package models

import "github.com/yigit/alumnihub/internal/pkg/lifecycle"

// ApprovalStatus tracks moderation of jobs, events, stories and alumni accounts
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// ApprovalTransitions: a decision is final
var ApprovalTransitions = lifecycle.Table[ApprovalStatus]{
	ApprovalPending:  {ApprovalApproved, ApprovalRejected},
	ApprovalApproved: nil,
	ApprovalRejected: nil,
}

// MentorshipStatus of a mentorship request
type MentorshipStatus string

const (
	MentorshipPending   MentorshipStatus = "pending"
	MentorshipAccepted  MentorshipStatus = "accepted"
	MentorshipRejected  MentorshipStatus = "rejected"
	MentorshipCompleted MentorshipStatus = "completed"
	MentorshipCancelled MentorshipStatus = "cancelled"
)

var MentorshipTransitions = lifecycle.Table[MentorshipStatus]{
	MentorshipPending:   {MentorshipAccepted, MentorshipRejected, MentorshipCancelled},
	MentorshipAccepted:  {MentorshipCompleted},
	MentorshipRejected:  nil,
	MentorshipCompleted: nil,
	MentorshipCancelled: nil,
}

// ApplicationStatus of a job application
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationReviewed ApplicationStatus = "reviewed"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

var ApplicationTransitions = lifecycle.Table[ApplicationStatus]{
	ApplicationPending:  {ApplicationReviewed, ApplicationAccepted, ApplicationRejected},
	ApplicationReviewed: {ApplicationAccepted, ApplicationRejected},
	ApplicationAccepted: nil,
	ApplicationRejected: nil,
}

// TaskStatus of an admin task
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

var TaskTransitions = lifecycle.Table[TaskStatus]{
	TaskPending:    {TaskInProgress, TaskCancelled},
	TaskInProgress: {TaskCompleted, TaskCancelled},
	TaskCompleted:  nil,
	TaskCancelled:  nil,
}

// DeliveryStatus of a direct message. Status only moves forward.
type DeliveryStatus string

const (
	DeliverySent      DeliveryStatus = "sent"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryRead      DeliveryStatus = "read"
)

var DeliveryTransitions = lifecycle.Table[DeliveryStatus]{
	DeliverySent:      {DeliveryDelivered, DeliveryRead},
	DeliveryDelivered: {DeliveryRead},
	DeliveryRead:      nil,
}

// WorkflowStatus of an admin workflow
type WorkflowStatus string

const (
	WorkflowDraft     WorkflowStatus = "draft"
	WorkflowRunning   WorkflowStatus = "running"
	WorkflowCompleted WorkflowStatus = "completed"
	WorkflowCancelled WorkflowStatus = "cancelled"
)

var WorkflowTransitions = lifecycle.Table[WorkflowStatus]{
	WorkflowDraft:     {WorkflowRunning, WorkflowCancelled},
	WorkflowRunning:   {WorkflowCompleted, WorkflowCancelled},
	WorkflowCompleted: nil,
	WorkflowCancelled: nil,
}
