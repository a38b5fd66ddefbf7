package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/query"
	"github.com/yigit/alumnihub/internal/pkg/realtime"
)

// WorkflowService defines admin workflow and task operations
type WorkflowService interface {
	CreateWorkflow(ctx context.Context, actor Actor, req *dto.CreateWorkflowRequest) (*models.Workflow, error)
	ListWorkflows(ctx context.Context, criteria query.Criteria) []models.Workflow
	GetWorkflow(ctx context.Context, workflowID string) (*models.Workflow, error)
	StartWorkflow(ctx context.Context, actor Actor, workflowID string) (*models.Workflow, error)
	CompleteStep(ctx context.Context, actor Actor, workflowID string) (*models.Workflow, error)
	CancelWorkflow(ctx context.Context, actor Actor, workflowID string) (*models.Workflow, error)

	CreateTask(ctx context.Context, actor Actor, req *dto.CreateTaskRequest) (*models.Task, error)
	ListTasks(ctx context.Context, criteria query.Criteria) []models.Task
	AssignTask(ctx context.Context, actor Actor, taskID string, req *dto.AssignTaskRequest) (*dto.AssignmentResponse, error)
	UpdateTaskStatus(ctx context.Context, actor Actor, taskID string, status models.TaskStatus) (*models.Task, error)
}

// workflowServiceImpl implements WorkflowService
type workflowServiceImpl struct {
	workflows repositories.Store[models.Workflow]
	tasks     repositories.Store[models.Task]
	users     repositories.UserStore
	publisher realtime.Publisher
	audit     *auditor
	logger    zerolog.Logger
	now       clock

	mu sync.Mutex
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService(repos *repositories.Repositories, publisher realtime.Publisher, logger zerolog.Logger) WorkflowService {
	return &workflowServiceImpl{
		workflows: repos.Workflows,
		tasks:     repos.Tasks,
		users:     repos.Users,
		publisher: publisher,
		audit:     newAuditor(repos.AuditLogs, publisher, logger),
		logger:    logger,
		now:       utcNow,
	}
}

func requireAdmin(actor Actor) error {
	if !actor.IsAdmin() {
		return apperrors.NewForbiddenError("Administrator role required")
	}
	return nil
}

// CreateWorkflow stores a draft workflow with its ordered steps
func (s *workflowServiceImpl) CreateWorkflow(ctx context.Context, actor Actor, req *dto.CreateWorkflowRequest) (*models.Workflow, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	steps := make([]models.WorkflowStep, 0, len(req.Steps))
	for _, name := range req.Steps {
		if name = strings.TrimSpace(name); name != "" {
			steps = append(steps, models.WorkflowStep{Name: name})
		}
	}

	wf := models.Workflow{
		ID:          models.NewID(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    req.Category,
		Steps:       steps,
		Status:      models.WorkflowDraft,
		CreatedByID: actor.ID,
	}
	wf.Touch(s.now())
	if err := s.workflows.Save(ctx, wf); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create workflow")
		return nil, err
	}

	s.audit.record(ctx, actor, ActionCreateWorkflow, "workflow", wf.ID, models.SeverityInfo,
		details("name", wf.Name, "steps", strconv.Itoa(len(steps))))
	return &wf, nil
}

// ListWorkflows lists workflows, newest first by default
func (s *workflowServiceImpl) ListWorkflows(ctx context.Context, criteria query.Criteria) []models.Workflow {
	all := listOrEmpty[models.Workflow](ctx, s.workflows, s.logger, "workflows")
	return workflowSchema.Apply(all, defaultSort(criteria, "recent"))
}

// GetWorkflow returns one workflow
func (s *workflowServiceImpl) GetWorkflow(ctx context.Context, workflowID string) (*models.Workflow, error) {
	wf, err := getOr404[models.Workflow](ctx, s.workflows, workflowID, "Workflow")
	if err != nil {
		return nil, err
	}
	return &wf, nil
}

func (s *workflowServiceImpl) saveWorkflow(ctx context.Context, wf *models.Workflow) error {
	wf.Touch(s.now())
	if err := s.workflows.Save(ctx, *wf); err != nil {
		s.logger.Error().Err(err).Str("workflowID", wf.ID).Msg("Failed to save workflow")
		return err
	}
	return nil
}

// StartWorkflow moves a draft workflow to running
func (s *workflowServiceImpl) StartWorkflow(ctx context.Context, actor Actor, workflowID string) (*models.Workflow, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wf, err := getOr404[models.Workflow](ctx, s.workflows, workflowID, "Workflow")
	if err != nil {
		return nil, err
	}
	if len(wf.Steps) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrWorkflowHasNoSteps, "A workflow needs at least one step to start")
	}
	if err := models.WorkflowTransitions.Advance(wf.Status, models.WorkflowRunning); err != nil {
		return nil, err
	}
	if wf.Status == models.WorkflowRunning {
		return &wf, nil
	}

	now := s.now()
	wf.Status = models.WorkflowRunning
	wf.StartedAt = &now
	wf.CurrentStep = 0
	if err := s.saveWorkflow(ctx, &wf); err != nil {
		return nil, err
	}

	s.publisher.Publish(realtime.Event{Name: realtime.EventWorkflowStarted, Data: wf}.ToRole(string(models.RoleAdmin)))
	s.audit.record(ctx, actor, ActionStartWorkflow, "workflow", wf.ID, models.SeverityInfo, details("name", wf.Name))
	return &wf, nil
}

// CompleteStep finishes the current step. Completing the last step completes
// the workflow.
func (s *workflowServiceImpl) CompleteStep(ctx context.Context, actor Actor, workflowID string) (*models.Workflow, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wf, err := getOr404[models.Workflow](ctx, s.workflows, workflowID, "Workflow")
	if err != nil {
		return nil, err
	}
	if wf.Status != models.WorkflowRunning || wf.CurrentStep >= len(wf.Steps) {
		return nil, fmt.Errorf("%w: workflow is %s", apperrors.ErrIllegalTransition, wf.Status)
	}

	now := s.now()
	step := &wf.Steps[wf.CurrentStep]
	step.CompletedAt = &now
	step.CompletedBy = actor.ID
	completed := step.Name
	wf.CurrentStep++

	if wf.CurrentStep == len(wf.Steps) {
		wf.Status = models.WorkflowCompleted
		wf.CompletedAt = &now
	}
	if err := s.saveWorkflow(ctx, &wf); err != nil {
		return nil, err
	}

	s.publisher.Publish(realtime.Event{Name: realtime.EventWorkflowStepCompleted, Data: wf}.ToRole(string(models.RoleAdmin)))
	s.audit.record(ctx, actor, ActionCompleteStep, "workflow", wf.ID, models.SeverityInfo,
		details("step", completed, "status", string(wf.Status)))
	return &wf, nil
}

// CancelWorkflow stops a draft or running workflow
func (s *workflowServiceImpl) CancelWorkflow(ctx context.Context, actor Actor, workflowID string) (*models.Workflow, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wf, err := getOr404[models.Workflow](ctx, s.workflows, workflowID, "Workflow")
	if err != nil {
		return nil, err
	}
	if err := models.WorkflowTransitions.Advance(wf.Status, models.WorkflowCancelled); err != nil {
		return nil, err
	}
	if wf.Status == models.WorkflowCancelled {
		return &wf, nil
	}

	wf.Status = models.WorkflowCancelled
	if err := s.saveWorkflow(ctx, &wf); err != nil {
		return nil, err
	}
	s.audit.record(ctx, actor, ActionCancelWorkflow, "workflow", wf.ID, models.SeverityWarning, details("name", wf.Name))
	return &wf, nil
}

// CreateTask stores a pending task
func (s *workflowServiceImpl) CreateTask(ctx context.Context, actor Actor, req *dto.CreateTaskRequest) (*models.Task, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if req.WorkflowID != "" {
		if _, err := getOr404[models.Workflow](ctx, s.workflows, req.WorkflowID, "Workflow"); err != nil {
			return nil, err
		}
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	task := models.Task{
		ID:          models.NewID(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Priority:    priority,
		Status:      models.TaskPending,
		WorkflowID:  req.WorkflowID,
		DueAt:       req.DueAt,
		CreatedByID: actor.ID,
	}
	task.Touch(s.now())
	if err := s.tasks.Save(ctx, task); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create task")
		return nil, err
	}

	s.audit.record(ctx, actor, ActionCreateTask, "task", task.ID, models.SeverityInfo,
		details("title", task.Title, "priority", priority))
	return &task, nil
}

// ListTasks lists tasks, most urgent first by default
func (s *workflowServiceImpl) ListTasks(ctx context.Context, criteria query.Criteria) []models.Task {
	all := listOrEmpty[models.Task](ctx, s.tasks, s.logger, "tasks")
	return taskSchema.Apply(all, defaultSort(criteria, "priority"))
}

// AssignTask hands a task to a user and echoes the assignment record
func (s *workflowServiceImpl) AssignTask(ctx context.Context, actor Actor, taskID string, req *dto.AssignTaskRequest) (*dto.AssignmentResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	assignee, err := getOr404[models.User](ctx, s.users, req.AssignedToID, "Assignee")
	if err != nil {
		return nil, err
	}
	if !assignee.IsActive {
		return nil, apperrors.NewBadRequestError("Cannot assign a task to a deactivated account")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := getOr404[models.Task](ctx, s.tasks, taskID, "Task")
	if err != nil {
		return nil, err
	}
	if models.TaskTransitions.Terminal(task.Status) {
		return nil, fmt.Errorf("%w: task is %s", apperrors.ErrIllegalTransition, task.Status)
	}

	now := s.now()
	task.AssignedTo = strings.TrimSpace(req.AssignedTo)
	task.AssignedToID = assignee.ID
	task.AssignedAt = &now
	task.Touch(now)
	if err := s.tasks.Save(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("taskID", taskID).Msg("Failed to assign task")
		return nil, err
	}

	assignment := &dto.AssignmentResponse{
		TaskID:       task.ID,
		AssignedTo:   task.AssignedTo,
		AssignedToID: task.AssignedToID,
		AssignedBy:   actor.ID,
		AssignedAt:   now,
	}
	s.publisher.Publish(realtime.Event{Name: realtime.EventTaskAssigned, Data: assignment}.ToUser(assignee.ID))
	s.audit.record(ctx, actor, ActionAssignTask, "task", task.ID, models.SeverityInfo,
		details("assignedToId", assignee.ID, "assignedTo", task.AssignedTo))
	return assignment, nil
}

// UpdateTaskStatus moves a task along its lifecycle. The assignee may update
// their own task.
func (s *workflowServiceImpl) UpdateTaskStatus(ctx context.Context, actor Actor, taskID string, status models.TaskStatus) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := getOr404[models.Task](ctx, s.tasks, taskID, "Task")
	if err != nil {
		return nil, err
	}
	if !canManage(actor, task.AssignedToID) {
		return nil, apperrors.NewForbiddenError("Only the assignee can update this task")
	}
	if err := models.TaskTransitions.Advance(task.Status, status); err != nil {
		return nil, err
	}
	if task.Status == status {
		return &task, nil
	}

	task.Status = status
	task.Touch(s.now())
	if err := s.tasks.Save(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("taskID", taskID).Msg("Failed to update task status")
		return nil, err
	}

	s.audit.record(ctx, actor, ActionUpdateTaskStatus, "task", task.ID, models.SeverityInfo, details("status", string(status)))
	return &task, nil
}
