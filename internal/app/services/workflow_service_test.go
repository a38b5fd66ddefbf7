package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/query"
	"github.com/yigit/alumnihub/internal/pkg/realtime"
)

func newWorkflowService(t *testing.T) (*workflowServiceImpl, *recorder) {
	repos, rec := fixture(t)
	svc := NewWorkflowService(repos, rec, nopLogger).(*workflowServiceImpl)
	svc.now = fixedClock
	return svc, rec
}

func TestWorkflowService_StartNeedsSteps(t *testing.T) {
	svc, _ := newWorkflowService(t)
	ctx := context.Background()

	wf, err := svc.CreateWorkflow(ctx, admin, &dto.CreateWorkflowRequest{Name: "Empty", Steps: []string{"  "}})
	require.NoError(t, err)
	assert.Empty(t, wf.Steps)

	_, err = svc.StartWorkflow(ctx, admin, wf.ID)
	assert.True(t, errors.Is(err, apperrors.ErrWorkflowHasNoSteps))

	_, err = svc.CreateWorkflow(ctx, student, &dto.CreateWorkflowRequest{Name: "Nope", Steps: []string{"a"}})
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
}

func TestWorkflowService_StepsCompleteTheWorkflow(t *testing.T) {
	svc, rec := newWorkflowService(t)
	ctx := context.Background()

	wf, err := svc.CreateWorkflow(ctx, admin, &dto.CreateWorkflowRequest{
		Name: "Homecoming", Steps: []string{"Book venue", "Send invites"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.WorkflowDraft, wf.Status)

	_, err = svc.CompleteStep(ctx, admin, wf.ID)
	assert.True(t, errors.Is(err, apperrors.ErrIllegalTransition), "draft workflows have no current step")

	started, err := svc.StartWorkflow(ctx, admin, wf.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WorkflowRunning, started.Status)
	require.Len(t, rec.named(realtime.EventWorkflowStarted), 1)

	step, err := svc.CompleteStep(ctx, admin, wf.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, step.CurrentStep)
	assert.Equal(t, models.WorkflowRunning, step.Status)

	done, err := svc.CompleteStep(ctx, admin, wf.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WorkflowCompleted, done.Status)
	assert.Equal(t, 2, done.CompletedSteps())
	require.NotNil(t, done.CompletedAt)
	assert.Len(t, rec.named(realtime.EventWorkflowStepCompleted), 2)

	_, err = svc.CancelWorkflow(ctx, admin, wf.ID)
	assert.True(t, errors.Is(err, apperrors.ErrIllegalTransition))
}

func TestWorkflowService_AssignTask(t *testing.T) {
	svc, rec := newWorkflowService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, admin, &dto.CreateTaskRequest{Title: "Review mentors"})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, models.TaskPending, task.Status)

	_, err = svc.AssignTask(ctx, admin, task.ID, &dto.AssignTaskRequest{AssignedTo: "Nobody", AssignedToID: "ghost"})
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))

	assignment, err := svc.AssignTask(ctx, admin, task.ID, &dto.AssignTaskRequest{AssignedTo: "Alex Alum", AssignedToID: alumnus.ID})
	require.NoError(t, err)
	assert.Equal(t, dto.AssignmentResponse{
		TaskID: task.ID, AssignedTo: "Alex Alum", AssignedToID: alumnus.ID, AssignedBy: admin.ID, AssignedAt: fixedNow,
	}, *assignment)

	events := rec.named(realtime.EventTaskAssigned)
	require.Len(t, events, 1)
	assert.Equal(t, alumnus.ID, events[0].TargetUserID)

	tasks := svc.ListTasks(ctx, query.Criteria{Filters: map[string]string{"assignee": alumnus.ID}})
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
}

func TestWorkflowService_TaskLifecycle(t *testing.T) {
	svc, _ := newWorkflowService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, admin, &dto.CreateTaskRequest{Title: "Update records", Priority: models.PriorityHigh})
	require.NoError(t, err)
	_, err = svc.AssignTask(ctx, admin, task.ID, &dto.AssignTaskRequest{AssignedTo: "Alex", AssignedToID: alumnus.ID})
	require.NoError(t, err)

	_, err = svc.UpdateTaskStatus(ctx, student, task.ID, models.TaskInProgress)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	_, err = svc.UpdateTaskStatus(ctx, alumnus, task.ID, models.TaskCompleted)
	assert.True(t, errors.Is(err, apperrors.ErrIllegalTransition), "pending cannot jump to completed")

	updated, err := svc.UpdateTaskStatus(ctx, alumnus, task.ID, models.TaskInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.TaskInProgress, updated.Status)

	updated, err = svc.UpdateTaskStatus(ctx, admin, task.ID, models.TaskCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.TaskCompleted, updated.Status)

	_, err = svc.AssignTask(ctx, admin, task.ID, &dto.AssignTaskRequest{AssignedTo: "Sam", AssignedToID: student.ID})
	assert.True(t, errors.Is(err, apperrors.ErrIllegalTransition), "finished tasks cannot be reassigned")
}

func TestWorkflowService_ListTasksByPriority(t *testing.T) {
	svc, _ := newWorkflowService(t)
	ctx := context.Background()

	for _, p := range []string{models.PriorityLow, models.PriorityUrgent, ""} {
		_, err := svc.CreateTask(ctx, admin, &dto.CreateTaskRequest{Title: "task " + p, Priority: p})
		require.NoError(t, err)
	}

	tasks := svc.ListTasks(ctx, query.Criteria{})
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{models.PriorityUrgent, models.PriorityMedium, models.PriorityLow},
		[]string{tasks[0].Priority, tasks[1].Priority, tasks[2].Priority})
}
