package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/services"
	"github.com/yigit/alumnihub/internal/middleware"
	"github.com/yigit/alumnihub/internal/pkg/helpers"
)

// WorkflowController handles admin workflows and tasks
type WorkflowController struct {
	workflowService services.WorkflowService
}

// NewWorkflowController creates a new WorkflowController
func NewWorkflowController(workflowService services.WorkflowService) *WorkflowController {
	return &WorkflowController{workflowService: workflowService}
}

// CreateWorkflow defines a workflow in draft state
// @Summary Create a workflow
// @Tags workflows
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateWorkflowRequest true "Workflow"
// @Success 201 {object} dto.APIResponse{data=models.Workflow}
// @Router /admin/workflows [post]
func (c *WorkflowController) CreateWorkflow(ctx *gin.Context) {
	var req dto.CreateWorkflowRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	wf, err := c.workflowService.CreateWorkflow(ctx.Request.Context(), actorFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, wf, "Workflow created")
}

// ListWorkflows lists workflows
// @Summary List workflows
// @Tags workflows
// @Produce json
// @Security BearerAuth
// @Param status query string false "draft, active, completed or cancelled"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList[models.Workflow]}
// @Router /admin/workflows [get]
func (c *WorkflowController) ListWorkflows(ctx *gin.Context) {
	respondPage(ctx, c.workflowService.ListWorkflows(ctx.Request.Context(), helpers.ParseCriteria(ctx)))
}

// GetWorkflow returns one workflow
// @Summary Get a workflow
// @Tags workflows
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workflow ID"
// @Success 200 {object} dto.APIResponse{data=models.Workflow}
// @Failure 404 {object} dto.ErrorResponse "Workflow not found"
// @Router /admin/workflows/{id} [get]
func (c *WorkflowController) GetWorkflow(ctx *gin.Context) {
	wf, err := c.workflowService.GetWorkflow(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, wf, "")
}

// StartWorkflow activates a draft workflow
// @Summary Start a workflow
// @Tags workflows
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workflow ID"
// @Success 200 {object} dto.APIResponse{data=models.Workflow}
// @Failure 409 {object} dto.ErrorResponse "Workflow has no steps or is not a draft"
// @Router /admin/workflows/{id}/start [put]
func (c *WorkflowController) StartWorkflow(ctx *gin.Context) {
	wf, err := c.workflowService.StartWorkflow(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, wf, "")
}

// CompleteStep advances an active workflow by one step
// @Summary Complete the current step
// @Tags workflows
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workflow ID"
// @Success 200 {object} dto.APIResponse{data=models.Workflow}
// @Router /admin/workflows/{id}/steps/complete [put]
func (c *WorkflowController) CompleteStep(ctx *gin.Context) {
	wf, err := c.workflowService.CompleteStep(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, wf, "")
}

// CancelWorkflow cancels a workflow
// @Summary Cancel a workflow
// @Tags workflows
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workflow ID"
// @Success 200 {object} dto.APIResponse{data=models.Workflow}
// @Router /admin/workflows/{id}/cancel [put]
func (c *WorkflowController) CancelWorkflow(ctx *gin.Context) {
	wf, err := c.workflowService.CancelWorkflow(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, wf, "")
}

// CreateTask records an admin task
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTaskRequest true "Task"
// @Success 201 {object} dto.APIResponse{data=models.Task}
// @Router /admin/tasks [post]
func (c *WorkflowController) CreateTask(ctx *gin.Context) {
	var req dto.CreateTaskRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	task, err := c.workflowService.CreateTask(ctx.Request.Context(), actorFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, task, "Task created")
}

// ListTasks lists admin tasks
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, in_progress, completed or cancelled"
// @Param priority query string false "low, medium, high or urgent"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList[models.Task]}
// @Router /admin/tasks [get]
func (c *WorkflowController) ListTasks(ctx *gin.Context) {
	respondPage(ctx, c.workflowService.ListTasks(ctx.Request.Context(), helpers.ParseCriteria(ctx)))
}

// AssignTask hands a task to someone
// @Summary Assign a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body dto.AssignTaskRequest true "Assignee"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResponse}
// @Router /admin/tasks/{id}/assign [post]
func (c *WorkflowController) AssignTask(ctx *gin.Context) {
	var req dto.AssignTaskRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	assignment, err := c.workflowService.AssignTask(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, assignment, "Task assigned")
}

// UpdateTaskStatus moves a task through its lifecycle. Admins use the admin
// path; assignees use /tasks/{id}/status.
// @Summary Update a task's status
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Task}
// @Failure 409 {object} dto.ErrorResponse "Illegal status transition"
// @Router /admin/tasks/{id}/status [put]
// @Router /tasks/{id}/status [put]
func (c *WorkflowController) UpdateTaskStatus(ctx *gin.Context) {
	var req dto.UpdateTaskStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	task, err := c.workflowService.UpdateTaskStatus(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"), models.TaskStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, task, "")
}
