package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/services"
	"github.com/yigit/alumnihub/internal/middleware"
	"github.com/yigit/alumnihub/internal/pkg/helpers"
)

// JobController handles job postings and applications
type JobController struct {
	jobService services.JobService
	logger     zerolog.Logger
}

// NewJobController creates a new JobController
func NewJobController(jobService services.JobService, logger zerolog.Logger) *JobController {
	return &JobController{jobService: jobService, logger: logger}
}

// List returns the job board
// @Summary List jobs
// @Description Students and alumni only see approved, active, unexpired jobs. Filters: type, location, experienceLevel, company, remote, approval.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search text"
// @Param sort query string false "recent, title, company or applications"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList[dto.JobResponse]}
// @Router /jobs [get]
func (c *JobController) List(ctx *gin.Context) {
	respondPage(ctx, c.jobService.List(ctx.Request.Context(), actorFrom(ctx), helpers.ParseCriteria(ctx)))
}

// Get returns one job
// @Summary Get a job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} dto.APIResponse{data=dto.JobResponse}
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id} [get]
func (c *JobController) Get(ctx *gin.Context) {
	job, err := c.jobService.Get(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, job, "")
}

// Create posts a job for moderation
// @Summary Post a job
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobRequest true "Job posting"
// @Success 201 {object} dto.APIResponse{data=dto.JobResponse}
// @Failure 403 {object} dto.ErrorResponse "Students cannot post jobs"
// @Router /jobs [post]
func (c *JobController) Create(ctx *gin.Context) {
	var req dto.CreateJobRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	job, err := c.jobService.Create(ctx.Request.Context(), actorFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, job, "Job submitted for approval")
}

// Apply sends the caller's application
// @Summary Apply to a job
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body dto.ApplyJobRequest false "Application"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse}
// @Failure 409 {object} dto.ErrorResponse "Already applied or job not open"
// @Router /jobs/{id}/apply [post]
func (c *JobController) Apply(ctx *gin.Context) {
	var req dto.ApplyJobRequest
	if !bindOptionalJSON(ctx, &req) {
		return
	}

	app, err := c.jobService.Apply(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, app, "Application submitted")
}

// JobApplications lists the applications a job received
// @Summary Applications for a job
// @Description Only the poster and administrators may list them
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList[dto.ApplicationResponse]}
// @Router /jobs/{id}/applications [get]
func (c *JobController) JobApplications(ctx *gin.Context) {
	apps, err := c.jobService.JobApplications(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"), helpers.ParseCriteria(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, apps)
}

// MyApplications lists the caller's applications
// @Summary My applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, reviewed, accepted or rejected"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList[dto.ApplicationResponse]}
// @Router /applications [get]
func (c *JobController) MyApplications(ctx *gin.Context) {
	respondPage(ctx, c.jobService.MyApplications(ctx.Request.Context(), actorFrom(ctx), helpers.ParseCriteria(ctx)))
}

// UpdateApplicationStatus moves an application along its lifecycle
// @Summary Update an application's status
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse}
// @Failure 409 {object} dto.ErrorResponse "Illegal status transition"
// @Router /applications/{id}/status [put]
func (c *JobController) UpdateApplicationStatus(ctx *gin.Context) {
	var req dto.UpdateApplicationStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	app, err := c.jobService.UpdateApplicationStatus(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"), models.ApplicationStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, app, "Application updated")
}

// Approve publishes a pending job
// @Summary Approve a job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} dto.APIResponse{data=dto.JobResponse}
// @Router /jobs/{id}/approve [put]
func (c *JobController) Approve(ctx *gin.Context) {
	job, err := c.jobService.Approve(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, job, "Job approved")
}

// Reject declines a pending job
// @Summary Reject a job
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body dto.ModerationRequest false "Reason"
// @Success 200 {object} dto.APIResponse{data=dto.JobResponse}
// @Router /jobs/{id}/reject [put]
func (c *JobController) Reject(ctx *gin.Context) {
	var req dto.ModerationRequest
	if !bindOptionalJSON(ctx, &req) {
		return
	}

	job, err := c.jobService.Reject(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"), req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, job, "Job rejected")
}

// Delete removes a job and its applications
// @Summary Delete a job
// @Tags jobs
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} dto.APIResponse
// @Router /jobs/{id} [delete]
func (c *JobController) Delete(ctx *gin.Context) {
	if err := c.jobService.Delete(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Str("jobID", ctx.Param("id")).Msg("Job deleted")
	respond(ctx, http.StatusOK, nil, "Job deleted")
}
