package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/services"
	"github.com/yigit/alumnihub/internal/middleware"
	"github.com/yigit/alumnihub/internal/pkg/helpers"
)

// MentorshipController handles mentorship requests
type MentorshipController struct {
	mentorshipService services.MentorshipService
}

// NewMentorshipController creates a new MentorshipController
func NewMentorshipController(mentorshipService services.MentorshipService) *MentorshipController {
	return &MentorshipController{mentorshipService: mentorshipService}
}

// Request asks an alumnus for mentorship
// @Summary Request mentorship
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMentorshipRequest true "Request"
// @Success 201 {object} dto.APIResponse{data=dto.MentorshipResponse}
// @Failure 400 {object} dto.ErrorResponse "Mentor unavailable"
// @Failure 409 {object} dto.ErrorResponse "An open request already exists"
// @Router /mentorship/requests [post]
func (c *MentorshipController) Request(ctx *gin.Context) {
	var req dto.CreateMentorshipRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	m, err := c.mentorshipService.Request(ctx.Request.Context(), actorFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, m, "Mentorship request sent")
}

// List returns the caller's requests, as mentor or mentee
// @Summary List my mentorship requests
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, accepted, rejected, completed or cancelled"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList[dto.MentorshipResponse]}
// @Router /mentorship/requests [get]
func (c *MentorshipController) List(ctx *gin.Context) {
	respondPage(ctx, c.mentorshipService.List(ctx.Request.Context(), actorFrom(ctx), helpers.ParseCriteria(ctx)))
}

// Respond accepts or rejects a pending request
// @Summary Respond to a mentorship request
// @Tags mentorship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body dto.RespondMentorshipRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.MentorshipResponse}
// @Failure 409 {object} dto.ErrorResponse "Illegal status transition"
// @Router /mentorship/requests/{id}/respond [put]
func (c *MentorshipController) Respond(ctx *gin.Context) {
	var req dto.RespondMentorshipRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	m, err := c.mentorshipService.Respond(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"), *req.Accept, req.Response)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, m, "")
}

// Complete closes an accepted mentorship
// @Summary Complete a mentorship
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.MentorshipResponse}
// @Router /mentorship/requests/{id}/complete [put]
func (c *MentorshipController) Complete(ctx *gin.Context) {
	m, err := c.mentorshipService.Complete(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, m, "")
}

// Cancel withdraws a pending request
// @Summary Cancel a mentorship request
// @Tags mentorship
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.MentorshipResponse}
// @Router /mentorship/requests/{id}/cancel [put]
func (c *MentorshipController) Cancel(ctx *gin.Context) {
	m, err := c.mentorshipService.Cancel(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, m, "")
}
