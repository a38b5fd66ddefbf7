package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/services"
	"github.com/yigit/alumnihub/internal/middleware"
	"github.com/yigit/alumnihub/internal/pkg/helpers"
)

// StoryController handles success stories
type StoryController struct {
	storyService services.StoryService
}

// NewStoryController creates a new StoryController
func NewStoryController(storyService services.StoryService) *StoryController {
	return &StoryController{storyService: storyService}
}

// List returns stories
// @Summary List success stories
// @Description Filters: category, featured, author, tag
// @Tags stories
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search text"
// @Param sort query string false "recent, popular, views or title"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList[dto.StoryResponse]}
// @Router /success-stories [get]
func (c *StoryController) List(ctx *gin.Context) {
	respondPage(ctx, c.storyService.List(ctx.Request.Context(), actorFrom(ctx), helpers.ParseCriteria(ctx)))
}

// Get returns one story and counts the view
// @Summary Read a story
// @Tags stories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Story ID"
// @Success 200 {object} dto.APIResponse{data=dto.StoryResponse}
// @Failure 404 {object} dto.ErrorResponse "Story not found"
// @Router /success-stories/{id} [get]
func (c *StoryController) Get(ctx *gin.Context) {
	story, err := c.storyService.Get(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, story, "")
}

// Submit sends a story for moderation
// @Summary Submit a story
// @Tags stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStoryRequest true "Story"
// @Success 201 {object} dto.APIResponse{data=dto.StoryResponse}
// @Router /success-stories [post]
func (c *StoryController) Submit(ctx *gin.Context) {
	var req dto.CreateStoryRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	story, err := c.storyService.Submit(ctx.Request.Context(), actorFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, story, "Story submitted for approval")
}

// ToggleLike likes or unlikes a story
// @Summary Like or unlike a story
// @Tags stories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Story ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikeResponse}
// @Router /success-stories/{id}/like [post]
func (c *StoryController) ToggleLike(ctx *gin.Context) {
	like, err := c.storyService.ToggleLike(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, like, "")
}

// Approve publishes a story
// @Summary Approve a story
// @Tags stories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Story ID"
// @Success 200 {object} dto.APIResponse{data=dto.StoryResponse}
// @Router /success-stories/{id}/approve [put]
func (c *StoryController) Approve(ctx *gin.Context) {
	story, err := c.storyService.Approve(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, story, "Story published")
}

// Reject declines a story
// @Summary Reject a story
// @Tags stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Story ID"
// @Param request body dto.ModerationRequest false "Reason"
// @Success 200 {object} dto.APIResponse{data=dto.StoryResponse}
// @Router /success-stories/{id}/reject [put]
func (c *StoryController) Reject(ctx *gin.Context) {
	var req dto.ModerationRequest
	if !bindOptionalJSON(ctx, &req) {
		return
	}

	story, err := c.storyService.Reject(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"), req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, story, "Story rejected")
}

// ToggleFeature features or unfeatures a published story
// @Summary Feature a story
// @Tags stories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Story ID"
// @Success 200 {object} dto.APIResponse{data=dto.StoryResponse}
// @Router /success-stories/{id}/feature [put]
func (c *StoryController) ToggleFeature(ctx *gin.Context) {
	story, err := c.storyService.ToggleFeature(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, story, "")
}

// Delete removes a story
// @Summary Delete a story
// @Tags stories
// @Security BearerAuth
// @Param id path string true "Story ID"
// @Success 200 {object} dto.APIResponse
// @Router /success-stories/{id} [delete]
func (c *StoryController) Delete(ctx *gin.Context) {
	if err := c.storyService.Delete(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Story deleted")
}

// Stats returns story aggregates
// @Summary Story statistics
// @Tags stories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StoryStats}
// @Router /success-stories/stats [get]
func (c *StoryController) Stats(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.storyService.Stats(ctx.Request.Context()), "")
}
