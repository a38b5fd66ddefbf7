package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/services"
	"github.com/yigit/alumnihub/internal/middleware"
	"github.com/yigit/alumnihub/internal/pkg/helpers"
)

// DirectoryController serves the alumni directory and the caller's profile
type DirectoryController struct {
	directoryService services.DirectoryService
}

// NewDirectoryController creates a new DirectoryController
func NewDirectoryController(directoryService services.DirectoryService) *DirectoryController {
	return &DirectoryController{directoryService: directoryService}
}

// SearchAlumni lists alumni
// @Summary Search the alumni directory
// @Description Free text over name, company, position, skills and location. Any other query parameter filters a dimension (industry, graduationYear, location, degree, company, mentor).
// @Tags alumni
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search text"
// @Param sort query string false "name, year, company or recent"
// @Param page query int false "Page number"
// @Param size query int false "Page size, 0 for all"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList[dto.UserResponse]}
// @Router /alumni [get]
func (c *DirectoryController) SearchAlumni(ctx *gin.Context) {
	alumni := c.directoryService.SearchAlumni(ctx.Request.Context(), actorFrom(ctx), helpers.ParseCriteria(ctx))
	respondPage(ctx, alumni)
}

// GetAlumni returns one profile
// @Summary Get a profile
// @Tags alumni
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /alumni/{id} [get]
func (c *DirectoryController) GetAlumni(ctx *gin.Context) {
	user, err := c.directoryService.GetProfile(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, user, "")
}

// GetProfile returns the caller's profile
// @Summary Get my profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Router /profile [get]
func (c *DirectoryController) GetProfile(ctx *gin.Context) {
	actor := actorFrom(ctx)
	user, err := c.directoryService.GetProfile(ctx.Request.Context(), actor, actor.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, user, "")
}

// UpdateProfile edits the caller's profile
// @Summary Update my profile
// @Description Only the fields present in the body change
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /profile [put]
func (c *DirectoryController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.directoryService.UpdateProfile(ctx.Request.Context(), actorFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, user, "Profile updated")
}
