package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/services"
	"github.com/yigit/alumnihub/internal/middleware"
	"github.com/yigit/alumnihub/internal/pkg/helpers"
)

// AdminController handles administrator only operations
type AdminController struct {
	adminService services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{adminService: adminService, logger: logger}
}

// Stats returns platform statistics
// @Summary Platform statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminStats}
// @Router /admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.adminService.Stats(ctx.Request.Context()), "")
}

// Users lists every account
// @Summary List users
// @Description Filters: role, active, verification
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search text"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList[dto.UserResponse]}
// @Router /users [get]
func (c *AdminController) Users(ctx *gin.Context) {
	respondPage(ctx, c.adminService.Users(ctx.Request.Context(), helpers.ParseCriteria(ctx)))
}

// UpdateUserStatus activates or deactivates an account
// @Summary Activate or deactivate a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserStatusRequest true "New state"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id}/status [put]
func (c *AdminController) UpdateUserStatus(ctx *gin.Context) {
	var req dto.UpdateUserStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.adminService.SetUserActive(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"), *req.IsActive)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("userID", user.ID).Bool("active", user.IsActive).Msg("User status changed")
	respond(ctx, http.StatusOK, user, "User status updated")
}

// PendingVerifications lists alumni awaiting verification
// @Summary Pending alumni verifications
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList[dto.UserResponse]}
// @Router /admin/alumni-verification [get]
func (c *AdminController) PendingVerifications(ctx *gin.Context) {
	respondPage(ctx, c.adminService.PendingVerifications(ctx.Request.Context(), helpers.ParseCriteria(ctx)))
}

// DecideVerification approves or rejects an alumnus
// @Summary Decide an alumni verification
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VerificationDecisionRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 409 {object} dto.ErrorResponse "Already decided"
// @Router /admin/alumni-verification [post]
func (c *AdminController) DecideVerification(ctx *gin.Context) {
	var req dto.VerificationDecisionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.adminService.DecideVerification(ctx.Request.Context(), actorFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, user, "Verification recorded")
}

// AuditLogs lists administrative actions, newest first
// @Summary Audit log
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param action query string false "Action name"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList[models.AuditLog]}
// @Router /admin/audit-logs [get]
func (c *AdminController) AuditLogs(ctx *gin.Context) {
	respondPage(ctx, c.adminService.AuditLogs(ctx.Request.Context(), helpers.ParseCriteria(ctx)))
}

// Report returns engagement and conversion figures
// @Summary Reports
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.Report}
// @Router /admin/reports [get]
func (c *AdminController) Report(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.adminService.Report(ctx.Request.Context()), "")
}
