package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/services"
)

// DashboardController serves the role specific home screen
type DashboardController struct {
	dashboardService services.DashboardService
	adminService     services.AdminService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService, adminService services.AdminService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		adminService:     adminService,
	}
}

// Get returns the caller's dashboard
// @Summary Dashboard
// @Description Students get application and mentorship progress, alumni get postings and mentees, administrators get platform statistics
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /dashboard [get]
func (c *DashboardController) Get(ctx *gin.Context) {
	actor := actorFrom(ctx)
	reqCtx := ctx.Request.Context()

	switch actor.Role {
	case models.RoleAdmin:
		respond(ctx, http.StatusOK, c.adminService.Stats(reqCtx), "")
	case models.RoleAlumni:
		respond(ctx, http.StatusOK, c.dashboardService.Alumni(reqCtx, actor), "")
	default:
		respond(ctx, http.StatusOK, c.dashboardService.Student(reqCtx, actor), "")
	}
}
