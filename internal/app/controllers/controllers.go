// Package controllers handles HTTP request handling
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

// actorFrom builds the caller from the claims JWTAuth stored on the context
func actorFrom(ctx *gin.Context) services.Actor {
	return services.Actor{
		ID:   ctx.GetString(middleware.ContextUserID),
		Role: models.RoleType(ctx.GetString(middleware.ContextRoleType)),
	}
}

func respond(ctx *gin.Context, status int, data any, message string) {
	ctx.JSON(status, dto.NewSuccessResponse(data, message))
}

// respondPage paginates a derived list view with ?page= and ?size=
func respondPage[T any](ctx *gin.Context, items []T) {
	page, size := helpers.ParsePaginationParams(ctx)
	respond(ctx, http.StatusOK, helpers.Paginate(items, page, size), "")
}

// bindOptionalJSON binds the body when one was sent
func bindOptionalJSON(ctx *gin.Context, obj any) bool {
	if ctx.Request.ContentLength == 0 {
		return true
	}
	return middleware.BindJSON(ctx, obj)
}
