package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/services"
	"github.com/yigit/alumnihub/internal/middleware"
	"github.com/yigit/alumnihub/internal/pkg/helpers"
)

// EventController handles events and registrations
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// List returns events
// @Summary List events
// @Description Filters: type, virtual, organizer, timeframe (upcoming or past)
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search text"
// @Param sort query string false "upcoming, recent, title or attendees"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList[dto.EventResponse]}
// @Router /events [get]
func (c *EventController) List(ctx *gin.Context) {
	respondPage(ctx, c.eventService.List(ctx.Request.Context(), actorFrom(ctx), helpers.ParseCriteria(ctx)))
}

// Get returns one event
// @Summary Get an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) Get(ctx *gin.Context) {
	event, err := c.eventService.Get(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, event, "")
}

// Create schedules an event
// @Summary Create an event
// @Description Events created by administrators are published immediately
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse}
// @Router /events [post]
func (c *EventController) Create(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.Create(ctx.Request.Context(), actorFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, event, "Event created")
}

// Register reserves a seat for the caller
// @Summary Register for an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationResponse}
// @Failure 409 {object} dto.ErrorResponse "Event full, already started, not approved or already registered"
// @Router /events/{id}/register [post]
func (c *EventController) Register(ctx *gin.Context) {
	reg, err := c.eventService.Register(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, reg, "Registered")
}

// Unregister frees the caller's seat
// @Summary Cancel an event registration
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationResponse}
// @Router /events/{id}/register [delete]
func (c *EventController) Unregister(ctx *gin.Context) {
	reg, err := c.eventService.Unregister(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, reg, "Registration cancelled")
}

// Approve publishes a pending event
// @Summary Approve an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse}
// @Router /events/{id}/approve [put]
func (c *EventController) Approve(ctx *gin.Context) {
	event, err := c.eventService.Approve(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, event, "Event approved")
}

// Reject declines a pending event
// @Summary Reject an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body dto.ModerationRequest false "Reason"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse}
// @Router /events/{id}/reject [put]
func (c *EventController) Reject(ctx *gin.Context) {
	var req dto.ModerationRequest
	if !bindOptionalJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.Reject(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"), req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, event, "Event rejected")
}

// Delete removes an event
// @Summary Delete an event
// @Tags events
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse
// @Router /events/{id} [delete]
func (c *EventController) Delete(ctx *gin.Context) {
	if err := c.eventService.Delete(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Event deleted")
}
