package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/services"
	"github.com/yigit/alumnihub/internal/middleware"
	"github.com/yigit/alumnihub/internal/pkg/helpers"
)

// MessageController handles direct messages and announcements
type MessageController struct {
	messageService services.MessageService
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService services.MessageService) *MessageController {
	return &MessageController{messageService: messageService}
}

// Send delivers a direct message
// @Summary Send a message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=models.Message}
// @Failure 400 {object} dto.ErrorResponse "Empty message or self message"
// @Router /messages [post]
func (c *MessageController) Send(ctx *gin.Context) {
	var req dto.SendMessageRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	msg, err := c.messageService.Send(ctx.Request.Context(), actorFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, msg, "Message sent")
}

// Conversations lists the caller's inbox
// @Summary List conversations
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ConversationSummary}
// @Router /messages/conversations [get]
func (c *MessageController) Conversations(ctx *gin.Context) {
	respond(ctx, http.StatusOK, c.messageService.Conversations(ctx.Request.Context(), actorFrom(ctx)), "")
}

// Conversation returns the messages exchanged with one user, oldest first
// @Summary Conversation with a user
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Other user's ID"
// @Param q query string false "Search text"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList[models.Message]}
// @Router /messages/with/{userId} [get]
func (c *MessageController) Conversation(ctx *gin.Context) {
	msgs, err := c.messageService.Conversation(ctx.Request.Context(), actorFrom(ctx), ctx.Param("userId"), helpers.ParseCriteria(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, msgs)
}

// MarkConversationRead marks every message from one user as read
// @Summary Mark a conversation read
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Other user's ID"
// @Success 200 {object} dto.APIResponse{data=dto.MarkedReadResponse}
// @Router /messages/with/{userId}/read [put]
func (c *MessageController) MarkConversationRead(ctx *gin.Context) {
	n, err := c.messageService.MarkConversationRead(ctx.Request.Context(), actorFrom(ctx), ctx.Param("userId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.MarkedReadResponse{Marked: n}, "")
}

// MarkDelivered acknowledges delivery
// @Summary Mark a message delivered
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} dto.APIResponse{data=models.Message}
// @Failure 409 {object} dto.ErrorResponse "Status only moves forward"
// @Router /messages/{id}/delivered [put]
func (c *MessageController) MarkDelivered(ctx *gin.Context) {
	msg, err := c.messageService.MarkDelivered(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, msg, "")
}

// MarkRead acknowledges reading
// @Summary Mark a message read
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} dto.APIResponse{data=models.Message}
// @Router /messages/{id}/read [put]
func (c *MessageController) MarkRead(ctx *gin.Context) {
	msg, err := c.messageService.MarkRead(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, msg, "")
}

// UnreadCount returns the caller's unread message count
// @Summary Unread message count
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UnreadCountResponse}
// @Router /messages/unread-count [get]
func (c *MessageController) UnreadCount(ctx *gin.Context) {
	n := c.messageService.UnreadCount(ctx.Request.Context(), actorFrom(ctx).ID)
	respond(ctx, http.StatusOK, dto.UnreadCountResponse{Unread: n}, "")
}

// CreateAnnouncement posts an announcement
// @Summary Create an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAnnouncementRequest true "Announcement"
// @Success 201 {object} dto.APIResponse{data=models.Announcement}
// @Router /announcements [post]
func (c *MessageController) CreateAnnouncement(ctx *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	a, err := c.messageService.CreateAnnouncement(ctx.Request.Context(), actorFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, a, "Announcement published")
}

// Announcements lists the announcements addressed to the caller, pinned first
// @Summary List announcements
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList[models.Announcement]}
// @Router /announcements [get]
func (c *MessageController) Announcements(ctx *gin.Context) {
	respondPage(ctx, c.messageService.Announcements(ctx.Request.Context(), actorFrom(ctx), helpers.ParseCriteria(ctx)))
}
