package dto

import (
	"time"

	"github.com/yigit/alumnihub/internal/app/models"
)

// SendMessageRequest represents a direct message
type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Content    string `json:"content" binding:"required,notblank,max=5000"`
	ParentID   string `json:"parentId"`
}

// ConversationSummary is one line of the inbox
type ConversationSummary struct {
	ThreadID      string         `json:"threadId"`
	WithUserID    string         `json:"withUserId"`
	WithUserName  string         `json:"withUserName,omitempty"`
	LastMessage   models.Message `json:"lastMessage"`
	UnreadCount   int            `json:"unreadCount"`
	LastMessageAt time.Time      `json:"lastMessageAt"`
}

// CreateAnnouncementRequest represents an admin announcement
type CreateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Body     string `json:"body" binding:"required"`
	Audience string `json:"audience" binding:"omitempty,role"`
	Pinned   bool   `json:"pinned"`
}

// UnreadCountResponse reports unread direct messages
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}

// MarkedReadResponse reports how many messages a bulk read acknowledged
type MarkedReadResponse struct {
	Marked int `json:"marked"`
}
