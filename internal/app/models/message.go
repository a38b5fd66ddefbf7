package models

import (
	"sort"
	"strings"
	"time"
)

// Message is a direct message between two users
type Message struct {
	ID          string         `json:"id"`
	SenderID    string         `json:"senderId"`
	ReceiverID  string         `json:"receiverId"`
	Content     string         `json:"content"`
	Status      DeliveryStatus `json:"status"`
	ThreadID    string         `json:"threadId"`
	ParentID    string         `json:"parentId,omitempty"`
	DeliveredAt *time.Time     `json:"deliveredAt,omitempty"`
	ReadAt      *time.Time     `json:"readAt,omitempty"`
	Timestamps
}

func (m Message) EntityID() string { return m.ID }

// Between reports whether the message belongs to the conversation of a and b
func (m Message) Between(a, b string) bool {
	return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
}

// Counterpart returns the other party of the message from userID's point of view
func (m Message) Counterpart(userID string) string {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}

// ThreadKey is the stable conversation id of two users
func ThreadKey(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, ":")
}

// Announcement is a broadcast notice from an administrator
type Announcement struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Audience RoleType `json:"audience,omitempty"` // empty means everyone
	AuthorID string   `json:"authorId"`
	Pinned   bool     `json:"pinned"`
	Timestamps
}

func (a Announcement) EntityID() string { return a.ID }

// VisibleTo reports whether a user with role sees the announcement
func (a Announcement) VisibleTo(role RoleType) bool {
	return a.Audience == "" || a.Audience == role || role == RoleAdmin
}
