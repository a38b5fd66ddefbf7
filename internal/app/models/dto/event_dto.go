package dto

import (
	"time"

	"github.com/yigit/alumnihub/internal/app/models"
)

// CreateEventRequest represents an event submission
type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"required"`
	Type        string     `json:"type" binding:"required,oneof=networking workshop webinar reunion career-fair"`
	Location    string     `json:"location"`
	IsVirtual   bool       `json:"isVirtual"`
	MeetingURL  string     `json:"meetingUrl" binding:"omitempty,url"`
	StartsAt    time.Time  `json:"startsAt" binding:"required"`
	EndsAt      *time.Time `json:"endsAt"`
	Capacity    int        `json:"capacity" binding:"min=0"`
}

// EventResponse is an event as seen by one user
type EventResponse struct {
	models.Event
	AttendeeCount int  `json:"attendeeCount"`
	SeatsLeft     int  `json:"seatsLeft"`
	IsRegistered  bool `json:"isRegistered"`
}

// RegistrationResponse reports the caller's registration state after a change
type RegistrationResponse struct {
	EventID       string `json:"eventId"`
	Registered    bool   `json:"registered"`
	AttendeeCount int    `json:"attendeeCount"`
	SeatsLeft     int    `json:"seatsLeft"`
}
