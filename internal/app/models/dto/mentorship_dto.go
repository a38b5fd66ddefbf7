package dto

import "github.com/yigit/alumnihub/internal/app/models"

// CreateMentorshipRequest asks an alumnus for mentorship
type CreateMentorshipRequest struct {
	MentorID string   `json:"mentorId" binding:"required"`
	Topic    string   `json:"topic" binding:"required,max=200"`
	Message  string   `json:"message" binding:"max=2000"`
	Goals    []string `json:"goals"`
}

// RespondMentorshipRequest is the mentor's decision
type RespondMentorshipRequest struct {
	Accept   *bool  `json:"accept" binding:"required"`
	Response string `json:"response" binding:"max=2000"`
}

// MentorshipResponse is a request with both party names resolved
type MentorshipResponse struct {
	models.MentorshipRequest
	MenteeName string `json:"menteeName,omitempty"`
	MentorName string `json:"mentorName,omitempty"`
}
