package dto

import (
	"time"

	"github.com/yigit/alumnihub/internal/app/models"
)

// CreateJobRequest represents a job posting
type CreateJobRequest struct {
	Title           string     `json:"title" binding:"required,max=200"`
	Company         string     `json:"company" binding:"required,max=200"`
	Description     string     `json:"description" binding:"required"`
	Location        string     `json:"location"`
	Type            string     `json:"type" binding:"required,oneof=full-time part-time internship contract"`
	ExperienceLevel string     `json:"experienceLevel"`
	Skills          []string   `json:"skills"`
	SalaryRange     string     `json:"salaryRange"`
	IsRemote        bool       `json:"isRemote"`
	ExpiresAt       *time.Time `json:"expiresAt"`
}

// JobResponse is a job as seen by one user
type JobResponse struct {
	models.Job
	HasApplied bool `json:"hasApplied"`
	IsExpired  bool `json:"isExpired"`
}

// ApplyJobRequest represents a job application
type ApplyJobRequest struct {
	CoverLetter string `json:"coverLetter" binding:"max=5000"`
	ResumeURL   string `json:"resumeUrl" binding:"omitempty,url"`
}

// UpdateApplicationStatusRequest moves an application through its lifecycle
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=reviewed accepted rejected"`
}

// ApplicationResponse is an application with its job title and applicant name
type ApplicationResponse struct {
	models.JobApplication
	JobTitle      string `json:"jobTitle,omitempty"`
	Company       string `json:"company,omitempty"`
	ApplicantName string `json:"applicantName,omitempty"`
}

// ModerationRequest carries an optional reason for approve/reject actions
type ModerationRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}
