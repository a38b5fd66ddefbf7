package models

import "time"

// JobType values
const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeInternship = "internship"
	JobTypeContract   = "contract"
)

// Job is a job opportunity posted by an alumnus or an administrator
type Job struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Company          string         `json:"company"`
	Description      string         `json:"description"`
	Location         string         `json:"location"`
	Type             string         `json:"type"`
	ExperienceLevel  string         `json:"experienceLevel,omitempty"`
	Skills           []string       `json:"skills,omitempty"`
	SalaryRange      string         `json:"salaryRange,omitempty"`
	IsRemote         bool           `json:"isRemote"`
	PostedByID       string         `json:"postedById"`
	PostedAt         time.Time      `json:"postedAt"`
	ExpiresAt        *time.Time     `json:"expiresAt,omitempty"`
	ApplicationCount int            `json:"applicationCount"`
	Approval         ApprovalStatus `json:"approval"`
	IsApproved       bool           `json:"isApproved"`
	IsActive         bool           `json:"isActive"`
	Timestamps
}

func (j Job) EntityID() string { return j.ID }

// Expired reports whether the posting is past its expiry at now
func (j Job) Expired(now time.Time) bool {
	return j.ExpiresAt != nil && !j.ExpiresAt.After(now)
}

// CountsAsActive: an opportunity not yet approved is never active
func (j Job) CountsAsActive(now time.Time) bool {
	return j.IsApproved && j.IsActive && !j.Expired(now)
}

// JobApplication is a student's application to a job
type JobApplication struct {
	ID          string            `json:"id"`
	JobID       string            `json:"jobId"`
	ApplicantID string            `json:"applicantId"`
	PosterID    string            `json:"posterId"`
	CoverLetter string            `json:"coverLetter,omitempty"`
	ResumeURL   string            `json:"resumeUrl,omitempty"`
	Status      ApplicationStatus `json:"status"`
	Timestamps
}

func (a JobApplication) EntityID() string { return a.ID }
