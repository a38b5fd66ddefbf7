package dto

import "time"

// AdminStats is the admin dashboard summary
type AdminStats struct {
	TotalUsers           int       `json:"totalUsers"`
	TotalStudents        int       `json:"totalStudents"`
	TotalAlumni          int       `json:"totalAlumni"`
	VerifiedAlumni       int       `json:"verifiedAlumni"`
	PendingVerifications int       `json:"pendingVerifications"`
	TotalJobs            int       `json:"totalJobs"`
	ActiveJobs           int       `json:"activeJobs"`
	PendingJobs          int       `json:"pendingJobs"`
	TotalApplications    int       `json:"totalApplications"`
	TotalEvents          int       `json:"totalEvents"`
	UpcomingEvents       int       `json:"upcomingEvents"`
	PendingEvents        int       `json:"pendingEvents"`
	TotalStories         int       `json:"totalStories"`
	PendingStories       int       `json:"pendingStories"`
	MentorshipRequests   int       `json:"mentorshipRequests"`
	ActiveMentorships    int       `json:"activeMentorships"`
	OpenTasks            int       `json:"openTasks"`
	RunningWorkflows     int       `json:"runningWorkflows"`
	GeneratedAt          time.Time `json:"generatedAt"`
}

// VerificationDecisionRequest approves or rejects an alumnus
type VerificationDecisionRequest struct {
	AlumniID string `json:"alumniId" binding:"required"`
	Approved *bool  `json:"approved" binding:"required"`
	Note     string `json:"note" binding:"max=1000"`
}

// Report holds the engagement and conversion figures of the reporting view.
// Rates are percentages with one decimal.
type Report struct {
	UsersByRole         map[string]int `json:"usersByRole"`
	AlumniByIndustry    map[string]int `json:"alumniByIndustry"`
	JobsByType          map[string]int `json:"jobsByType"`
	EventsByType        map[string]int `json:"eventsByType"`
	StoriesByCategory   map[string]int `json:"storiesByCategory"`
	VerificationRate    float64        `json:"verificationRate"`
	JobApprovalRate     float64        `json:"jobApprovalRate"`
	ApplicationsPerJob  float64        `json:"applicationsPerJob"`
	ApplicationAccept   float64        `json:"applicationAcceptanceRate"`
	MentorshipAccept    float64        `json:"mentorshipAcceptanceRate"`
	EventFillRate       float64        `json:"eventFillRate"`
	StoryEngagementRate float64        `json:"storyEngagementRate"`
	AverageStoryViews   float64        `json:"averageStoryViews"`
	MessageReadRate     float64        `json:"messageReadRate"`
	TaskCompletionRate  float64        `json:"taskCompletionRate"`
	GeneratedAt         time.Time      `json:"generatedAt"`
}

// UpdateUserStatusRequest activates or deactivates an account
type UpdateUserStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}
