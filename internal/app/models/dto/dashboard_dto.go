package dto

// StudentDashboard summarizes what a student sees on login
type StudentDashboard struct {
	AvailableJobs        int             `json:"availableJobs"`
	ApplicationsSent     int             `json:"applicationsSent"`
	ApplicationsAccepted int             `json:"applicationsAccepted"`
	UpcomingEvents       int             `json:"upcomingEvents"`
	RegisteredEvents     int             `json:"registeredEvents"`
	MentorshipRequests   int             `json:"mentorshipRequests"`
	ActiveMentorships    int             `json:"activeMentorships"`
	UnreadMessages       int             `json:"unreadMessages"`
	AvailableMentors     int             `json:"availableMentors"`
	RecommendedJobs      []JobResponse   `json:"recommendedJobs"`
	UpcomingEventList    []EventResponse `json:"upcomingEventList"`
}

// AlumniDashboard summarizes what an alumnus sees on login
type AlumniDashboard struct {
	JobsPosted           int             `json:"jobsPosted"`
	ActiveJobs           int             `json:"activeJobs"`
	ApplicationsReceived int             `json:"applicationsReceived"`
	PendingMentorships   int             `json:"pendingMentorships"`
	ActiveMentees        int             `json:"activeMentees"`
	StoriesPublished     int             `json:"storiesPublished"`
	StoryViews           int             `json:"storyViews"`
	StoryLikes           int             `json:"storyLikes"`
	UnreadMessages       int             `json:"unreadMessages"`
	Verification         string          `json:"verification"`
	UpcomingEventList    []EventResponse `json:"upcomingEventList"`
}
