package models

// MentorshipRequest is a student's request to be mentored by an alumnus
type MentorshipRequest struct {
	ID       string           `json:"id"`
	MenteeID string           `json:"menteeId"`
	MentorID string           `json:"mentorId"`
	Topic    string           `json:"topic"`
	Message  string           `json:"message,omitempty"`
	Goals    []string         `json:"goals,omitempty"`
	Status   MentorshipStatus `json:"status"`
	Response string           `json:"response,omitempty"`
	Timestamps
}

func (m MentorshipRequest) EntityID() string { return m.ID }

// Open reports whether the request still occupies the mentor/mentee pair
func (m MentorshipRequest) Open() bool {
	return m.Status == MentorshipPending || m.Status == MentorshipAccepted
}

// Involves reports whether userID is one of the two parties
func (m MentorshipRequest) Involves(userID string) bool {
	return m.MenteeID == userID || m.MentorID == userID
}
