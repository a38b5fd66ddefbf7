package models

import "time"

// Event is a networking event, workshop, webinar, reunion or career fair
type Event struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        string         `json:"type"`
	Location    string         `json:"location"`
	IsVirtual   bool           `json:"isVirtual"`
	MeetingURL  string         `json:"meetingUrl,omitempty"`
	StartsAt    time.Time      `json:"startsAt"`
	EndsAt      *time.Time     `json:"endsAt,omitempty"`
	Capacity    int            `json:"capacity"` // 0 means unlimited
	AttendeeIDs []string       `json:"attendeeIds,omitempty"`
	OrganizerID string         `json:"organizerId"`
	Approval    ApprovalStatus `json:"approval"`
	IsApproved  bool           `json:"isApproved"`
	IsActive    bool           `json:"isActive"`
	Timestamps
}

func (e Event) EntityID() string { return e.ID }

// AttendeeCount is the number of registrations
func (e Event) AttendeeCount() int { return len(e.AttendeeIDs) }

// SeatsLeft returns -1 for unlimited events
func (e Event) SeatsLeft() int {
	if e.Capacity <= 0 {
		return -1
	}
	left := e.Capacity - len(e.AttendeeIDs)
	if left < 0 {
		return 0
	}
	return left
}

// IsRegistered reports whether userID holds a seat
func (e Event) IsRegistered(userID string) bool {
	return containsString(e.AttendeeIDs, userID)
}

// Upcoming reports whether the event has not started at now
func (e Event) Upcoming(now time.Time) bool {
	return e.StartsAt.After(now)
}

// CountsAsActive: an unapproved event is never active
func (e Event) CountsAsActive() bool {
	return e.IsApproved && e.IsActive
}
