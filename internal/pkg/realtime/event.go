package realtime

import "time"

// Event names pushed to clients
const (
	EventNewAlumniVerification   = "new_alumni_verification"
	EventNewMessage              = "new_message"
	EventMessageDelivered        = "message_delivered"
	EventMessageRead             = "message_read"
	EventNewJobPosted            = "new_job_posted"
	EventJobApproved             = "job_approved"
	EventNewEventCreated         = "new_event_created"
	EventNewStorySubmitted       = "new_story_submitted"
	EventNewMentorshipRequest    = "new_mentorship_request"
	EventMentorshipStatusChanged = "mentorship_status_changed"
	EventNewAnnouncement         = "new_announcement"
	EventWorkflowStarted         = "workflow_started"
	EventWorkflowStepCompleted   = "workflow_step_completed"
	EventTaskAssigned            = "task_assigned"
	EventAuditLog                = "audit_log"

	// control frames
	eventAuthenticated = "authenticated"
	eventAuthError     = "auth_error"
	eventPong          = "pong"
)

// Event is a named notification. An empty TargetUserID and TargetRole
// delivers to every connected client.
type Event struct {
	Name      string    `json:"event"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	TargetUserID string `json:"-"`
	TargetRole   string `json:"-"`
}

// ToUser addresses the event to a single user
func (e Event) ToUser(userID string) Event {
	e.TargetUserID = userID
	return e
}

// ToRole addresses the event to every user with the role
func (e Event) ToRole(role string) Event {
	e.TargetRole = role
	return e
}

// deliversTo reports whether a client with userID and role receives the event
func (e Event) deliversTo(userID, role string) bool {
	if e.TargetUserID != "" {
		return e.TargetUserID == userID
	}
	if e.TargetRole != "" {
		return e.TargetRole == role
	}
	return true
}

// Publisher is implemented by the Hub and accepted by services
type Publisher interface {
	Publish(e Event)
}

// Discard is a Publisher that drops every event
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(Event) {}
