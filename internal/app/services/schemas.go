package services

import (
	"strconv"
	"time"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/pkg/query"
)

func str(s string) (string, bool) { return s, s != "" }

func year(n int) (string, bool) {
	if n == 0 {
		return "", false
	}
	return strconv.Itoa(n), true
}

func flag(b bool) (string, bool) { return strconv.FormatBool(b), true }

// alumniSchema drives the alumni directory
var alumniSchema = query.Schema[models.User]{
	Text: func(u models.User) []string {
		return query.Fields(u.FullName(), u.Company, u.Position, u.Skills, u.Location, u.Industry)
	},
	Dimensions: map[string]query.Dimension[models.User]{
		"industry":       func(u models.User) (string, bool) { return str(u.Industry) },
		"graduationYear": func(u models.User) (string, bool) { return year(u.GraduationYear) },
		"location":       func(u models.User) (string, bool) { return str(u.Location) },
		"degree":         func(u models.User) (string, bool) { return str(u.Degree) },
		"company":        func(u models.User) (string, bool) { return str(u.Company) },
		"mentor":         func(u models.User) (string, bool) { return flag(u.AvailableAsMentor) },
	},
	Sorts: map[string]query.Comparator[models.User]{
		"name":    query.ByText(models.User.FullName),
		"year":    query.ByIntDesc(func(u models.User) int { return u.GraduationYear }),
		"company": query.ByText(func(u models.User) string { return u.Company }),
		"recent":  query.ByTimeDesc(func(u models.User) time.Time { return u.CreatedAt }),
	},
}

// userAdminSchema drives the admin user list and the verification queue
var userAdminSchema = query.Schema[models.User]{
	Text: func(u models.User) []string {
		return query.Fields(u.FullName(), u.Email, u.Company)
	},
	Dimensions: map[string]query.Dimension[models.User]{
		"role":         func(u models.User) (string, bool) { return str(string(u.RoleType)) },
		"verification": func(u models.User) (string, bool) { return str(string(u.Verification)) },
		"active":       func(u models.User) (string, bool) { return flag(u.IsActive) },
	},
	Sorts: map[string]query.Comparator[models.User]{
		"name":   query.ByText(models.User.FullName),
		"email":  query.ByText(func(u models.User) string { return u.Email }),
		"recent": query.ByTimeDesc(func(u models.User) time.Time { return u.CreatedAt }),
		"oldest": query.ByTimeAsc(func(u models.User) time.Time { return u.CreatedAt }),
	},
}

var jobSchema = query.Schema[models.Job]{
	Text: func(j models.Job) []string {
		return query.Fields(j.Title, j.Company, j.Description, j.Skills)
	},
	Dimensions: map[string]query.Dimension[models.Job]{
		"type":            func(j models.Job) (string, bool) { return str(j.Type) },
		"location":        func(j models.Job) (string, bool) { return str(j.Location) },
		"experienceLevel": func(j models.Job) (string, bool) { return str(j.ExperienceLevel) },
		"company":         func(j models.Job) (string, bool) { return str(j.Company) },
		"remote":          func(j models.Job) (string, bool) { return flag(j.IsRemote) },
		"approval":        func(j models.Job) (string, bool) { return str(string(j.Approval)) },
		"postedBy":        func(j models.Job) (string, bool) { return str(j.PostedByID) },
	},
	Sorts: map[string]query.Comparator[models.Job]{
		"recent":       query.ByTimeDesc(func(j models.Job) time.Time { return j.PostedAt }),
		"title":        query.ByText(func(j models.Job) string { return j.Title }),
		"company":      query.ByText(func(j models.Job) string { return j.Company }),
		"applications": query.ByIntDesc(func(j models.Job) int { return j.ApplicationCount }),
	},
}

var applicationSchema = query.Schema[models.JobApplication]{
	Dimensions: map[string]query.Dimension[models.JobApplication]{
		"status": func(a models.JobApplication) (string, bool) { return str(string(a.Status)) },
		"jobId":  func(a models.JobApplication) (string, bool) { return str(a.JobID) },
	},
	Sorts: map[string]query.Comparator[models.JobApplication]{
		"recent": query.ByTimeDesc(func(a models.JobApplication) time.Time { return a.CreatedAt }),
	},
}

var eventSchema = query.Schema[models.Event]{
	Text: func(e models.Event) []string {
		return query.Fields(e.Title, e.Description, e.Location)
	},
	Dimensions: map[string]query.Dimension[models.Event]{
		"type":      func(e models.Event) (string, bool) { return str(e.Type) },
		"virtual":   func(e models.Event) (string, bool) { return flag(e.IsVirtual) },
		"organizer": func(e models.Event) (string, bool) { return str(e.OrganizerID) },
		"location":  func(e models.Event) (string, bool) { return str(e.Location) },
		"approval":  func(e models.Event) (string, bool) { return str(string(e.Approval)) },
	},
	Sorts: map[string]query.Comparator[models.Event]{
		"upcoming":  query.ByTimeAsc(func(e models.Event) time.Time { return e.StartsAt }),
		"recent":    query.ByTimeDesc(func(e models.Event) time.Time { return e.CreatedAt }),
		"title":     query.ByText(func(e models.Event) string { return e.Title }),
		"attendees": query.ByIntDesc(models.Event.AttendeeCount),
	},
}

var storySchema = query.Schema[models.Story]{
	Text: func(s models.Story) []string {
		return query.Fields(s.Title, s.Summary, s.AuthorName, s.Tags)
	},
	Dimensions: map[string]query.Dimension[models.Story]{
		"category": func(s models.Story) (string, bool) { return str(s.Category) },
		"featured": func(s models.Story) (string, bool) { return flag(s.Featured) },
		"author":   func(s models.Story) (string, bool) { return str(s.AuthorID) },
		"approval": func(s models.Story) (string, bool) { return str(string(s.Approval)) },
	},
	Sorts: map[string]query.Comparator[models.Story]{
		"recent":  query.ByTimeDesc(func(s models.Story) time.Time { return s.CreatedAt }),
		"popular": query.ByIntDesc(func(s models.Story) int { return s.Likes }),
		"views":   query.ByIntDesc(func(s models.Story) int { return s.Views }),
		"title":   query.ByText(func(s models.Story) string { return s.Title }),
	},
}

var mentorshipSchema = query.Schema[models.MentorshipRequest]{
	Text: func(m models.MentorshipRequest) []string {
		return query.Fields(m.Topic, m.Message, m.Goals)
	},
	Dimensions: map[string]query.Dimension[models.MentorshipRequest]{
		"status": func(m models.MentorshipRequest) (string, bool) { return str(string(m.Status)) },
		"mentor": func(m models.MentorshipRequest) (string, bool) { return str(m.MentorID) },
		"mentee": func(m models.MentorshipRequest) (string, bool) { return str(m.MenteeID) },
	},
	Sorts: map[string]query.Comparator[models.MentorshipRequest]{
		"recent":  query.ByTimeDesc(func(m models.MentorshipRequest) time.Time { return m.CreatedAt }),
		"updated": query.ByTimeDesc(func(m models.MentorshipRequest) time.Time { return m.UpdatedAt }),
	},
}

var priorityRank = map[string]int{
	models.PriorityUrgent: 4,
	models.PriorityHigh:   3,
	models.PriorityMedium: 2,
	models.PriorityLow:    1,
}

var taskSchema = query.Schema[models.Task]{
	Text: func(t models.Task) []string {
		return query.Fields(t.Title, t.Description, t.AssignedTo)
	},
	Dimensions: map[string]query.Dimension[models.Task]{
		"status":   func(t models.Task) (string, bool) { return str(string(t.Status)) },
		"priority": func(t models.Task) (string, bool) { return str(t.Priority) },
		"assignee": func(t models.Task) (string, bool) { return str(t.AssignedToID) },
		"workflow": func(t models.Task) (string, bool) { return str(t.WorkflowID) },
	},
	Sorts: map[string]query.Comparator[models.Task]{
		"due": query.ByTimeAsc(func(t models.Task) time.Time {
			if t.DueAt == nil {
				return time.Time{}
			}
			return *t.DueAt
		}),
		"priority": query.ByIntDesc(func(t models.Task) int { return priorityRank[t.Priority] }),
		"recent":   query.ByTimeDesc(func(t models.Task) time.Time { return t.CreatedAt }),
		"title":    query.ByText(func(t models.Task) string { return t.Title }),
	},
}

var workflowSchema = query.Schema[models.Workflow]{
	Text: func(w models.Workflow) []string {
		return query.Fields(w.Name, w.Description)
	},
	Dimensions: map[string]query.Dimension[models.Workflow]{
		"status":   func(w models.Workflow) (string, bool) { return str(string(w.Status)) },
		"category": func(w models.Workflow) (string, bool) { return str(w.Category) },
	},
	Sorts: map[string]query.Comparator[models.Workflow]{
		"recent": query.ByTimeDesc(func(w models.Workflow) time.Time { return w.CreatedAt }),
		"name":   query.ByText(func(w models.Workflow) string { return w.Name }),
	},
}

var auditSchema = query.Schema[models.AuditLog]{
	Text: func(a models.AuditLog) []string {
		return query.Fields(a.Action, a.EntityType, a.EntityRef)
	},
	Dimensions: map[string]query.Dimension[models.AuditLog]{
		"action":     func(a models.AuditLog) (string, bool) { return str(a.Action) },
		"entityType": func(a models.AuditLog) (string, bool) { return str(a.EntityType) },
		"severity":   func(a models.AuditLog) (string, bool) { return str(a.Severity) },
		"actor":      func(a models.AuditLog) (string, bool) { return str(a.ActorID) },
	},
	Sorts: map[string]query.Comparator[models.AuditLog]{
		"recent": query.ByTimeDesc(func(a models.AuditLog) time.Time { return a.CreatedAt }),
		"oldest": query.ByTimeAsc(func(a models.AuditLog) time.Time { return a.CreatedAt }),
	},
}

var announcementSchema = query.Schema[models.Announcement]{
	Text: func(a models.Announcement) []string { return query.Fields(a.Title, a.Body) },
	Dimensions: map[string]query.Dimension[models.Announcement]{
		"audience": func(a models.Announcement) (string, bool) { return str(string(a.Audience)) },
		"pinned":   func(a models.Announcement) (string, bool) { return flag(a.Pinned) },
	},
	Sorts: map[string]query.Comparator[models.Announcement]{
		"recent": query.ByTimeDesc(func(a models.Announcement) time.Time { return a.CreatedAt }),
	},
}

var messageSchema = query.Schema[models.Message]{
	Text: func(m models.Message) []string { return query.Fields(m.Content) },
	Dimensions: map[string]query.Dimension[models.Message]{
		"status": func(m models.Message) (string, bool) { return str(string(m.Status)) },
	},
	Sorts: map[string]query.Comparator[models.Message]{
		"oldest": query.ByTimeAsc(func(m models.Message) time.Time { return m.CreatedAt }),
		"recent": query.ByTimeDesc(func(m models.Message) time.Time { return m.CreatedAt }),
	},
}

// defaultSort fills in a view's sort key when the caller gave none
func defaultSort(c query.Criteria, key string) query.Criteria {
	if c.Sort == "" {
		c.Sort = key
	}
	return c
}
