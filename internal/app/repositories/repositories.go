package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/alumnihub/internal/app/models"
)

// Repositories holds all the repository instances
type Repositories struct {
	Users         UserStore
	Jobs          Store[models.Job]
	Applications  Store[models.JobApplication]
	Events        Store[models.Event]
	Stories       Store[models.Story]
	Mentorships   Store[models.MentorshipRequest]
	Messages      Store[models.Message]
	Announcements Store[models.Announcement]
	Tasks         Store[models.Task]
	Workflows     Store[models.Workflow]
	AuditLogs     Store[models.AuditLog]
}

// NewRepositories initializes Postgres-backed repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:         NewPostgresUserStore(db),
		Jobs:          NewPostgresStore[models.Job](db, "jobs"),
		Applications:  NewPostgresStore[models.JobApplication](db, "job_applications"),
		Events:        NewPostgresStore[models.Event](db, "events"),
		Stories:       NewPostgresStore[models.Story](db, "stories"),
		Mentorships:   NewPostgresStore[models.MentorshipRequest](db, "mentorship_requests"),
		Messages:      NewPostgresStore[models.Message](db, "messages"),
		Announcements: NewPostgresStore[models.Announcement](db, "announcements"),
		Tasks:         NewPostgresStore[models.Task](db, "tasks"),
		Workflows:     NewPostgresStore[models.Workflow](db, "workflows"),
		AuditLogs:     NewPostgresStore[models.AuditLog](db, "audit_logs"),
	}
}

// NewMemoryRepositories initializes in-memory repositories, used by the memory driver and tests
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Users:         NewMemoryUserStore(),
		Jobs:          NewMemoryStore[models.Job](),
		Applications:  NewMemoryStore[models.JobApplication](),
		Events:        NewMemoryStore[models.Event](),
		Stories:       NewMemoryStore[models.Story](),
		Mentorships:   NewMemoryStore[models.MentorshipRequest](),
		Messages:      NewMemoryStore[models.Message](),
		Announcements: NewMemoryStore[models.Announcement](),
		Tasks:         NewMemoryStore[models.Task](),
		Workflows:     NewMemoryStore[models.Workflow](),
		AuditLogs:     NewMemoryStore[models.AuditLog](),
	}
}
