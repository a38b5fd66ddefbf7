package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/query"
)

// dashboardListSize caps the job and event previews on a dashboard
const dashboardListSize = 5

// DashboardService builds the per-role home screen summaries
type DashboardService interface {
	Student(ctx context.Context, actor Actor) *dto.StudentDashboard
	Alumni(ctx context.Context, actor Actor) *dto.AlumniDashboard
}

// dashboardServiceImpl implements DashboardService
type dashboardServiceImpl struct {
	repos  *repositories.Repositories
	logger zerolog.Logger
	now    clock
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(repos *repositories.Repositories, logger zerolog.Logger) DashboardService {
	return &dashboardServiceImpl{repos: repos, logger: logger, now: utcNow}
}

func (s *dashboardServiceImpl) unread(ctx context.Context, userID string) int {
	msgs := listOrEmpty[models.Message](ctx, s.repos.Messages, s.logger, "messages")
	return query.Count(msgs, func(m models.Message) bool {
		return m.ReceiverID == userID && m.Status != models.DeliveryRead
	})
}

func (s *dashboardServiceImpl) upcomingEvents(ctx context.Context, userID string) (all []models.Event, preview []dto.EventResponse) {
	now := s.now()
	for _, e := range listOrEmpty[models.Event](ctx, s.repos.Events, s.logger, "events") {
		if e.CountsAsActive() && e.Upcoming(now) {
			all = append(all, e)
		}
	}

	sorted := eventSchema.Apply(all, query.Criteria{Sort: "upcoming"})
	preview = make([]dto.EventResponse, 0, dashboardListSize)
	for _, e := range sorted {
		if len(preview) == dashboardListSize {
			break
		}
		preview = append(preview, eventResponse(e, userID))
	}
	return all, preview
}

// Student summarizes jobs, applications, events and mentorships for a student
func (s *dashboardServiceImpl) Student(ctx context.Context, actor Actor) *dto.StudentDashboard {
	now := s.now()

	jobs := listOrEmpty[models.Job](ctx, s.repos.Jobs, s.logger, "jobs")
	active := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.CountsAsActive(now) {
			active = append(active, j)
		}
	}

	apps := listOrEmpty[models.JobApplication](ctx, s.repos.Applications, s.logger, "applications")
	mine := make([]models.JobApplication, 0)
	applied := make(map[string]bool)
	for _, a := range apps {
		if a.ApplicantID == actor.ID {
			mine = append(mine, a)
			applied[a.JobID] = true
		}
	}

	recommended := make([]dto.JobResponse, 0, dashboardListSize)
	for _, j := range jobSchema.Apply(active, query.Criteria{Sort: "recent"}) {
		if len(recommended) == dashboardListSize {
			break
		}
		if !applied[j.ID] {
			recommended = append(recommended, dto.JobResponse{Job: j})
		}
	}

	mentorships := listOrEmpty[models.MentorshipRequest](ctx, s.repos.Mentorships, s.logger, "mentorship requests")
	users := listOrEmpty[models.User](ctx, s.repos.Users, s.logger, "users")
	upcoming, preview := s.upcomingEvents(ctx, actor.ID)

	return &dto.StudentDashboard{
		AvailableJobs:    len(active),
		ApplicationsSent: len(mine),
		ApplicationsAccepted: query.Count(mine, func(a models.JobApplication) bool {
			return a.Status == models.ApplicationAccepted
		}),
		UpcomingEvents:   len(upcoming),
		RegisteredEvents: query.Count(upcoming, func(e models.Event) bool { return e.IsRegistered(actor.ID) }),
		MentorshipRequests: query.Count(mentorships, func(m models.MentorshipRequest) bool {
			return m.MenteeID == actor.ID
		}),
		ActiveMentorships: query.Count(mentorships, func(m models.MentorshipRequest) bool {
			return m.MenteeID == actor.ID && m.Status == models.MentorshipAccepted
		}),
		UnreadMessages:    s.unread(ctx, actor.ID),
		AvailableMentors:  query.Count(users, models.User.CanMentor),
		RecommendedJobs:   recommended,
		UpcomingEventList: preview,
	}
}

// Alumni summarizes postings, mentees and stories for an alumnus
func (s *dashboardServiceImpl) Alumni(ctx context.Context, actor Actor) *dto.AlumniDashboard {
	now := s.now()

	jobs := listOrEmpty[models.Job](ctx, s.repos.Jobs, s.logger, "jobs")
	posted := make([]models.Job, 0)
	for _, j := range jobs {
		if j.PostedByID == actor.ID {
			posted = append(posted, j)
		}
	}

	mentorships := listOrEmpty[models.MentorshipRequest](ctx, s.repos.Mentorships, s.logger, "mentorship requests")
	stories := listOrEmpty[models.Story](ctx, s.repos.Stories, s.logger, "stories")
	mine := make([]models.Story, 0)
	for _, st := range stories {
		if st.AuthorID == actor.ID {
			mine = append(mine, st)
		}
	}

	verification := ""
	if user, err := s.repos.Users.Get(ctx, actor.ID); err == nil {
		verification = string(user.Verification)
	} else {
		s.logger.Warn().Err(err).Str("userID", actor.ID).Msg("Failed to load alumni profile for dashboard")
	}
	_, preview := s.upcomingEvents(ctx, actor.ID)

	return &dto.AlumniDashboard{
		JobsPosted:           len(posted),
		ActiveJobs:           query.Count(posted, func(j models.Job) bool { return j.CountsAsActive(now) }),
		ApplicationsReceived: query.SumInt(posted, func(j models.Job) int { return j.ApplicationCount }),
		PendingMentorships: query.Count(mentorships, func(m models.MentorshipRequest) bool {
			return m.MentorID == actor.ID && m.Status == models.MentorshipPending
		}),
		ActiveMentees: query.Count(mentorships, func(m models.MentorshipRequest) bool {
			return m.MentorID == actor.ID && m.Status == models.MentorshipAccepted
		}),
		StoriesPublished:  query.Count(mine, models.Story.Visible),
		StoryViews:        query.SumInt(mine, func(st models.Story) int { return st.Views }),
		StoryLikes:        query.SumInt(mine, func(st models.Story) int { return st.Likes }),
		UnreadMessages:    s.unread(ctx, actor.ID),
		Verification:      verification,
		UpcomingEventList: preview,
	}
}
