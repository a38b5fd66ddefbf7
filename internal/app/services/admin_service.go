package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/cache"
	"github.com/yigit/alumnihub/internal/pkg/query"
	"github.com/yigit/alumnihub/internal/pkg/realtime"
)

// StatsCacheKey is where the admin dashboard counters are cached
const StatsCacheKey = "stats:admin"

// AdminService defines the administrator dashboard, verification and reporting operations
type AdminService interface {
	Stats(ctx context.Context) *dto.AdminStats
	InvalidateOn(ctx context.Context, events <-chan realtime.Event)
	PendingVerifications(ctx context.Context, criteria query.Criteria) []dto.UserResponse
	DecideVerification(ctx context.Context, actor Actor, req *dto.VerificationDecisionRequest) (*dto.UserResponse, error)
	Users(ctx context.Context, criteria query.Criteria) []dto.UserResponse
	SetUserActive(ctx context.Context, actor Actor, userID string, active bool) (*dto.UserResponse, error)
	AuditLogs(ctx context.Context, criteria query.Criteria) []models.AuditLog
	Report(ctx context.Context) *dto.Report
}

// statsStore is the part of the Redis cache the stats path needs
type statsStore interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// adminServiceImpl implements AdminService
type adminServiceImpl struct {
	repos    *repositories.Repositories
	cache    statsStore
	statsTTL time.Duration
	audit    *auditor
	logger   zerolog.Logger
	now      clock

	// generation counts invalidations; Stats drops its own write when it
	// moved during the computation
	generation atomic.Uint64
}

// NewAdminService creates a new AdminService. statsCache may be nil.
func NewAdminService(
	repos *repositories.Repositories,
	statsCache *cache.Redis,
	statsTTL time.Duration,
	publisher realtime.Publisher,
	logger zerolog.Logger,
) AdminService {
	return &adminServiceImpl{
		repos:    repos,
		cache:    statsCache,
		statsTTL: statsTTL,
		audit:    newAuditor(repos.AuditLogs, publisher, logger),
		logger:   logger,
		now:      utcNow,
	}
}

// snapshot holds one consistent read of every list the dashboard derives from
type snapshot struct {
	users        []models.User
	jobs         []models.Job
	applications []models.JobApplication
	events       []models.Event
	stories      []models.Story
	mentorships  []models.MentorshipRequest
	messages     []models.Message
	tasks        []models.Task
	workflows    []models.Workflow
}

// load fetches every list concurrently. A failed fetch leaves that list empty.
func (s *adminServiceImpl) load(ctx context.Context) snapshot {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		snap.users = listOrEmpty[models.User](gctx, s.repos.Users, s.logger, "users")
		return nil
	})
	g.Go(func() error {
		snap.jobs = listOrEmpty[models.Job](gctx, s.repos.Jobs, s.logger, "jobs")
		return nil
	})
	g.Go(func() error {
		snap.applications = listOrEmpty[models.JobApplication](gctx, s.repos.Applications, s.logger, "applications")
		return nil
	})
	g.Go(func() error {
		snap.events = listOrEmpty[models.Event](gctx, s.repos.Events, s.logger, "events")
		return nil
	})
	g.Go(func() error {
		snap.stories = listOrEmpty[models.Story](gctx, s.repos.Stories, s.logger, "stories")
		return nil
	})
	g.Go(func() error {
		snap.mentorships = listOrEmpty[models.MentorshipRequest](gctx, s.repos.Mentorships, s.logger, "mentorship requests")
		return nil
	})
	g.Go(func() error {
		snap.messages = listOrEmpty[models.Message](gctx, s.repos.Messages, s.logger, "messages")
		return nil
	})
	g.Go(func() error {
		snap.tasks = listOrEmpty[models.Task](gctx, s.repos.Tasks, s.logger, "tasks")
		return nil
	})
	g.Go(func() error {
		snap.workflows = listOrEmpty[models.Workflow](gctx, s.repos.Workflows, s.logger, "workflows")
		return nil
	})

	_ = g.Wait()
	return snap
}

func isAlumni(u models.User) bool  { return u.RoleType == models.RoleAlumni }
func isStudent(u models.User) bool { return u.RoleType == models.RoleStudent }

func pendingApproval(status models.ApprovalStatus) bool {
	return status == "" || status == models.ApprovalPending
}

// Stats returns the dashboard counters, served from the cache when possible
func (s *adminServiceImpl) Stats(ctx context.Context) *dto.AdminStats {
	var cached dto.AdminStats
	if hit, err := s.cache.GetJSON(ctx, StatsCacheKey, &cached); err != nil {
		s.logger.Warn().Err(err).Msg("Stats cache read failed")
	} else if hit {
		return &cached
	}

	gen := s.generation.Load()
	snap := s.load(ctx)
	now := s.now()
	stats := &dto.AdminStats{
		TotalUsers:     len(snap.users),
		TotalStudents:  query.Count(snap.users, isStudent),
		TotalAlumni:    query.Count(snap.users, isAlumni),
		VerifiedAlumni: query.Count(snap.users, models.User.IsVerifiedAlumni),
		PendingVerifications: query.Count(snap.users, func(u models.User) bool {
			return isAlumni(u) && pendingApproval(u.Verification)
		}),
		TotalJobs:         len(snap.jobs),
		ActiveJobs:        query.Count(snap.jobs, func(j models.Job) bool { return j.CountsAsActive(now) }),
		PendingJobs:       query.Count(snap.jobs, func(j models.Job) bool { return pendingApproval(j.Approval) }),
		TotalApplications: len(snap.applications),
		TotalEvents:       len(snap.events),
		UpcomingEvents: query.Count(snap.events, func(e models.Event) bool {
			return e.CountsAsActive() && e.Upcoming(now)
		}),
		PendingEvents:      query.Count(snap.events, func(e models.Event) bool { return pendingApproval(e.Approval) }),
		TotalStories:       len(snap.stories),
		PendingStories:     query.Count(snap.stories, func(st models.Story) bool { return pendingApproval(st.Approval) }),
		MentorshipRequests: len(snap.mentorships),
		ActiveMentorships: query.Count(snap.mentorships, func(m models.MentorshipRequest) bool {
			return m.Status == models.MentorshipAccepted
		}),
		OpenTasks: query.Count(snap.tasks, func(t models.Task) bool {
			return !models.TaskTransitions.Terminal(t.Status)
		}),
		RunningWorkflows: query.Count(snap.workflows, func(w models.Workflow) bool {
			return w.Status == models.WorkflowRunning
		}),
		GeneratedAt: now,
	}

	if err := s.cache.SetJSON(ctx, StatsCacheKey, stats, s.statsTTL); err != nil {
		s.logger.Warn().Err(err).Msg("Stats cache write failed")
	} else if s.generation.Load() != gen {
		s.invalidate(ctx, "stale write")
	}
	return stats
}

// InvalidateOn drops the cached stats whenever a domain event arrives. It
// returns when events is closed.
func (s *adminServiceImpl) InvalidateOn(ctx context.Context, events <-chan realtime.Event) {
	for ev := range events {
		s.generation.Add(1)
		s.invalidate(ctx, ev.Name)
	}
}

func (s *adminServiceImpl) invalidate(ctx context.Context, reason string) {
	if err := s.cache.Delete(ctx, StatsCacheKey); err != nil {
		s.logger.Debug().Err(err).Str("reason", reason).Msg("Stats cache invalidation failed")
	}
}

// PendingVerifications lists alumni waiting for an admin decision, oldest first
func (s *adminServiceImpl) PendingVerifications(ctx context.Context, criteria query.Criteria) []dto.UserResponse {
	users := listOrEmpty[models.User](ctx, s.repos.Users, s.logger, "users")

	pending := make([]models.User, 0)
	for _, u := range users {
		if isAlumni(u) && pendingApproval(u.Verification) {
			pending = append(pending, u)
		}
	}
	return dto.FromUsers(userAdminSchema.Apply(pending, defaultSort(criteria, "oldest")))
}

// DecideVerification approves or rejects an alumnus
func (s *adminServiceImpl) DecideVerification(ctx context.Context, actor Actor, req *dto.VerificationDecisionRequest) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only administrators can verify alumni")
	}
	user, err := getOr404[models.User](ctx, s.repos.Users, req.AlumniID, "Alumnus")
	if err != nil {
		return nil, err
	}
	if !isAlumni(user) {
		return nil, apperrors.NewBadRequestError("User is not an alumnus")
	}

	approve := *req.Approved
	next, err := moderate(user.Verification, approve)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrVerificationDecided, "Verification was already decided")
	}
	if next == user.Verification {
		resp := dto.FromUser(user)
		return &resp, nil
	}

	now := s.now()
	user.Verification = next
	user.VerificationNote = req.Note
	user.VerificationDecidedAt = &now
	if !approve {
		user.AvailableAsMentor = false
	}
	user.Touch(now)
	if err := s.repos.Users.Save(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("userID", user.ID).Msg("Failed to save verification decision")
		return nil, err
	}

	action, severity := ActionVerifyAlumni, models.SeverityInfo
	if !approve {
		action, severity = ActionRejectAlumni, models.SeverityWarning
	}
	s.audit.record(ctx, actor, action, "user", user.ID, severity, details("email", user.Email, "note", req.Note))
	s.logger.Info().Str("userID", user.ID).Str("verification", string(next)).Msg("Alumni verification decided")

	resp := dto.FromUser(user)
	return &resp, nil
}

// Users lists every account
func (s *adminServiceImpl) Users(ctx context.Context, criteria query.Criteria) []dto.UserResponse {
	users := listOrEmpty[models.User](ctx, s.repos.Users, s.logger, "users")
	return dto.FromUsers(userAdminSchema.Apply(users, defaultSort(criteria, "recent")))
}

// SetUserActive enables or disables an account. Admins cannot disable themselves.
func (s *adminServiceImpl) SetUserActive(ctx context.Context, actor Actor, userID string, active bool) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only administrators can change account status")
	}
	if userID == actor.ID && !active {
		return nil, apperrors.NewBadRequestError("You cannot deactivate your own account")
	}
	user, err := getOr404[models.User](ctx, s.repos.Users, userID, "User")
	if err != nil {
		return nil, err
	}
	if user.IsActive == active {
		resp := dto.FromUser(user)
		return &resp, nil
	}

	user.IsActive = active
	user.Touch(s.now())
	if err := s.repos.Users.Save(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("userID", userID).Msg("Failed to update account status")
		return nil, err
	}

	action, severity := ActionActivateUser, models.SeverityInfo
	if !active {
		action, severity = ActionDeactivateUser, models.SeverityCritical
	}
	s.audit.record(ctx, actor, action, "user", user.ID, severity, details("email", user.Email))

	resp := dto.FromUser(user)
	return &resp, nil
}

// AuditLogs lists audit entries, newest first by default
func (s *adminServiceImpl) AuditLogs(ctx context.Context, criteria query.Criteria) []models.AuditLog {
	logs := listOrEmpty[models.AuditLog](ctx, s.repos.AuditLogs, s.logger, "audit logs")
	return auditSchema.Apply(logs, defaultSort(criteria, "recent"))
}

// Report derives engagement and conversion figures from every list
func (s *adminServiceImpl) Report(ctx context.Context) *dto.Report {
	snap := s.load(ctx)

	alumni := query.Count(snap.users, isAlumni)
	approvedJobs := query.Count(snap.jobs, func(j models.Job) bool { return j.IsApproved })
	accepted := query.Count(snap.applications, func(a models.JobApplication) bool {
		return a.Status == models.ApplicationAccepted
	})
	mentorshipsAccepted := query.Count(snap.mentorships, func(m models.MentorshipRequest) bool {
		return m.Status == models.MentorshipAccepted || m.Status == models.MentorshipCompleted
	})

	capped := make([]models.Event, 0, len(snap.events))
	for _, e := range snap.events {
		if e.Capacity > 0 {
			capped = append(capped, e)
		}
	}
	views := query.SumInt(snap.stories, func(st models.Story) int { return st.Views })

	return &dto.Report{
		UsersByRole:       query.GroupCount(snap.users, func(u models.User) string { return string(u.RoleType) }),
		AlumniByIndustry:  query.GroupCount(filterUsers(snap.users, isAlumni), func(u models.User) string { return u.Industry }),
		JobsByType:        query.GroupCount(snap.jobs, func(j models.Job) string { return j.Type }),
		EventsByType:      query.GroupCount(snap.events, func(e models.Event) string { return e.Type }),
		StoriesByCategory: query.GroupCount(snap.stories, func(st models.Story) string { return st.Category }),
		VerificationRate:  query.Percentage(query.Count(snap.users, models.User.IsVerifiedAlumni), alumni),
		JobApprovalRate:   query.Percentage(approvedJobs, len(snap.jobs)),
		ApplicationsPerJob: query.Average(
			query.SumInt(snap.jobs, func(j models.Job) int { return j.ApplicationCount }), len(snap.jobs)),
		ApplicationAccept: query.Percentage(accepted, len(snap.applications)),
		MentorshipAccept:  query.Percentage(mentorshipsAccepted, len(snap.mentorships)),
		EventFillRate: query.Percentage(
			query.SumInt(capped, models.Event.AttendeeCount),
			query.SumInt(capped, func(e models.Event) int { return e.Capacity })),
		StoryEngagementRate: query.Percentage(query.SumInt(snap.stories, func(st models.Story) int { return st.Likes }), views),
		AverageStoryViews:   query.Average(views, len(snap.stories)),
		MessageReadRate: query.Percentage(
			query.Count(snap.messages, func(m models.Message) bool { return m.Status == models.DeliveryRead }),
			len(snap.messages)),
		TaskCompletionRate: query.Percentage(
			query.Count(snap.tasks, func(t models.Task) bool { return t.Status == models.TaskCompleted }),
			len(snap.tasks)),
		GeneratedAt: s.now(),
	}
}

func filterUsers(users []models.User, keep func(models.User) bool) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}
