package services

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/query"
	"github.com/yigit/alumnihub/internal/pkg/realtime"
)

// JobService defines job posting, application and moderation operations
type JobService interface {
	List(ctx context.Context, actor Actor, criteria query.Criteria) []dto.JobResponse
	Get(ctx context.Context, actor Actor, jobID string) (*dto.JobResponse, error)
	Create(ctx context.Context, actor Actor, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	Apply(ctx context.Context, actor Actor, jobID string, req *dto.ApplyJobRequest) (*dto.ApplicationResponse, error)
	MyApplications(ctx context.Context, actor Actor, criteria query.Criteria) []dto.ApplicationResponse
	JobApplications(ctx context.Context, actor Actor, jobID string, criteria query.Criteria) ([]dto.ApplicationResponse, error)
	UpdateApplicationStatus(ctx context.Context, actor Actor, applicationID string, status models.ApplicationStatus) (*dto.ApplicationResponse, error)
	Approve(ctx context.Context, actor Actor, jobID string) (*dto.JobResponse, error)
	Reject(ctx context.Context, actor Actor, jobID, reason string) (*dto.JobResponse, error)
	Delete(ctx context.Context, actor Actor, jobID string) error
}

// jobServiceImpl implements JobService
type jobServiceImpl struct {
	jobs         repositories.Store[models.Job]
	applications repositories.Store[models.JobApplication]
	users        repositories.UserStore
	publisher    realtime.Publisher
	audit        *auditor
	logger       zerolog.Logger
	now          clock

	// guards the application counter and the one-application-per-student check
	mu sync.Mutex
}

// NewJobService creates a new JobService
func NewJobService(repos *repositories.Repositories, publisher realtime.Publisher, logger zerolog.Logger) JobService {
	return &jobServiceImpl{
		jobs:         repos.Jobs,
		applications: repos.Applications,
		users:        repos.Users,
		publisher:    publisher,
		audit:        newAuditor(repos.AuditLogs, publisher, logger),
		logger:       logger,
		now:          utcNow,
	}
}

func (s *jobServiceImpl) response(job models.Job, applied map[string]bool) dto.JobResponse {
	return dto.JobResponse{
		Job:        job,
		HasApplied: applied[job.ID],
		IsExpired:  job.Expired(s.now()),
	}
}

// appliedJobs returns the set of job ids the actor applied to
func (s *jobServiceImpl) appliedJobs(ctx context.Context, actor Actor) map[string]bool {
	applied := make(map[string]bool)
	if actor.Role != models.RoleStudent {
		return applied
	}
	for _, a := range listOrEmpty[models.JobApplication](ctx, s.applications, s.logger, "applications") {
		if a.ApplicantID == actor.ID {
			applied[a.JobID] = true
		}
	}
	return applied
}

// visible: non-admins only see active jobs, plus the ones they posted
func (s *jobServiceImpl) visible(actor Actor, job models.Job) bool {
	return actor.IsAdmin() || job.PostedByID == actor.ID || job.CountsAsActive(s.now())
}

// List returns the job board for the actor
func (s *jobServiceImpl) List(ctx context.Context, actor Actor, criteria query.Criteria) []dto.JobResponse {
	jobs := listOrEmpty[models.Job](ctx, s.jobs, s.logger, "jobs")

	visible := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if s.visible(actor, j) {
			visible = append(visible, j)
		}
	}

	applied := s.appliedJobs(ctx, actor)
	view := jobSchema.Apply(visible, defaultSort(criteria, "recent"))
	out := make([]dto.JobResponse, 0, len(view))
	for _, j := range view {
		out = append(out, s.response(j, applied))
	}
	return out
}

// Get returns a single job
func (s *jobServiceImpl) Get(ctx context.Context, actor Actor, jobID string) (*dto.JobResponse, error) {
	job, err := getOr404[models.Job](ctx, s.jobs, jobID, "Job")
	if err != nil {
		return nil, err
	}
	if !s.visible(actor, job) {
		return nil, apperrors.NewResourceNotFoundError("Job not found")
	}
	resp := s.response(job, s.appliedJobs(ctx, actor))
	return &resp, nil
}

// Create posts a job. It stays hidden from the board until an admin approves it.
func (s *jobServiceImpl) Create(ctx context.Context, actor Actor, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if actor.Role == models.RoleStudent {
		return nil, apperrors.NewForbiddenError("Only alumni and administrators can post jobs")
	}

	now := s.now()
	job := models.Job{
		ID:              models.NewID(),
		Title:           strings.TrimSpace(req.Title),
		Company:         strings.TrimSpace(req.Company),
		Description:     req.Description,
		Location:        req.Location,
		Type:            req.Type,
		ExperienceLevel: req.ExperienceLevel,
		Skills:          req.Skills,
		SalaryRange:     req.SalaryRange,
		IsRemote:        req.IsRemote,
		PostedByID:      actor.ID,
		PostedAt:        now,
		ExpiresAt:       req.ExpiresAt,
		Approval:        models.ApprovalPending,
		IsActive:        true,
	}
	if job.ExpiresAt != nil && !job.ExpiresAt.After(now) {
		return nil, apperrors.NewBadRequestError("expiresAt must be in the future")
	}
	job.Touch(now)

	if err := s.jobs.Save(ctx, job); err != nil {
		s.logger.Error().Err(err).Str("postedBy", actor.ID).Msg("Failed to create job")
		return nil, err
	}

	s.publisher.Publish(realtime.Event{Name: realtime.EventNewJobPosted, Data: job}.ToRole(string(models.RoleAdmin)))
	s.logger.Info().Str("jobID", job.ID).Str("postedBy", actor.ID).Msg("Job created, awaiting approval")

	resp := s.response(job, nil)
	return &resp, nil
}

// Apply records a student's application and bumps the job's counter
func (s *jobServiceImpl) Apply(ctx context.Context, actor Actor, jobID string, req *dto.ApplyJobRequest) (*dto.ApplicationResponse, error) {
	if actor.Role != models.RoleStudent {
		return nil, apperrors.NewForbiddenError("Only students can apply to jobs")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job, err := getOr404[models.Job](ctx, s.jobs, jobID, "Job")
	if err != nil {
		return nil, err
	}
	if !job.CountsAsActive(s.now()) {
		return nil, apperrors.NewCustomError(apperrors.ErrNotApproved, "This job is not open for applications")
	}

	apps, err := s.applications.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load applications")
		return nil, err
	}
	if _, dup := query.Find(apps, func(a models.JobApplication) bool {
		return a.JobID == jobID && a.ApplicantID == actor.ID
	}); dup {
		return nil, apperrors.NewCustomError(apperrors.ErrAlreadyApplied, "You have already applied to this job")
	}

	app := models.JobApplication{
		ID:          models.NewID(),
		JobID:       job.ID,
		ApplicantID: actor.ID,
		PosterID:    job.PostedByID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
		Status:      models.ApplicationPending,
	}
	now := s.now()
	app.Touch(now)
	if err := s.applications.Save(ctx, app); err != nil {
		s.logger.Error().Err(err).Str("jobID", jobID).Msg("Failed to save application")
		return nil, err
	}

	job.ApplicationCount++
	job.Touch(now)
	if err := s.jobs.Save(ctx, job); err != nil {
		s.logger.Error().Err(err).Str("jobID", jobID).Msg("Failed to update application count")
		return nil, err
	}

	s.logger.Info().Str("jobID", jobID).Str("applicantID", actor.ID).Msg("Application submitted")
	return &dto.ApplicationResponse{JobApplication: app, JobTitle: job.Title, Company: job.Company}, nil
}

func (s *jobServiceImpl) applicationResponses(ctx context.Context, apps []models.JobApplication) []dto.ApplicationResponse {
	jobs := make(map[string]models.Job)
	for _, j := range listOrEmpty[models.Job](ctx, s.jobs, s.logger, "jobs") {
		jobs[j.ID] = j
	}
	names := userNames(ctx, s.users, s.logger)

	out := make([]dto.ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, dto.ApplicationResponse{
			JobApplication: a,
			JobTitle:       jobs[a.JobID].Title,
			Company:        jobs[a.JobID].Company,
			ApplicantName:  names[a.ApplicantID],
		})
	}
	return out
}

// MyApplications lists the actor's own applications
func (s *jobServiceImpl) MyApplications(ctx context.Context, actor Actor, criteria query.Criteria) []dto.ApplicationResponse {
	apps := listOrEmpty[models.JobApplication](ctx, s.applications, s.logger, "applications")

	mine := make([]models.JobApplication, 0)
	for _, a := range apps {
		if a.ApplicantID == actor.ID {
			mine = append(mine, a)
		}
	}
	return s.applicationResponses(ctx, applicationSchema.Apply(mine, defaultSort(criteria, "recent")))
}

// JobApplications lists applications to a job for its poster or an admin
func (s *jobServiceImpl) JobApplications(ctx context.Context, actor Actor, jobID string, criteria query.Criteria) ([]dto.ApplicationResponse, error) {
	job, err := getOr404[models.Job](ctx, s.jobs, jobID, "Job")
	if err != nil {
		return nil, err
	}
	if !canManage(actor, job.PostedByID) {
		return nil, apperrors.NewForbiddenError("Only the poster can view applications to this job")
	}

	apps := listOrEmpty[models.JobApplication](ctx, s.applications, s.logger, "applications")
	forJob := make([]models.JobApplication, 0)
	for _, a := range apps {
		if a.JobID == jobID {
			forJob = append(forJob, a)
		}
	}
	return s.applicationResponses(ctx, applicationSchema.Apply(forJob, defaultSort(criteria, "recent"))), nil
}

// UpdateApplicationStatus moves an application along its lifecycle
func (s *jobServiceImpl) UpdateApplicationStatus(ctx context.Context, actor Actor, applicationID string, status models.ApplicationStatus) (*dto.ApplicationResponse, error) {
	app, err := getOr404[models.JobApplication](ctx, s.applications, applicationID, "Application")
	if err != nil {
		return nil, err
	}
	if !canManage(actor, app.PosterID) {
		return nil, apperrors.NewForbiddenError("Only the job poster can update this application")
	}
	if err := models.ApplicationTransitions.Advance(app.Status, status); err != nil {
		return nil, err
	}

	app.Status = status
	app.Touch(s.now())
	if err := s.applications.Save(ctx, app); err != nil {
		s.logger.Error().Err(err).Str("applicationID", applicationID).Msg("Failed to update application")
		return nil, err
	}

	s.logger.Info().Str("applicationID", applicationID).Str("status", string(status)).Msg("Application status updated")
	resp := s.applicationResponses(ctx, []models.JobApplication{app})[0]
	return &resp, nil
}

func (s *jobServiceImpl) decide(ctx context.Context, actor Actor, jobID string, approve bool, reason string) (*dto.JobResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only administrators can moderate jobs")
	}
	job, err := getOr404[models.Job](ctx, s.jobs, jobID, "Job")
	if err != nil {
		return nil, err
	}

	next, err := moderate(job.Approval, approve)
	if err != nil {
		return nil, err
	}
	changed := next != job.Approval
	job.Approval = next
	job.IsApproved = next == models.ApprovalApproved
	job.Touch(s.now())
	if err := s.jobs.Save(ctx, job); err != nil {
		s.logger.Error().Err(err).Str("jobID", jobID).Msg("Failed to save job decision")
		return nil, err
	}

	if changed {
		action := ActionReject
		if approve {
			action = ActionApprove
			s.publisher.Publish(realtime.Event{Name: realtime.EventJobApproved, Data: job}.ToUser(job.PostedByID))
			s.publisher.Publish(realtime.Event{Name: realtime.EventNewJobPosted, Data: job})
		}
		s.audit.record(ctx, actor, action, "job", job.ID, models.SeverityInfo, details("title", job.Title, "reason", reason))
	}

	resp := s.response(job, nil)
	return &resp, nil
}

// Approve publishes a pending job to the board
func (s *jobServiceImpl) Approve(ctx context.Context, actor Actor, jobID string) (*dto.JobResponse, error) {
	return s.decide(ctx, actor, jobID, true, "")
}

// Reject declines a pending job
func (s *jobServiceImpl) Reject(ctx context.Context, actor Actor, jobID, reason string) (*dto.JobResponse, error) {
	return s.decide(ctx, actor, jobID, false, reason)
}

// Delete removes a job and its applications
func (s *jobServiceImpl) Delete(ctx context.Context, actor Actor, jobID string) error {
	job, err := getOr404[models.Job](ctx, s.jobs, jobID, "Job")
	if err != nil {
		return err
	}
	if !canManage(actor, job.PostedByID) {
		return apperrors.NewForbiddenError("Only the poster can delete this job")
	}

	if err := s.jobs.Delete(ctx, jobID); err != nil {
		s.logger.Error().Err(err).Str("jobID", jobID).Msg("Failed to delete job")
		return err
	}
	for _, a := range listOrEmpty[models.JobApplication](ctx, s.applications, s.logger, "applications") {
		if a.JobID != jobID {
			continue
		}
		if err := s.applications.Delete(ctx, a.ID); err != nil {
			s.logger.Warn().Err(err).Str("applicationID", a.ID).Msg("Failed to delete orphaned application")
		}
	}

	if actor.IsAdmin() {
		s.audit.record(ctx, actor, ActionDelete, "job", jobID, models.SeverityWarning, details("title", job.Title))
	}
	s.logger.Info().Str("jobID", jobID).Msg("Job deleted")
	return nil
}
