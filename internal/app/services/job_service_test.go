package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/query"
	"github.com/yigit/alumnihub/internal/pkg/realtime"
)

func newJobService(t *testing.T) (*jobServiceImpl, *repositories.Repositories, *recorder) {
	repos, rec := fixture(t)
	svc := NewJobService(repos, rec, nopLogger).(*jobServiceImpl)
	svc.now = fixedClock
	svc.audit.now = fixedClock
	return svc, repos, rec
}

func postJob(t *testing.T, svc JobService, title string) *dto.JobResponse {
	t.Helper()
	job, err := svc.Create(context.Background(), alumnus, &dto.CreateJobRequest{
		Title: title, Company: "Acme", Description: "Build things", Type: models.JobTypeFullTime, Location: "Berlin",
	})
	require.NoError(t, err)
	return job
}

func TestJobService_NewJobHiddenUntilApproved(t *testing.T) {
	svc, repos, rec := newJobService(t)
	ctx := context.Background()

	job := postJob(t, svc, "Go Developer")
	assert.Equal(t, models.ApprovalPending, job.Approval)
	assert.False(t, job.IsApproved)
	require.Len(t, rec.named(realtime.EventNewJobPosted), 1)
	assert.Equal(t, string(models.RoleAdmin), rec.named(realtime.EventNewJobPosted)[0].TargetRole)

	assert.Empty(t, svc.List(ctx, student, query.Criteria{}))
	assert.Len(t, svc.List(ctx, admin, query.Criteria{}), 1)
	assert.Len(t, svc.List(ctx, alumnus, query.Criteria{}), 1, "posters see their pending jobs")
	_, err := svc.Get(ctx, student, job.ID)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))

	rec.reset()
	approved, err := svc.Approve(ctx, admin, job.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	require.Len(t, rec.named(realtime.EventJobApproved), 1)
	assert.Equal(t, alumnus.ID, rec.named(realtime.EventJobApproved)[0].TargetUserID)
	require.Len(t, rec.named(realtime.EventNewJobPosted), 1)
	assert.Empty(t, rec.named(realtime.EventNewJobPosted)[0].TargetRole)
	require.Len(t, rec.named(realtime.EventAuditLog), 1)

	logs, err := repos.AuditLogs.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, ActionApprove, logs[0].Action)
	assert.Equal(t, job.ID, logs[0].EntityRef)

	assert.Len(t, svc.List(ctx, student, query.Criteria{}), 1)
}

func TestJobService_ModerationIsFinal(t *testing.T) {
	svc, _, _ := newJobService(t)
	ctx := context.Background()
	job := postJob(t, svc, "Go Developer")

	_, err := svc.Reject(ctx, admin, job.ID, "spam")
	require.NoError(t, err)

	_, err = svc.Approve(ctx, admin, job.ID)
	assert.True(t, errors.Is(err, apperrors.ErrIllegalTransition))

	_, err = svc.Approve(ctx, alumnus, job.ID)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
}

func TestJobService_ApplyOncePerStudent(t *testing.T) {
	svc, _, _ := newJobService(t)
	ctx := context.Background()
	job := postJob(t, svc, "Go Developer")

	_, err := svc.Apply(ctx, student, job.ID, &dto.ApplyJobRequest{})
	assert.True(t, errors.Is(err, apperrors.ErrNotApproved), "unapproved jobs take no applications")

	_, err = svc.Approve(ctx, admin, job.ID)
	require.NoError(t, err)

	app, err := svc.Apply(ctx, student, job.ID, &dto.ApplyJobRequest{CoverLetter: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.Equal(t, alumnus.ID, app.PosterID)

	_, err = svc.Apply(ctx, student, job.ID, &dto.ApplyJobRequest{})
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyApplied))

	_, err = svc.Apply(ctx, alumnus, job.ID, &dto.ApplyJobRequest{})
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	got, err := svc.Get(ctx, student, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ApplicationCount)
	assert.True(t, got.HasApplied)

	assert.Len(t, svc.MyApplications(ctx, student, query.Criteria{}), 1)
}

func TestJobService_ConcurrentApplicationsAreCounted(t *testing.T) {
	svc, repos, _ := newJobService(t)
	ctx := context.Background()
	job := postJob(t, svc, "Go Developer")
	_, err := svc.Approve(ctx, admin, job.ID)
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("student-%d", i+100)
		saveUser(t, repos, models.User{ID: id, RoleType: models.RoleStudent, IsActive: true})
		wg.Add(1)
		go func(actor Actor) {
			defer wg.Done()
			_, err := svc.Apply(ctx, actor, job.ID, &dto.ApplyJobRequest{})
			assert.NoError(t, err)
		}(Actor{ID: id, Role: models.RoleStudent})
	}
	wg.Wait()

	stored, err := repos.Jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, n, stored.ApplicationCount)
}

func TestJobService_ApplicationLifecycle(t *testing.T) {
	svc, _, _ := newJobService(t)
	ctx := context.Background()
	job := postJob(t, svc, "Go Developer")
	_, err := svc.Approve(ctx, admin, job.ID)
	require.NoError(t, err)
	app, err := svc.Apply(ctx, student, job.ID, &dto.ApplyJobRequest{})
	require.NoError(t, err)

	_, err = svc.UpdateApplicationStatus(ctx, student, app.ID, models.ApplicationAccepted)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	updated, err := svc.UpdateApplicationStatus(ctx, alumnus, app.ID, models.ApplicationReviewed)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationReviewed, updated.Status)
	assert.Equal(t, "Sam Student", updated.ApplicantName)

	_, err = svc.UpdateApplicationStatus(ctx, alumnus, app.ID, models.ApplicationAccepted)
	require.NoError(t, err)

	_, err = svc.UpdateApplicationStatus(ctx, alumnus, app.ID, models.ApplicationReviewed)
	assert.True(t, errors.Is(err, apperrors.ErrIllegalTransition))

	apps, err := svc.JobApplications(ctx, alumnus, job.ID, query.Criteria{})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Go Developer", apps[0].JobTitle)

	_, err = svc.JobApplications(ctx, student, job.ID, query.Criteria{})
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
}

func TestJobService_ListDegradesToEmpty(t *testing.T) {
	repos, rec := fixture(t)
	repos.Jobs = brokenStore[models.Job]{Store: repos.Jobs}
	svc := NewJobService(repos, rec, nopLogger)

	jobs := svc.List(context.Background(), admin, query.Criteria{})
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

func TestJobService_DeleteRemovesApplications(t *testing.T) {
	svc, repos, _ := newJobService(t)
	ctx := context.Background()
	job := postJob(t, svc, "Go Developer")
	_, err := svc.Approve(ctx, admin, job.ID)
	require.NoError(t, err)
	_, err = svc.Apply(ctx, student, job.ID, &dto.ApplyJobRequest{})
	require.NoError(t, err)

	assert.True(t, errors.Is(svc.Delete(ctx, student, job.ID), apperrors.ErrPermissionDenied))
	require.NoError(t, svc.Delete(ctx, admin, job.ID))

	apps, err := repos.Applications.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, apps)
}
