package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/query"
	"github.com/yigit/alumnihub/internal/pkg/realtime"
)

func newAdminService(t *testing.T, repos *repositories.Repositories, rec *recorder) *adminServiceImpl {
	svc := NewAdminService(repos, nil, time.Minute, rec, nopLogger).(*adminServiceImpl)
	svc.now = fixedClock
	return svc
}

func boolPtr(b bool) *bool { return &b }

func TestAdminService_Stats(t *testing.T) {
	repos, rec := fixture(t)
	ctx := context.Background()
	saveUser(t, repos, models.User{ID: "alumni-2", RoleType: models.RoleAlumni, IsActive: true, Verification: models.ApprovalPending})

	past := fixedNow.Add(-time.Hour)
	for _, j := range []models.Job{
		{ID: "j1", IsApproved: true, IsActive: true, Approval: models.ApprovalApproved},
		{ID: "j2", Approval: models.ApprovalPending, IsActive: true},
		{ID: "j3", IsApproved: true, IsActive: true, Approval: models.ApprovalApproved, ExpiresAt: &past},
	} {
		require.NoError(t, repos.Jobs.Save(ctx, j))
	}
	require.NoError(t, repos.Tasks.Save(ctx, models.Task{ID: "t1", Status: models.TaskInProgress}))
	require.NoError(t, repos.Tasks.Save(ctx, models.Task{ID: "t2", Status: models.TaskCompleted}))

	stats := newAdminService(t, repos, rec).Stats(ctx)
	assert.Equal(t, 4, stats.TotalUsers)
	assert.Equal(t, 2, stats.TotalAlumni)
	assert.Equal(t, 1, stats.VerifiedAlumni)
	assert.Equal(t, 1, stats.PendingVerifications)
	assert.Equal(t, 3, stats.TotalJobs)
	assert.Equal(t, 1, stats.ActiveJobs, "expired and unapproved jobs are not active")
	assert.Equal(t, 1, stats.PendingJobs)
	assert.Equal(t, 1, stats.OpenTasks)
	assert.Equal(t, fixedNow, stats.GeneratedAt)
}

func TestAdminService_StatsDegradeOnFailedFetch(t *testing.T) {
	repos, rec := fixture(t)
	ctx := context.Background()
	require.NoError(t, repos.Events.Save(ctx, models.Event{ID: "e1", IsApproved: true, IsActive: true, StartsAt: fixedNow.Add(time.Hour)}))
	repos.Jobs = brokenStore[models.Job]{Store: repos.Jobs}

	stats := newAdminService(t, repos, rec).Stats(ctx)
	assert.Zero(t, stats.TotalJobs)
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 1, stats.UpcomingEvents)
}

func TestAdminService_Verification(t *testing.T) {
	repos, rec := fixture(t)
	ctx := context.Background()
	saveUser(t, repos, models.User{ID: "alumni-2", FirstName: "Pat", RoleType: models.RoleAlumni, IsActive: true, Verification: models.ApprovalPending})
	svc := newAdminService(t, repos, rec)

	pending := svc.PendingVerifications(ctx, query.Criteria{})
	require.Len(t, pending, 1)
	assert.Equal(t, "alumni-2", pending[0].ID)

	_, err := svc.DecideVerification(ctx, student, &dto.VerificationDecisionRequest{AlumniID: "alumni-2", Approved: boolPtr(true)})
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	_, err = svc.DecideVerification(ctx, admin, &dto.VerificationDecisionRequest{AlumniID: student.ID, Approved: boolPtr(true)})
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))

	user, err := svc.DecideVerification(ctx, admin, &dto.VerificationDecisionRequest{AlumniID: "alumni-2", Approved: boolPtr(true), Note: "diploma checked"})
	require.NoError(t, err)
	assert.Equal(t, string(models.ApprovalApproved), user.Verification)
	assert.Empty(t, svc.PendingVerifications(ctx, query.Criteria{}))

	_, err = svc.DecideVerification(ctx, admin, &dto.VerificationDecisionRequest{AlumniID: "alumni-2", Approved: boolPtr(false)})
	assert.True(t, errors.Is(err, apperrors.ErrVerificationDecided))

	logs := svc.AuditLogs(ctx, query.Criteria{Filters: map[string]string{"action": ActionVerifyAlumni}})
	require.Len(t, logs, 1)
	assert.Equal(t, "diploma checked", logs[0].Details["note"])
	assert.Len(t, rec.named(realtime.EventAuditLog), 1)
}

func TestAdminService_SetUserActive(t *testing.T) {
	repos, rec := fixture(t)
	ctx := context.Background()
	svc := newAdminService(t, repos, rec)

	_, err := svc.SetUserActive(ctx, admin, admin.ID, false)
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))

	user, err := svc.SetUserActive(ctx, admin, student.ID, false)
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	logs := svc.AuditLogs(ctx, query.Criteria{})
	require.Len(t, logs, 1)
	assert.Equal(t, models.SeverityCritical, logs[0].Severity)

	inactive := svc.Users(ctx, query.Criteria{Filters: map[string]string{"active": "false"}})
	require.Len(t, inactive, 1)
	assert.Equal(t, student.ID, inactive[0].ID)
}

func TestAdminService_Report(t *testing.T) {
	repos, rec := fixture(t)
	ctx := context.Background()

	require.NoError(t, repos.Jobs.Save(ctx, models.Job{ID: "j1", Type: "full-time", IsApproved: true, ApplicationCount: 3}))
	require.NoError(t, repos.Jobs.Save(ctx, models.Job{ID: "j2", Type: "internship"}))
	require.NoError(t, repos.Events.Save(ctx, models.Event{ID: "e1", Type: "workshop", Capacity: 4, AttendeeIDs: []string{"a"}}))
	require.NoError(t, repos.Events.Save(ctx, models.Event{ID: "e2", Type: "webinar", AttendeeIDs: []string{"a", "b"}}))

	report := newAdminService(t, repos, rec).Report(ctx)
	assert.Equal(t, map[string]int{"ADMIN": 1, "STUDENT": 1, "ALUMNI": 1}, report.UsersByRole)
	assert.Equal(t, map[string]int{"Software": 1}, report.AlumniByIndustry)
	assert.Equal(t, 100.0, report.VerificationRate)
	assert.Equal(t, 50.0, report.JobApprovalRate)
	assert.Equal(t, 1.5, report.ApplicationsPerJob)
	assert.Equal(t, 25.0, report.EventFillRate, "unlimited events are left out of the fill rate")
	assert.Zero(t, report.MessageReadRate)
}

func TestAdminService_InvalidateOnReturnsWhenChannelCloses(t *testing.T) {
	defer goleak.VerifyNone(t)

	repos, rec := fixture(t)
	svc := newAdminService(t, repos, rec)

	events := make(chan realtime.Event, 1)
	done := make(chan struct{})
	go func() {
		svc.InvalidateOn(context.Background(), events)
		close(done)
	}()

	events <- realtime.Event{Name: realtime.EventNewJobPosted}
	close(events)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("InvalidateOn did not return")
	}
}

// memStats is an in-process stand-in for the Redis stats cache. onSet runs
// just before a write lands.
type memStats struct {
	mu    sync.Mutex
	data  map[string][]byte
	onSet func()
}

func (m *memStats) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	b, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *memStats) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	if m.onSet != nil {
		m.onSet()
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = b
	m.mu.Unlock()
	return nil
}

func (m *memStats) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memStats) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

func TestAdminService_StatsAreCachedUntilInvalidated(t *testing.T) {
	repos, rec := fixture(t)
	ctx := context.Background()
	store := &memStats{data: map[string][]byte{}}
	svc := newAdminService(t, repos, rec)
	svc.cache = store

	assert.Equal(t, 3, svc.Stats(ctx).TotalUsers)
	require.True(t, store.has(StatsCacheKey))

	saveUser(t, repos, models.User{ID: "student-2", RoleType: models.RoleStudent, IsActive: true})
	assert.Equal(t, 3, svc.Stats(ctx).TotalUsers, "served from cache")

	events := make(chan realtime.Event, 1)
	events <- realtime.Event{Name: realtime.EventNewJobPosted}
	close(events)
	svc.InvalidateOn(ctx, events)

	assert.False(t, store.has(StatsCacheKey))
	assert.Equal(t, 4, svc.Stats(ctx).TotalUsers)
}

func TestAdminService_InvalidationDuringComputeDropsTheWrite(t *testing.T) {
	repos, rec := fixture(t)
	ctx := context.Background()
	svc := newAdminService(t, repos, rec)

	store := &memStats{data: map[string][]byte{}}
	store.onSet = func() {
		store.onSet = nil
		events := make(chan realtime.Event, 1)
		events <- realtime.Event{Name: realtime.EventNewMessage}
		close(events)
		svc.InvalidateOn(ctx, events)
	}
	svc.cache = store

	svc.Stats(ctx)
	assert.False(t, store.has(StatsCacheKey), "stats computed before the invalidation must not stay cached")

	svc.Stats(ctx)
	assert.True(t, store.has(StatsCacheKey))
}
