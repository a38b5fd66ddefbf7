package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/query"
	"github.com/yigit/alumnihub/internal/pkg/realtime"
)

func newEventService(t *testing.T) (*eventServiceImpl, *recorder) {
	repos, rec := fixture(t)
	svc := NewEventService(repos, rec, nopLogger).(*eventServiceImpl)
	svc.now = fixedClock
	return svc, rec
}

func eventRequest(title string, startsIn time.Duration, capacity int) *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Title: title, Description: "Meet up", Type: "networking", StartsAt: fixedNow.Add(startsIn), Capacity: capacity,
	}
}

func TestEventService_CreateModeration(t *testing.T) {
	svc, rec := newEventService(t)
	ctx := context.Background()

	pending, err := svc.Create(ctx, alumnus, eventRequest("Reunion", 24*time.Hour, 0))
	require.NoError(t, err)
	assert.False(t, pending.IsApproved)
	assert.Equal(t, string(models.RoleAdmin), rec.named(realtime.EventNewEventCreated)[0].TargetRole)

	direct, err := svc.Create(ctx, admin, eventRequest("Career Fair", 48*time.Hour, 0))
	require.NoError(t, err)
	assert.True(t, direct.IsApproved)

	list := svc.List(ctx, student, query.Criteria{})
	require.Len(t, list, 1)
	assert.Equal(t, "Career Fair", list[0].Title)

	assert.Len(t, svc.List(ctx, alumnus, query.Criteria{}), 2, "organizers see their pending events")

	_, err = svc.Create(ctx, alumnus, eventRequest("Past", -time.Hour, 0))
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

func TestEventService_ListSortsUpcomingFirst(t *testing.T) {
	svc, _ := newEventService(t)
	ctx := context.Background()

	for _, req := range []*dto.CreateEventRequest{
		eventRequest("Later", 72*time.Hour, 0),
		eventRequest("Sooner", 24*time.Hour, 0),
	} {
		_, err := svc.Create(ctx, admin, req)
		require.NoError(t, err)
	}

	list := svc.List(ctx, student, query.Criteria{})
	require.Len(t, list, 2)
	assert.Equal(t, "Sooner", list[0].Title)

	list = svc.List(ctx, student, query.Criteria{Sort: "title"})
	assert.Equal(t, "Later", list[0].Title)
}

func TestEventService_CapacityIsEnforced(t *testing.T) {
	svc, _ := newEventService(t)
	ctx := context.Background()

	event, err := svc.Create(ctx, admin, eventRequest("Workshop", time.Hour, 1))
	require.NoError(t, err)

	reg, err := svc.Register(ctx, student, event.ID)
	require.NoError(t, err)
	assert.True(t, reg.Registered)
	assert.Equal(t, 0, reg.SeatsLeft)

	_, err = svc.Register(ctx, student, event.ID)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyRegistered))

	_, err = svc.Register(ctx, alumnus, event.ID)
	assert.True(t, errors.Is(err, apperrors.ErrEventFull))

	reg, err = svc.Unregister(ctx, student, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.SeatsLeft)

	reg, err = svc.Unregister(ctx, student, event.ID)
	require.NoError(t, err, "unregistering twice is a no-op")
	assert.False(t, reg.Registered)

	_, err = svc.Register(ctx, alumnus, event.ID)
	assert.NoError(t, err)
}

func TestEventService_UnapprovedEventTakesNoRegistrations(t *testing.T) {
	svc, _ := newEventService(t)
	ctx := context.Background()

	event, err := svc.Create(ctx, alumnus, eventRequest("Webinar", time.Hour, 0))
	require.NoError(t, err)

	_, err = svc.Register(ctx, student, event.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotApproved))

	_, err = svc.Approve(ctx, admin, event.ID)
	require.NoError(t, err)
	_, err = svc.Register(ctx, student, event.ID)
	assert.NoError(t, err)
}

func TestEventService_RegistrationClosesAtStart(t *testing.T) {
	svc, _ := newEventService(t)
	ctx := context.Background()

	started := models.Event{
		ID:         "started",
		Title:      "Kickoff",
		IsApproved: true,
		IsActive:   true,
		StartsAt:   fixedNow.Add(-time.Minute),
	}
	started.Touch(fixedNow)
	require.NoError(t, svc.events.Save(ctx, started))

	_, err := svc.Register(ctx, student, "started")
	assert.True(t, errors.Is(err, apperrors.ErrConflict), "got %v", err)

	got, err := svc.events.Get(ctx, "started")
	require.NoError(t, err)
	assert.Empty(t, got.AttendeeIDs)
}
