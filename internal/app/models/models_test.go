package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/alumnihub/internal/pkg/apperrors"
)

func TestParseRole(t *testing.T) {
	for in, want := range map[string]RoleType{"student": RoleStudent, " ALUMNI ": RoleAlumni, "Admin": RoleAdmin} {
		got, err := ParseRole(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseRole("INSTRUCTOR")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidRole))
}

func TestJob_UnapprovedNeverActive(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	assert.False(t, Job{IsActive: true}.CountsAsActive(now))
	assert.True(t, Job{IsActive: true, IsApproved: true}.CountsAsActive(now))
	assert.False(t, Job{IsActive: true, IsApproved: true, ExpiresAt: &past}.CountsAsActive(now))
	assert.False(t, Event{IsActive: true}.CountsAsActive())
}

func TestStory_ToggleLike(t *testing.T) {
	s := Story{Likes: 4}

	assert.True(t, s.ToggleLike("u1"))
	assert.Equal(t, 5, s.Likes)
	assert.True(t, s.LikedByUser("u1"))

	assert.False(t, s.ToggleLike("u1"))
	assert.Equal(t, 4, s.Likes)
	assert.False(t, s.LikedByUser("u1"))
}

func TestEvent_SeatsLeft(t *testing.T) {
	assert.Equal(t, -1, Event{}.SeatsLeft())
	assert.Equal(t, 1, Event{Capacity: 2, AttendeeIDs: []string{"a"}}.SeatsLeft())
	assert.Equal(t, 0, Event{Capacity: 1, AttendeeIDs: []string{"a", "b"}}.SeatsLeft())
}

func TestStatusTables(t *testing.T) {
	assert.NoError(t, MentorshipTransitions.Advance(MentorshipPending, MentorshipAccepted))
	assert.NoError(t, MentorshipTransitions.Advance(MentorshipAccepted, MentorshipCompleted))
	assert.Error(t, MentorshipTransitions.Advance(MentorshipPending, MentorshipCompleted))
	assert.Error(t, MentorshipTransitions.Advance(MentorshipRejected, MentorshipAccepted))

	assert.NoError(t, DeliveryTransitions.Advance(DeliverySent, DeliveryRead))
	assert.Error(t, DeliveryTransitions.Advance(DeliveryRead, DeliveryDelivered))

	assert.Error(t, ApprovalTransitions.Advance(ApprovalApproved, ApprovalRejected))
	assert.Error(t, TaskTransitions.Advance(TaskCompleted, TaskInProgress))
}

func TestThreadKey_IsSymmetric(t *testing.T) {
	assert.Equal(t, ThreadKey("b", "a"), ThreadKey("a", "b"))
}
