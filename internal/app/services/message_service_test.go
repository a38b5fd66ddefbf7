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

func newMessageService(t *testing.T) (*messageServiceImpl, *recorder) {
	repos, rec := fixture(t)
	svc := NewMessageService(repos, rec, nopLogger).(*messageServiceImpl)
	svc.now = fixedClock
	return svc, rec
}

// tick advances the service clock by a second per call
func tick(svc *messageServiceImpl) {
	at := fixedNow
	svc.now = func() time.Time {
		at = at.Add(time.Second)
		return at
	}
}

func TestMessageService_Send(t *testing.T) {
	svc, rec := newMessageService(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, student, &dto.SendMessageRequest{ReceiverID: student.ID, Content: "hi me"})
	assert.True(t, errors.Is(err, apperrors.ErrSelfMessage))

	_, err = svc.Send(ctx, student, &dto.SendMessageRequest{ReceiverID: "ghost", Content: "hi"})
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))

	msg, err := svc.Send(ctx, student, &dto.SendMessageRequest{ReceiverID: alumnus.ID, Content: " Hello "})
	require.NoError(t, err)
	assert.Equal(t, "Hello", msg.Content)
	assert.Equal(t, models.DeliverySent, msg.Status)
	assert.Equal(t, models.ThreadKey(student.ID, alumnus.ID), msg.ThreadID)

	events := rec.named(realtime.EventNewMessage)
	require.Len(t, events, 1)
	assert.Equal(t, alumnus.ID, events[0].TargetUserID)
}

func TestMessageService_ConversationOldestFirst(t *testing.T) {
	svc, _ := newMessageService(t)
	tick(svc)
	ctx := context.Background()

	for _, m := range []struct {
		from Actor
		to   string
		text string
	}{
		{student, alumnus.ID, "first"},
		{alumnus, student.ID, "second"},
		{admin, student.ID, "elsewhere"},
		{student, alumnus.ID, "third"},
	} {
		_, err := svc.Send(ctx, m.from, &dto.SendMessageRequest{ReceiverID: m.to, Content: m.text})
		require.NoError(t, err)
	}

	conv, err := svc.Conversation(ctx, alumnus, student.ID, query.Criteria{})
	require.NoError(t, err)
	require.Len(t, conv, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{conv[0].Content, conv[1].Content, conv[2].Content})

	summaries := svc.Conversations(ctx, student)
	require.Len(t, summaries, 2)
	assert.Equal(t, alumnus.ID, summaries[0].WithUserID, "most recent conversation first")
	assert.Equal(t, "third", summaries[0].LastMessage.Content)
	assert.Equal(t, 1, summaries[0].UnreadCount)
	assert.Equal(t, 1, summaries[1].UnreadCount)
	assert.Equal(t, 2, svc.UnreadCount(ctx, student.ID))
}

func TestMessageService_DeliveryIsForwardOnly(t *testing.T) {
	svc, rec := newMessageService(t)
	ctx := context.Background()

	msg, err := svc.Send(ctx, student, &dto.SendMessageRequest{ReceiverID: alumnus.ID, Content: "ping"})
	require.NoError(t, err)

	_, err = svc.MarkRead(ctx, student, msg.ID)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied), "only the receiver marks read")

	delivered, err := svc.MarkDelivered(ctx, alumnus, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryDelivered, delivered.Status)
	require.NotNil(t, delivered.DeliveredAt)

	_, err = svc.MarkDelivered(ctx, alumnus, msg.ID)
	require.NoError(t, err)
	assert.Len(t, rec.named(realtime.EventMessageDelivered), 1, "a repeated ack publishes nothing")

	read, err := svc.MarkRead(ctx, alumnus, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryRead, read.Status)
	assert.Equal(t, student.ID, rec.named(realtime.EventMessageRead)[0].TargetUserID)

	_, err = svc.MarkDelivered(ctx, alumnus, msg.ID)
	assert.True(t, errors.Is(err, apperrors.ErrIllegalTransition))
}

func TestMessageService_MarkConversationRead(t *testing.T) {
	svc, _ := newMessageService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Send(ctx, student, &dto.SendMessageRequest{ReceiverID: alumnus.ID, Content: "hey"})
		require.NoError(t, err)
	}
	_, err := svc.Send(ctx, alumnus, &dto.SendMessageRequest{ReceiverID: student.ID, Content: "back"})
	require.NoError(t, err)

	n, err := svc.MarkConversationRead(ctx, alumnus, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Zero(t, svc.UnreadCount(ctx, alumnus.ID))
	assert.Equal(t, 1, svc.UnreadCount(ctx, student.ID))
}

func TestMessageService_Announcements(t *testing.T) {
	svc, rec := newMessageService(t)
	tick(svc)
	ctx := context.Background()

	_, err := svc.CreateAnnouncement(ctx, student, &dto.CreateAnnouncementRequest{Title: "x", Body: "y"})
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	_, err = svc.CreateAnnouncement(ctx, admin, &dto.CreateAnnouncementRequest{Title: "Pinned", Body: "b", Pinned: true})
	require.NoError(t, err)
	_, err = svc.CreateAnnouncement(ctx, admin, &dto.CreateAnnouncementRequest{Title: "Alumni only", Body: "b", Audience: "alumni"})
	require.NoError(t, err)
	_, err = svc.CreateAnnouncement(ctx, admin, &dto.CreateAnnouncementRequest{Title: "Latest", Body: "b"})
	require.NoError(t, err)

	events := rec.named(realtime.EventNewAnnouncement)
	require.Len(t, events, 3)
	assert.Equal(t, string(models.RoleAlumni), events[1].TargetRole)

	forStudent := svc.Announcements(ctx, student, query.Criteria{})
	require.Len(t, forStudent, 2)
	assert.Equal(t, "Pinned", forStudent[0].Title)
	assert.Equal(t, "Latest", forStudent[1].Title)

	assert.Len(t, svc.Announcements(ctx, alumnus, query.Criteria{}), 3)
	assert.Len(t, rec.named(realtime.EventAuditLog), 3)
}
