package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/pkg/realtime"
)

type sentMail struct {
	to, subject, body string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to, subject, body})
	return f.err
}

func TestMailNotifier_VerificationDecisions(t *testing.T) {
	repos, rec := fixture(t)
	ctx := context.Background()
	saveUser(t, repos, models.User{
		ID:           "alumni-2",
		Email:        "pat@example.com",
		FirstName:    "Pat",
		LastName:     "Pending",
		RoleType:     models.RoleAlumni,
		IsActive:     true,
		Verification: models.ApprovalPending,
	})

	svc := newAdminService(t, repos, rec)
	_, err := svc.DecideVerification(ctx, admin, &dto.VerificationDecisionRequest{AlumniID: "alumni-2", Approved: boolPtr(false), Note: "Diploma <unreadable>"})
	require.NoError(t, err)

	sender := &fakeSender{}
	n := NewMailNotifier(repos.Users, sender, nopLogger)
	events := make(chan realtime.Event, 8)
	for _, ev := range rec.named(realtime.EventAuditLog) {
		events <- ev
	}
	close(events)
	n.Run(ctx, events)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "pat@example.com", sender.sent[0].to)
	assert.Contains(t, sender.sent[0].subject, "declined")
	assert.Contains(t, sender.sent[0].body, "Pat Pending")
	assert.Contains(t, sender.sent[0].body, "Diploma &lt;unreadable&gt;")
}

func TestMailNotifier_IgnoresUnrelatedEvents(t *testing.T) {
	repos, _ := fixture(t)
	sender := &fakeSender{}
	n := NewMailNotifier(repos.Users, sender, nopLogger)

	events := make(chan realtime.Event, 4)
	events <- realtime.Event{Name: realtime.EventAuditLog, Data: models.AuditLog{Action: ActionApprove, EntityRef: "job-1"}}
	events <- realtime.Event{Name: realtime.EventAuditLog, Data: models.AuditLog{Action: ActionVerifyAlumni, EntityRef: "missing"}}
	events <- realtime.Event{Name: realtime.EventNewMessage, Data: "hello"}
	close(events)
	n.Run(context.Background(), events)

	assert.Empty(t, sender.sent)
}

func TestMailNotifier_RegistrationAndSendFailure(t *testing.T) {
	repos, _ := fixture(t)
	sender := &fakeSender{err: errors.New("smtp down")}
	n := NewMailNotifier(repos.Users, sender, nopLogger)

	events := make(chan realtime.Event, 1)
	events <- realtime.Event{
		Name: realtime.EventNewAlumniVerification,
		Data: dto.FromUser(models.User{Email: "new@example.com", FirstName: "Nia", LastName: "New"}),
	}
	close(events)

	assert.NotPanics(t, func() { n.Run(context.Background(), events) })
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "new@example.com", sender.sent[0].to)
	assert.Contains(t, sender.sent[0].body, "Nia New")
	assert.ElementsMatch(t, []string{realtime.EventNewAlumniVerification, realtime.EventAuditLog}, n.Events())
}
