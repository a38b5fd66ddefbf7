package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/email"
	"github.com/yigit/alumnihub/internal/pkg/realtime"
)

// MailNotifier e-mails alumni about their registration and verification
type MailNotifier struct {
	users  repositories.UserStore
	sender email.Sender
	logger zerolog.Logger
}

// NewMailNotifier creates a new MailNotifier
func NewMailNotifier(users repositories.UserStore, sender email.Sender, logger zerolog.Logger) *MailNotifier {
	return &MailNotifier{users: users, sender: sender, logger: logger}
}

// Events lists the hub events Run expects
func (n *MailNotifier) Events() []string {
	return []string{realtime.EventNewAlumniVerification, realtime.EventAuditLog}
}

// Run sends mail for each relevant event until events is closed
func (n *MailNotifier) Run(ctx context.Context, events <-chan realtime.Event) {
	for ev := range events {
		n.handle(ctx, ev)
	}
}

func (n *MailNotifier) handle(ctx context.Context, ev realtime.Event) {
	switch ev.Name {
	case realtime.EventNewAlumniVerification:
		u, ok := ev.Data.(dto.UserResponse)
		if !ok {
			return
		}
		subject, body := email.RegistrationReceived(u.FullName)
		n.send(u.Email, subject, body)

	case realtime.EventAuditLog:
		entry, ok := ev.Data.(models.AuditLog)
		if !ok || (entry.Action != ActionVerifyAlumni && entry.Action != ActionRejectAlumni) {
			return
		}
		user, err := n.users.Get(ctx, entry.EntityRef)
		if err != nil {
			n.logger.Warn().Err(err).Str("userID", entry.EntityRef).Msg("Verification mail skipped")
			return
		}
		subject, body := email.VerificationDecision(user.FullName(), entry.Action == ActionVerifyAlumni, entry.Details["note"])
		n.send(user.Email, subject, body)
	}
}

func (n *MailNotifier) send(to, subject, body string) {
	if err := n.sender.Send(to, subject, body); err != nil {
		n.logger.Error().Err(err).Str("to", to).Msg("Failed to send notification email")
	}
}
