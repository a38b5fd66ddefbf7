package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/realtime"
)

// Audited actions
const (
	ActionApprove          = "approve"
	ActionReject           = "reject"
	ActionDelete           = "delete"
	ActionFeature          = "feature"
	ActionVerifyAlumni     = "verify_alumni"
	ActionRejectAlumni     = "reject_alumni"
	ActionDeactivateUser   = "deactivate_user"
	ActionActivateUser     = "activate_user"
	ActionAnnounce         = "announce"
	ActionCreateWorkflow   = "create_workflow"
	ActionStartWorkflow    = "start_workflow"
	ActionCompleteStep     = "complete_step"
	ActionCancelWorkflow   = "cancel_workflow"
	ActionCreateTask       = "create_task"
	ActionAssignTask       = "assign_task"
	ActionUpdateTaskStatus = "update_task_status"
)

// auditor writes an AuditLog for every admin mutation and pushes it to admins.
// Failures are logged; they never fail the mutation that triggered them.
type auditor struct {
	store     repositories.Store[models.AuditLog]
	publisher realtime.Publisher
	log       zerolog.Logger
	now       clock
}

func newAuditor(store repositories.Store[models.AuditLog], publisher realtime.Publisher, log zerolog.Logger) *auditor {
	return &auditor{store: store, publisher: publisher, log: log, now: utcNow}
}

func (a *auditor) record(ctx context.Context, actor Actor, action, entityType, entityID, severity string, details map[string]string) {
	if severity == "" {
		severity = models.SeverityInfo
	}
	entry := models.AuditLog{
		ID:         models.NewID(),
		ActorID:    actor.ID,
		Action:     action,
		EntityType: entityType,
		EntityRef:  entityID,
		Details:    details,
		Severity:   severity,
	}
	entry.Touch(a.now())

	if err := a.store.Save(ctx, entry); err != nil {
		a.log.Error().Err(err).Str("action", action).Str("entityId", entityID).Msg("Failed to write audit log")
		return
	}
	a.publisher.Publish(realtime.Event{Name: realtime.EventAuditLog, Data: entry}.ToRole(string(models.RoleAdmin)))
}

// details builds an audit detail map from key/value pairs, skipping empty values
func details(kv ...string) map[string]string {
	out := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			out[kv[i]] = kv[i+1]
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
