package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
)

// Services defined in this package:
// - AuthService: registration, login and the current user
// - DirectoryService: alumni search and profiles
// - JobService: postings, applications and job moderation
// - EventService: events, registrations and event moderation
// - StoryService: success stories, likes and featuring
// - MentorshipService: mentorship requests and their lifecycle
// - MessageService: direct messages and announcements
// - AdminService: stats, verification, users, audit logs and reports
// - WorkflowService: admin workflows and tasks
// - DashboardService: per-role summaries

// Actor is the authenticated caller of a use case
type Actor struct {
	ID   string
	Role models.RoleType
}

// IsAdmin reports whether the actor has the ADMIN role
func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// clock is overridden in tests
type clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

// listOrEmpty loads a whole store. A failed fetch degrades to an empty list
// and is only logged, so one broken source never fails a list view.
func listOrEmpty[T models.Entity](ctx context.Context, store repositories.Store[T], log zerolog.Logger, what string) []T {
	items, err := store.List(ctx)
	if err != nil {
		log.Warn().Err(err).Str("source", what).Msg("List fetch failed, returning empty list")
		return []T{}
	}
	return items
}

// getOr404 loads a record, mapping a missing id to a not-found error naming the resource
func getOr404[T models.Entity](ctx context.Context, store repositories.Store[T], id, what string) (T, error) {
	item, err := store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return item, apperrors.NewResourceNotFoundError(what + " not found")
		}
		return item, err
	}
	return item, nil
}

// userNames resolves display names for a set of ids; unknown ids are skipped
func userNames(ctx context.Context, users repositories.UserStore, log zerolog.Logger) map[string]string {
	all := listOrEmpty[models.User](ctx, users, log, "users")
	names := make(map[string]string, len(all))
	for _, u := range all {
		names[u.ID] = u.FullName()
	}
	return names
}

// moderate returns the approval status an approve or reject decision moves to
func moderate(current models.ApprovalStatus, approve bool) (models.ApprovalStatus, error) {
	next := models.ApprovalRejected
	if approve {
		next = models.ApprovalApproved
	}
	if current == "" {
		current = models.ApprovalPending
	}
	if err := models.ApprovalTransitions.Advance(current, next); err != nil {
		return current, err
	}
	return next, nil
}

// canManage reports whether actor owns a record or is an administrator
func canManage(actor Actor, ownerID string) bool {
	return actor.IsAdmin() || (ownerID != "" && actor.ID == ownerID)
}
