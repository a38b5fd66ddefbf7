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

// EventService defines event, registration and event moderation operations
type EventService interface {
	List(ctx context.Context, actor Actor, criteria query.Criteria) []dto.EventResponse
	Get(ctx context.Context, actor Actor, eventID string) (*dto.EventResponse, error)
	Create(ctx context.Context, actor Actor, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	Register(ctx context.Context, actor Actor, eventID string) (*dto.RegistrationResponse, error)
	Unregister(ctx context.Context, actor Actor, eventID string) (*dto.RegistrationResponse, error)
	Approve(ctx context.Context, actor Actor, eventID string) (*dto.EventResponse, error)
	Reject(ctx context.Context, actor Actor, eventID, reason string) (*dto.EventResponse, error)
	Delete(ctx context.Context, actor Actor, eventID string) error
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	events    repositories.Store[models.Event]
	publisher realtime.Publisher
	audit     *auditor
	logger    zerolog.Logger
	now       clock

	// guards attendee lists
	mu sync.Mutex
}

// NewEventService creates a new EventService
func NewEventService(repos *repositories.Repositories, publisher realtime.Publisher, logger zerolog.Logger) EventService {
	return &eventServiceImpl{
		events:    repos.Events,
		publisher: publisher,
		audit:     newAuditor(repos.AuditLogs, publisher, logger),
		logger:    logger,
		now:       utcNow,
	}
}

func eventResponse(e models.Event, userID string) dto.EventResponse {
	return dto.EventResponse{
		Event:         e,
		AttendeeCount: e.AttendeeCount(),
		SeatsLeft:     e.SeatsLeft(),
		IsRegistered:  e.IsRegistered(userID),
	}
}

// visible: non-admins see approved events, plus the ones they organize
func (s *eventServiceImpl) visible(actor Actor, e models.Event) bool {
	return actor.IsAdmin() || e.OrganizerID == actor.ID || e.CountsAsActive()
}

// List returns the events visible to the actor, soonest first by default
func (s *eventServiceImpl) List(ctx context.Context, actor Actor, criteria query.Criteria) []dto.EventResponse {
	events := listOrEmpty[models.Event](ctx, s.events, s.logger, "events")

	visible := make([]models.Event, 0, len(events))
	for _, e := range events {
		if s.visible(actor, e) {
			visible = append(visible, e)
		}
	}

	view := eventSchema.Apply(visible, defaultSort(criteria, "upcoming"))
	out := make([]dto.EventResponse, 0, len(view))
	for _, e := range view {
		out = append(out, eventResponse(e, actor.ID))
	}
	return out
}

// Get returns one event
func (s *eventServiceImpl) Get(ctx context.Context, actor Actor, eventID string) (*dto.EventResponse, error) {
	event, err := getOr404[models.Event](ctx, s.events, eventID, "Event")
	if err != nil {
		return nil, err
	}
	if !s.visible(actor, event) {
		return nil, apperrors.NewResourceNotFoundError("Event not found")
	}
	resp := eventResponse(event, actor.ID)
	return &resp, nil
}

// Create schedules an event. Events created by administrators skip moderation.
func (s *eventServiceImpl) Create(ctx context.Context, actor Actor, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	now := s.now()
	if !req.StartsAt.After(now) {
		return nil, apperrors.NewBadRequestError("startsAt must be in the future")
	}
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		return nil, apperrors.NewBadRequestError("endsAt must not be before startsAt")
	}

	event := models.Event{
		ID:          models.NewID(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Type:        req.Type,
		Location:    req.Location,
		IsVirtual:   req.IsVirtual,
		MeetingURL:  req.MeetingURL,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
		OrganizerID: actor.ID,
		Approval:    models.ApprovalPending,
		IsActive:    true,
	}
	if actor.IsAdmin() {
		event.Approval = models.ApprovalApproved
		event.IsApproved = true
	}
	event.Touch(now)

	if err := s.events.Save(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("organizer", actor.ID).Msg("Failed to create event")
		return nil, err
	}

	notice := realtime.Event{Name: realtime.EventNewEventCreated, Data: event}
	if !event.IsApproved {
		notice = notice.ToRole(string(models.RoleAdmin))
	}
	s.publisher.Publish(notice)
	s.logger.Info().Str("eventID", event.ID).Bool("approved", event.IsApproved).Msg("Event created")

	resp := eventResponse(event, actor.ID)
	return &resp, nil
}

// Register takes a seat for the actor
func (s *eventServiceImpl) Register(ctx context.Context, actor Actor, eventID string) (*dto.RegistrationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := getOr404[models.Event](ctx, s.events, eventID, "Event")
	if err != nil {
		return nil, err
	}
	if !event.CountsAsActive() {
		return nil, apperrors.NewCustomError(apperrors.ErrNotApproved, "This event is not open for registration")
	}
	if !event.Upcoming(s.now()) {
		return nil, apperrors.NewConflictError("Registration closes when the event starts")
	}
	if event.IsRegistered(actor.ID) {
		return nil, apperrors.NewCustomError(apperrors.ErrAlreadyRegistered, "You are already registered for this event")
	}
	if event.SeatsLeft() == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrEventFull, "This event is full")
	}

	event.AttendeeIDs = append(event.AttendeeIDs, actor.ID)
	event.Touch(s.now())
	if err := s.events.Save(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("eventID", eventID).Msg("Failed to register attendee")
		return nil, err
	}

	s.logger.Info().Str("eventID", eventID).Str("userID", actor.ID).Msg("Registered for event")
	return registration(event, true), nil
}

// Unregister frees the actor's seat. Unregistering twice is a no-op.
func (s *eventServiceImpl) Unregister(ctx context.Context, actor Actor, eventID string) (*dto.RegistrationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := getOr404[models.Event](ctx, s.events, eventID, "Event")
	if err != nil {
		return nil, err
	}
	if !event.IsRegistered(actor.ID) {
		return registration(event, false), nil
	}

	kept := make([]string, 0, len(event.AttendeeIDs))
	for _, id := range event.AttendeeIDs {
		if id != actor.ID {
			kept = append(kept, id)
		}
	}
	event.AttendeeIDs = kept
	event.Touch(s.now())
	if err := s.events.Save(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("eventID", eventID).Msg("Failed to unregister attendee")
		return nil, err
	}
	return registration(event, false), nil
}

func registration(e models.Event, registered bool) *dto.RegistrationResponse {
	return &dto.RegistrationResponse{
		EventID:       e.ID,
		Registered:    registered,
		AttendeeCount: e.AttendeeCount(),
		SeatsLeft:     e.SeatsLeft(),
	}
}

func (s *eventServiceImpl) decide(ctx context.Context, actor Actor, eventID string, approve bool, reason string) (*dto.EventResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only administrators can moderate events")
	}
	event, err := getOr404[models.Event](ctx, s.events, eventID, "Event")
	if err != nil {
		return nil, err
	}

	next, err := moderate(event.Approval, approve)
	if err != nil {
		return nil, err
	}
	changed := next != event.Approval
	event.Approval = next
	event.IsApproved = next == models.ApprovalApproved
	event.Touch(s.now())
	if err := s.events.Save(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("eventID", eventID).Msg("Failed to save event decision")
		return nil, err
	}

	if changed {
		action := ActionReject
		if approve {
			action = ActionApprove
			s.publisher.Publish(realtime.Event{Name: realtime.EventNewEventCreated, Data: event})
		}
		s.audit.record(ctx, actor, action, "event", event.ID, models.SeverityInfo, details("title", event.Title, "reason", reason))
	}

	resp := eventResponse(event, actor.ID)
	return &resp, nil
}

// Approve opens an event for registration
func (s *eventServiceImpl) Approve(ctx context.Context, actor Actor, eventID string) (*dto.EventResponse, error) {
	return s.decide(ctx, actor, eventID, true, "")
}

// Reject declines an event
func (s *eventServiceImpl) Reject(ctx context.Context, actor Actor, eventID, reason string) (*dto.EventResponse, error) {
	return s.decide(ctx, actor, eventID, false, reason)
}

// Delete removes an event
func (s *eventServiceImpl) Delete(ctx context.Context, actor Actor, eventID string) error {
	event, err := getOr404[models.Event](ctx, s.events, eventID, "Event")
	if err != nil {
		return err
	}
	if !canManage(actor, event.OrganizerID) {
		return apperrors.NewForbiddenError("Only the organizer can delete this event")
	}
	if err := s.events.Delete(ctx, eventID); err != nil {
		s.logger.Error().Err(err).Str("eventID", eventID).Msg("Failed to delete event")
		return err
	}
	if actor.IsAdmin() {
		s.audit.record(ctx, actor, ActionDelete, "event", eventID, models.SeverityWarning, details("title", event.Title))
	}
	return nil
}
