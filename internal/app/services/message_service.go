package services

import (
	"context"
	"slices"
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

// MessageService defines direct message and announcement operations
type MessageService interface {
	Send(ctx context.Context, actor Actor, req *dto.SendMessageRequest) (*models.Message, error)
	Conversation(ctx context.Context, actor Actor, withUserID string, criteria query.Criteria) ([]models.Message, error)
	Conversations(ctx context.Context, actor Actor) []dto.ConversationSummary
	MarkDelivered(ctx context.Context, actor Actor, messageID string) (*models.Message, error)
	MarkRead(ctx context.Context, actor Actor, messageID string) (*models.Message, error)
	MarkConversationRead(ctx context.Context, actor Actor, withUserID string) (int, error)
	UnreadCount(ctx context.Context, userID string) int

	CreateAnnouncement(ctx context.Context, actor Actor, req *dto.CreateAnnouncementRequest) (*models.Announcement, error)
	Announcements(ctx context.Context, actor Actor, criteria query.Criteria) []models.Announcement
}

// messageServiceImpl implements MessageService
type messageServiceImpl struct {
	messages      repositories.Store[models.Message]
	announcements repositories.Store[models.Announcement]
	users         repositories.UserStore
	publisher     realtime.Publisher
	audit         *auditor
	logger        zerolog.Logger
	now           clock

	// guards delivery status updates
	mu sync.Mutex
}

// NewMessageService creates a new MessageService
func NewMessageService(repos *repositories.Repositories, publisher realtime.Publisher, logger zerolog.Logger) MessageService {
	return &messageServiceImpl{
		messages:      repos.Messages,
		announcements: repos.Announcements,
		users:         repos.Users,
		publisher:     publisher,
		audit:         newAuditor(repos.AuditLogs, publisher, logger),
		logger:        logger,
		now:           utcNow,
	}
}

// Send delivers a direct message to another active user
func (s *messageServiceImpl) Send(ctx context.Context, actor Actor, req *dto.SendMessageRequest) (*models.Message, error) {
	if req.ReceiverID == actor.ID {
		return nil, apperrors.NewCustomError(apperrors.ErrSelfMessage, "You cannot message yourself")
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.NewBadRequestError("content must not be blank")
	}

	receiver, err := getOr404[models.User](ctx, s.users, req.ReceiverID, "Receiver")
	if err != nil {
		return nil, err
	}
	if !receiver.IsActive {
		return nil, apperrors.NewResourceNotFoundError("Receiver not found")
	}

	thread := models.ThreadKey(actor.ID, receiver.ID)
	if req.ParentID != "" {
		parent, err := getOr404[models.Message](ctx, s.messages, req.ParentID, "Parent message")
		if err != nil {
			return nil, err
		}
		if parent.ThreadID != thread {
			return nil, apperrors.NewBadRequestError("parentId belongs to another conversation")
		}
	}

	msg := models.Message{
		ID:         models.NewID(),
		SenderID:   actor.ID,
		ReceiverID: receiver.ID,
		Content:    content,
		Status:     models.DeliverySent,
		ThreadID:   thread,
		ParentID:   req.ParentID,
	}
	msg.Touch(s.now())
	if err := s.messages.Save(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("receiverID", receiver.ID).Msg("Failed to save message")
		return nil, err
	}

	s.publisher.Publish(realtime.Event{Name: realtime.EventNewMessage, Data: msg}.ToUser(receiver.ID))
	s.logger.Debug().Str("messageID", msg.ID).Str("threadID", thread).Msg("Message sent")
	return &msg, nil
}

// Conversation returns the messages between the actor and another user, oldest first
func (s *messageServiceImpl) Conversation(ctx context.Context, actor Actor, withUserID string, criteria query.Criteria) ([]models.Message, error) {
	if _, err := getOr404[models.User](ctx, s.users, withUserID, "User"); err != nil {
		return nil, err
	}

	all := listOrEmpty[models.Message](ctx, s.messages, s.logger, "messages")
	thread := make([]models.Message, 0)
	for _, m := range all {
		if m.Between(actor.ID, withUserID) {
			thread = append(thread, m)
		}
	}
	return messageSchema.Apply(thread, defaultSort(criteria, "oldest")), nil
}

// Conversations summarizes the actor's inbox, most recent conversation first
func (s *messageServiceImpl) Conversations(ctx context.Context, actor Actor) []dto.ConversationSummary {
	all := listOrEmpty[models.Message](ctx, s.messages, s.logger, "messages")
	names := userNames(ctx, s.users, s.logger)

	byUser := make(map[string]*dto.ConversationSummary)
	order := make([]string, 0)
	for _, m := range all {
		if m.SenderID != actor.ID && m.ReceiverID != actor.ID {
			continue
		}
		other := m.Counterpart(actor.ID)
		conv, ok := byUser[other]
		if !ok {
			conv = &dto.ConversationSummary{
				ThreadID:     models.ThreadKey(actor.ID, other),
				WithUserID:   other,
				WithUserName: names[other],
			}
			byUser[other] = conv
			order = append(order, other)
		}
		if !m.CreatedAt.Before(conv.LastMessageAt) {
			conv.LastMessage = m
			conv.LastMessageAt = m.CreatedAt
		}
		if m.ReceiverID == actor.ID && m.Status != models.DeliveryRead {
			conv.UnreadCount++
		}
	}

	out := make([]dto.ConversationSummary, 0, len(order))
	for _, id := range order {
		out = append(out, *byUser[id])
	}
	slices.SortStableFunc(out, func(a, b dto.ConversationSummary) int {
		return b.LastMessageAt.Compare(a.LastMessageAt)
	})
	return out
}

// advance moves an incoming message forward. Moving to the current status is
// a no-op and publishes nothing.
func (s *messageServiceImpl) advance(ctx context.Context, actor Actor, messageID string, to models.DeliveryStatus) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, err := getOr404[models.Message](ctx, s.messages, messageID, "Message")
	if err != nil {
		return nil, err
	}
	if msg.ReceiverID != actor.ID {
		return nil, apperrors.NewForbiddenError("Only the receiver can update a message status")
	}
	if err := s.applyStatus(ctx, &msg, to); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *messageServiceImpl) applyStatus(ctx context.Context, msg *models.Message, to models.DeliveryStatus) error {
	if err := models.DeliveryTransitions.Advance(msg.Status, to); err != nil {
		return err
	}
	if msg.Status == to {
		return nil
	}

	now := s.now()
	if msg.DeliveredAt == nil {
		msg.DeliveredAt = &now
	}
	name := realtime.EventMessageDelivered
	if to == models.DeliveryRead {
		msg.ReadAt = &now
		name = realtime.EventMessageRead
	}
	msg.Status = to
	msg.Touch(now)
	if err := s.messages.Save(ctx, *msg); err != nil {
		s.logger.Error().Err(err).Str("messageID", msg.ID).Msg("Failed to update message status")
		return err
	}

	s.publisher.Publish(realtime.Event{Name: name, Data: *msg}.ToUser(msg.SenderID))
	return nil
}

// MarkDelivered acknowledges that a message reached the receiver
func (s *messageServiceImpl) MarkDelivered(ctx context.Context, actor Actor, messageID string) (*models.Message, error) {
	return s.advance(ctx, actor, messageID, models.DeliveryDelivered)
}

// MarkRead marks a message read
func (s *messageServiceImpl) MarkRead(ctx context.Context, actor Actor, messageID string) (*models.Message, error) {
	return s.advance(ctx, actor, messageID, models.DeliveryRead)
}

// MarkConversationRead reads every unread message from withUserID and returns how many changed
func (s *messageServiceImpl) MarkConversationRead(ctx context.Context, actor Actor, withUserID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.messages.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load messages")
		return 0, err
	}

	marked := 0
	for _, m := range all {
		if m.SenderID != withUserID || m.ReceiverID != actor.ID || m.Status == models.DeliveryRead {
			continue
		}
		if err := s.applyStatus(ctx, &m, models.DeliveryRead); err != nil {
			return marked, err
		}
		marked++
	}
	return marked, nil
}

// UnreadCount counts messages addressed to userID that were not read yet
func (s *messageServiceImpl) UnreadCount(ctx context.Context, userID string) int {
	all := listOrEmpty[models.Message](ctx, s.messages, s.logger, "messages")
	return query.Count(all, func(m models.Message) bool {
		return m.ReceiverID == userID && m.Status != models.DeliveryRead
	})
}

// CreateAnnouncement broadcasts a notice to one role or to everyone
func (s *messageServiceImpl) CreateAnnouncement(ctx context.Context, actor Actor, req *dto.CreateAnnouncementRequest) (*models.Announcement, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only administrators can post announcements")
	}

	var audience models.RoleType
	if req.Audience != "" {
		role, err := models.ParseRole(req.Audience)
		if err != nil {
			return nil, apperrors.NewBadRequestError("audience must be STUDENT, ALUMNI or ADMIN")
		}
		audience = role
	}

	a := models.Announcement{
		ID:       models.NewID(),
		Title:    strings.TrimSpace(req.Title),
		Body:     req.Body,
		Audience: audience,
		AuthorID: actor.ID,
		Pinned:   req.Pinned,
	}
	a.Touch(s.now())
	if err := s.announcements.Save(ctx, a); err != nil {
		s.logger.Error().Err(err).Msg("Failed to save announcement")
		return nil, err
	}

	event := realtime.Event{Name: realtime.EventNewAnnouncement, Data: a}
	if audience != "" {
		event = event.ToRole(string(audience))
	}
	s.publisher.Publish(event)
	s.audit.record(ctx, actor, ActionAnnounce, "announcement", a.ID, models.SeverityInfo,
		details("title", a.Title, "audience", string(audience)))
	return &a, nil
}

// Announcements lists the notices visible to the actor, pinned ones first
func (s *messageServiceImpl) Announcements(ctx context.Context, actor Actor, criteria query.Criteria) []models.Announcement {
	all := listOrEmpty[models.Announcement](ctx, s.announcements, s.logger, "announcements")

	visible := make([]models.Announcement, 0, len(all))
	for _, a := range all {
		if a.VisibleTo(actor.Role) {
			visible = append(visible, a)
		}
	}

	view := announcementSchema.Apply(visible, defaultSort(criteria, "recent"))
	slices.SortStableFunc(view, func(a, b models.Announcement) int {
		switch {
		case a.Pinned == b.Pinned:
			return 0
		case a.Pinned:
			return -1
		default:
			return 1
		}
	})
	return view
}
