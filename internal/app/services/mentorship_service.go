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

// MentorshipService defines mentorship request operations
type MentorshipService interface {
	Request(ctx context.Context, actor Actor, req *dto.CreateMentorshipRequest) (*dto.MentorshipResponse, error)
	List(ctx context.Context, actor Actor, criteria query.Criteria) []dto.MentorshipResponse
	Respond(ctx context.Context, actor Actor, requestID string, accept bool, response string) (*dto.MentorshipResponse, error)
	Complete(ctx context.Context, actor Actor, requestID string) (*dto.MentorshipResponse, error)
	Cancel(ctx context.Context, actor Actor, requestID string) (*dto.MentorshipResponse, error)
}

// mentorshipServiceImpl implements MentorshipService
type mentorshipServiceImpl struct {
	requests  repositories.Store[models.MentorshipRequest]
	users     repositories.UserStore
	publisher realtime.Publisher
	logger    zerolog.Logger
	now       clock

	// serializes the duplicate check with the insert and every status change
	mu sync.Mutex
}

// NewMentorshipService creates a new MentorshipService
func NewMentorshipService(repos *repositories.Repositories, publisher realtime.Publisher, logger zerolog.Logger) MentorshipService {
	return &mentorshipServiceImpl{
		requests:  repos.Mentorships,
		users:     repos.Users,
		publisher: publisher,
		logger:    logger,
		now:       utcNow,
	}
}

func (s *mentorshipServiceImpl) responses(ctx context.Context, reqs []models.MentorshipRequest) []dto.MentorshipResponse {
	names := userNames(ctx, s.users, s.logger)
	out := make([]dto.MentorshipResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, dto.MentorshipResponse{
			MentorshipRequest: r,
			MenteeName:        names[r.MenteeID],
			MentorName:        names[r.MentorID],
		})
	}
	return out
}

func (s *mentorshipServiceImpl) single(ctx context.Context, r models.MentorshipRequest) *dto.MentorshipResponse {
	resp := s.responses(ctx, []models.MentorshipRequest{r})[0]
	return &resp
}

// Request asks an available alumnus for mentorship. A student holds at most
// one open request per mentor.
func (s *mentorshipServiceImpl) Request(ctx context.Context, actor Actor, req *dto.CreateMentorshipRequest) (*dto.MentorshipResponse, error) {
	if actor.Role != models.RoleStudent {
		return nil, apperrors.NewForbiddenError("Only students can request mentorship")
	}

	mentor, err := getOr404[models.User](ctx, s.users, req.MentorID, "Mentor")
	if err != nil {
		return nil, err
	}
	if !mentor.CanMentor() {
		return nil, apperrors.NewCustomError(apperrors.ErrNotMentor, "This alumnus is not available as a mentor")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.requests.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load mentorship requests")
		return nil, err
	}
	if _, dup := query.Find(existing, func(r models.MentorshipRequest) bool {
		return r.MenteeID == actor.ID && r.MentorID == mentor.ID && r.Open()
	}); dup {
		return nil, apperrors.NewCustomError(apperrors.ErrDuplicateRequest, "You already have an open request with this mentor")
	}

	request := models.MentorshipRequest{
		ID:       models.NewID(),
		MenteeID: actor.ID,
		MentorID: mentor.ID,
		Topic:    strings.TrimSpace(req.Topic),
		Message:  req.Message,
		Goals:    req.Goals,
		Status:   models.MentorshipPending,
	}
	request.Touch(s.now())
	if err := s.requests.Save(ctx, request); err != nil {
		s.logger.Error().Err(err).Str("mentorID", mentor.ID).Msg("Failed to save mentorship request")
		return nil, err
	}

	resp := s.single(ctx, request)
	s.publisher.Publish(realtime.Event{Name: realtime.EventNewMentorshipRequest, Data: resp}.ToUser(mentor.ID))
	s.logger.Info().Str("requestID", request.ID).Str("mentorID", mentor.ID).Msg("Mentorship requested")
	return resp, nil
}

// List returns the requests the actor is a party to; admins see all
func (s *mentorshipServiceImpl) List(ctx context.Context, actor Actor, criteria query.Criteria) []dto.MentorshipResponse {
	all := listOrEmpty[models.MentorshipRequest](ctx, s.requests, s.logger, "mentorship requests")

	mine := make([]models.MentorshipRequest, 0)
	for _, r := range all {
		if actor.IsAdmin() || r.Involves(actor.ID) {
			mine = append(mine, r)
		}
	}
	return s.responses(ctx, mentorshipSchema.Apply(mine, defaultSort(criteria, "recent")))
}

// transition applies a status change permitted for the party allowed(r) and
// notifies the other party
func (s *mentorshipServiceImpl) transition(
	ctx context.Context,
	actor Actor,
	requestID string,
	to models.MentorshipStatus,
	allowed func(models.MentorshipRequest) bool,
	mutate func(*models.MentorshipRequest),
) (*dto.MentorshipResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, err := getOr404[models.MentorshipRequest](ctx, s.requests, requestID, "Mentorship request")
	if err != nil {
		return nil, err
	}
	if !allowed(request) {
		return nil, apperrors.NewForbiddenError("You cannot change this mentorship request")
	}
	if err := models.MentorshipTransitions.Advance(request.Status, to); err != nil {
		return nil, err
	}
	if request.Status == to {
		return s.single(ctx, request), nil
	}

	request.Status = to
	if mutate != nil {
		mutate(&request)
	}
	request.Touch(s.now())
	if err := s.requests.Save(ctx, request); err != nil {
		s.logger.Error().Err(err).Str("requestID", requestID).Msg("Failed to update mentorship request")
		return nil, err
	}

	resp := s.single(ctx, request)
	other := request.MenteeID
	if actor.ID == request.MenteeID {
		other = request.MentorID
	}
	s.publisher.Publish(realtime.Event{Name: realtime.EventMentorshipStatusChanged, Data: resp}.ToUser(other))
	s.logger.Info().Str("requestID", requestID).Str("status", string(to)).Msg("Mentorship status changed")
	return resp, nil
}

// Respond accepts or rejects a pending request; only the mentor may respond
func (s *mentorshipServiceImpl) Respond(ctx context.Context, actor Actor, requestID string, accept bool, response string) (*dto.MentorshipResponse, error) {
	to := models.MentorshipRejected
	if accept {
		to = models.MentorshipAccepted
	}
	return s.transition(ctx, actor, requestID, to,
		func(r models.MentorshipRequest) bool { return r.MentorID == actor.ID },
		func(r *models.MentorshipRequest) { r.Response = response },
	)
}

// Complete closes an accepted mentorship
func (s *mentorshipServiceImpl) Complete(ctx context.Context, actor Actor, requestID string) (*dto.MentorshipResponse, error) {
	return s.transition(ctx, actor, requestID, models.MentorshipCompleted,
		func(r models.MentorshipRequest) bool { return r.MentorID == actor.ID },
		nil,
	)
}

// Cancel withdraws a pending request; only the mentee may cancel
func (s *mentorshipServiceImpl) Cancel(ctx context.Context, actor Actor, requestID string) (*dto.MentorshipResponse, error) {
	return s.transition(ctx, actor, requestID, models.MentorshipCancelled,
		func(r models.MentorshipRequest) bool { return r.MenteeID == actor.ID },
		nil,
	)
}
