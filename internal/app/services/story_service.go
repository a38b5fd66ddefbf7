package services

import (
	"context"
	"strconv"
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

// StoryService defines success story operations
type StoryService interface {
	List(ctx context.Context, actor Actor, criteria query.Criteria) []dto.StoryResponse
	Get(ctx context.Context, actor Actor, storyID string) (*dto.StoryResponse, error)
	Submit(ctx context.Context, actor Actor, req *dto.CreateStoryRequest) (*dto.StoryResponse, error)
	ToggleLike(ctx context.Context, actor Actor, storyID string) (*dto.LikeResponse, error)
	Approve(ctx context.Context, actor Actor, storyID string) (*dto.StoryResponse, error)
	Reject(ctx context.Context, actor Actor, storyID, reason string) (*dto.StoryResponse, error)
	ToggleFeature(ctx context.Context, actor Actor, storyID string) (*dto.StoryResponse, error)
	Delete(ctx context.Context, actor Actor, storyID string) error
	Stats(ctx context.Context) dto.StoryStats
}

// storyServiceImpl implements StoryService
type storyServiceImpl struct {
	stories   repositories.Store[models.Story]
	users     repositories.UserStore
	publisher realtime.Publisher
	audit     *auditor
	logger    zerolog.Logger
	now       clock

	// guards view and like counters
	mu sync.Mutex
}

// NewStoryService creates a new StoryService
func NewStoryService(repos *repositories.Repositories, publisher realtime.Publisher, logger zerolog.Logger) StoryService {
	return &storyServiceImpl{
		stories:   repos.Stories,
		users:     repos.Users,
		publisher: publisher,
		audit:     newAuditor(repos.AuditLogs, publisher, logger),
		logger:    logger,
		now:       utcNow,
	}
}

func storyResponse(s models.Story, userID string) dto.StoryResponse {
	return dto.StoryResponse{
		ID:          s.ID,
		Title:       s.Title,
		Summary:     s.Summary,
		Content:     s.Content,
		AuthorID:    s.AuthorID,
		AuthorName:  s.AuthorName,
		Category:    s.Category,
		Tags:        s.Tags,
		Likes:       s.Likes,
		Views:       s.Views,
		LikedByMe:   s.LikedByUser(userID),
		Approval:    string(s.Approval),
		IsApproved:  s.IsApproved,
		IsPublished: s.IsPublished,
		Featured:    s.Featured,
		CreatedAt:   s.CreatedAt,
	}
}

func visibleStory(actor Actor, s models.Story) bool {
	return actor.IsAdmin() || s.AuthorID == actor.ID || s.Visible()
}

// List returns published stories, plus the actor's own drafts
func (s *storyServiceImpl) List(ctx context.Context, actor Actor, criteria query.Criteria) []dto.StoryResponse {
	stories := listOrEmpty[models.Story](ctx, s.stories, s.logger, "stories")

	visible := make([]models.Story, 0, len(stories))
	for _, st := range stories {
		if visibleStory(actor, st) {
			visible = append(visible, st)
		}
	}

	view := storySchema.Apply(visible, defaultSort(criteria, "recent"))
	out := make([]dto.StoryResponse, 0, len(view))
	for _, st := range view {
		out = append(out, storyResponse(st, actor.ID))
	}
	return out
}

// Get returns a story and counts the view
func (s *storyServiceImpl) Get(ctx context.Context, actor Actor, storyID string) (*dto.StoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	story, err := getOr404[models.Story](ctx, s.stories, storyID, "Story")
	if err != nil {
		return nil, err
	}
	if !visibleStory(actor, story) {
		return nil, apperrors.NewResourceNotFoundError("Story not found")
	}

	if story.Visible() {
		story.Views++
		if err := s.stories.Save(ctx, story); err != nil {
			s.logger.Warn().Err(err).Str("storyID", storyID).Msg("Failed to count story view")
		}
	}

	resp := storyResponse(story, actor.ID)
	return &resp, nil
}

// Submit stores a story for moderation
func (s *storyServiceImpl) Submit(ctx context.Context, actor Actor, req *dto.CreateStoryRequest) (*dto.StoryResponse, error) {
	if actor.Role == models.RoleStudent {
		return nil, apperrors.NewForbiddenError("Only alumni can submit success stories")
	}
	author, err := getOr404[models.User](ctx, s.users, actor.ID, "User")
	if err != nil {
		return nil, err
	}

	story := models.Story{
		ID:         models.NewID(),
		Title:      strings.TrimSpace(req.Title),
		Summary:    req.Summary,
		Content:    req.Content,
		AuthorID:   author.ID,
		AuthorName: author.FullName(),
		Category:   req.Category,
		Tags:       req.Tags,
		Approval:   models.ApprovalPending,
	}
	story.Touch(s.now())

	if err := s.stories.Save(ctx, story); err != nil {
		s.logger.Error().Err(err).Str("authorID", actor.ID).Msg("Failed to submit story")
		return nil, err
	}

	s.publisher.Publish(realtime.Event{Name: realtime.EventNewStorySubmitted, Data: story}.ToRole(string(models.RoleAdmin)))
	s.logger.Info().Str("storyID", story.ID).Msg("Story submitted")

	resp := storyResponse(story, actor.ID)
	return &resp, nil
}

// ToggleLike likes a published story, or removes the actor's like
func (s *storyServiceImpl) ToggleLike(ctx context.Context, actor Actor, storyID string) (*dto.LikeResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	story, err := getOr404[models.Story](ctx, s.stories, storyID, "Story")
	if err != nil {
		return nil, err
	}
	if !story.Visible() {
		return nil, apperrors.NewCustomError(apperrors.ErrNotApproved, "Only published stories can be liked")
	}

	liked := story.ToggleLike(actor.ID)
	if err := s.stories.Save(ctx, story); err != nil {
		s.logger.Error().Err(err).Str("storyID", storyID).Msg("Failed to save like")
		return nil, err
	}
	return &dto.LikeResponse{StoryID: story.ID, Liked: liked, Likes: story.Likes}, nil
}

func (s *storyServiceImpl) decide(ctx context.Context, actor Actor, storyID string, approve bool, reason string) (*dto.StoryResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only administrators can moderate stories")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	story, err := getOr404[models.Story](ctx, s.stories, storyID, "Story")
	if err != nil {
		return nil, err
	}
	next, err := moderate(story.Approval, approve)
	if err != nil {
		return nil, err
	}
	changed := next != story.Approval
	story.Approval = next
	story.IsApproved = approve
	story.IsPublished = approve
	story.Touch(s.now())
	if err := s.stories.Save(ctx, story); err != nil {
		s.logger.Error().Err(err).Str("storyID", storyID).Msg("Failed to save story decision")
		return nil, err
	}

	if changed {
		action := ActionReject
		if approve {
			action = ActionApprove
		}
		s.audit.record(ctx, actor, action, "story", story.ID, models.SeverityInfo, details("title", story.Title, "reason", reason))
	}

	resp := storyResponse(story, actor.ID)
	return &resp, nil
}

// Approve publishes a story
func (s *storyServiceImpl) Approve(ctx context.Context, actor Actor, storyID string) (*dto.StoryResponse, error) {
	return s.decide(ctx, actor, storyID, true, "")
}

// Reject declines a story
func (s *storyServiceImpl) Reject(ctx context.Context, actor Actor, storyID, reason string) (*dto.StoryResponse, error) {
	return s.decide(ctx, actor, storyID, false, reason)
}

// ToggleFeature flips the featured flag of a published story
func (s *storyServiceImpl) ToggleFeature(ctx context.Context, actor Actor, storyID string) (*dto.StoryResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("Only administrators can feature stories")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	story, err := getOr404[models.Story](ctx, s.stories, storyID, "Story")
	if err != nil {
		return nil, err
	}
	if !story.Visible() {
		return nil, apperrors.NewCustomError(apperrors.ErrNotApproved, "Only published stories can be featured")
	}

	story.Featured = !story.Featured
	story.Touch(s.now())
	if err := s.stories.Save(ctx, story); err != nil {
		s.logger.Error().Err(err).Str("storyID", storyID).Msg("Failed to toggle feature")
		return nil, err
	}

	s.audit.record(ctx, actor, ActionFeature, "story", story.ID, models.SeverityInfo,
		details("featured", strconv.FormatBool(story.Featured)))
	resp := storyResponse(story, actor.ID)
	return &resp, nil
}

// Delete removes a story. Authors may delete their own.
func (s *storyServiceImpl) Delete(ctx context.Context, actor Actor, storyID string) error {
	story, err := getOr404[models.Story](ctx, s.stories, storyID, "Story")
	if err != nil {
		return err
	}
	if !canManage(actor, story.AuthorID) {
		return apperrors.NewForbiddenError("Only the author can delete this story")
	}
	if err := s.stories.Delete(ctx, storyID); err != nil {
		s.logger.Error().Err(err).Str("storyID", storyID).Msg("Failed to delete story")
		return err
	}
	if actor.IsAdmin() {
		s.audit.record(ctx, actor, ActionDelete, "story", storyID, models.SeverityWarning, details("title", story.Title))
	}
	return nil
}

// Stats aggregates story counters over every story
func (s *storyServiceImpl) Stats(ctx context.Context) dto.StoryStats {
	stories := listOrEmpty[models.Story](ctx, s.stories, s.logger, "stories")
	published := query.Count(stories, models.Story.Visible)

	views := query.SumInt(stories, func(st models.Story) int { return st.Views })
	return dto.StoryStats{
		TotalStories:     len(stories),
		PublishedStories: published,
		PendingStories:   query.Count(stories, func(st models.Story) bool { return st.Approval == models.ApprovalPending }),
		FeaturedStories:  query.Count(stories, func(st models.Story) bool { return st.Featured }),
		TotalLikes:       query.SumInt(stories, func(st models.Story) int { return st.Likes }),
		TotalViews:       views,
		AverageViews:     query.Average(views, len(stories)),
		ByCategory:       query.GroupCount(stories, func(st models.Story) string { return st.Category }),
	}
}
