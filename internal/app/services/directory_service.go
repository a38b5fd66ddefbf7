package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/query"
)

// DirectoryService defines the alumni directory and profile operations
type DirectoryService interface {
	SearchAlumni(ctx context.Context, actor Actor, criteria query.Criteria) []dto.UserResponse
	GetProfile(ctx context.Context, actor Actor, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, actor Actor, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

// directoryServiceImpl implements DirectoryService
type directoryServiceImpl struct {
	users  repositories.UserStore
	logger zerolog.Logger
	now    clock
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(users repositories.UserStore, logger zerolog.Logger) DirectoryService {
	return &directoryServiceImpl{users: users, logger: logger, now: utcNow}
}

// SearchAlumni lists active alumni. Only admins see unverified accounts.
func (s *directoryServiceImpl) SearchAlumni(ctx context.Context, actor Actor, criteria query.Criteria) []dto.UserResponse {
	users := listOrEmpty[models.User](ctx, s.users, s.logger, "users")

	alumni := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.RoleType != models.RoleAlumni || !u.IsActive {
			continue
		}
		if !actor.IsAdmin() && !u.IsVerifiedAlumni() {
			continue
		}
		alumni = append(alumni, u)
	}

	return dto.FromUsers(alumniSchema.Apply(alumni, defaultSort(criteria, "name")))
}

// GetProfile returns a user's profile. Pending alumni are only visible to
// themselves and administrators.
func (s *directoryServiceImpl) GetProfile(ctx context.Context, actor Actor, userID string) (*dto.UserResponse, error) {
	user, err := getOr404[models.User](ctx, s.users, userID, "User")
	if err != nil {
		return nil, err
	}

	hidden := !user.IsActive || (user.RoleType == models.RoleAlumni && !user.IsVerifiedAlumni())
	if hidden && !actor.IsAdmin() && actor.ID != user.ID {
		return nil, apperrors.NewResourceNotFoundError("User not found")
	}

	resp := dto.FromUser(user)
	return &resp, nil
}

// UpdateProfile applies the set fields of req to the caller's own profile
func (s *directoryServiceImpl) UpdateProfile(ctx context.Context, actor Actor, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := getOr404[models.User](ctx, s.users, actor.ID, "User")
	if err != nil {
		return nil, err
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setString(&user.FirstName, req.FirstName)
	setString(&user.LastName, req.LastName)
	setString(&user.Degree, req.Degree)
	setString(&user.Major, req.Major)
	setString(&user.Company, req.Company)
	setString(&user.Position, req.Position)
	setString(&user.Industry, req.Industry)
	setString(&user.Location, req.Location)
	setString(&user.Bio, req.Bio)
	setString(&user.LinkedInURL, req.LinkedInURL)
	if req.GraduationYear != nil {
		user.GraduationYear = *req.GraduationYear
	}
	if req.Skills != nil {
		user.Skills = req.Skills
	}
	if req.AvailableAsMentor != nil {
		if user.RoleType != models.RoleAlumni {
			return nil, apperrors.NewBadRequestError("Only alumni can offer mentorship")
		}
		user.AvailableAsMentor = *req.AvailableAsMentor
	}

	user.Touch(s.now())
	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("userID", user.ID).Msg("Failed to update profile")
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID).Msg("Profile updated")
	resp := dto.FromUser(user)
	return &resp, nil
}
