package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/auth"
	"github.com/yigit/alumnihub/internal/pkg/realtime"
)

// AuthService handles registration, login and the current user
type AuthService struct {
	users      repositories.UserStore
	jwtService *auth.JWTService
	publisher  realtime.Publisher
	logger     zerolog.Logger
	now        clock

	// serializes the e-mail uniqueness check with the insert
	registerMu sync.Mutex
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users repositories.UserStore,
	jwtService *auth.JWTService,
	publisher realtime.Publisher,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		publisher:  publisher,
		logger:     logger,
		now:        utcNow,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a student or alumni account. Alumni start with a pending
// verification and administrators are notified.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	s.logger.Debug().Str("email", email).Str("role", req.RoleType).Msg("Registering user")

	role, err := models.ParseRole(req.RoleType)
	if err != nil || role == models.RoleAdmin {
		return nil, apperrors.NewBadRequestError("roleType must be STUDENT or ALUMNI")
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := models.User{
		ID:             models.NewID(),
		Email:          email,
		Password:       hash,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		RoleType:       role,
		IsActive:       true,
		GraduationYear: req.GraduationYear,
		Degree:         req.Degree,
		Major:          req.Major,
	}
	if role == models.RoleAlumni {
		user.Verification = models.ApprovalPending
	}
	user.Touch(s.now())

	s.registerMu.Lock()
	_, err = s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		s.registerMu.Unlock()
		return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "An account with this email already exists")
	case !errors.Is(err, repositories.ErrNotFound):
		s.registerMu.Unlock()
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to check existing email")
		return nil, err
	}
	err = s.users.Save(ctx, user)
	s.registerMu.Unlock()
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "An account with this email already exists")
		}
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to save user")
		return nil, err
	}

	if role == models.RoleAlumni {
		s.publisher.Publish(realtime.Event{
			Name: realtime.EventNewAlumniVerification,
			Data: dto.FromUser(user),
		}.ToRole(string(models.RoleAdmin)))
	}

	s.logger.Info().Str("userID", user.ID).Str("role", string(role)).Msg("User registered")
	return s.issue(user)
}

// Login checks credentials and returns a fresh access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to look up user")
		return nil, err
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Debug().Str("email", email).Msg("Password mismatch")
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	now := s.now()
	user.LastLoginAt = &now
	user.Touch(now)
	if err := s.users.Save(ctx, user); err != nil {
		// the login itself still succeeds
		s.logger.Warn().Err(err).Str("userID", user.ID).Msg("Failed to record last login")
	}

	return s.issue(user)
}

// Me returns the profile of the authenticated user
func (s *AuthService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := getOr404[models.User](ctx, s.users, userID, "User")
	if err != nil {
		return nil, err
	}
	resp := dto.FromUser(user)
	return &resp, nil
}

func (s *AuthService) issue(user models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		s.logger.Error().Err(err).Str("userID", user.ID).Msg("Failed to generate token")
		return nil, err
	}
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: dto.FromUser(user),
	}, nil
}
