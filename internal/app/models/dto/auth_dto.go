package dto

import (
	"time"

	"github.com/yigit/alumnihub/internal/app/models"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a user registration request.
// Administrators are created by seeding, never by self-registration.
type RegisterRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8,max=72"`
	FirstName      string `json:"firstName" binding:"required,max=100"`
	LastName       string `json:"lastName" binding:"required,max=100"`
	RoleType       string `json:"roleType" binding:"required,role"`
	GraduationYear int    `json:"graduationYear" binding:"omitempty,min=1900,max=2100"`
	Degree         string `json:"degree"`
	Major          string `json:"major"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// UserResponse is the public view of a user; it never carries the password hash
type UserResponse struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	FullName          string     `json:"fullName"`
	RoleType          string     `json:"roleType"`
	IsActive          bool       `json:"isActive"`
	GraduationYear    int        `json:"graduationYear,omitempty"`
	Degree            string     `json:"degree,omitempty"`
	Major             string     `json:"major,omitempty"`
	Company           string     `json:"company,omitempty"`
	Position          string     `json:"position,omitempty"`
	Industry          string     `json:"industry,omitempty"`
	Location          string     `json:"location,omitempty"`
	Skills            []string   `json:"skills,omitempty"`
	Bio               string     `json:"bio,omitempty"`
	LinkedInURL       string     `json:"linkedinUrl,omitempty"`
	Verification      string     `json:"verification,omitempty"`
	AvailableAsMentor bool       `json:"availableAsMentor"`
	LastLoginAt       *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// FromUser converts a user model to its public view
func FromUser(u models.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		FullName:          u.FullName(),
		RoleType:          string(u.RoleType),
		IsActive:          u.IsActive,
		GraduationYear:    u.GraduationYear,
		Degree:            u.Degree,
		Major:             u.Major,
		Company:           u.Company,
		Position:          u.Position,
		Industry:          u.Industry,
		Location:          u.Location,
		Skills:            u.Skills,
		Bio:               u.Bio,
		LinkedInURL:       u.LinkedInURL,
		Verification:      string(u.Verification),
		AvailableAsMentor: u.AvailableAsMentor,
		LastLoginAt:       u.LastLoginAt,
		CreatedAt:         u.CreatedAt,
	}
}

// FromUsers converts a list of users
func FromUsers(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}

// UpdateProfileRequest carries the editable profile fields; nil leaves a field unchanged
type UpdateProfileRequest struct {
	FirstName         *string  `json:"firstName" binding:"omitempty,min=1,max=100"`
	LastName          *string  `json:"lastName" binding:"omitempty,min=1,max=100"`
	GraduationYear    *int     `json:"graduationYear" binding:"omitempty,min=1900,max=2100"`
	Degree            *string  `json:"degree"`
	Major             *string  `json:"major"`
	Company           *string  `json:"company"`
	Position          *string  `json:"position"`
	Industry          *string  `json:"industry"`
	Location          *string  `json:"location"`
	Skills            []string `json:"skills"`
	Bio               *string  `json:"bio" binding:"omitempty,max=2000"`
	LinkedInURL       *string  `json:"linkedinUrl" binding:"omitempty,url"`
	AvailableAsMentor *bool    `json:"availableAsMentor"`
}
