package models

import (
	"strings"
	"time"
)

// User is a person on the platform: a student, an alumnus or an administrator
type User struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Password  string   `json:"password,omitempty"` // bcrypt hash, never rendered by DTOs
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	RoleType  RoleType `json:"roleType"`
	IsActive  bool     `json:"isActive"`

	// Profile attributes
	GraduationYear int      `json:"graduationYear,omitempty"`
	Degree         string   `json:"degree,omitempty"`
	Major          string   `json:"major,omitempty"`
	Company        string   `json:"company,omitempty"`
	Position       string   `json:"position,omitempty"`
	Industry       string   `json:"industry,omitempty"`
	Location       string   `json:"location,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	LinkedInURL    string   `json:"linkedinUrl,omitempty"`

	// Alumni only
	Verification          ApprovalStatus `json:"verification,omitempty"`
	AvailableAsMentor     bool           `json:"availableAsMentor"`
	VerificationNote      string         `json:"verificationNote,omitempty"`
	VerificationDecidedAt *time.Time     `json:"verificationDecidedAt,omitempty"`

	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	Timestamps
}

func (u User) EntityID() string { return u.ID }

// FullName joins first and last name
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsVerifiedAlumni reports whether an alumnus passed verification
func (u User) IsVerifiedAlumni() bool {
	return u.RoleType == RoleAlumni && u.Verification == ApprovalApproved
}

// CanMentor reports whether the user can receive mentorship requests
func (u User) CanMentor() bool {
	return u.IsVerifiedAlumni() && u.AvailableAsMentor && u.IsActive
}
