package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yigit/alumnihub/internal/pkg/apperrors"
)

// Entity is implemented by every record kept in a store
type Entity interface {
	EntityID() string
}

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleAlumni  RoleType = "ALUMNI"
	RoleAdmin   RoleType = "ADMIN"
)

// Roles lists every valid role
var Roles = []RoleType{RoleStudent, RoleAlumni, RoleAdmin}

// ParseRole accepts a role in any letter case
func ParseRole(s string) (RoleType, error) {
	role := RoleType(strings.ToUpper(strings.TrimSpace(s)))
	for _, r := range Roles {
		if r == role {
			return role, nil
		}
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidRole, s)
}

// Valid reports whether r is one of the three roles
func (r RoleType) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// NewID returns a fresh record identifier
func NewID() string {
	return uuid.NewString()
}

// Timestamps is embedded by records that track creation and update times
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Touch sets UpdatedAt, and CreatedAt when unset
func (t *Timestamps) Touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
