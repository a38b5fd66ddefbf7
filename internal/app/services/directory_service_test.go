package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/query"
)

func newDirectoryService(t *testing.T) *directoryServiceImpl {
	repos, _ := fixture(t)
	saveUser(t, repos, models.User{
		ID: "alumni-2", FirstName: "Bea", LastName: "Byte", RoleType: models.RoleAlumni, IsActive: true,
		Verification: models.ApprovalApproved, Industry: "Finance", GraduationYear: 2015, Company: "Ledger Co",
	})
	saveUser(t, repos, models.User{
		ID: "alumni-3", FirstName: "Cal", LastName: "Pending", RoleType: models.RoleAlumni, IsActive: true,
		Verification: models.ApprovalPending, Industry: "Software",
	})
	saveUser(t, repos, models.User{
		ID: "alumni-4", FirstName: "Dee", LastName: "Gone", RoleType: models.RoleAlumni,
		Verification: models.ApprovalApproved, Industry: "Software",
	})

	svc := NewDirectoryService(repos.Users, nopLogger).(*directoryServiceImpl)
	svc.now = fixedClock
	return svc
}

func strPtr(s string) *string { return &s }

func TestDirectoryService_SearchAlumni(t *testing.T) {
	svc := newDirectoryService(t)
	ctx := context.Background()

	list := svc.SearchAlumni(ctx, student, query.Criteria{})
	require.Len(t, list, 2, "only active verified alumni are listed")
	assert.Equal(t, "Alex Alum", list[0].FullName)
	assert.Equal(t, "Bea Byte", list[1].FullName)

	assert.Len(t, svc.SearchAlumni(ctx, admin, query.Criteria{}), 3, "admins also see pending alumni")

	software := svc.SearchAlumni(ctx, student, query.Criteria{Filters: map[string]string{"industry": "Software"}})
	require.Len(t, software, 1)
	assert.Equal(t, alumnus.ID, software[0].ID)

	found := svc.SearchAlumni(ctx, student, query.Criteria{Query: "ledger"})
	require.Len(t, found, 1)
	assert.Equal(t, "alumni-2", found[0].ID)
}

func TestDirectoryService_GetProfile(t *testing.T) {
	svc := newDirectoryService(t)
	ctx := context.Background()

	_, err := svc.GetProfile(ctx, student, "alumni-3")
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound), "pending alumni are hidden")

	self, err := svc.GetProfile(ctx, Actor{ID: "alumni-3", Role: models.RoleAlumni}, "alumni-3")
	require.NoError(t, err)
	assert.Equal(t, string(models.ApprovalPending), self.Verification)

	_, err = svc.GetProfile(ctx, admin, "alumni-4")
	assert.NoError(t, err)
	_, err = svc.GetProfile(ctx, student, "alumni-4")
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound), "deactivated accounts are hidden")
}

func TestDirectoryService_UpdateProfile(t *testing.T) {
	svc := newDirectoryService(t)
	ctx := context.Background()

	year := 2018
	updated, err := svc.UpdateProfile(ctx, alumnus, &dto.UpdateProfileRequest{
		Company: strPtr("  Acme "), GraduationYear: &year, AvailableAsMentor: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, 2018, updated.GraduationYear)
	assert.False(t, updated.AvailableAsMentor)
	assert.Equal(t, "Alex", updated.FirstName, "unset fields are left alone")

	_, err = svc.UpdateProfile(ctx, student, &dto.UpdateProfileRequest{AvailableAsMentor: boolPtr(true)})
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}
