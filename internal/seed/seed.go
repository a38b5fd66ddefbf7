package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	appModels "github.com/yigit/alumnihub/internal/app/models"
	appRepos "github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/auth"
)

// Default administrator credentials
const (
	DefaultAdminEmail    = "admin@alumnihub.app"
	DefaultAdminPassword = "Admin123!"
)

// CreateDefaultData creates the default administrator if it doesn't exist.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	_, err := repos.Users.FindByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, appRepos.ErrNotFound) {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}

	lgr.Info().Msg("Creating default admin user...")
	hashedPassword, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := appModels.User{
		ID:        appModels.NewID(),
		Email:     DefaultAdminEmail,
		Password:  hashedPassword,
		FirstName: "System",
		LastName:  "Administrator",
		RoleType:  appModels.RoleAdmin,
		IsActive:  true,
	}
	admin.Touch(time.Now().UTC())

	if err := repos.Users.Save(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}
	lgr.Info().Str("adminID", admin.ID).Msg("Default admin user created successfully")
	return nil
}

// CreateSampleData fills an empty store with a small demo community. It
// does nothing once any alumni exist.
func CreateSampleData(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	users, err := repos.Users.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.RoleType == appModels.RoleAlumni {
			lgr.Info().Msg("Sample data already present, skipping")
			return nil
		}
	}

	hashed, err := auth.HashPassword("Password123!")
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	newUser := func(email, first, last string, role appModels.RoleType) appModels.User {
		u := appModels.User{
			ID:        appModels.NewID(),
			Email:     email,
			Password:  hashed,
			FirstName: first,
			LastName:  last,
			RoleType:  role,
			IsActive:  true,
		}
		u.Touch(now)
		return u
	}

	ayse := newUser("ayse.kaya@example.com", "Ayse", "Kaya", appModels.RoleAlumni)
	ayse.GraduationYear = 2015
	ayse.Degree = "BSc"
	ayse.Major = "Computer Engineering"
	ayse.Company = "Globex"
	ayse.Position = "Staff Engineer"
	ayse.Industry = "Technology"
	ayse.Location = "Istanbul"
	ayse.Skills = []string{"Go", "Kubernetes", "PostgreSQL"}
	ayse.Verification = appModels.ApprovalApproved
	ayse.AvailableAsMentor = true

	mert := newUser("mert.demir@example.com", "Mert", "Demir", appModels.RoleAlumni)
	mert.GraduationYear = 2019
	mert.Degree = "MSc"
	mert.Major = "Industrial Engineering"
	mert.Company = "Initech"
	mert.Position = "Product Manager"
	mert.Industry = "Finance"
	mert.Location = "Ankara"
	mert.Skills = []string{"Product", "SQL"}
	mert.Verification = appModels.ApprovalPending

	zeynep := newUser("zeynep.arslan@example.com", "Zeynep", "Arslan", appModels.RoleStudent)
	zeynep.Major = "Computer Engineering"

	var finalErr error
	for _, u := range []appModels.User{ayse, mert, zeynep} {
		if err := repos.Users.Save(ctx, u); err != nil {
			lgr.Error().Err(err).Str("email", u.Email).Msg("Error creating sample user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	expires := now.AddDate(0, 1, 0)
	job := appModels.Job{
		ID:              appModels.NewID(),
		Title:           "Backend Engineer",
		Company:         ayse.Company,
		Description:     "Build and run the services behind our payments platform.",
		Location:        ayse.Location,
		Type:            appModels.JobTypeFullTime,
		ExperienceLevel: "mid",
		Skills:          []string{"Go", "PostgreSQL"},
		PostedByID:      ayse.ID,
		PostedAt:        now,
		ExpiresAt:       &expires,
		Approval:        appModels.ApprovalApproved,
		IsApproved:      true,
		IsActive:        true,
	}
	job.Touch(now)

	meetup := appModels.Event{
		ID:          appModels.NewID(),
		Title:       "Alumni Career Night",
		Description: "Talks and networking with alumni from across the industry.",
		Type:        "networking",
		Location:    "Main Campus, Hall A",
		StartsAt:    now.AddDate(0, 0, 14),
		Capacity:    100,
		OrganizerID: ayse.ID,
		Approval:    appModels.ApprovalApproved,
		IsApproved:  true,
		IsActive:    true,
	}
	meetup.Touch(now)

	story := appModels.Story{
		ID:          appModels.NewID(),
		Title:       "From intern to staff engineer",
		Summary:     "Eight years, three teams and one very long migration.",
		Content:     "It started with an internship found on this very job board...",
		AuthorID:    ayse.ID,
		AuthorName:  ayse.FullName(),
		Category:    "career",
		Tags:        []string{"engineering", "growth"},
		Approval:    appModels.ApprovalApproved,
		IsApproved:  true,
		IsPublished: true,
		Featured:    true,
	}
	story.Touch(now)

	if err := repos.Jobs.Save(ctx, job); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := repos.Events.Save(ctx, meetup); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := repos.Stories.Save(ctx, story); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Sample data created")
	return finalErr
}
