package services

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/auth"
	"github.com/yigit/alumnihub/internal/pkg/realtime"
)

func TestMain(m *testing.M) {
	auth.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// recorder is a Publisher that keeps every event
type recorder struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (r *recorder) Publish(e realtime.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) named(name string) []realtime.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []realtime.Event
	for _, e := range r.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

var (
	admin   = Actor{ID: "admin-1", Role: models.RoleAdmin}
	student = Actor{ID: "student-1", Role: models.RoleStudent}
	alumnus = Actor{ID: "alumni-1", Role: models.RoleAlumni}
)

// fixture seeds one user per role into in-memory stores
func fixture(t *testing.T) (*repositories.Repositories, *recorder) {
	t.Helper()
	repos := repositories.NewMemoryRepositories()
	ctx := context.Background()

	users := []models.User{
		{ID: admin.ID, Email: "admin@example.com", FirstName: "Ada", LastName: "Admin", RoleType: models.RoleAdmin, IsActive: true},
		{ID: student.ID, Email: "sam@example.com", FirstName: "Sam", LastName: "Student", RoleType: models.RoleStudent, IsActive: true},
		{
			ID: alumnus.ID, Email: "alex@example.com", FirstName: "Alex", LastName: "Alum", RoleType: models.RoleAlumni,
			IsActive: true, Verification: models.ApprovalApproved, AvailableAsMentor: true, Industry: "Software",
		},
	}
	for _, u := range users {
		u.Touch(fixedNow)
		require.NoError(t, repos.Users.Save(ctx, u))
	}
	return repos, &recorder{}
}

func saveUser(t *testing.T, repos *repositories.Repositories, u models.User) {
	t.Helper()
	u.Touch(fixedNow)
	require.NoError(t, repos.Users.Save(context.Background(), u))
}

var nopLogger = zerolog.Nop()

// brokenStore fails every List call
type brokenStore[T models.Entity] struct {
	repositories.Store[T]
}

func (brokenStore[T]) List(context.Context) ([]T, error) {
	return nil, errors.New("connection refused")
}
