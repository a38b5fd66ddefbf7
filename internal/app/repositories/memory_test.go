package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/alumnihub/internal/app/models"
)

func TestMemoryStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[models.Job]()

	require.NoError(t, s.Save(ctx, models.Job{ID: "a", Title: "Backend"}))
	require.NoError(t, s.Save(ctx, models.Job{ID: "b", Title: "Frontend"}))
	require.NoError(t, s.Save(ctx, models.Job{ID: "a", Title: "Backend Go"}))

	jobs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Backend Go", jobs[0].Title, "upsert keeps insertion position")
	assert.Equal(t, "b", jobs[1].ID)

	got, err := s.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "Frontend", got.Title)

	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Get(ctx, "a")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(s.Delete(ctx, "a"), ErrNotFound))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[models.Job]()
	require.NoError(t, s.Save(ctx, models.Job{ID: "a", Skills: []string{"go"}}))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	got.Skills[0] = "rust"

	again, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, again.Skills)
}

func TestMemoryStore_RejectsEmptyID(t *testing.T) {
	assert.Error(t, NewMemoryStore[models.Job]().Save(context.Background(), models.Job{}))
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStore[models.Job]().List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[models.Story]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Save(ctx, models.Story{ID: models.NewID(), Views: i})
		}(i)
	}
	wg.Wait()

	stories, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stories, 50)
}

func TestMemoryUserStore_FindByEmail(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()
	require.NoError(t, s.Save(ctx, models.User{ID: "u1", Email: "Ada@Example.com"}))

	u, err := s.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = s.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
