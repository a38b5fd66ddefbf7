package repositories

import (
	"context"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
)

// ErrNotFound is returned by every store when no record has the requested id
var ErrNotFound = apperrors.ErrResourceNotFound

// Store is the typed data access interface shared by every entity
type Store[T models.Entity] interface {
	// List returns all records in insertion order
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	// Save inserts the record or replaces the one with the same id
	Save(ctx context.Context, record T) error
	Delete(ctx context.Context, id string) error
}

// UserStore adds the e-mail lookup used by authentication
type UserStore interface {
	Store[models.User]
	FindByEmail(ctx context.Context, email string) (models.User, error)
}
