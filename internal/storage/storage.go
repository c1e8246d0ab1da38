package storage

import (
	"context"
	"errors"
	"time"

	"github.com/aiqa-platform/user-service/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures the persistence operations the auth flow needs.
// Uniqueness of usernames is the store's responsibility: CreateUser must
// be atomic with respect to the unique constraint so concurrent
// registrations of the same name resolve to exactly one winner.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) (models.User, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}
