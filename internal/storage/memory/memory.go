package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aiqa-platform/user-service/internal/models"
	"github.com/aiqa-platform/user-service/internal/storage"
)

// Ensure Store satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*Store)(nil)

// Store is a mutex-guarded in-memory UserStore. It enforces username
// uniqueness atomically, mirroring the Postgres unique constraint, which
// makes it a faithful stand-in for tests and local development.
type Store struct {
	mu     sync.Mutex
	nextID int64
	byName map[string]models.User
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byName: make(map[string]models.User)}
}

// CreateUser inserts a user; the whole check-and-insert is one critical
// section, so concurrent duplicates resolve to exactly one winner.
func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[user.Username]; ok {
		return models.User{}, storage.ErrAlreadyExists
	}

	s.nextID++
	now := time.Now()
	user.ID = s.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	s.byName[user.Username] = user
	return user, nil
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byName[username]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

// FindByID fetches a user by id.
func (s *Store) FindByID(_ context.Context, id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.byName {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// ExistsByUsername reports whether a username is registered.
func (s *Store) ExistsByUsername(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.byName[username]
	return ok, nil
}

// UpdatePassword replaces the stored hash and bumps UpdatedAt.
func (s *Store) UpdatePassword(_ context.Context, id int64, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, user := range s.byName {
		if user.ID == id {
			user.PasswordHash = passwordHash
			user.UpdatedAt = time.Now()
			s.byName[name] = user
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// TouchLastLogin records the last successful login instant.
func (s *Store) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, user := range s.byName {
		if user.ID == id {
			user.LastLoginAt = &at
			s.byName[name] = user
			return nil
		}
	}
	return storage.ErrNotFound
}
