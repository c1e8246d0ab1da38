package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/aiqa-platform/user-service/internal/apperr"
	"github.com/aiqa-platform/user-service/internal/auth"
	"github.com/aiqa-platform/user-service/internal/models"
	"github.com/aiqa-platform/user-service/internal/storage"
)

// UserService orchestrates the account flows: login (verify password,
// mint token), registration, password change, and lookups. Business
// failures come back as apperr values; anything else is a fault for the
// handler layer to log and mask.
type UserService struct {
	store  storage.UserStore
	hasher *auth.Hasher
	codec  *auth.TokenCodec
	now    func() time.Time
}

// NewUserService wires the service with its collaborators.
func NewUserService(store storage.UserStore, hasher *auth.Hasher, codec *auth.TokenCodec) *UserService {
	return &UserService{store: store, hasher: hasher, codec: codec, now: time.Now}
}

// Login verifies the credential pair and mints a bearer token. The
// last-login timestamp update is best-effort: a store failure there is
// logged and never fails the login.
func (s *UserService) Login(ctx context.Context, username, password string) (models.User, string, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, "", apperr.ErrUserNotFound
		}
		return models.User{}, "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return models.User{}, "", apperr.ErrPasswordIncorrect
	}

	token, err := s.codec.Mint(user.Username, s.now())
	if err != nil {
		return models.User{}, "", err
	}

	if err := s.store.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		log.Printf("touch last login for %s: %v", user.Username, err)
	}

	return user, token, nil
}

// Register creates a new account after the registration rules pass. The
// store's unique constraint remains the final arbiter for races between
// the existence check and the insert.
func (s *UserService) Register(ctx context.Context, username, nickname, email, password, confirmPassword string) (models.User, error) {
	err := auth.ValidateRegistration(ctx, s.store.ExistsByUsername, username, password, confirmPassword)
	if err != nil {
		return models.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, err
	}

	created, err := s.store.CreateUser(ctx, models.User{
		Username:     username,
		Nickname:     nickname,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.User{}, apperr.ErrUserAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// UpdatePassword rotates the password for username. Checks run in a
// fixed order: user existence, old-password verification, then
// new-password confirmation.
func (s *UserService) UpdatePassword(ctx context.Context, username, oldPassword, newPassword, confirmNewPassword string) (models.User, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, apperr.ErrUserNotFound
		}
		return models.User{}, err
	}

	err = auth.ValidatePasswordChange(oldPassword, user.PasswordHash, newPassword, confirmNewPassword, s.hasher.Verify)
	if err != nil {
		return models.User{}, err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return models.User{}, err
	}

	updated, err := s.store.UpdatePassword(ctx, user.ID, hash)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, apperr.ErrUserNotFound
		}
		return models.User{}, err
	}
	return updated, nil
}

// GetUserByID fetches a user by primary key.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, apperr.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// FindByUsername fetches a user by username.
func (s *UserService) FindByUsername(ctx context.Context, username string) (models.User, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, apperr.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
