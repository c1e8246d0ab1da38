package auth

import (
	"context"

	"github.com/aiqa-platform/user-service/internal/apperr"
)

// ExistsFunc reports whether a username is already registered. It is the
// only I/O a credential check performs.
type ExistsFunc func(ctx context.Context, username string) (bool, error)

// VerifyFunc checks a raw password against a stored digest.
type VerifyFunc func(raw, digest string) bool

// ValidateRegistration applies the registration business rules. The
// uniqueness check runs before the confirmation check so the outcome for
// a taken username never depends on the password fields.
func ValidateRegistration(ctx context.Context, exists ExistsFunc, username, password, confirm string) error {
	taken, err := exists(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return apperr.ErrUserAlreadyExists
	}
	if password != confirm {
		return apperr.ErrPasswordMismatch
	}
	return nil
}

// ValidatePasswordChange applies the password-change rules for an
// already-resolved user. The old-password check runs before the
// new-password confirmation check; comparisons are exact and
// case-sensitive.
func ValidatePasswordChange(oldPassword, storedHash, newPassword, confirm string, verify VerifyFunc) error {
	if !verify(oldPassword, storedHash) {
		return apperr.ErrPasswordIncorrect
	}
	if newPassword != confirm {
		return apperr.ErrPasswordMismatch
	}
	return nil
}
