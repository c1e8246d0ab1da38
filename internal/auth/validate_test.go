package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiqa-platform/user-service/internal/apperr"
)

func TestValidateRegistration(t *testing.T) {
	ctx := context.Background()
	free := func(context.Context, string) (bool, error) { return false, nil }
	taken := func(context.Context, string) (bool, error) { return true, nil }

	t.Run("taken username", func(t *testing.T) {
		err := ValidateRegistration(ctx, taken, "alice", "pw1", "pw1")
		assert.ErrorIs(t, err, apperr.ErrUserAlreadyExists)
	})

	t.Run("uniqueness checked before confirmation", func(t *testing.T) {
		err := ValidateRegistration(ctx, taken, "alice", "pw1", "pw2")
		assert.ErrorIs(t, err, apperr.ErrUserAlreadyExists)
	})

	t.Run("password mismatch", func(t *testing.T) {
		err := ValidateRegistration(ctx, free, "bob", "pw1", "pw2")
		assert.ErrorIs(t, err, apperr.ErrPasswordMismatch)
	})

	t.Run("mismatch is case-sensitive", func(t *testing.T) {
		err := ValidateRegistration(ctx, free, "bob", "Password", "password")
		assert.ErrorIs(t, err, apperr.ErrPasswordMismatch)
	})

	t.Run("ok", func(t *testing.T) {
		err := ValidateRegistration(ctx, free, "bob", "pw1", "pw1")
		assert.NoError(t, err)
	})

	t.Run("store error propagates", func(t *testing.T) {
		storeErr := errors.New("store unreachable")
		failing := func(context.Context, string) (bool, error) { return false, storeErr }
		err := ValidateRegistration(ctx, failing, "bob", "pw1", "pw1")
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestValidatePasswordChange(t *testing.T) {
	match := func(raw, digest string) bool { return raw == "old-pw" && digest == "digest" }

	t.Run("wrong old password", func(t *testing.T) {
		err := ValidatePasswordChange("bad", "digest", "new", "new", match)
		assert.ErrorIs(t, err, apperr.ErrPasswordIncorrect)
	})

	t.Run("old password checked before confirmation", func(t *testing.T) {
		// Both rules would fail; the incorrect-password outcome wins.
		err := ValidatePasswordChange("bad", "digest", "new1", "new2", match)
		assert.ErrorIs(t, err, apperr.ErrPasswordIncorrect)
	})

	t.Run("new password mismatch", func(t *testing.T) {
		err := ValidatePasswordChange("old-pw", "digest", "new1", "new2", match)
		assert.ErrorIs(t, err, apperr.ErrPasswordMismatch)
	})

	t.Run("ok", func(t *testing.T) {
		err := ValidatePasswordChange("old-pw", "digest", "new", "new", match)
		require.NoError(t, err)
	})
}
