package user_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/journal/core/user"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	t.Run("strips credential material", func(t *testing.T) {
		t.Parallel()

		u := user.User{
			ID:           "user-1",
			Username:     "dayna",
			Email:        "dayna@example.com",
			DisplayName:  "Dayna",
			AuthProvider: user.ProviderPassword,
			PasswordHash: "$argon2id$...",
			OAuthID:      "google-raw-id",
			CloseFriends: []string{"user-2"},
			CreatedAt:    time.Now(),
		}

		safe := u.Sanitize()
		raw, err := json.Marshal(safe)
		require.NoError(t, err)

		assert.NotContains(t, string(raw), "argon2id")
		assert.NotContains(t, string(raw), "google-raw-id")
		assert.Equal(t, "dayna", safe.Username)
		assert.Equal(t, []string{"user-2"}, safe.CloseFriends)
	})

	t.Run("nil friend lists become empty slices", func(t *testing.T) {
		t.Parallel()

		safe := user.User{ID: "user-1"}.Sanitize()
		assert.NotNil(t, safe.CloseFriends)
		assert.NotNil(t, safe.CanViewFriends)
		assert.Empty(t, safe.CloseFriends)
	})
}
