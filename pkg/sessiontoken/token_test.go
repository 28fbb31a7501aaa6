package sessiontoken_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/journal/pkg/sessiontoken"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("returns lowercase base32 token", func(t *testing.T) {
		t.Parallel()

		token, err := sessiontoken.Generate()
		require.NoError(t, err)

		// 32 bytes -> ceil(32*8/5) = 52 base32 chars without padding
		assert.Len(t, token, 52)
		for _, r := range token {
			assert.True(t, (r >= 'a' && r <= 'z') || (r >= '2' && r <= '7'),
				"unexpected character %q in token", r)
		}
	})

	t.Run("no collisions across many draws", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]struct{}, 1000)
		for range 1000 {
			token, err := sessiontoken.Generate()
			require.NoError(t, err)

			_, dup := seen[token]
			require.False(t, dup, "duplicate token generated")
			seen[token] = struct{}{}
		}
	})
}

func TestDeriveID(t *testing.T) {
	t.Parallel()

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		token, err := sessiontoken.Generate()
		require.NoError(t, err)

		assert.Equal(t, sessiontoken.DeriveID(token), sessiontoken.DeriveID(token))
	})

	t.Run("64 lowercase hex characters", func(t *testing.T) {
		t.Parallel()

		id := sessiontoken.DeriveID("some-token")
		assert.Len(t, id, 64)
		for _, r := range id {
			assert.True(t, (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f'),
				"unexpected character %q in session id", r)
		}
	})

	t.Run("one byte difference changes the id", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, sessiontoken.DeriveID("tokena"), sessiontoken.DeriveID("tokenb"))
	})

	t.Run("known vector", func(t *testing.T) {
		t.Parallel()

		// sha256("") is a fixed value; guards against accidental salting.
		assert.Equal(t,
			"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
			sessiontoken.DeriveID(""))
	})

	t.Run("distinct tokens produce distinct ids", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]struct{}, 1000)
		for range 1000 {
			token, err := sessiontoken.Generate()
			require.NoError(t, err)

			id := sessiontoken.DeriveID(token)
			_, dup := seen[id]
			require.False(t, dup, "session id collision")
			seen[id] = struct{}{}
		}
	})
}
