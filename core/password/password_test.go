package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/journal/core/password"
)

// fastParams keep test runtime reasonable; production uses DefaultParams.
func fastParams() password.Params {
	return password.Params{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestHashVerify(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		encoded, err := password.Hash("correct horse battery staple", fastParams())
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

		ok, err := password.Verify(encoded, "correct horse battery staple")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		encoded, err := password.Hash("secret", fastParams())
		require.NoError(t, err)

		ok, err := password.Verify(encoded, "not-the-secret")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unique salt per hash", func(t *testing.T) {
		t.Parallel()

		first, err := password.Hash("secret", fastParams())
		require.NoError(t, err)
		second, err := password.Hash("secret", fastParams())
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("malformed hash is an error", func(t *testing.T) {
		t.Parallel()

		_, err := password.Verify("not-a-phc-string", "secret")
		assert.ErrorIs(t, err, password.ErrInvalidHash)
	})

	t.Run("wrong algorithm rejected", func(t *testing.T) {
		t.Parallel()

		_, err := password.Verify("$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA", "secret")
		assert.ErrorIs(t, err, password.ErrInvalidHash)
	})
}

func TestDefaultParams(t *testing.T) {
	t.Parallel()

	p := password.DefaultParams()
	assert.Equal(t, uint32(64*1024), p.Memory)
	assert.Equal(t, uint32(3), p.Iterations)
	assert.Equal(t, uint8(1), p.Parallelism)
}
