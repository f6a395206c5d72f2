package security_test

import (
	"strings"
	"testing"

	"github.com/SalangsangJohnPatrick/inventory-management/pkg/config"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/security"
	"github.com/stretchr/testify/require"
)

func newTestHasher(t *testing.T) *security.Hasher {
	t.Helper()
	h, err := security.NewHasher(config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	require.NoError(t, err)
	return h
}

func TestHashAndVerifyPassword(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("very-secure-password")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$"))

	ok, err := h.Verify("very-secure-password", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.Verify("bogus-password", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashUsesFreshSalt(t *testing.T) {
	h := newTestHasher(t)
	first, err := h.Hash("same-password")
	require.NoError(t, err)
	second, err := h.Hash("same-password")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	_, err := newTestHasher(t).Hash("")
	require.Error(t, err)
}

func TestVerifyPasswordBadHash(t *testing.T) {
	h := newTestHasher(t)
	for _, encoded := range []string{
		"not-a-hash",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8,t=1$c2FsdA$aGFzaA",
	} {
		_, err := h.Verify("irrelevant", encoded)
		require.ErrorIs(t, err, security.ErrInvalidHash, encoded)
	}

	require.NotPanics(t, func() { h.VerifyDecoy("anything") })
}
