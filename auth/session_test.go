package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner(t *testing.T) {
	signer := NewSigner("test-secret-that-is-long-enough-for-hs256", time.Hour)

	t.Run("Happy path - issue and verify judge token", func(t *testing.T) {
		token, err := signer.Issue(RoleJudge, "judge-1", "Ada")
		require.NoError(t, err)

		claims, err := signer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, RoleJudge, claims.Role)
		assert.Equal(t, "judge-1", claims.Subject)
		assert.Equal(t, "Ada", claims.Name)
	})

	t.Run("Unhappy path - empty token", func(t *testing.T) {
		_, err := signer.Verify("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Unhappy path - token signed with another secret", func(t *testing.T) {
		other := NewSigner("another-secret-that-is-long-enough-too", time.Hour)
		token, err := other.Issue(RoleAdmin, AdminSubject, "")
		require.NoError(t, err)

		_, err = signer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Unhappy path - expired token", func(t *testing.T) {
		expired := NewSigner("test-secret-that-is-long-enough-for-hs256", time.Hour)
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := expired.Issue(RoleAdmin, AdminSubject, "")
		require.NoError(t, err)

		_, err = signer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
