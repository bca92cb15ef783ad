package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/backoffice/pkg/errors"
)

func TestGenerateAndParse(t *testing.T) {
	m := NewManager("secret", "idp", time.Hour)

	token, err := m.GenerateToken("admin-1", "Alice", "admin")
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseTokenErrors(t *testing.T) {
	m := NewManager("secret", "idp", time.Hour)

	t.Run("签名密钥不同", func(t *testing.T) {
		other := NewManager("other", "idp", time.Hour)
		token, err := other.GenerateToken("u", "n", "admin")
		require.NoError(t, err)

		_, err = m.ParseToken(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("签发方不同", func(t *testing.T) {
		other := NewManager("secret", "someone-else", time.Hour)
		token, err := other.GenerateToken("u", "n", "admin")
		require.NoError(t, err)

		_, err = m.ParseToken(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("已过期", func(t *testing.T) {
		expired := NewManager("secret", "idp", -time.Minute)
		token, err := expired.GenerateToken("u", "n", "admin")
		require.NoError(t, err)

		_, err = m.ParseToken(token)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("格式错误", func(t *testing.T) {
		_, err := m.ParseToken("not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}
