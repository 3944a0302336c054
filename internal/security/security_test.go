package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret, role string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin-1",
		"role": role,
		"iss":  "ewm",
		"exp":  exp.Unix(),
	})
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyAdminToken(t *testing.T) {
	v := NewHS256Verifier("secret")

	t.Run("valid_admin_token", func(t *testing.T) {
		claims, err := v.VerifyAdminToken(signToken(t, "secret", "admin", time.Now().Add(time.Hour)))
		assert.NoError(t, err)
		assert.Equal(t, "admin-1", claims.Subject)
		assert.Equal(t, "ewm", claims.Issuer)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		_, err := v.VerifyAdminToken(signToken(t, "other", "admin", time.Now().Add(time.Hour)))
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := v.VerifyAdminToken(signToken(t, "secret", "admin", time.Now().Add(-time.Hour)))
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("non_admin_role", func(t *testing.T) {
		_, err := v.VerifyAdminToken(signToken(t, "secret", "user", time.Now().Add(time.Hour)))
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.VerifyAdminToken("not-a-token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}
