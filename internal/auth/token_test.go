package auth_test

import (
	"testing"
	"time"

	"go-wine-tasting/config"
	"go-wine-tasting/internal/auth"
	"go-wine-tasting/internal/model"
	apperrors "go-wine-tasting/pkg/app_errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, issuer string) *auth.TokenManager {
	t.Helper()
	m, err := auth.NewTokenManager(config.AuthConfig{
		JWTSecret:     "secret",
		Issuer:        issuer,
		GuestTokenTTL: time.Hour,
	})
	require.NoError(t, err)
	return m
}

func signed(t *testing.T, method jwt.SigningMethod, key interface{}, claims auth.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	_, err := auth.NewTokenManager(config.AuthConfig{JWTSecret: "  "})
	assert.Error(t, err)
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := newManager(t, "wine-tasting")
	email := "sommelier@example.com"
	user := &model.User{ID: uuid.New(), Name: "Ana", Email: &email, IsGuest: true}

	token, expiresAt, err := m.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	identity, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, "Ana", identity.Name)
	assert.True(t, identity.IsGuest)
	require.NotNil(t, identity.Email)
	assert.Equal(t, email, *identity.Email)
}

func TestTokenManager_Verify(t *testing.T) {
	now := time.Now()
	valid := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    "wine-tasting",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Name: "Bruno",
	}

	t.Run("Success without issuer check", func(t *testing.T) {
		m := newManager(t, "")
		claims := valid
		claims.Issuer = "anything"

		identity, err := m.Verify(signed(t, jwt.SigningMethodHS256, []byte("secret"), claims))

		require.NoError(t, err)
		assert.Equal(t, "Bruno", identity.Name)
		assert.Nil(t, identity.Email)
	})

	t.Run("Failed - wrong secret", func(t *testing.T) {
		m := newManager(t, "wine-tasting")

		_, err := m.Verify(signed(t, jwt.SigningMethodHS256, []byte("other"), valid))

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Failed - expired", func(t *testing.T) {
		m := newManager(t, "wine-tasting").WithClock(func() time.Time { return now.Add(2 * time.Hour) })

		_, err := m.Verify(signed(t, jwt.SigningMethodHS256, []byte("secret"), valid))

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Failed - missing expiration", func(t *testing.T) {
		m := newManager(t, "wine-tasting")
		claims := valid
		claims.ExpiresAt = nil

		_, err := m.Verify(signed(t, jwt.SigningMethodHS256, []byte("secret"), claims))

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Failed - unexpected algorithm", func(t *testing.T) {
		m := newManager(t, "wine-tasting")

		_, err := m.Verify(signed(t, jwt.SigningMethodHS512, []byte("secret"), valid))

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Failed - issuer mismatch", func(t *testing.T) {
		m := newManager(t, "someone-else")

		_, err := m.Verify(signed(t, jwt.SigningMethodHS256, []byte("secret"), valid))

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Failed - subject is not a uuid", func(t *testing.T) {
		m := newManager(t, "wine-tasting")
		claims := valid
		claims.Subject = "user-42"

		_, err := m.Verify(signed(t, jwt.SigningMethodHS256, []byte("secret"), claims))

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Failed - garbage", func(t *testing.T) {
		m := newManager(t, "wine-tasting")

		_, err := m.Verify("not-a-token")

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}
