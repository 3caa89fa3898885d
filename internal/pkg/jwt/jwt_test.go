//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"showtime-booking/internal/domain/auth"
	"showtime-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Hour)
	staffID := uuid.New()

	t.Run("round trip", func(t *testing.T) {
		token, err := svc.GenerateToken(staffID, auth.RoleOperator)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, staffID, claims.StaffID)
		assert.Equal(t, "operator", claims.Role)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := svc.GenerateTokenWithExpiry(staffID, auth.RoleAdmin, -time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("signed with another key", func(t *testing.T) {
		token, err := jwt.NewService("other-secret", time.Hour).GenerateToken(staffID, auth.RoleAdmin)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
