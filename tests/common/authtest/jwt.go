//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"showtime-booking/internal/domain/auth"
	"showtime-booking/internal/pkg/config"
	"showtime-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) service(t *testing.T) *jwt.Service {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	return jwt.NewService(h.cfg.Secret, duration)
}

func (h *JWTHelper) GenerateToken(t *testing.T, staffID uuid.UUID, role auth.Role) string {
	t.Helper()
	token, err := h.service(t).GenerateToken(staffID, role)
	require.NoError(t, err)
	return token
}

// StaffToken mints a token for a fresh staff member with role.
func (h *JWTHelper) StaffToken(t *testing.T, role auth.Role) string {
	t.Helper()
	return h.GenerateToken(t, uuid.New(), role)
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, staffID uuid.UUID, role auth.Role) string {
	t.Helper()
	token, err := h.service(t).GenerateTokenWithExpiry(staffID, role, -time.Minute)
	require.NoError(t, err)
	return token
}
