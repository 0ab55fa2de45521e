//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"coach-booking/internal/domain/user"
	"coach-booking/internal/pkg/config"
	"coach-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const defaultTTL = 15 * time.Minute

// JWTHelper mints tokens the way the external auth service would.
type JWTHelper struct {
	service *jwt.Service
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{service: jwt.NewService(cfg.Secret)}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.service.GenerateToken(userID, role, defaultTTL)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := h.service.GenerateToken(userID, role, -time.Minute)
	require.NoError(t, err)
	return token
}
