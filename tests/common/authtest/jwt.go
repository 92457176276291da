//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"shop-reservation/internal/pkg/config"
	"shop-reservation/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	service *jwt.Service
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{service: jwt.NewService(cfg.Secret, cfg.Issuer)}
}

func (h *JWTHelper) AdminToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return h.generate(t, userID, jwt.RoleAdmin, nil, time.Hour)
}

func (h *JWTHelper) ShopOwnerToken(t *testing.T, userID, shopID uuid.UUID) string {
	t.Helper()
	return h.generate(t, userID, jwt.RoleShopOwner, &shopID, time.Hour)
}

func (h *JWTHelper) CustomerToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return h.generate(t, userID, jwt.RoleCustomer, nil, time.Hour)
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return h.generate(t, userID, jwt.RoleCustomer, nil, -time.Minute)
}

func (h *JWTHelper) generate(t *testing.T, userID uuid.UUID, role string, shopID *uuid.UUID, ttl time.Duration) string {
	t.Helper()
	token, err := h.service.GenerateToken(userID, role, shopID, ttl)
	require.NoError(t, err)
	return token
}
