//go:build unit

package api_test

import (
	"time"

	"shop-reservation/internal/handler/middleware"
	"shop-reservation/internal/pkg/config"
	"shop-reservation/internal/pkg/jwt"
	"shop-reservation/internal/usecase"
	"shop-reservation/tests/common/authtest"

	"github.com/gin-gonic/gin"
)

var testCfg = config.NewTestConfig()

// Monday 2026-10-19 09:00 UTC
var baseTime = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

// newAuth wires the real middleware to a validator sharing the helper's secret.
func newAuth() (*middleware.AuthMiddleware, *authtest.JWTHelper) {
	validator := usecase.NewTokenValidator(jwt.NewService(testCfg.JWT.Secret, testCfg.JWT.Issuer))
	return middleware.NewAuthMiddleware(validator), authtest.NewJWTHelper(testCfg.JWT)
}

func shopAdmin(auth *middleware.AuthMiddleware) []gin.HandlerFunc {
	return []gin.HandlerFunc{auth.RequireAuth(), auth.RequireShopAdmin()}
}

func with(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+1)
	out = append(out, mw...)
	return append(out, h)
}
