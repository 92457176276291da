//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/handler/middleware"
	"shop-reservation/internal/pkg/config"
	"shop-reservation/internal/pkg/jwt"
	"shop-reservation/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig()
	svc := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer)
	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(svc))

	echoActor := func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"kind": "anonymous"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"kind": string(actor.Kind()), "user_id": actor.UserID().String()})
	}

	r := gin.New()
	r.GET("/required", auth.RequireAuth(), echoActor)
	r.GET("/optional", auth.OptionalAuth(), echoActor)
	r.GET("/shops/:shopID/admin", auth.RequireAuth(), auth.RequireShopAdmin(), echoActor)
	return r, svc
}

func issue(t *testing.T, svc *jwt.Service, role string, shopID *uuid.UUID, ttl time.Duration) string {
	t.Helper()
	token, err := svc.GenerateToken(uuid.New(), role, shopID, ttl)
	require.NoError(t, err)
	return token
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	r, svc := setupAuthRouter(t)

	testCases := []struct {
		name         string
		token        string
		expectedCode int
		expectedBody string
	}{
		{name: "success: valid customer token", token: issue(t, svc, jwt.RoleCustomer, nil, time.Hour), expectedCode: http.StatusOK, expectedBody: `"kind":"customer"`},
		{name: "error: missing token", token: "", expectedCode: http.StatusUnauthorized, expectedBody: "Access token required"},
		{name: "error: expired token", token: issue(t, svc, jwt.RoleCustomer, nil, -time.Minute), expectedCode: http.StatusUnauthorized, expectedBody: "Invalid or expired token"},
		{name: "error: malformed token", token: "not-a-jwt", expectedCode: http.StatusUnauthorized, expectedBody: "Invalid or expired token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(r, "/required", tc.token)
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.expectedBody)
		})
	}

	t.Run("error: token signed with another secret", func(t *testing.T) {
		other := jwt.NewService("another-secret", config.NewTestConfig().JWT.Issuer)
		rec := get(r, "/required", issue(t, other, jwt.RoleAdmin, nil, time.Hour))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	r, svc := setupAuthRouter(t)

	t.Run("success: anonymous passes through", func(t *testing.T) {
		rec := get(r, "/optional", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"kind":"anonymous"`)
	})

	t.Run("success: token resolves the actor", func(t *testing.T) {
		rec := get(r, "/optional", issue(t, svc, jwt.RoleAdmin, nil, time.Hour))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"kind":"`+string(reservation.ActorAdmin)+`"`)
	})

	t.Run("error: a present but invalid token is rejected", func(t *testing.T) {
		rec := get(r, "/optional", "garbage")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireShopAdmin(t *testing.T) {
	r, svc := setupAuthRouter(t)
	shopID := uuid.New()
	otherShop := uuid.New()
	path := "/shops/" + shopID.String() + "/admin"

	testCases := []struct {
		name         string
		path         string
		token        string
		expectedCode int
	}{
		{name: "success: owner of the shop", path: path, token: issue(t, svc, jwt.RoleShopOwner, &shopID, time.Hour), expectedCode: http.StatusOK},
		{name: "success: platform admin", path: path, token: issue(t, svc, jwt.RoleAdmin, nil, time.Hour), expectedCode: http.StatusOK},
		{name: "error: owner of another shop", path: path, token: issue(t, svc, jwt.RoleShopOwner, &otherShop, time.Hour), expectedCode: http.StatusForbidden},
		{name: "error: customer", path: path, token: issue(t, svc, jwt.RoleCustomer, nil, time.Hour), expectedCode: http.StatusForbidden},
		{name: "error: malformed shop ID", path: "/shops/xyz/admin", token: issue(t, svc, jwt.RoleAdmin, nil, time.Hour), expectedCode: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(r, tc.path, tc.token)
			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}
