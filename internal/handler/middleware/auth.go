package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxActorKey = "actor"

	ShopIDParam = "shopID"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Access token required"},
			})
			c.Abort()
			return
		}

		if !m.authenticate(c, token) {
			return
		}
		c.Next()
	}
}

// OptionalAuth authenticates the request if a token is present. Routes using
// it also serve guests, who identify themselves through the request body.
// A token that is present but invalid is still rejected.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		if !m.authenticate(c, token) {
			return
		}
		c.Next()
	}
}

// RequireShopAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireShopAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			// Unexpected error: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"message": "Internal server error"},
			})
			c.Abort()
			return
		}

		shopID, err := uuid.Parse(c.Param(ShopIDParam))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{"message": "Invalid shop ID format"},
			})
			c.Abort()
			return
		}

		if !actor.IsShopAdmin(shopID) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": gin.H{"message": "Insufficient permissions"},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context, token string) bool {
	actor, err := m.tokenValidator.ValidateToken(token)
	if err != nil {
		slog.Warn("Token validation failed in auth middleware", "error", err.Error())
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{"message": "Invalid or expired token"},
		})
		c.Abort()
		return false
	}

	c.Set(ctxActorKey, actor)
	c.Set("jwt_claims", map[string]any{
		"user_id": actor.UserID().String(),
		"role":    string(actor.Kind()),
	})
	return true
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetActor(c *gin.Context) (reservation.Actor, bool) {
	v, exists := c.Get(ctxActorKey)
	if !exists {
		return reservation.Actor{}, false
	}

	actor, ok := v.(reservation.Actor)
	return actor, ok
}
