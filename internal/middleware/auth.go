package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/clinic-api/internal/apperrors"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/utils"
)

// UserIDKey is where the authenticated user id lives in the gin context.
const UserIDKey = "userID"

// UserLoader is used to reject tokens of deleted or disabled accounts.
type UserLoader interface {
	UserByID(ctx context.Context, id uint) (*models.User, error)
}

func AuthMiddleware(tokens *utils.TokenIssuer, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be a Bearer token"})
			return
		}
		claims, err := tokens.Validate(tokenString, utils.AccessToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		user, err := users.UserByID(c.Request.Context(), claims.UserID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Uint("user_id", claims.UserID).Msg("failed to load token user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if err != nil || !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found or inactive"})
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Next()
	}
}

// UserID returns the caller set by AuthMiddleware, or 0.
func UserID(c *gin.Context) uint {
	return c.GetUint(UserIDKey)
}
