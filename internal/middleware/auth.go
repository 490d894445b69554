package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/token"
)

const (
	userIDKey      = "userID"
	currentUserKey = "currentUser"
)

// AuthMiddleware resolves the bearer token on each request to a live, active
// user before any protected handler runs. Verification happens on every
// request; nothing is cached across requests. Any failure, whether a missing
// header, a bad or expired token, an unknown user or a deactivated account,
// ends the request with 401.
func AuthMiddleware(tokens *token.Service, users services.UserServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		user, err := users.GetUserByID(userID)
		if err != nil || !user.IsActive {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(userIDKey, user.ID)
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by AuthMiddleware, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{
		"code":    "UNAUTHORIZED",
		"message": message,
	}})
	c.Abort()
}
