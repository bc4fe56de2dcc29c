package delivery

import (
	"net/http"
	"strings"

	"campusboard-backend/internal/auth/domain"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

func AuthMiddleware(gateway domain.AuthGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		user, err := gateway.ResolveUser(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// AccountActive blocks muted and banned accounts from content writes
// (pins, replies). Must run after AuthMiddleware.
func AccountActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		if user.Status != domain.StatusActive {
			c.JSON(http.StatusForbidden, gin.H{"error": suspensionMessage(user.Status)})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AccountNotBanned blocks only banned accounts; muted users may still
// manage their own device registrations.
func AccountNotBanned() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		if user.Status == domain.StatusBanned {
			c.JSON(http.StatusForbidden, gin.H{"error": suspensionMessage(user.Status)})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware, or nil.
func CurrentUser(c *gin.Context) *domain.User {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, ok := value.(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func suspensionMessage(status domain.AccountStatus) string {
	switch status {
	case domain.StatusMuted:
		return "Your account is temporarily muted. You can browse the board but cannot post right now."
	case domain.StatusBanned:
		return "Your account has been suspended. Contact support if you believe this is a mistake."
	default:
		return "Your account is not allowed to perform this action."
	}
}
