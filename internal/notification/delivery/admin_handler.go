package delivery

import (
	"crypto/subtle"
	"net/http"

	"campusboard-backend/internal/notification"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the privileged broadcast endpoint.
type AdminHandler struct {
	dispatcher *notification.Dispatcher
	adminToken string
}

// NewAdminHandler creates a new AdminHandler. An empty admin token
// disables the endpoint entirely.
func NewAdminHandler(dispatcher *notification.Dispatcher, adminToken string) *AdminHandler {
	return &AdminHandler{
		dispatcher: dispatcher,
		adminToken: adminToken,
	}
}

// BroadcastRequest represents the request body for an admin broadcast
type BroadcastRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
	Email string `json:"email"`
}

// AdminAuth guards broadcast routes with the configured admin token.
func (h *AdminHandler) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-Admin-Token")
		if h.adminToken == "" ||
			subtle.ConstantTimeCompare([]byte(provided), []byte(h.adminToken)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "admin token required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Broadcast pushes a title/body to one email or to every user with an
// active device
// POST /admin/notifications
func (h *AdminHandler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	delivered := h.dispatcher.Broadcast(req.Title, req.Body, req.Email)
	c.JSON(http.StatusOK, gin.H{"delivered": delivered})
}
