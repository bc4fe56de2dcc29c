package delivery

import (
	"net/http"

	authDelivery "campusboard-backend/internal/auth/delivery"
	"campusboard-backend/internal/notification"
	"campusboard-backend/internal/notification/domain"

	"github.com/gin-gonic/gin"
)

// DeviceHandler handles device-token registration HTTP requests
type DeviceHandler struct {
	dispatcher *notification.Dispatcher
}

// NewDeviceHandler creates a new DeviceHandler
func NewDeviceHandler(dispatcher *notification.Dispatcher) *DeviceHandler {
	return &DeviceHandler{
		dispatcher: dispatcher,
	}
}

// RegisterTokenRequest represents the request body for registering a device
type RegisterTokenRequest struct {
	DeviceToken string `json:"deviceToken" binding:"required"`
	Platform    string `json:"platform"`
	Environment string `json:"environment"`
	AppVersion  string `json:"appVersion"`
	OSVersion   string `json:"osVersion"`
}

// UnregisterTokenRequest represents the request body for unregistering a device
type UnregisterTokenRequest struct {
	DeviceToken string `json:"deviceToken" binding:"required"`
}

// RegisterToken registers or refreshes a device token for the caller
// POST /notification_tokens
func (h *DeviceHandler) RegisterToken(c *gin.Context) {
	user := authDelivery.CurrentUser(c)

	var req RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.dispatcher.RegisterDevice(user.Email, req.DeviceToken, req.Platform,
		domain.Environment(req.Environment), req.AppVersion, req.OSVersion)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register device"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "device registered"})
}

// UnregisterToken deactivates a device token for the caller
// DELETE /notification_tokens
func (h *DeviceHandler) UnregisterToken(c *gin.Context) {
	user := authDelivery.CurrentUser(c)

	var req UnregisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.dispatcher.UnregisterDevice(user.Email, req.DeviceToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unregister device"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "device unregistered"})
}
