package api

import (
	"net/http"

	authDelivery "campusboard-backend/internal/auth/delivery"
	authdomain "campusboard-backend/internal/auth/domain"
	messageDelivery "campusboard-backend/internal/message/delivery"
	notifDelivery "campusboard-backend/internal/notification/delivery"
	pinDelivery "campusboard-backend/internal/pinboard/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, gateway authdomain.AuthGateway,
	pinHandler *pinDelivery.PinHandler,
	messageHandler *messageDelivery.MessageHandler,
	deviceHandler *notifDelivery.DeviceHandler,
	adminHandler *notifDelivery.AdminHandler) {

	// Health check (no auth required)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := authDelivery.AuthMiddleware(gateway)

	// Pinboard routes: the board itself is public, writes require an
	// active account.
	r.GET("/pins", pinHandler.GetPins)
	r.POST("/pins", authed, authDelivery.AccountActive(), pinHandler.ClaimPin)
	r.DELETE("/pins", authed, authDelivery.AccountActive(), pinHandler.DeletePin)

	// Reply routes: reading is allowed for muted accounts, posting is not.
	r.GET("/messages", authed, messageHandler.GetMessages)
	r.POST("/messages", authed, authDelivery.AccountActive(), messageHandler.PostMessage)

	// Device token routes: muted users still manage their devices.
	r.POST("/notification_tokens", authed, authDelivery.AccountNotBanned(), deviceHandler.RegisterToken)
	r.DELETE("/notification_tokens", authed, authDelivery.AccountNotBanned(), deviceHandler.UnregisterToken)

	// Admin broadcast (admin token, not bearer auth)
	admin := r.Group("/admin", adminHandler.AdminAuth())
	{
		admin.POST("/notifications", adminHandler.Broadcast)
	}
}
