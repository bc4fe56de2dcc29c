package api

import (
	"net/http"

	authdomain "campusboard-backend/internal/auth/domain"
	messageDelivery "campusboard-backend/internal/message/delivery"
	messageUsecase "campusboard-backend/internal/message/usecase"
	"campusboard-backend/internal/notification"
	notifDelivery "campusboard-backend/internal/notification/delivery"
	pinDelivery "campusboard-backend/internal/pinboard/delivery"
	pinUsecase "campusboard-backend/internal/pinboard/usecase"
	"campusboard-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	gateway        authdomain.AuthGateway
	pinHandler     *pinDelivery.PinHandler
	messageHandler *messageDelivery.MessageHandler
	deviceHandler  *notifDelivery.DeviceHandler
	adminHandler   *notifDelivery.AdminHandler
}

func NewHandler(gateway authdomain.AuthGateway, pinUc pinUsecase.PinUsecase,
	messageUc messageUsecase.MessageUsecase, dispatcher *notification.Dispatcher,
	cfg *config.Config) *Handler {
	return &Handler{
		gateway:        gateway,
		pinHandler:     pinDelivery.NewPinHandler(pinUc),
		messageHandler: messageDelivery.NewMessageHandler(messageUc),
		deviceHandler:  notifDelivery.NewDeviceHandler(dispatcher),
		adminHandler:   notifDelivery.NewAdminHandler(dispatcher, cfg.AdminToken),
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Token")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.gateway, h.pinHandler, h.messageHandler, h.deviceHandler, h.adminHandler)

	return r.Run(addr)
}
