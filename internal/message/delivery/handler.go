package delivery

import (
	"errors"
	"net/http"

	authDelivery "campusboard-backend/internal/auth/delivery"
	"campusboard-backend/internal/message/domain"
	"campusboard-backend/internal/message/usecase"

	"github.com/gin-gonic/gin"
)

// MessageHandler handles reply-thread HTTP requests
type MessageHandler struct {
	messageUsecase usecase.MessageUsecase
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageUsecase usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{
		messageUsecase: messageUsecase,
	}
}

// PostMessageRequest represents the request body for posting a reply
type PostMessageRequest struct {
	PinID   string `json:"pinId" binding:"required"`
	Message string `json:"message" binding:"required"`
	Author  string `json:"author"`
}

// GetMessages lists the caller's received or sent replies
// GET /messages?box=received|sent
func (h *MessageHandler) GetMessages(c *gin.Context) {
	user := authDelivery.CurrentUser(c)

	box := domain.Mailbox(c.DefaultQuery("box", string(domain.BoxReceived)))
	messages, err := h.messageUsecase.List(user.Email, box)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	c.JSON(http.StatusOK, messages)
}

// PostMessage posts a reply to a pin's creator
// POST /messages
func (h *MessageHandler) PostMessage(c *gin.Context) {
	user := authDelivery.CurrentUser(c)

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messageUsecase.Post(req.PinID, user.Email, req.Message, req.Author)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrPinNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to post message"})
		}
		return
	}

	c.JSON(http.StatusCreated, message)
}
