package delivery

import (
	"errors"
	"net/http"
	"time"

	authDelivery "campusboard-backend/internal/auth/delivery"
	"campusboard-backend/internal/pinboard/domain"
	"campusboard-backend/internal/pinboard/usecase"

	"github.com/gin-gonic/gin"
)

// PinHandler handles pinboard HTTP requests
type PinHandler struct {
	pinUsecase usecase.PinUsecase
}

// NewPinHandler creates a new PinHandler
func NewPinHandler(pinUsecase usecase.PinUsecase) *PinHandler {
	return &PinHandler{
		pinUsecase: pinUsecase,
	}
}

// ClaimPinRequest represents the request body for claiming a slot.
// Row/col are pointers so that 0 survives the required binding.
type ClaimPinRequest struct {
	Emoji   string `json:"emoji" binding:"required"`
	Text    string `json:"text" binding:"required"`
	Author  string `json:"author"`
	GridRow *int   `json:"gridRow" binding:"required"`
	GridCol *int   `json:"gridCol" binding:"required"`
}

// DeletePinRequest represents the request body for deleting a pin
type DeletePinRequest struct {
	ID string `json:"id" binding:"required"`
}

// GetPins returns all live pins
// GET /pins
func (h *PinHandler) GetPins(c *gin.Context) {
	pins, err := h.pinUsecase.ListActive(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load pins"})
		return
	}
	if pins == nil {
		pins = []domain.Pin{}
	}
	c.JSON(http.StatusOK, pins)
}

// ClaimPin claims a grid slot for the authenticated user
// POST /pins
func (h *PinHandler) ClaimPin(c *gin.Context) {
	user := authDelivery.CurrentUser(c)

	var req ClaimPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pin, err := h.pinUsecase.Claim(usecase.ClaimRequest{
		Emoji:   req.Emoji,
		Text:    req.Text,
		Author:  req.Author,
		GridRow: *req.GridRow,
		GridCol: *req.GridCol,
	}, user.Email, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrSlotOccupied), errors.Is(err, domain.ErrCreatorHasLivePin):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to claim slot"})
		}
		return
	}

	c.JSON(http.StatusCreated, pin)
}

// DeletePin deletes a pin owned by the authenticated user
// DELETE /pins
func (h *PinHandler) DeletePin(c *gin.Context) {
	user := authDelivery.CurrentUser(c)

	var req DeletePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.pinUsecase.DeleteOwn(req.ID, user.Email); err != nil {
		switch {
		case errors.Is(err, domain.ErrPinNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete pin"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "pin deleted"})
}
