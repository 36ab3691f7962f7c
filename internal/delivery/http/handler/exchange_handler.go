package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	entity "skillswap/internal/domain"
	service "skillswap/internal/service/postgresql"
)

type ExchangeHandler struct {
	exchangeService *service.ExchangeService
}

func NewExchangeHandler(exchangeService *service.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchangeService: exchangeService}
}

// POST /api/exchange/request
func (h *ExchangeHandler) CreateRequest(c *gin.Context) {
	accountID := c.MustGet("account_id").(int64)

	var input entity.CreateExchangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields (user, profile, or skills)"})
		return
	}

	if _, err := h.exchangeService.CreateRequest(accountID, input); err != nil {
		switch {
		case errors.Is(err, entity.ErrNoProfile):
			c.JSON(http.StatusBadRequest, gin.H{"error": "You must create your profile first."})
		case errors.Is(err, entity.ErrSelfExchange):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot request an exchange with yourself."})
		default:
			logrus.WithError(err).Error("error creating exchange")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exchange request submitted successfully."})
}

// GET /api/exchange/received
func (h *ExchangeHandler) GetReceived(c *gin.Context) {
	accountID := c.MustGet("account_id").(int64)

	views, err := h.exchangeService.GetReceived(accountID)
	if err != nil {
		h.listError(c, err, "error fetching received exchanges")
		return
	}
	c.JSON(http.StatusOK, views)
}

// GET /api/exchange/sent
func (h *ExchangeHandler) GetSent(c *gin.Context) {
	accountID := c.MustGet("account_id").(int64)

	views, err := h.exchangeService.GetSent(accountID)
	if err != nil {
		h.listError(c, err, "error fetching sent exchanges")
		return
	}
	c.JSON(http.StatusOK, views)
}

// PUT /api/exchange/:id/status
func (h *ExchangeHandler) UpdateStatus(c *gin.Context) {
	accountID := c.MustGet("account_id").(int64)

	exchangeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exchange id"})
		return
	}

	var input entity.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil || !entity.ValidTarget(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	if err := h.exchangeService.UpdateStatus(accountID, exchangeID, input.Status); err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		case errors.Is(err, entity.ErrRecipientAccept):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the receiver can accept"})
		case errors.Is(err, entity.ErrRecipientDecline):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the receiver can decline"})
		case errors.Is(err, entity.ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		case errors.Is(err, entity.ErrExchangeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Exchange not found"})
		case errors.Is(err, entity.ErrExchangeSettled):
			c.JSON(http.StatusConflict, gin.H{"error": "Exchange is no longer open"})
		case errors.Is(err, entity.ErrNoProfile):
			c.JSON(http.StatusBadRequest, gin.H{"error": "You must create your profile first."})
		default:
			logrus.WithError(err).Error("error updating exchange status")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exchange status updated"})
}

func (h *ExchangeHandler) listError(c *gin.Context, err error, msg string) {
	if errors.Is(err, entity.ErrNoProfile) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must create your profile first."})
		return
	}
	logrus.WithError(err).Error(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
}
