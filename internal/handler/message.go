package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talent_messenger/internal/middleware"
	"talent_messenger/internal/service"
	apperrors "talent_messenger/pkg/errors"
	"talent_messenger/pkg/logger"
)

type MessageHandler struct {
	messagingService service.MessagingService
	log              logger.Logger
}

func NewMessageHandler(messagingService service.MessagingService, log logger.Logger) *MessageHandler {
	return &MessageHandler{
		messagingService: messagingService,
		log:              log,
	}
}

func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.messagingService.ListMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, messages)
}

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messagingService.SendMessage(c.Request.Context(), c.Param("id"), userID, req.ReceiverID, req.Content)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *MessageHandler) Delete(c *gin.Context) {
	deleted, err := h.messagingService.DeleteMessage(c.Request.Context(), c.Param("messageId"))
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
