package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talent_messenger/internal/middleware"
	"talent_messenger/internal/service"
	apperrors "talent_messenger/pkg/errors"
	"talent_messenger/pkg/logger"
)

type ConversationHandler struct {
	messagingService service.MessagingService
	log              logger.Logger
}

func NewConversationHandler(messagingService service.MessagingService, log logger.Logger) *ConversationHandler {
	return &ConversationHandler{
		messagingService: messagingService,
		log:              log,
	}
}

func (h *ConversationHandler) List(c *gin.Context) {
	userID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	conversations, err := h.messagingService.ListConversations(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, conversations)
}

type CreateConversationRequest struct {
	ParticipantID string `json:"participant_id" binding:"required"`
}

// Create is get-or-create: posting the same participant twice returns the
// same conversation record.
func (h *ConversationHandler) Create(c *gin.Context) {
	userID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conversation, err := h.messagingService.GetOrCreateConversation(c.Request.Context(), userID, req.ParticipantID)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, conversation)
}

func (h *ConversationHandler) Delete(c *gin.Context) {
	deleted, err := h.messagingService.DeleteConversation(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Conversation deleted"})
}

func (h *ConversationHandler) MarkRead(c *gin.Context) {
	userID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.messagingService.MarkRead(c.Request.Context(), c.Param("id"), userID); err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Conversation marked as read"})
}

func (h *ConversationHandler) UnreadCount(c *gin.Context) {
	userID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	count, err := h.messagingService.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}
