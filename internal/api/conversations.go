package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/chat"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/models"
)

// ConversationHandler handles the schema-rich conversation routes
type ConversationHandler struct {
	Conversations *chat.ConversationService
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(conversations *chat.ConversationService) *ConversationHandler {
	return &ConversationHandler{Conversations: conversations}
}

// ListConversations returns the authenticated user's conversations,
// newest activity first, with unread counts attached.
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	views, err := h.Conversations.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list conversations"})
		return
	}

	c.JSON(http.StatusOK, views)
}

// CreateConversation returns the conversation with the requested
// participant, creating it if none exists yet.
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req models.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conv, err := h.Conversations.Create(c.Request.Context(), userID, req.ParticipantID, req.ParticipantRole)
	if err != nil {
		status, msg := chatErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, conv)
}

// chatErrorStatus maps chat service errors onto HTTP statuses.
func chatErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, chat.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid input"
	case errors.Is(err, chat.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, chat.ErrForbidden):
		return http.StatusForbidden, "Not a participant of this conversation"
	case errors.Is(err, chat.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, chat.ErrCreationFailed):
		return http.StatusInternalServerError, "Failed to create conversation"
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}
