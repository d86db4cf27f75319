package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/chat"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/models"
)

// Chat actions accepted by the multiplexed endpoint
const (
	ActionGetConversations   = "get_conversations"
	ActionGetMessages        = "get_messages"
	ActionSendMessage        = "send_message"
	ActionCreateConversation = "create_conversation"
	ActionMarkRead           = "mark_read"
)

// ChatActionRequest is the envelope of POST /api/chat: an action name
// plus whichever payload fields that action needs.
type ChatActionRequest struct {
	Action          string      `json:"action" binding:"required"`
	ConversationID  string      `json:"conversationId"`
	Text            string      `json:"text"`
	ParticipantID   string      `json:"participantId"`
	ParticipantRole models.Role `json:"participantRole"`
}

// ChatHandler serves the action-multiplexed chat endpoint used by the
// chat widgets.
type ChatHandler struct {
	Conversations *chat.ConversationService
	Messages      *chat.MessageService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(conversations *chat.ConversationService, messages *chat.MessageService) *ChatHandler {
	return &ChatHandler{Conversations: conversations, Messages: messages}
}

// HandleAction dispatches one chat action. Every response carries a
// success flag; failures add a human-readable error string.
func (h *ChatHandler) HandleAction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authenticated"})
		return
	}

	var req ChatActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	switch req.Action {
	case ActionGetConversations:
		h.getConversations(c, userID)
	case ActionGetMessages:
		h.getMessages(c, userID, req)
	case ActionSendMessage:
		h.sendMessage(c, userID, req)
	case ActionCreateConversation:
		h.createConversation(c, userID, req)
	case ActionMarkRead:
		h.markRead(c, userID, req)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unknown action: " + req.Action})
	}
}

func (h *ChatHandler) getConversations(c *gin.Context, userID primitive.ObjectID) {
	views, err := h.Conversations.List(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "conversations": views})
}

func (h *ChatHandler) getMessages(c *gin.Context, userID primitive.ObjectID, req ChatActionRequest) {
	convID, err := primitive.ObjectIDFromHex(req.ConversationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid conversation id"})
		return
	}

	messages, err := h.Messages.List(c.Request.Context(), convID, userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "messages": messages})
}

func (h *ChatHandler) sendMessage(c *gin.Context, userID primitive.ObjectID, req ChatActionRequest) {
	convID, err := primitive.ObjectIDFromHex(req.ConversationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid conversation id"})
		return
	}

	msg, err := h.Messages.Send(c.Request.Context(), convID, userID, req.Text)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

func (h *ChatHandler) createConversation(c *gin.Context, userID primitive.ObjectID, req ChatActionRequest) {
	if req.ParticipantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "participantId is required"})
		return
	}

	conv, err := h.Conversations.Create(c.Request.Context(), userID, req.ParticipantID, req.ParticipantRole)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "conversation": conv})
}

func (h *ChatHandler) markRead(c *gin.Context, userID primitive.ObjectID, req ChatActionRequest) {
	convID, err := primitive.ObjectIDFromHex(req.ConversationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid conversation id"})
		return
	}

	if err := h.Messages.MarkRead(c.Request.Context(), convID, userID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ChatHandler) fail(c *gin.Context, err error) {
	status, msg := chatErrorStatus(err)
	c.JSON(status, gin.H{"success": false, "error": msg})
}
