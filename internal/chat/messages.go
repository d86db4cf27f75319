package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/database"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/logger"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/models"
)

// timeNow is swapped in tests
var timeNow = time.Now

// MessageService appends messages, marks read receipts and keeps the
// per-user unread counters on the parent conversation in step.
type MessageService struct {
	messages      database.MessageStore
	conversations database.ConversationStore
	log           *logger.Logger
}

// NewMessageService creates a new message service
func NewMessageService(messages database.MessageStore, conversations database.ConversationStore) *MessageService {
	return &MessageService{
		messages:      messages,
		conversations: conversations,
		log:           logger.New("chat.messages"),
	}
}

// List returns the conversation's messages oldest first. The requester
// must be a participant; anyone else gets ErrNotFound, the same as a
// conversation that does not exist.
func (s *MessageService) List(ctx context.Context, conversationID, requesterID primitive.ObjectID) ([]*models.Message, error) {
	if _, err := s.requireParticipant(ctx, conversationID, requesterID, ErrNotFound); err != nil {
		return nil, err
	}
	return s.messages.ListByConversation(ctx, conversationID)
}

// Send appends a message, updates the parent conversation's
// last-message summary and increments the recipient's unread counter.
func (s *MessageService) Send(ctx context.Context, conversationID, senderID primitive.ObjectID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidInput
	}

	conv, err := s.requireParticipant(ctx, conversationID, senderID, ErrForbidden)
	if err != nil {
		return nil, err
	}

	var senderRole models.Role
	var recipientID primitive.ObjectID
	for _, p := range conv.Participants {
		if p.UserID == senderID {
			senderRole = p.Role
		} else {
			recipientID = p.UserID
		}
	}

	msg := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderRole:     senderRole,
		Text:           text,
		ReadBy:         []models.ReadReceipt{},
		MessageType:    models.MessageTypeText,
		CreatedAt:      timeNow(),
	}
	msg, err = s.messages.Insert(ctx, msg)
	if err != nil {
		return nil, err
	}

	summary := models.MessageSummary{
		Text:      text,
		SenderID:  senderID,
		Timestamp: msg.CreatedAt,
	}
	if err := s.conversations.RecordMessage(ctx, conversationID, summary, recipientID); err != nil {
		// The message is already persisted; the stale summary catches up
		// on the next send.
		s.log.Error("updating conversation %s after send: %v", conversationID.Hex(), err)
	}

	return msg, nil
}

// MarkRead adds a read receipt for userID to every incoming unread
// message and resets the user's unread counter. Calling it again is a
// no-op.
func (s *MessageService) MarkRead(ctx context.Context, conversationID, userID primitive.ObjectID) error {
	if _, err := s.requireParticipant(ctx, conversationID, userID, ErrForbidden); err != nil {
		return err
	}

	if err := s.messages.MarkAllRead(ctx, conversationID, userID, timeNow()); err != nil {
		return err
	}
	return s.conversations.ResetUnread(ctx, conversationID, userID)
}

// requireParticipant loads and normalizes the conversation, returning
// notParticipantErr when the user is not one of its two participants.
func (s *MessageService) requireParticipant(ctx context.Context, conversationID, userID primitive.ObjectID, notParticipantErr error) (*models.Conversation, error) {
	stored, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, database.ErrConversationNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	conv, ok := Normalize(*stored)
	if !ok {
		return nil, ErrNotFound
	}
	if !conv.HasParticipant(userID) {
		return nil, notParticipantErr
	}
	return &conv, nil
}
