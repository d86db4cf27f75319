package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message types
const (
	MessageTypeText   = "text"
	MessageTypeSystem = "system"
)

// ReadReceipt records that a user has seen a message.
type ReadReceipt struct {
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	ReadAt time.Time          `bson:"readAt" json:"readAt"`
}

// Message represents a chat message in the system. Messages are
// append-only; deletion only sets the soft-delete flag.
type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID primitive.ObjectID `bson:"conversationId" json:"conversationId"`
	SenderID       primitive.ObjectID `bson:"senderId" json:"senderId"`
	SenderRole     Role               `bson:"senderRole" json:"senderRole"`
	Text           string             `bson:"text" json:"text"`
	ReadBy         []ReadReceipt      `bson:"readBy" json:"readBy"`
	MessageType    string             `bson:"messageType" json:"messageType"`
	Deleted        bool               `bson:"deleted" json:"-"`
	CreatedAt      time.Time          `bson:"createdAt" json:"created_at"`
}

// IsReadBy reports whether userID has a read receipt on the message.
func (m *Message) IsReadBy(userID primitive.ObjectID) bool {
	for _, r := range m.ReadBy {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// SendMessageRequest is the body of a send_message action.
type SendMessageRequest struct {
	ConversationID string `json:"conversationId" binding:"required"`
	Text           string `json:"text" binding:"required"`
}
