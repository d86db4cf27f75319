package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Participant is a denormalized snapshot of a user attached to a
// conversation so the list view needs no join. It goes stale if the
// user profile changes; nothing propagates updates.
type Participant struct {
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Role   Role               `bson:"role" json:"role"`
	Name   string             `bson:"name" json:"name"`
	Email  string             `bson:"email" json:"email"`
}

// MessageSummary is the last-message preview stored inline on a
// conversation.
type MessageSummary struct {
	Text      string             `bson:"text" json:"text"`
	SenderID  primitive.ObjectID `bson:"senderId" json:"senderId"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Conversation is the normalized shape. Every component past the store
// boundary only ever sees this form.
type Conversation struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Participants []Participant      `bson:"participants" json:"participants"`
	UnreadCounts map[string]int     `bson:"unreadCounts" json:"unreadCounts"`
	LastMessage  *MessageSummary    `bson:"lastMessage,omitempty" json:"lastMessage,omitempty"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updated_at"`
}

// HasParticipant reports whether userID is one of the two participants.
func (c *Conversation) HasParticipant(userID primitive.ObjectID) bool {
	for _, p := range c.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// OtherParticipants returns the participants excluding userID.
func (c *Conversation) OtherParticipants(userID primitive.ObjectID) []Participant {
	others := make([]Participant, 0, len(c.Participants))
	for _, p := range c.Participants {
		if p.UserID != userID {
			others = append(others, p)
		}
	}
	return others
}

// LegacyConversation is the pre-migration two-field shape. It is only
// written as a fallback when the store rejects the normalized shape,
// and only read to be normalized.
type LegacyConversation struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	User1      primitive.ObjectID `bson:"user1"`
	User1Role  Role               `bson:"user1Role"`
	User1Name  string             `bson:"user1Name"`
	User1Email string             `bson:"user1Email"`
	User2      primitive.ObjectID `bson:"user2"`
	User2Role  Role               `bson:"user2Role"`
	User2Name  string             `bson:"user2Name"`
	User2Email string             `bson:"user2Email"`
	Active     bool               `bson:"active"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

// StoredConversation is a conversation document exactly as it exists in
// the collection, holding the fields of both shapes. The normalizer is
// the only code allowed to branch on which shape a record is.
type StoredConversation struct {
	ID primitive.ObjectID `bson:"_id,omitempty"`

	// Normalized-shape fields
	Participants []Participant   `bson:"participants,omitempty"`
	UnreadCounts map[string]int  `bson:"unreadCounts,omitempty"`
	LastMessage  *MessageSummary `bson:"lastMessage,omitempty"`
	IsActive     *bool           `bson:"isActive,omitempty"`

	// Legacy-shape fields
	User1      primitive.ObjectID `bson:"user1,omitempty"`
	User1Role  Role               `bson:"user1Role,omitempty"`
	User1Name  string             `bson:"user1Name,omitempty"`
	User1Email string             `bson:"user1Email,omitempty"`
	User2      primitive.ObjectID `bson:"user2,omitempty"`
	User2Role  Role               `bson:"user2Role,omitempty"`
	User2Name  string             `bson:"user2Name,omitempty"`
	User2Email string             `bson:"user2Email,omitempty"`
	Active     *bool              `bson:"active,omitempty"`

	CreatedAt time.Time `bson:"createdAt,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty"`
}

// IsLegacy reports whether the record carries the two-field shape.
func (c *StoredConversation) IsLegacy() bool {
	return !c.User1.IsZero() && !c.User2.IsZero()
}

// ConversationView is what list endpoints return: the normalized
// conversation plus the requesting user's unread count and the other
// side of the pairing.
type ConversationView struct {
	Conversation
	UnreadCount       int           `json:"unreadCount"`
	OtherParticipants []Participant `json:"otherParticipants"`
}

// CreateConversationRequest is the body of POST /api/conversations.
type CreateConversationRequest struct {
	ParticipantID   string `json:"participantId" binding:"required"`
	ParticipantRole Role   `json:"participantRole,omitempty"`
}
