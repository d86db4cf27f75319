package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrPropertyNotFound     = errors.New("property not found")
)

// UserStore is the user directory consumed by auth and by the chat
// services (including lazy creation of the support account).
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string, role models.Role) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateLastSeen(ctx context.Context, id primitive.ObjectID) error
	GetAllUsers(ctx context.Context, excludeUserID primitive.ObjectID) ([]*models.User, error)
}

// ConversationStore reads conversation documents in whichever shape
// they were written. It never normalizes; that is the chat package's
// job.
type ConversationStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.StoredConversation, error)
	FindNormalizedByUser(ctx context.Context, userID primitive.ObjectID) ([]models.StoredConversation, error)
	FindLegacyByUser(ctx context.Context, userID primitive.ObjectID) ([]models.StoredConversation, error)
	FindNormalizedBetween(ctx context.Context, a, b primitive.ObjectID) (*models.StoredConversation, error)
	FindLegacyBetween(ctx context.Context, a, b primitive.ObjectID) (*models.StoredConversation, error)
	InsertNormalized(ctx context.Context, conv *models.Conversation) (*models.Conversation, error)
	InsertLegacy(ctx context.Context, conv *models.LegacyConversation) (*models.LegacyConversation, error)
	// RecordMessage sets the last-message summary, bumps updatedAt and
	// increments the recipient's unread counter in one update.
	RecordMessage(ctx context.Context, conversationID primitive.ObjectID, summary models.MessageSummary, recipientID primitive.ObjectID) error
	ResetUnread(ctx context.Context, conversationID, userID primitive.ObjectID) error
}

// MessageStore persists chat messages.
type MessageStore interface {
	Insert(ctx context.Context, msg *models.Message) (*models.Message, error)
	ListByConversation(ctx context.Context, conversationID primitive.ObjectID) ([]*models.Message, error)
	// MarkAllRead adds a read receipt for userID to every message in the
	// conversation that was sent by someone else and has none yet.
	MarkAllRead(ctx context.Context, conversationID, userID primitive.ObjectID, at time.Time) error
}

// PropertyStore persists housing listings.
type PropertyStore interface {
	InsertProperty(ctx context.Context, p *models.Property) (*models.Property, error)
	FindProperties(ctx context.Context, filter models.PropertyFilter) ([]*models.Property, error)
	GetPropertyByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	SetPropertyApproved(ctx context.Context, id primitive.ObjectID, approved bool) error
}

// PlatformCounts are the totals shown on the admin overview.
type PlatformCounts struct {
	Users         int64 `json:"users"`
	Properties    int64 `json:"properties"`
	Conversations int64 `json:"conversations"`
	Messages      int64 `json:"messages"`
}

// StatsStore aggregates collection totals for the back office.
type StatsStore interface {
	Counts(ctx context.Context) (*PlatformCounts, error)
}

// Store is everything the server needs from storage.
type Store interface {
	UserStore
	ConversationStore
	MessageStore
	PropertyStore
	StatsStore
	Close(ctx context.Context) error
}
