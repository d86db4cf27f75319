package api

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/models"
)

// MockStore implements the storage interfaces for handler tests.
type MockStore struct {
	mock.Mock
}

// --- UserStore ---

func (m *MockStore) CreateUser(ctx context.Context, name, email, passwordHash string, role models.Role) (*models.User, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) UpdateLastSeen(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) GetAllUsers(ctx context.Context, excludeUserID primitive.ObjectID) ([]*models.User, error) {
	args := m.Called(ctx, excludeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// --- ConversationStore ---

func (m *MockStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.StoredConversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoredConversation), args.Error(1)
}

func (m *MockStore) FindNormalizedByUser(ctx context.Context, userID primitive.ObjectID) ([]models.StoredConversation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StoredConversation), args.Error(1)
}

func (m *MockStore) FindLegacyByUser(ctx context.Context, userID primitive.ObjectID) ([]models.StoredConversation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StoredConversation), args.Error(1)
}

func (m *MockStore) FindNormalizedBetween(ctx context.Context, a, b primitive.ObjectID) (*models.StoredConversation, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoredConversation), args.Error(1)
}

func (m *MockStore) FindLegacyBetween(ctx context.Context, a, b primitive.ObjectID) (*models.StoredConversation, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoredConversation), args.Error(1)
}

func (m *MockStore) InsertNormalized(ctx context.Context, conv *models.Conversation) (*models.Conversation, error) {
	args := m.Called(ctx, conv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockStore) InsertLegacy(ctx context.Context, conv *models.LegacyConversation) (*models.LegacyConversation, error) {
	args := m.Called(ctx, conv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LegacyConversation), args.Error(1)
}

func (m *MockStore) RecordMessage(ctx context.Context, conversationID primitive.ObjectID, summary models.MessageSummary, recipientID primitive.ObjectID) error {
	args := m.Called(ctx, conversationID, summary, recipientID)
	return args.Error(0)
}

func (m *MockStore) ResetUnread(ctx context.Context, conversationID, userID primitive.ObjectID) error {
	args := m.Called(ctx, conversationID, userID)
	return args.Error(0)
}

// --- MessageStore ---

func (m *MockStore) Insert(ctx context.Context, msg *models.Message) (*models.Message, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStore) ListByConversation(ctx context.Context, conversationID primitive.ObjectID) ([]*models.Message, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}

func (m *MockStore) MarkAllRead(ctx context.Context, conversationID, userID primitive.ObjectID, at time.Time) error {
	args := m.Called(ctx, conversationID, userID, at)
	return args.Error(0)
}

// --- PropertyStore ---

func (m *MockStore) InsertProperty(ctx context.Context, p *models.Property) (*models.Property, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockStore) FindProperties(ctx context.Context, filter models.PropertyFilter) ([]*models.Property, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Property), args.Error(1)
}

func (m *MockStore) GetPropertyByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockStore) SetPropertyApproved(ctx context.Context, id primitive.ObjectID, approved bool) error {
	args := m.Called(ctx, id, approved)
	return args.Error(0)
}
