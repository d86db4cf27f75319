package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/models"
)

// The conversations collection holds documents in two shapes: the
// current participant-list shape and the pre-migration user1/user2
// shape. Reads decode into models.StoredConversation without choosing
// a side; normalization happens in the chat package.

// GetByID fetches one conversation document in whatever shape it was
// written.
func (m *MongoDB) GetByID(ctx context.Context, id primitive.ObjectID) (*models.StoredConversation, error) {
	var conv models.StoredConversation
	err := m.conversations.FindOne(ctx, bson.M{"_id": id}).Decode(&conv)
	if err == mongo.ErrNoDocuments {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// FindNormalizedByUser returns normalized-shape conversations that
// include userID in their participant list.
func (m *MongoDB) FindNormalizedByUser(ctx context.Context, userID primitive.ObjectID) ([]models.StoredConversation, error) {
	return m.findConversations(ctx, bson.M{"participants.userId": userID})
}

// FindLegacyByUser returns legacy-shape conversations where userID is
// either side of the pairing.
func (m *MongoDB) FindLegacyByUser(ctx context.Context, userID primitive.ObjectID) ([]models.StoredConversation, error) {
	return m.findConversations(ctx, bson.M{
		"$or": bson.A{
			bson.M{"user1": userID},
			bson.M{"user2": userID},
		},
	})
}

// FindNormalizedBetween returns the normalized-shape conversation whose
// participant list contains both users, if one exists.
func (m *MongoDB) FindNormalizedBetween(ctx context.Context, a, b primitive.ObjectID) (*models.StoredConversation, error) {
	return m.findOneConversation(ctx, bson.M{
		"participants.userId": bson.M{"$all": bson.A{a, b}},
	})
}

// FindLegacyBetween returns the legacy-shape conversation between the
// two users, checking both orderings of user1/user2.
func (m *MongoDB) FindLegacyBetween(ctx context.Context, a, b primitive.ObjectID) (*models.StoredConversation, error) {
	return m.findOneConversation(ctx, bson.M{
		"$or": bson.A{
			bson.M{"user1": a, "user2": b},
			bson.M{"user1": b, "user2": a},
		},
	})
}

// InsertNormalized writes a conversation in the participant-list shape.
func (m *MongoDB) InsertNormalized(ctx context.Context, conv *models.Conversation) (*models.Conversation, error) {
	result, err := m.conversations.InsertOne(ctx, conv)
	if err != nil {
		return nil, err
	}
	conv.ID = result.InsertedID.(primitive.ObjectID)
	return conv, nil
}

// InsertLegacy writes a conversation in the two-field fallback shape.
func (m *MongoDB) InsertLegacy(ctx context.Context, conv *models.LegacyConversation) (*models.LegacyConversation, error) {
	result, err := m.conversations.InsertOne(ctx, conv)
	if err != nil {
		return nil, err
	}
	conv.ID = result.InsertedID.(primitive.ObjectID)
	return conv, nil
}

// RecordMessage applies a sent message to the parent conversation:
// last-message summary, updatedAt bump and the recipient's unread
// counter, all in a single document update.
func (m *MongoDB) RecordMessage(ctx context.Context, conversationID primitive.ObjectID, summary models.MessageSummary, recipientID primitive.ObjectID) error {
	result, err := m.conversations.UpdateOne(ctx,
		bson.M{"_id": conversationID},
		bson.M{
			"$set": bson.M{
				"lastMessage": summary,
				"updatedAt":   time.Now(),
			},
			"$inc": bson.M{"unreadCounts." + recipientID.Hex(): 1},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrConversationNotFound
	}
	return nil
}

// ResetUnread zeroes the user's unread counter on the conversation.
func (m *MongoDB) ResetUnread(ctx context.Context, conversationID, userID primitive.ObjectID) error {
	result, err := m.conversations.UpdateOne(ctx,
		bson.M{"_id": conversationID},
		bson.M{"$set": bson.M{"unreadCounts." + userID.Hex(): 0}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrConversationNotFound
	}
	return nil
}

func (m *MongoDB) findConversations(ctx context.Context, filter bson.M) ([]models.StoredConversation, error) {
	cursor, err := m.conversations.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var convs []models.StoredConversation
	if err = cursor.All(ctx, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

func (m *MongoDB) findOneConversation(ctx context.Context, filter bson.M) (*models.StoredConversation, error) {
	var conv models.StoredConversation
	err := m.conversations.FindOne(ctx, filter).Decode(&conv)
	if err == mongo.ErrNoDocuments {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}
