package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/models"
)

// Insert appends a message document and returns it with the
// server-assigned id.
func (m *MongoDB) Insert(ctx context.Context, msg *models.Message) (*models.Message, error) {
	result, err := m.messages.InsertOne(ctx, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = result.InsertedID.(primitive.ObjectID)
	return msg, nil
}

// ListByConversation returns the conversation's messages ordered by
// createdAt ascending. Soft-deleted messages are skipped.
func (m *MongoDB) ListByConversation(ctx context.Context, conversationID primitive.ObjectID) ([]*models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	filter := bson.M{
		"conversationId": conversationID,
		"deleted":        bson.M{"$ne": true},
	}

	cursor, err := m.messages.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkAllRead pushes a read receipt for userID onto every message in
// the conversation that was sent by the other side and has no receipt
// for this user yet. Running it again matches nothing, so it is
// idempotent.
func (m *MongoDB) MarkAllRead(ctx context.Context, conversationID, userID primitive.ObjectID, at time.Time) error {
	filter := bson.M{
		"conversationId": conversationID,
		"senderId":       bson.M{"$ne": userID},
		"readBy.userId":  bson.M{"$ne": userID},
	}
	update := bson.M{
		"$push": bson.M{
			"readBy": models.ReadReceipt{UserID: userID, ReadAt: at},
		},
	}

	_, err := m.messages.UpdateMany(ctx, filter, update)
	return err
}
