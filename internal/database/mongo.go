package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/logger"
)

// Collection names
const (
	collUsers         = "users"
	collConversations = "conversations"
	collMessages      = "messages"
	collProperties    = "properties"
)

var log = logger.New("database")

// MongoDB implements Store on top of a MongoDB database.
type MongoDB struct {
	client        *mongo.Client
	users         *mongo.Collection
	conversations *mongo.Collection
	messages      *mongo.Collection
	properties    *mongo.Collection
}

// NewMongoDB connects to MongoDB and pings the deployment before
// returning a ready store.
func NewMongoDB(ctx context.Context, uri, dbName string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	log.Info("Connected to MongoDB database %q", dbName)

	return &MongoDB{
		client:        client,
		users:         db.Collection(collUsers),
		conversations: db.Collection(collConversations),
		messages:      db.Collection(collMessages),
		properties:    db.Collection(collProperties),
	}, nil
}

// Close disconnects the underlying client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Counts returns collection totals for the admin overview.
func (m *MongoDB) Counts(ctx context.Context) (*PlatformCounts, error) {
	counts := &PlatformCounts{}

	for _, c := range []struct {
		coll *mongo.Collection
		dst  *int64
	}{
		{m.users, &counts.Users},
		{m.properties, &counts.Properties},
		{m.conversations, &counts.Conversations},
		{m.messages, &counts.Messages},
	} {
		n, err := c.coll.EstimatedDocumentCount(ctx)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}

	return counts, nil
}
