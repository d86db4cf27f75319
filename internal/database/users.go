package database

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/models"
)

// CreateUser stores a new user. Emails are stored lowercased so lookup
// is case-insensitive.
func (m *MongoDB) CreateUser(ctx context.Context, name, email, passwordHash string, role models.Role) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	count, err := m.users.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserAlreadyExists
	}

	now := time.Now()
	user := &models.User{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		LastSeen:     now,
	}

	result, err := m.users.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	return user, nil
}

// GetUserByEmail looks a user up by email
func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := m.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID looks a user up by id
func (m *MongoDB) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := m.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLastSeen stamps the user's last activity time
func (m *MongoDB) UpdateLastSeen(ctx context.Context, id primitive.ObjectID) error {
	result, err := m.users.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"lastSeen": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// GetAllUsers returns every user except excludeUserID, newest first.
func (m *MongoDB) GetAllUsers(ctx context.Context, excludeUserID primitive.ObjectID) ([]*models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := m.users.Find(ctx, bson.M{"_id": bson.M{"$ne": excludeUserID}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
