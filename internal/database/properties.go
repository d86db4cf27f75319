package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/models"
)

// InsertProperty stores a new listing.
func (m *MongoDB) InsertProperty(ctx context.Context, p *models.Property) (*models.Property, error) {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	result, err := m.properties.InsertOne(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = result.InsertedID.(primitive.ObjectID)
	return p, nil
}

// FindProperties returns listings matching the filter, newest first.
func (m *MongoDB) FindProperties(ctx context.Context, filter models.PropertyFilter) ([]*models.Property, error) {
	query := buildPropertyQuery(filter)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := m.properties.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var props []*models.Property
	if err = cursor.All(ctx, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// GetPropertyByID fetches one listing.
func (m *MongoDB) GetPropertyByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var p models.Property
	err := m.properties.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SetPropertyApproved flips the admin approval state.
func (m *MongoDB) SetPropertyApproved(ctx context.Context, id primitive.ObjectID, approved bool) error {
	result, err := m.properties.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"approved": approved, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

// buildPropertyQuery translates a PropertyFilter into a Mongo filter.
// Zero-valued fields add no constraint.
func buildPropertyQuery(filter models.PropertyFilter) bson.M {
	query := bson.M{}

	if filter.City != "" {
		query["city"] = filter.City
	}
	if filter.NearbyUniversity != "" {
		query["nearbyUniversity"] = filter.NearbyUniversity
	}
	if filter.PropertyType != "" {
		query["propertyType"] = filter.PropertyType
	}
	if filter.GenderPreference != "" {
		// "any" listings match every gender filter
		query["genderPreference"] = bson.M{"$in": bson.A{filter.GenderPreference, "any", ""}}
	}
	if filter.MinRent > 0 || filter.MaxRent > 0 {
		rent := bson.M{}
		if filter.MinRent > 0 {
			rent["$gte"] = filter.MinRent
		}
		if filter.MaxRent > 0 {
			rent["$lte"] = filter.MaxRent
		}
		query["monthlyRent"] = rent
	}
	if filter.ApprovedOnly {
		query["approved"] = true
	}
	if !filter.OwnerID.IsZero() {
		query["ownerId"] = filter.OwnerID
	}

	return query
}
