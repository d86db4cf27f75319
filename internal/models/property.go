package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property types
const (
	PropertyTypeHostel    = "hostel"
	PropertyTypeApartment = "apartment"
	PropertyTypeRoom      = "room"
)

// Property is a housing listing posted by an owner. Listings only
// appear in student-facing search once an admin approves them.
type Property struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID          primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description" json:"description"`
	PropertyType     string             `bson:"propertyType" json:"propertyType"`
	City             string             `bson:"city" json:"city"`
	Area             string             `bson:"area" json:"area"`
	NearbyUniversity string             `bson:"nearbyUniversity,omitempty" json:"nearbyUniversity,omitempty"`
	MonthlyRent      int64              `bson:"monthlyRent" json:"monthlyRent"`
	GenderPreference string             `bson:"genderPreference,omitempty" json:"genderPreference,omitempty"`
	Amenities        []string           `bson:"amenities,omitempty" json:"amenities,omitempty"`
	Images           []string           `bson:"images,omitempty" json:"images,omitempty"`
	Approved         bool               `bson:"approved" json:"approved"`
	CreatedAt        time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updated_at"`
}

// PropertyFilter holds the supported search criteria. Zero values mean
// "no constraint".
type PropertyFilter struct {
	City             string
	NearbyUniversity string
	PropertyType     string
	GenderPreference string
	MinRent          int64
	MaxRent          int64
	ApprovedOnly     bool
	OwnerID          primitive.ObjectID
}

// CreatePropertyRequest is the body of POST /api/properties.
type CreatePropertyRequest struct {
	Title            string   `json:"title" binding:"required,min=5,max=120"`
	Description      string   `json:"description" binding:"required"`
	PropertyType     string   `json:"propertyType" binding:"required,oneof=hostel apartment room"`
	City             string   `json:"city" binding:"required"`
	Area             string   `json:"area" binding:"required"`
	NearbyUniversity string   `json:"nearbyUniversity"`
	MonthlyRent      int64    `json:"monthlyRent" binding:"required,gt=0"`
	GenderPreference string   `json:"genderPreference" binding:"omitempty,oneof=male female any"`
	Amenities        []string `json:"amenities"`
	Images           []string `json:"images"`
}
