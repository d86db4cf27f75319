package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role of a user on the platform
type Role string

const (
	RoleStudent Role = "student"
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
)

// User represents an account on the platform
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Role         Role               `bson:"role" json:"role"`
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never send to client
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	University   string             `bson:"university,omitempty" json:"university,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
	LastSeen     time.Time          `bson:"lastSeen" json:"last_seen"`
}

// UserRegistration contains data needed for user registration
type UserRegistration struct {
	Name     string `json:"name" binding:"required,min=2,max=60"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     Role   `json:"role" binding:"required,oneof=student owner"`
}

// UserLogin contains data needed for user login
type UserLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is what we return to the client
type UserResponse struct {
	ID         primitive.ObjectID `json:"id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Role       Role               `json:"role"`
	University string             `json:"university,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

// ToResponse strips fields that must not leave the server.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		University: u.University,
		CreatedAt:  u.CreatedAt,
	}
}
