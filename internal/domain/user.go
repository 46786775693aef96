package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account holder. Every workout belongs to exactly one user.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"` // Unique, stored trimmed and lowercased
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Username     string             `bson:"username,omitempty" json:"username,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
