// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a top-level document in the "users" collection.
//
// ProfileData is an open map: callers may store any JSON object in it and
// read it back unchanged. Tags is an ordered list of short labels.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username" json:"username"`
	Email     string             `bson:"email" json:"email"`
	FirstName string             `bson:"first_name,omitempty" json:"first_name"`
	LastName  string             `bson:"last_name,omitempty" json:"last_name"`

	DateJoined time.Time `bson:"date_joined" json:"date_joined"`
	IsActive   bool      `bson:"is_active" json:"is_active"`

	ProfileData map[string]any `bson:"profile_data,omitempty" json:"profile_data"`
	Tags        []string       `bson:"tags,omitempty" json:"tags"`
}
