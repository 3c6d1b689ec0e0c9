// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Milestone is an embedded sub-document stored inline in a Project's ordered
// milestone list. It has no independent identifier and is never queried on
// its own.
type Milestone struct {
	Title          string     `bson:"title" json:"title"`
	Description    string     `bson:"description,omitempty" json:"description"`
	TargetDate     *time.Time `bson:"target_date,omitempty" json:"target_date"`
	Completed      bool       `bson:"completed" json:"completed"`
	CompletionDate *time.Time `bson:"completion_date,omitempty" json:"completion_date"`
}

// Project is a top-level document in the "projects" collection.
//
// Owner must reference an existing user at write time; as with tasks the
// check is advisory and read paths tolerate dangling references.
type Project struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description,omitempty" json:"description"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	TeamMembers []primitive.ObjectID `bson:"team_members,omitempty" json:"team_members"`

	Settings   map[string]any `bson:"settings,omitempty" json:"settings"`
	Milestones []Milestone    `bson:"milestones,omitempty" json:"milestones"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	IsActive  bool      `bson:"is_active" json:"is_active"`
}
