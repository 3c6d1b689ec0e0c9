// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task statuses. The set is closed; writes with any other value are rejected.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// TaskStatuses lists the valid statuses in their canonical reporting order.
var TaskStatuses = []string{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// IsValidTaskStatus reports whether s is one of the closed status values.
func IsValidTaskStatus(s string) bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Task difficulty values for the embedded metadata.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// IsValidDifficulty reports whether d is a known difficulty.
func IsValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Priority bounds and default for tasks.
const (
	PriorityMin     = 1
	PriorityMax     = 5
	PriorityDefault = 3
)

// TaskMetadata is an embedded sub-document with no identity of its own.
// It lives and dies with the owning Task.
type TaskMetadata struct {
	EstimatedHours *float64 `bson:"estimated_hours,omitempty" json:"estimated_hours,omitempty"`
	ActualHours    *float64 `bson:"actual_hours,omitempty" json:"actual_hours,omitempty"`
	Difficulty     string   `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Category       string   `bson:"category,omitempty" json:"category,omitempty"`
	ExternalLinks  []string `bson:"external_links,omitempty" json:"external_links,omitempty"`
}

// Task is a top-level document in the "tasks" collection.
//
// CreatedBy must reference an existing user at write time. The store does not
// enforce this transactionally: the referenced user may be deleted later, and
// read paths treat the dangling reference as absent.
type Task struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description,omitempty" json:"description"`
	CreatedBy   primitive.ObjectID   `bson:"created_by" json:"created_by"`
	AssignedTo  []primitive.ObjectID `bson:"assigned_to,omitempty" json:"assigned_to"`

	Metadata *TaskMetadata `bson:"metadata,omitempty" json:"metadata,omitempty"`

	Status   string `bson:"status" json:"status"`
	Priority int    `bson:"priority" json:"priority"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DueDate   *time.Time `bson:"due_date,omitempty" json:"due_date"`

	CustomFields map[string]any `bson:"custom_fields,omitempty" json:"custom_fields"`
}
