// Package validate holds the write-time field constraints for the document
// schema. Stores call these before inserting or saving; the same rules are
// mirrored as $jsonSchema validators on the collections where the server
// supports them.
package validate

import (
	"fmt"

	"github.com/dalemusser/taskhub/internal/domain/models"
)

// Field length limits.
const (
	MaxUsernameLen       = 50
	MaxNameLen           = 30
	MaxTaskTitleLen      = 200
	MaxProjectNameLen    = 100
	MaxMilestoneTitleLen = 100
	MaxCategoryLen       = 50
	MaxTagLen            = 20
)

// FieldError identifies the offending field and the constraint it violated.
type FieldError struct {
	Field      string
	Constraint string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Constraint)
}

func required(field string) *FieldError {
	return &FieldError{Field: field, Constraint: "is required"}
}

func tooLong(field string, max int) *FieldError {
	return &FieldError{Field: field, Constraint: fmt.Sprintf("must be at most %d characters", max)}
}

// User checks the user document's field constraints.
func User(u *models.User) error {
	if u.Username == "" {
		return required("username")
	}
	if len(u.Username) > MaxUsernameLen {
		return tooLong("username", MaxUsernameLen)
	}
	if u.Email == "" {
		return required("email")
	}
	if len(u.FirstName) > MaxNameLen {
		return tooLong("first_name", MaxNameLen)
	}
	if len(u.LastName) > MaxNameLen {
		return tooLong("last_name", MaxNameLen)
	}
	for _, tag := range u.Tags {
		if len(tag) > MaxTagLen {
			return tooLong("tags", MaxTagLen)
		}
	}
	return nil
}

// Task checks the task document's field constraints, including the embedded
// metadata when present. Reference resolution (created_by) is the store's job.
func Task(t *models.Task) error {
	if t.Title == "" {
		return required("title")
	}
	if len(t.Title) > MaxTaskTitleLen {
		return tooLong("title", MaxTaskTitleLen)
	}
	if t.CreatedBy.IsZero() {
		return required("created_by")
	}
	if !models.IsValidTaskStatus(t.Status) {
		return &FieldError{Field: "status", Constraint: `must be one of "pending", "in_progress", "completed", "cancelled"`}
	}
	if t.Priority < models.PriorityMin || t.Priority > models.PriorityMax {
		return &FieldError{
			Field:      "priority",
			Constraint: fmt.Sprintf("must be between %d and %d", models.PriorityMin, models.PriorityMax),
		}
	}
	if t.Metadata != nil {
		return taskMetadata(t.Metadata)
	}
	return nil
}

func taskMetadata(m *models.TaskMetadata) error {
	if m.EstimatedHours != nil && *m.EstimatedHours < 0 {
		return &FieldError{Field: "metadata.estimated_hours", Constraint: "must not be negative"}
	}
	if m.ActualHours != nil && *m.ActualHours < 0 {
		return &FieldError{Field: "metadata.actual_hours", Constraint: "must not be negative"}
	}
	if m.Difficulty != "" && !models.IsValidDifficulty(m.Difficulty) {
		return &FieldError{Field: "metadata.difficulty", Constraint: `must be one of "easy", "medium", "hard"`}
	}
	if len(m.Category) > MaxCategoryLen {
		return tooLong("metadata.category", MaxCategoryLen)
	}
	return nil
}

// Project checks the project document's field constraints, including every
// embedded milestone.
func Project(p *models.Project) error {
	if p.Name == "" {
		return required("name")
	}
	if len(p.Name) > MaxProjectNameLen {
		return tooLong("name", MaxProjectNameLen)
	}
	if p.Owner.IsZero() {
		return required("owner")
	}
	for i, m := range p.Milestones {
		if m.Title == "" {
			return &FieldError{Field: fmt.Sprintf("milestones[%d].title", i), Constraint: "is required"}
		}
		if len(m.Title) > MaxMilestoneTitleLen {
			return tooLong(fmt.Sprintf("milestones[%d].title", i), MaxMilestoneTitleLen)
		}
	}
	return nil
}
