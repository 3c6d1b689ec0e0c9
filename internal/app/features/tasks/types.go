// internal/app/features/tasks/types.go
package tasks

import (
	"time"

	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// userRef is the reduced user shape embedded in task payloads.
type userRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// taskJSON is the wire shape for one task in the list payload. References
// are expanded to summaries: created_by is null when the creator was deleted
// after the task was written, and deleted assignees are omitted from
// assigned_to.
type taskJSON struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    int        `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DueDate     *time.Time `json:"due_date"`

	CreatedBy  *userRef  `json:"created_by"`
	AssignedTo []userRef `json:"assigned_to"`

	Metadata     *models.TaskMetadata `json:"metadata,omitempty"`
	CustomFields map[string]any       `json:"custom_fields"`
}

// toJSON expands t's user references against the resolved user map.
func toJSON(t models.Task, usersByID map[primitive.ObjectID]models.User) taskJSON {
	out := taskJSON{
		ID:           t.ID.Hex(),
		Title:        t.Title,
		Description:  t.Description,
		Status:       t.Status,
		Priority:     t.Priority,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		DueDate:      t.DueDate,
		AssignedTo:   []userRef{},
		Metadata:     t.Metadata,
		CustomFields: t.CustomFields,
	}

	if creator, ok := usersByID[t.CreatedBy]; ok {
		out.CreatedBy = &userRef{ID: creator.ID.Hex(), Username: creator.Username}
	}
	for _, id := range t.AssignedTo {
		if u, ok := usersByID[id]; ok {
			out.AssignedTo = append(out.AssignedTo, userRef{ID: u.ID.Hex(), Username: u.Username})
		}
	}
	return out
}

// referencedUserIDs collects the distinct user ids referenced by the tasks.
func referencedUserIDs(ts []models.Task) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	add := func(id primitive.ObjectID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, t := range ts {
		add(t.CreatedBy)
		for _, id := range t.AssignedTo {
			add(id)
		}
	}
	return ids
}
