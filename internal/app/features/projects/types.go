// internal/app/features/projects/types.go
package projects

import (
	"time"

	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// userRef is the reduced user shape embedded in project payloads.
type userRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// projectJSON is the wire shape for one project in the list payload.
// Milestones serialize inline as part of the owning document; owner is null
// when the owning user was deleted after the project was written.
type projectJSON struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	IsActive    bool      `json:"is_active"`

	Owner       *userRef  `json:"owner"`
	TeamMembers []userRef `json:"team_members"`

	Settings   map[string]any     `json:"settings"`
	Milestones []models.Milestone `json:"milestones"`
}

func toJSON(p models.Project, usersByID map[primitive.ObjectID]models.User) projectJSON {
	out := projectJSON{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		IsActive:    p.IsActive,
		TeamMembers: []userRef{},
		Settings:    p.Settings,
		Milestones:  p.Milestones,
	}
	if out.Milestones == nil {
		out.Milestones = []models.Milestone{}
	}

	if owner, ok := usersByID[p.Owner]; ok {
		out.Owner = &userRef{ID: owner.ID.Hex(), Username: owner.Username}
	}
	for _, id := range p.TeamMembers {
		if u, ok := usersByID[id]; ok {
			out.TeamMembers = append(out.TeamMembers, userRef{ID: u.ID.Hex(), Username: u.Username})
		}
	}
	return out
}

func referencedUserIDs(ps []models.Project) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	add := func(id primitive.ObjectID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, p := range ps {
		add(p.Owner)
		for _, id := range p.TeamMembers {
			add(id)
		}
	}
	return ids
}
