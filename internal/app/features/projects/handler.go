// internal/app/features/projects/handler.go
package projects

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	projectstore "github.com/dalemusser/taskhub/internal/app/store/projects"
	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"github.com/dalemusser/taskhub/internal/app/system/timeouts"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/taskhub/internal/domain/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the /api/projects/ surface.
type Handler struct {
	Projects  *projectstore.Store
	Users     *userstore.Store
	ListLimit int64
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, listLimit int64, logger *zap.Logger) *Handler {
	return &Handler{
		Projects:  projectstore.New(db),
		Users:     userstore.New(db),
		ListLimit: listLimit,
		Log:       logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/projects/ – list                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeList returns all projects with owner and team-member references
// expanded to user summaries.
//
// Response: { "status":"success", "projects":[...], "count":n }
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Projects.List(ctx, h.ListLimit)
	if err != nil {
		h.Log.Error("list projects failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	usersByID, err := h.Users.MapByIDs(ctx, referencedUserIDs(list))
	if err != nil {
		h.Log.Error("resolve project references failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]projectJSON, 0, len(list))
	for _, p := range list {
		out = append(out, toJSON(p, usersByID))
	}

	httpjson.Success(w, map[string]any{
		"projects": out,
		"count":    len(out),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/projects/ – create                                                |
*─────────────────────────────────────────────────────────────────────────────*/

type milestoneRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	TargetDate     *time.Time `json:"target_date"`
	Completed      bool       `json:"completed"`
	CompletionDate *time.Time `json:"completion_date"`
}

type createRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Owner       string             `json:"owner"`
	TeamMembers []string           `json:"team_members"`
	Settings    map[string]any     `json:"settings"`
	Milestones  []milestoneRequest `json:"milestones"`
}

// ServeCreate creates a project from the JSON body. The owner must resolve
// to an existing user at write time; team-member ids are stored as given
// (referential integrity is advisory).
//
// Response: { "status":"success", "message":..., "project_id":"..." }
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	owner, err := primitive.ObjectIDFromHex(req.Owner)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "owner must be a valid user id")
		return
	}

	p := models.Project{
		Name:        req.Name,
		Description: req.Description,
		Owner:       owner,
		Settings:    req.Settings,
	}
	if p.Settings == nil {
		p.Settings = map[string]any{}
	}
	for _, raw := range req.TeamMembers {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "team_members must be valid user ids")
			return
		}
		p.TeamMembers = append(p.TeamMembers, id)
	}
	for _, m := range req.Milestones {
		p.Milestones = append(p.Milestones, models.Milestone{
			Title:          m.Title,
			Description:    m.Description,
			TargetDate:     m.TargetDate,
			Completed:      m.Completed,
			CompletionDate: m.CompletionDate,
		})
	}

	created, err := h.Projects.Create(ctx, p)
	if err != nil {
		var fe *validate.FieldError
		switch {
		case errors.As(err, &fe), errors.Is(err, projectstore.ErrOwnerNotFound):
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		default:
			h.Log.Error("create project failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	httpjson.Success(w, map[string]any{
		"message":    "Project created successfully",
		"project_id": created.ID.Hex(),
	})
}
