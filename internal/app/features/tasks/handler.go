// internal/app/features/tasks/handler.go
package tasks

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	taskstore "github.com/dalemusser/taskhub/internal/app/store/tasks"
	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"github.com/dalemusser/taskhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the /api/tasks/ surface.
type Handler struct {
	Tasks     *taskstore.Store
	Users     *userstore.Store
	ListLimit int64
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, listLimit int64, logger *zap.Logger) *Handler {
	return &Handler{
		Tasks:     taskstore.New(db),
		Users:     userstore.New(db),
		ListLimit: listLimit,
		Log:       logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/tasks/ – list with ?status= ?priority= ?assigned_to=               |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeList returns tasks newest-first, narrowed by any combination of the
// status, priority, and assigned_to parameters (ANDed together).
//
// An assigned_to value that does not resolve to an existing user drops that
// clause rather than failing the request or returning an empty set; the
// remaining filters still apply.
//
// Response: { "status":"success", "tasks":[...], "count":n }
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var f taskstore.Filter
	f.Status = query.Get(r, "status")

	if raw := query.Get(r, "priority"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "priority must be an integer")
			return
		}
		f.Priority = &p
	}

	if raw := query.Get(r, "assigned_to"); raw != "" {
		// Unknown or malformed ids resolve to "no such user" and the
		// clause is dropped, matching the permissive filter contract.
		if id, err := primitive.ObjectIDFromHex(raw); err == nil {
			if _, err := h.Users.GetByID(ctx, id); err == nil {
				f.AssignedTo = &id
			} else if !errors.Is(err, userstore.ErrUserNotFound) {
				h.Log.Error("resolve assignee failed", zap.String("assigned_to", raw), zap.Error(err))
				httpjson.Error(w, http.StatusInternalServerError, err.Error())
				return
			}
		}
	}

	tasks, err := h.Tasks.List(ctx, f, h.ListLimit)
	if err != nil {
		h.Log.Error("list tasks failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	usersByID, err := h.Users.MapByIDs(ctx, referencedUserIDs(tasks))
	if err != nil {
		h.Log.Error("resolve task references failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toJSON(t, usersByID))
	}

	httpjson.Success(w, map[string]any{
		"tasks": out,
		"count": len(out),
	})
}
