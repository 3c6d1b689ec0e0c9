// internal/app/features/users/handler.go
package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"github.com/dalemusser/taskhub/internal/app/system/timeouts"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/taskhub/internal/domain/validate"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the /api/users/ surface.
type Handler struct {
	Users     *userstore.Store
	ListLimit int64
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, listLimit int64, logger *zap.Logger) *Handler {
	return &Handler{
		Users:     userstore.New(db),
		ListLimit: listLimit,
		Log:       logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/users/ – list, optionally filtered by ?search=                     |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeList returns all users, or those matching the free-text search term
// as a case-insensitive substring of username, email, first name, or last
// name.
//
// Response: { "status":"success", "users":[...], "count":n }
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	search := query.Get(r, "search")

	users, err := h.Users.List(ctx, search, h.ListLimit)
	if err != nil {
		h.Log.Error("list users failed", zap.String("search", search), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	if users == nil {
		users = []models.User{} // serialize as [] rather than null
	}

	httpjson.Success(w, map[string]any{
		"users": users,
		"count": len(users),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/users/ – create                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

type createRequest struct {
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	ProfileData map[string]any `json:"profile_data"`
	Tags        []string       `json:"tags"`
}

// ServeCreate creates a user from the JSON body. Malformed bodies,
// constraint violations, and duplicate usernames all reject the write
// with 400; nothing is persisted on failure.
//
// Response: { "status":"success", "message":..., "user_id":"..." }
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	u := models.User{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		ProfileData: req.ProfileData,
		Tags:        req.Tags,
	}
	if u.ProfileData == nil {
		u.ProfileData = map[string]any{}
	}
	if u.Tags == nil {
		u.Tags = []string{}
	}

	created, err := h.Users.Create(ctx, u)
	if err != nil {
		var fe *validate.FieldError
		switch {
		case errors.As(err, &fe), errors.Is(err, userstore.ErrDuplicateUsername):
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		default:
			h.Log.Error("create user failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	httpjson.Success(w, map[string]any{
		"message": "User created successfully",
		"user_id": created.ID.Hex(),
	})
}
