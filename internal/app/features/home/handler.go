package home

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler serves the landing page documenting the API surface.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// endpoint is one row of the API table on the landing page.
type endpoint struct {
	URL         string
	Method      string
	Description string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Title       string
		Description string
		Endpoints   []endpoint
	}{
		Title:       "TaskHub",
		Description: "A JSON API over document collections: users, tasks, and projects.",
		Endpoints: []endpoint{
			{URL: "/api/users/", Method: "GET", Description: "List users with optional search"},
			{URL: "/api/users/", Method: "POST", Description: "Create new user"},
			{URL: "/api/tasks/", Method: "GET", Description: "List tasks with filtering"},
			{URL: "/api/projects/", Method: "GET", Description: "List projects"},
			{URL: "/api/projects/", Method: "POST", Description: "Create new project"},
			{URL: "/api/analytics/", Method: "GET", Description: "Get aggregate analytics"},
			{URL: "/api/test-connection/", Method: "GET", Description: "Test database connection"},
		},
	}

	templates.Render(w, r, "home", data)
}
