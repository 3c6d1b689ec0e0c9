// internal/app/features/conncheck/routes.go
package conncheck

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter serving the connection check.
// Mounted under /api/test-connection.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeCheck)
	return r
}
