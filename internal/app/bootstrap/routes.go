// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	analyticsfeature "github.com/dalemusser/taskhub/internal/app/features/analytics"
	conncheckfeature "github.com/dalemusser/taskhub/internal/app/features/conncheck"
	healthfeature "github.com/dalemusser/taskhub/internal/app/features/health"
	homefeature "github.com/dalemusser/taskhub/internal/app/features/home"
	_ "github.com/dalemusser/taskhub/internal/app/features/home/views" // registers the home template set
	projectsfeature "github.com/dalemusser/taskhub/internal/app/features/projects"
	tasksfeature "github.com/dalemusser/taskhub/internal/app/features/tasks"
	usersfeature "github.com/dalemusser/taskhub/internal/app/features/users"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It builds the chi router and mounts one
// feature router per surface area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	db := deps.TaskHubMongoDatabase

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.TaskHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Landing page with API documentation.
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// JSON API.
	usersHandler := usersfeature.NewHandler(db, appCfg.ListLimit, logger)
	r.Mount("/api/users", usersfeature.Routes(usersHandler))

	tasksHandler := tasksfeature.NewHandler(db, appCfg.ListLimit, logger)
	r.Mount("/api/tasks", tasksfeature.Routes(tasksHandler))

	projectsHandler := projectsfeature.NewHandler(db, appCfg.ListLimit, logger)
	r.Mount("/api/projects", projectsfeature.Routes(projectsHandler))

	analyticsHandler := analyticsfeature.NewHandler(db, logger)
	r.Mount("/api/analytics", analyticsfeature.Routes(analyticsHandler))

	conncheckHandler := conncheckfeature.NewHandler(db, logger)
	r.Mount("/api/test-connection", conncheckfeature.Routes(conncheckHandler))

	return r, nil
}
