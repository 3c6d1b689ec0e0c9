// internal/app/features/conncheck/handler.go

// Package conncheck exercises the full write path as a smoke test: one
// sample user, one task referencing it, and one project referencing it.
// The documents are real inserts and are left in place afterwards.
package conncheck

import (
	"context"
	"net/http"
	"time"

	projectstore "github.com/dalemusser/taskhub/internal/app/store/projects"
	taskstore "github.com/dalemusser/taskhub/internal/app/store/tasks"
	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"github.com/dalemusser/taskhub/internal/app/system/timeouts"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves GET /api/test-connection/.
type Handler struct {
	DB       *mongo.Database
	Users    *userstore.Store
	Tasks    *taskstore.Store
	Projects *projectstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Users:    userstore.New(db),
		Tasks:    taskstore.New(db),
		Projects: projectstore.New(db),
		Log:      logger,
	}
}

// ServeCheck inserts the three sample documents. A unique suffix keeps the
// sample username clear of the uniqueness index across repeated checks.
//
// Response:
//
//	{ "status":"success", "message":...,
//	  "data":{ "user_id":..., "task_id":..., "project_id":..., "database":... } }
func (h *Handler) ServeCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	suffix := uuid.NewString()[:8]

	user, err := h.Users.Create(ctx, models.User{
		Username:  "test_user_" + suffix,
		Email:     "test_" + suffix + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		ProfileData: map[string]any{
			"test":       true,
			"created_by": "connection_test",
		},
		Tags: []string{"test", "sample"},
	})
	if err != nil {
		h.fail(w, "sample user insert failed", err)
		return
	}

	estimated := 2.5
	task, err := h.Tasks.Create(ctx, models.Task{
		Title:       "Sample Task",
		Description: "This is a test task created to verify the database connection",
		CreatedBy:   user.ID,
		AssignedTo:  []primitive.ObjectID{user.ID},
		Metadata: &models.TaskMetadata{
			EstimatedHours: &estimated,
			Difficulty:     models.DifficultyEasy,
			Category:       "testing",
		},
		CustomFields: map[string]any{
			"test":        true,
			"environment": "development",
		},
	})
	if err != nil {
		h.fail(w, "sample task insert failed", err)
		return
	}

	now := time.Now()
	target := now.Add(24 * time.Hour)
	project, err := h.Projects.Create(ctx, models.Project{
		Name:        "Sample Project",
		Description: "A test project to verify database functionality",
		Owner:       user.ID,
		TeamMembers: []primitive.ObjectID{user.ID},
		Settings: map[string]any{
			"test_mode":     true,
			"notifications": false,
		},
		Milestones: []models.Milestone{
			{
				Title:          "Setup Complete",
				Description:    "Database setup and testing completed",
				TargetDate:     &target,
				Completed:      true,
				CompletionDate: &now,
			},
		},
	})
	if err != nil {
		h.fail(w, "sample project insert failed", err)
		return
	}

	httpjson.Success(w, map[string]any{
		"message": "Database connection successful! Sample data created.",
		"data": map[string]any{
			"user_id":    user.ID.Hex(),
			"task_id":    task.ID.Hex(),
			"project_id": project.ID.Hex(),
			"database":   h.DB.Name(),
		},
	})
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	h.Log.Error("connection check failed", zap.String("step", msg), zap.Error(err))
	httpjson.Error(w, http.StatusInternalServerError, "Database connection failed: "+err.Error())
}
