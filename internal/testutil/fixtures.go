package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data. Documents are
// inserted directly, bypassing store validation, so tests can also set up
// states the write path would reject (e.g. dangling references).
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a test user with the given username and email.
func (f *Fixtures) CreateUser(ctx context.Context, username, email string) models.User {
	f.t.Helper()

	user := models.User{
		ID:          primitive.NewObjectID(),
		Username:    username,
		Email:       email,
		DateJoined:  time.Now().UTC(),
		IsActive:    true,
		ProfileData: map[string]any{},
		Tags:        []string{},
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTask inserts a test task created by the given user.
func (f *Fixtures) CreateTask(ctx context.Context, creatorID primitive.ObjectID, title, status string, priority int) models.Task {
	f.t.Helper()
	return f.CreateTaskAt(ctx, creatorID, title, status, priority, time.Now().UTC())
}

// CreateTaskAt is CreateTask with an explicit creation time, for tests that
// exercise time-windowed queries.
func (f *Fixtures) CreateTaskAt(ctx context.Context, creatorID primitive.ObjectID, title, status string, priority int, createdAt time.Time) models.Task {
	f.t.Helper()

	task := models.Task{
		ID:        primitive.NewObjectID(),
		Title:     title,
		CreatedBy: creatorID,
		Status:    status,
		Priority:  priority,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// AssignTask adds a user to a task's assignee list in place.
func (f *Fixtures) AssignTask(ctx context.Context, taskID, userID primitive.ObjectID) {
	f.t.Helper()

	_, err := f.db.Collection("tasks").UpdateByID(ctx, taskID, map[string]any{
		"$addToSet": map[string]any{"assigned_to": userID},
	})
	if err != nil {
		f.t.Fatalf("failed to assign test task: %v", err)
	}
}

// CreateProject inserts a test project owned by the given user.
func (f *Fixtures) CreateProject(ctx context.Context, ownerID primitive.ObjectID, name string) models.Project {
	f.t.Helper()

	project := models.Project{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Owner:     ownerID,
		Settings:  map[string]any{},
		CreatedAt: time.Now().UTC(),
		IsActive:  true,
	}

	if _, err := f.db.Collection("projects").InsertOne(ctx, project); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return project
}
