package conncheck_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/dalemusser/taskhub/internal/app/features/conncheck"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/taskhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestServeCheck(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := conncheck.NewHandler(db, zap.NewNop())

	rec := testutil.DoRequest(t, conncheck.Routes(h), "GET", "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	body := testutil.DecodeResponse(t, rec)
	if body["status"] != "success" {
		t.Errorf("status: got %v", body["status"])
	}
	if body["message"] != "Database connection successful! Sample data created." {
		t.Errorf("message: got %v", body["message"])
	}

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("data: got %T, want object", body["data"])
	}
	if data["database"] != db.Name() {
		t.Errorf("database: got %v, want %v", data["database"], db.Name())
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The three sample documents were really inserted and reference each other
	userID, err := primitive.ObjectIDFromHex(data["user_id"].(string))
	if err != nil {
		t.Fatalf("user_id: %v", err)
	}
	taskID, err := primitive.ObjectIDFromHex(data["task_id"].(string))
	if err != nil {
		t.Fatalf("task_id: %v", err)
	}
	projectID, err := primitive.ObjectIDFromHex(data["project_id"].(string))
	if err != nil {
		t.Fatalf("project_id: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		t.Fatalf("sample user missing: %v", err)
	}
	if !strings.HasPrefix(user.Username, "test_user_") {
		t.Errorf("username: got %q", user.Username)
	}

	var task models.Task
	if err := db.Collection("tasks").FindOne(ctx, bson.M{"_id": taskID}).Decode(&task); err != nil {
		t.Fatalf("sample task missing: %v", err)
	}
	if task.CreatedBy != userID {
		t.Errorf("task.created_by: got %v, want %v", task.CreatedBy, userID)
	}
	if task.Status != models.StatusPending {
		t.Errorf("task.status: got %q, want %q", task.Status, models.StatusPending)
	}

	var project models.Project
	if err := db.Collection("projects").FindOne(ctx, bson.M{"_id": projectID}).Decode(&project); err != nil {
		t.Fatalf("sample project missing: %v", err)
	}
	if project.Owner != userID {
		t.Errorf("project.owner: got %v, want %v", project.Owner, userID)
	}
	if len(project.Milestones) != 1 || !project.Milestones[0].Completed {
		t.Errorf("project.milestones: got %+v", project.Milestones)
	}
}

func TestServeCheck_Repeatable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := conncheck.NewHandler(db, zap.NewNop())

	// The unique suffix keeps repeated checks clear of the username index
	for i := 0; i < 2; i++ {
		rec := testutil.DoRequest(t, conncheck.Routes(h), "GET", "/", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("run %d: expected status %d, got %d", i, http.StatusOK, rec.Code)
		}
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()

	count, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 sample users, got %d", count)
	}
}
