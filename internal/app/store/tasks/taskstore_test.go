package taskstore_test

import (
	"errors"
	"testing"
	"time"

	taskstore "github.com/dalemusser/taskhub/internal/app/store/tasks"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/taskhub/internal/domain/validate"
	"github.com/dalemusser/taskhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	creator := fx.CreateUser(ctx, "creator", "creator@example.com")

	created, err := store.Create(ctx, models.Task{
		Title:     "First task",
		CreatedBy: creator.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Status != models.StatusPending {
		t.Errorf("Status: got %q, want %q", created.Status, models.StatusPending)
	}
	if created.Priority != models.PriorityDefault {
		t.Errorf("Priority: got %d, want %d", created.Priority, models.PriorityDefault)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Error("expected created_at and updated_at to match on insert")
	}
}

func TestStore_Create_CreatorMustExist(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Task{
		Title:     "Orphan",
		CreatedBy: primitive.NewObjectID(),
	})
	if !errors.Is(err, taskstore.ErrCreatorNotFound) {
		t.Fatalf("expected ErrCreatorNotFound, got %v", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 tasks after rejected create, got %d", count)
	}
}

func TestStore_Create_InvalidStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	creator := fx.CreateUser(ctx, "creator", "creator@example.com")

	_, err := store.Create(ctx, models.Task{
		Title:     "Bad status",
		CreatedBy: creator.ID,
		Status:    "archived",
	})
	var fe *validate.FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldError, got %v", err)
	}
	if fe.Field != "status" {
		t.Errorf("Field: got %q, want %q", fe.Field, "status")
	}
}

func TestStore_Create_CustomFieldsRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	creator := fx.CreateUser(ctx, "creator", "creator@example.com")

	est := 2.5
	created, err := store.Create(ctx, models.Task{
		Title:     "Rich task",
		CreatedBy: creator.ID,
		Metadata: &models.TaskMetadata{
			EstimatedHours: &est,
			Difficulty:     models.DifficultyMedium,
			Category:       "backend",
		},
		CustomFields: map[string]any{"sprint": "W34", "reviewed": true},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Metadata == nil || got.Metadata.Category != "backend" {
		t.Errorf("Metadata: got %+v", got.Metadata)
	}
	if got.Metadata.EstimatedHours == nil || *got.Metadata.EstimatedHours != 2.5 {
		t.Errorf("EstimatedHours: got %v", got.Metadata.EstimatedHours)
	}
	if got.CustomFields["sprint"] != "W34" {
		t.Errorf("CustomFields[sprint]: got %v", got.CustomFields["sprint"])
	}
	if got.CustomFields["reviewed"] != true {
		t.Errorf("CustomFields[reviewed]: got %v", got.CustomFields["reviewed"])
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if !errors.Is(err, taskstore.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestStore_List_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	creator := fx.CreateUser(ctx, "creator", "creator@example.com")

	base := time.Now().UTC().Truncate(time.Millisecond)
	fx.CreateTaskAt(ctx, creator.ID, "oldest", models.StatusPending, 3, base.Add(-2*time.Hour))
	fx.CreateTaskAt(ctx, creator.ID, "newest", models.StatusPending, 3, base)
	fx.CreateTaskAt(ctx, creator.ID, "middle", models.StatusPending, 3, base.Add(-time.Hour))

	tasks, err := store.List(ctx, taskstore.Filter{}, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}

	want := []string{"newest", "middle", "oldest"}
	for i, w := range want {
		if tasks[i].Title != w {
			t.Errorf("tasks[%d]: got %q, want %q", i, tasks[i].Title, w)
		}
	}
}

func TestStore_List_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	creator := fx.CreateUser(ctx, "creator", "creator@example.com")
	assignee := fx.CreateUser(ctx, "assignee", "assignee@example.com")

	t1 := fx.CreateTask(ctx, creator.ID, "t1", models.StatusPending, 1)
	fx.CreateTask(ctx, creator.ID, "t2", models.StatusCompleted, 1)
	fx.CreateTask(ctx, creator.ID, "t3", models.StatusPending, 5)
	fx.AssignTask(ctx, t1.ID, assignee.ID)

	byStatus, err := store.List(ctx, taskstore.Filter{Status: models.StatusPending}, 0)
	if err != nil {
		t.Fatalf("List by status failed: %v", err)
	}
	if len(byStatus) != 2 {
		t.Errorf("status filter: expected 2 tasks, got %d", len(byStatus))
	}

	p := 1
	byBoth, err := store.List(ctx, taskstore.Filter{Status: models.StatusPending, Priority: &p}, 0)
	if err != nil {
		t.Fatalf("List by status+priority failed: %v", err)
	}
	if len(byBoth) != 1 || byBoth[0].Title != "t1" {
		t.Errorf("combined filter: got %d tasks", len(byBoth))
	}

	byAssignee, err := store.List(ctx, taskstore.Filter{AssignedTo: &assignee.ID}, 0)
	if err != nil {
		t.Fatalf("List by assignee failed: %v", err)
	}
	if len(byAssignee) != 1 || byAssignee[0].Title != "t1" {
		t.Errorf("assignee filter: got %d tasks", len(byAssignee))
	}
}

func TestStore_List_StatusPartition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	creator := fx.CreateUser(ctx, "creator", "creator@example.com")

	fx.CreateTask(ctx, creator.ID, "a", models.StatusPending, 3)
	fx.CreateTask(ctx, creator.ID, "b", models.StatusInProgress, 3)
	fx.CreateTask(ctx, creator.ID, "c", models.StatusCompleted, 3)
	fx.CreateTask(ctx, creator.ID, "d", models.StatusCompleted, 3)

	// Per-status listings partition the collection
	var sum int
	for _, s := range models.TaskStatuses {
		tasks, err := store.List(ctx, taskstore.Filter{Status: s}, 0)
		if err != nil {
			t.Fatalf("List %q failed: %v", s, err)
		}
		sum += len(tasks)
	}

	total, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if int64(sum) != total {
		t.Errorf("per-status listings sum to %d, want %d", sum, total)
	}
}

func TestStore_Save_RefreshesUpdatedAt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	creator := fx.CreateUser(ctx, "creator", "creator@example.com")

	created, err := store.Create(ctx, models.Task{Title: "evolving", CreatedBy: creator.ID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	created.Status = models.StatusInProgress
	first, err := store.Save(ctx, created)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !first.UpdatedAt.After(first.CreatedAt) {
		t.Error("expected updated_at after created_at following a save")
	}

	time.Sleep(10 * time.Millisecond)
	first.Status = models.StatusCompleted
	second, err := store.Save(ctx, first)
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Error("expected updated_at to increase across saves")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("Status: got %q, want %q", got.Status, models.StatusCompleted)
	}
}

func TestStore_Save_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Save(ctx, models.Task{
		ID:        primitive.NewObjectID(),
		Title:     "ghost",
		CreatedBy: primitive.NewObjectID(),
		Status:    models.StatusPending,
		Priority:  models.PriorityDefault,
	})
	if !errors.Is(err, taskstore.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	creator := fx.CreateUser(ctx, "creator", "creator@example.com")
	task := fx.CreateTask(ctx, creator.ID, "doomed", models.StatusPending, 3)

	n, err := store.Delete(ctx, task.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deletion, got %d", n)
	}

	n, err = store.Delete(ctx, task.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 deletions, got %d", n)
	}
}
