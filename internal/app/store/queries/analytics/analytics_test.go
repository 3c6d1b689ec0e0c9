package analytics_test

import (
	"testing"
	"time"

	"github.com/dalemusser/taskhub/internal/app/store/queries/analytics"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/taskhub/internal/testutil"
)

func TestCollectionTotals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	u1 := fx.CreateUser(ctx, "u1", "u1@example.com")
	fx.CreateUser(ctx, "u2", "u2@example.com")
	fx.CreateTask(ctx, u1.ID, "t1", models.StatusPending, 3)
	fx.CreateProject(ctx, u1.ID, "p1")

	totals, err := analytics.CollectionTotals(ctx, db)
	if err != nil {
		t.Fatalf("CollectionTotals failed: %v", err)
	}

	if totals.Users != 2 {
		t.Errorf("Users: got %d, want 2", totals.Users)
	}
	if totals.Tasks != 1 {
		t.Errorf("Tasks: got %d, want 1", totals.Tasks)
	}
	if totals.Projects != 1 {
		t.Errorf("Projects: got %d, want 1", totals.Projects)
	}
}

func TestStatusDistribution_ZeroFilled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	dist, err := analytics.StatusDistribution(ctx, db)
	if err != nil {
		t.Fatalf("StatusDistribution failed: %v", err)
	}

	// Every status appears even with no tasks at all
	if len(dist) != len(models.TaskStatuses) {
		t.Fatalf("expected %d keys, got %d", len(models.TaskStatuses), len(dist))
	}
	for _, s := range models.TaskStatuses {
		if n, ok := dist[s]; !ok || n != 0 {
			t.Errorf("status %q: got %d, want 0", s, n)
		}
	}
}

func TestStatusDistribution_SumsToTotal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	u := fx.CreateUser(ctx, "u", "u@example.com")
	fx.CreateTask(ctx, u.ID, "a", models.StatusPending, 3)
	fx.CreateTask(ctx, u.ID, "b", models.StatusPending, 3)
	fx.CreateTask(ctx, u.ID, "c", models.StatusCompleted, 3)
	fx.CreateTask(ctx, u.ID, "d", models.StatusInProgress, 3)

	dist, err := analytics.StatusDistribution(ctx, db)
	if err != nil {
		t.Fatalf("StatusDistribution failed: %v", err)
	}

	if dist[models.StatusPending] != 2 {
		t.Errorf("pending: got %d, want 2", dist[models.StatusPending])
	}
	if dist[models.StatusCancelled] != 0 {
		t.Errorf("cancelled: got %d, want 0", dist[models.StatusCancelled])
	}

	var sum int64
	for _, n := range dist {
		sum += n
	}
	totals, err := analytics.CollectionTotals(ctx, db)
	if err != nil {
		t.Fatalf("CollectionTotals failed: %v", err)
	}
	if sum != totals.Tasks {
		t.Errorf("distribution sums to %d, want %d", sum, totals.Tasks)
	}
}

func TestPriorityDistribution(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	u := fx.CreateUser(ctx, "u", "u@example.com")
	fx.CreateTask(ctx, u.ID, "a", models.StatusPending, 1)
	fx.CreateTask(ctx, u.ID, "b", models.StatusPending, 1)
	fx.CreateTask(ctx, u.ID, "c", models.StatusPending, 5)

	dist, err := analytics.PriorityDistribution(ctx, db)
	if err != nil {
		t.Fatalf("PriorityDistribution failed: %v", err)
	}

	if len(dist) != 5 {
		t.Fatalf("expected 5 keys, got %d: %v", len(dist), dist)
	}
	if dist["priority_1"] != 2 {
		t.Errorf("priority_1: got %d, want 2", dist["priority_1"])
	}
	if dist["priority_3"] != 0 {
		t.Errorf("priority_3: got %d, want 0", dist["priority_3"])
	}
	if dist["priority_5"] != 1 {
		t.Errorf("priority_5: got %d, want 1", dist["priority_5"])
	}
}

func TestRecentTasksCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	u := fx.CreateUser(ctx, "u", "u@example.com")

	now := time.Now().UTC()
	fx.CreateTaskAt(ctx, u.ID, "fresh", models.StatusPending, 3, now.Add(-time.Hour))
	fx.CreateTaskAt(ctx, u.ID, "edge", models.StatusPending, 3, now.Add(-analytics.RecentWindow+time.Minute))
	fx.CreateTaskAt(ctx, u.ID, "stale", models.StatusPending, 3, now.Add(-analytics.RecentWindow-time.Hour))

	count, err := analytics.RecentTasksCount(ctx, db, now)
	if err != nil {
		t.Fatalf("RecentTasksCount failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 recent tasks, got %d", count)
	}
}

func TestTopCreators(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	prolific := fx.CreateUser(ctx, "prolific", "prolific@example.com")
	modest := fx.CreateUser(ctx, "modest", "modest@example.com")
	fx.CreateUser(ctx, "idle", "idle@example.com")

	for i := 0; i < 3; i++ {
		fx.CreateTask(ctx, prolific.ID, "p", models.StatusPending, 3)
	}
	fx.CreateTask(ctx, modest.ID, "m", models.StatusPending, 3)

	rows, err := analytics.TopCreators(ctx, db)
	if err != nil {
		t.Fatalf("TopCreators failed: %v", err)
	}

	// Users without authored tasks are excluded
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(rows), rows)
	}
	if rows[0].Username != "prolific" || rows[0].TaskCount != 3 {
		t.Errorf("rows[0]: got %+v", rows[0])
	}
	if rows[1].Username != "modest" || rows[1].TaskCount != 1 {
		t.Errorf("rows[1]: got %+v", rows[1])
	}
	if rows[0].Email != "prolific@example.com" {
		t.Errorf("rows[0].Email: got %q", rows[0].Email)
	}
}

func TestTopCreators_Capped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	for i := 0; i < analytics.TopCreatorsLimit+2; i++ {
		u := fx.CreateUser(ctx, "user"+string(rune('a'+i)), "u@example.com")
		fx.CreateTask(ctx, u.ID, "t", models.StatusPending, 3)
	}

	rows, err := analytics.TopCreators(ctx, db)
	if err != nil {
		t.Fatalf("TopCreators failed: %v", err)
	}
	if len(rows) != analytics.TopCreatorsLimit {
		t.Errorf("expected %d rows, got %d", analytics.TopCreatorsLimit, len(rows))
	}
}

func TestTopCreators_DanglingCreatorDropped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	u := fx.CreateUser(ctx, "ephemeral", "e@example.com")
	fx.CreateTask(ctx, u.ID, "t", models.StatusPending, 3)

	if _, err := db.Collection("users").DeleteOne(ctx, map[string]any{"_id": u.ID}); err != nil {
		t.Fatalf("delete user failed: %v", err)
	}

	rows, err := analytics.TopCreators(ctx, db)
	if err != nil {
		t.Fatalf("TopCreators failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected 0 rows for a deleted creator, got %+v", rows)
	}
}

func TestBuildReport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	u := fx.CreateUser(ctx, "u", "u@example.com")
	fx.CreateTask(ctx, u.ID, "t", models.StatusCompleted, 4)
	fx.CreateProject(ctx, u.ID, "p")

	report, err := analytics.BuildReport(ctx, db, time.Now().UTC())
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	if report.Totals.Users != 1 || report.Totals.Tasks != 1 || report.Totals.Projects != 1 {
		t.Errorf("Totals: got %+v", report.Totals)
	}
	if report.StatusDistribution[models.StatusCompleted] != 1 {
		t.Errorf("completed: got %d", report.StatusDistribution[models.StatusCompleted])
	}
	if report.PriorityDistribution["priority_4"] != 1 {
		t.Errorf("priority_4: got %d", report.PriorityDistribution["priority_4"])
	}
	if report.RecentTasksCount != 1 {
		t.Errorf("RecentTasksCount: got %d", report.RecentTasksCount)
	}
	if len(report.TopCreators) != 1 {
		t.Errorf("TopCreators: got %+v", report.TopCreators)
	}
}
