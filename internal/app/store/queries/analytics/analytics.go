// Package analytics provides read-only aggregate reports across the users,
// tasks, and projects collections.
//
// Every report is a point-in-time snapshot: each sub-report runs as its own
// query with no cross-collection transaction, so numbers computed from
// different queries may reflect writes that happened between them.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecentWindow is the trailing window for the recent-task count.
const RecentWindow = 7 * 24 * time.Hour

// TopCreatorsLimit caps the per-user authorship leaderboard.
const TopCreatorsLimit = 10

// Totals holds the per-collection document counts.
type Totals struct {
	Users    int64 `json:"users"`
	Tasks    int64 `json:"tasks"`
	Projects int64 `json:"projects"`
}

// CreatorCount is one leaderboard row: a user and the number of tasks they
// created.
type CreatorCount struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	TaskCount int64  `json:"task_count"`
}

// Report is the full analytics payload.
type Report struct {
	Totals               Totals           `json:"totals"`
	StatusDistribution   map[string]int64 `json:"task_status_distribution"`
	PriorityDistribution map[string]int64 `json:"task_priority_distribution"`
	RecentTasksCount     int64            `json:"recent_tasks_count"`
	TopCreators          []CreatorCount   `json:"top_users_by_tasks"`
}

// BuildReport assembles the full report. The recent-task window is measured
// back from now, taken at call time.
func BuildReport(ctx context.Context, db *mongo.Database, now time.Time) (*Report, error) {
	totals, err := CollectionTotals(ctx, db)
	if err != nil {
		return nil, err
	}
	statuses, err := StatusDistribution(ctx, db)
	if err != nil {
		return nil, err
	}
	priorities, err := PriorityDistribution(ctx, db)
	if err != nil {
		return nil, err
	}
	recent, err := RecentTasksCount(ctx, db, now)
	if err != nil {
		return nil, err
	}
	top, err := TopCreators(ctx, db)
	if err != nil {
		return nil, err
	}

	return &Report{
		Totals:               totals,
		StatusDistribution:   statuses,
		PriorityDistribution: priorities,
		RecentTasksCount:     recent,
		TopCreators:          top,
	}, nil
}

// CollectionTotals counts documents in each of the three collections.
func CollectionTotals(ctx context.Context, db *mongo.Database) (Totals, error) {
	var t Totals
	var err error

	if t.Users, err = db.Collection("users").CountDocuments(ctx, bson.M{}); err != nil {
		return Totals{}, err
	}
	if t.Tasks, err = db.Collection("tasks").CountDocuments(ctx, bson.M{}); err != nil {
		return Totals{}, err
	}
	if t.Projects, err = db.Collection("projects").CountDocuments(ctx, bson.M{}); err != nil {
		return Totals{}, err
	}
	return t, nil
}

// StatusDistribution returns the task count per status, zero-filled so every
// status value appears even with no matching tasks.
func StatusDistribution(ctx context.Context, db *mongo.Database) (map[string]int64, error) {
	out := make(map[string]int64, len(models.TaskStatuses))
	for _, s := range models.TaskStatuses {
		out[s] = 0
	}

	counts, err := groupCounts(ctx, db.Collection("tasks"), "$status")
	if err != nil {
		return nil, err
	}
	for key, n := range counts {
		s, ok := key.(string)
		if !ok {
			continue
		}
		if _, known := out[s]; known {
			out[s] = n
		}
	}
	return out, nil
}

// PriorityDistribution returns the task count per priority level, keyed
// "priority_1" through "priority_5" and zero-filled.
func PriorityDistribution(ctx context.Context, db *mongo.Database) (map[string]int64, error) {
	keys := [...]string{"priority_1", "priority_2", "priority_3", "priority_4", "priority_5"}

	out := make(map[string]int64, len(keys))
	for _, k := range keys {
		out[k] = 0
	}

	counts, err := groupCounts(ctx, db.Collection("tasks"), "$priority")
	if err != nil {
		return nil, err
	}
	for key, n := range counts {
		p, ok := asInt(key)
		if !ok || p < models.PriorityMin || p > models.PriorityMax {
			continue
		}
		out[keys[p-1]] = n
	}
	return out, nil
}

// RecentTasksCount counts tasks created within the trailing window ending at
// now.
func RecentTasksCount(ctx context.Context, db *mongo.Database, now time.Time) (int64, error) {
	cutoff := now.Add(-RecentWindow)
	return db.Collection("tasks").CountDocuments(ctx, bson.M{
		"created_at": bson.M{"$gte": cutoff},
	})
}

// TopCreators returns per-user task-authorship counts: only users with at
// least one authored task, sorted descending by count, capped at
// TopCreatorsLimit. Users are enumerated in the collection's natural order
// and the sort is stable, so ties keep that order.
func TopCreators(ctx context.Context, db *mongo.Database) ([]CreatorCount, error) {
	counts, err := groupCounts(ctx, db.Collection("tasks"), "$created_by")
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]int64, len(counts))
	for key, n := range counts {
		if id, ok := key.(primitive.ObjectID); ok {
			byID[id] = n
		}
	}

	// Counts for users deleted since their tasks were written stay in byID
	// but match no user document, so dangling creators drop out here.
	opts := options.Find().SetProjection(bson.M{"username": 1, "email": 1})
	cur, err := db.Collection("users").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []CreatorCount
	for cur.Next(ctx) {
		var u struct {
			ID       primitive.ObjectID `bson:"_id"`
			Username string             `bson:"username"`
			Email    string             `bson:"email"`
		}
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		if n := byID[u.ID]; n > 0 {
			rows = append(rows, CreatorCount{Username: u.Username, Email: u.Email, TaskCount: n})
		}
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TaskCount > rows[j].TaskCount })
	if len(rows) > TopCreatorsLimit {
		rows = rows[:TopCreatorsLimit]
	}
	return rows, nil
}

// groupCounts runs a single $group aggregation over coll, counting documents
// per distinct value of field (a "$"-prefixed field reference).
func groupCounts(ctx context.Context, coll *mongo.Collection, field string) (map[any]int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": field, "count": bson.M{"$sum": 1}}},
	}

	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[any]int64)
	for cur.Next(ctx) {
		var row struct {
			ID    any   `bson:"_id"`
			Count int64 `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.ID] = row.Count
	}
	return out, cur.Err()
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}
