package taskstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/taskhub/internal/app/system/sanitize"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/taskhub/internal/domain/validate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c     *mongo.Collection
	users *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("tasks"),
		users: db.Collection("users"),
	}
}

var (
	// ErrCreatorNotFound is returned when created_by does not resolve to an
	// existing user at write time.
	ErrCreatorNotFound = errors.New("created_by does not reference an existing user")

	// ErrTaskNotFound is returned by lookups and saves when no document matches.
	ErrTaskNotFound = errors.New("task not found")
)

// Create inserts a new task after applying defaults and validating fields.
// The creator reference must resolve at write time; the check is advisory
// only (the user may be deleted afterwards, leaving a dangling reference).
func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	t.ID = primitive.NewObjectID()
	t.Title = sanitize.Text(t.Title)
	t.Description = sanitize.Text(t.Description)

	if t.Status == "" {
		t.Status = models.StatusPending
	}
	if t.Priority == 0 {
		t.Priority = models.PriorityDefault
	}

	if err := validate.Task(&t); err != nil {
		return models.Task{}, err
	}

	n, err := s.users.CountDocuments(ctx, bson.M{"_id": t.CreatedBy})
	if err != nil {
		return models.Task{}, err
	}
	if n == 0 {
		return models.Task{}, ErrCreatorNotFound
	}

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// GetByID loads a task by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns tasks matching the filter, newest first by creation time.
// limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, f Filter, limit int64) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := s.c.Find(ctx, f.query(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tasks []models.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Save replaces the stored document for t.ID, refreshing updated_at. Every
// mutating save goes through here so updated_at strictly increases for the
// document's lifetime. Returns the saved task with its new timestamp.
func (s *Store) Save(ctx context.Context, t models.Task) (models.Task, error) {
	t.Title = sanitize.Text(t.Title)
	t.Description = sanitize.Text(t.Description)
	if err := validate.Task(&t); err != nil {
		return models.Task{}, err
	}

	t.UpdatedAt = time.Now()

	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return models.Task{}, err
	}
	if res.MatchedCount == 0 {
		return models.Task{}, ErrTaskNotFound
	}
	return t, nil
}

// Delete removes a task by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the total number of task documents.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
