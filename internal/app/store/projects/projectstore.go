package projectstore

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
		c:     db.Collection("projects"),
		users: db.Collection("users"),
	}
}

var (
	// ErrOwnerNotFound is returned when owner does not resolve to an
	// existing user at write time.
	ErrOwnerNotFound = errors.New("owner does not reference an existing user")

	// ErrProjectNotFound is returned by lookups and saves when no document matches.
	ErrProjectNotFound = errors.New("project not found")
)

// Create inserts a new project after applying defaults and validating fields.
// Milestones are embedded values: they are stored inline, in order, and have
// no identity outside this document.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	p.ID = primitive.NewObjectID()
	p.Name = sanitize.Text(p.Name)
	p.Description = sanitize.Text(p.Description)
	for i := range p.Milestones {
		p.Milestones[i].Title = sanitize.Text(p.Milestones[i].Title)
		p.Milestones[i].Description = sanitize.Text(p.Milestones[i].Description)
	}

	if err := validate.Project(&p); err != nil {
		return models.Project{}, err
	}

	n, err := s.users.CountDocuments(ctx, bson.M{"_id": p.Owner})
	if err != nil {
		return models.Project{}, err
	}
	if n == 0 {
		return models.Project{}, ErrOwnerNotFound
	}

	p.CreatedAt = time.Now()
	p.IsActive = true

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// GetByID loads a project by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns projects in natural order. limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, limit int64) ([]models.Project, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Save replaces the stored document for p.ID. Last write wins.
func (s *Store) Save(ctx context.Context, p models.Project) (models.Project, error) {
	p.Name = sanitize.Text(p.Name)
	if err := validate.Project(&p); err != nil {
		return models.Project{}, err
	}

	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return models.Project{}, err
	}
	if res.MatchedCount == 0 {
		return models.Project{}, ErrProjectNotFound
	}
	return p, nil
}

// Delete removes a project by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the total number of project documents.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
