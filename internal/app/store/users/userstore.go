package userstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dalemusser/taskhub/internal/app/system/normalize"
	"github.com/dalemusser/taskhub/internal/app/system/sanitize"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/taskhub/internal/domain/validate"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateUsername is returned when an insert collides with the
	// unique username index.
	ErrDuplicateUsername = errors.New("a user with this username already exists")

	// ErrUserNotFound is returned by lookups when no document matches.
	// Reference resolvers treat this as "absent", not as a failure.
	ErrUserNotFound = errors.New("user not found")
)

// Create inserts a new user after normalizing and validating fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Username = normalize.Username(u.Username)
	u.Email = normalize.Email(u.Email)
	u.FirstName = sanitize.Text(normalize.Name(u.FirstName))
	u.LastName = sanitize.Text(normalize.Name(u.LastName))
	u.Tags = sanitize.Slice(u.Tags)

	if err := validate.User(&u); err != nil {
		return models.User{}, err
	}

	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now()
	}
	u.IsActive = true

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID. Returns ErrUserNotFound when absent so
// callers resolving references can distinguish "gone" from a store failure.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns users, optionally narrowed by a free-text search term matched
// case-insensitively as a substring of username, email, first name, or last
// name (OR across the four fields). With an empty search it returns every
// user in natural order. limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, search string, limit int64) ([]models.User, error) {
	filter := bson.M{}
	if search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter = bson.M{"$or": bson.A{
			bson.M{"username": re},
			bson.M{"email": re},
			bson.M{"first_name": re},
			bson.M{"last_name": re},
		}}
	}

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// MapByIDs fetches the users for the given ids in one query and returns them
// keyed by id. Ids with no matching document are simply missing from the map;
// dangling references are the caller's normal case, not an error.
func (s *Store) MapByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	out := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, cur.Err()
}

// Update replaces the stored document for u.ID. Last write wins; there is no
// concurrency token in the data model.
func (s *Store) Update(ctx context.Context, u models.User) error {
	u.Username = normalize.Username(u.Username)
	u.Email = normalize.Email(u.Email)
	if err := validate.User(&u); err != nil {
		return err
	}

	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateUsername
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes a user by ID. Returns the number of documents deleted
// (0 or 1). Documents referencing the user are left in place; read paths
// tolerate the dangling reference.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the total number of user documents.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
