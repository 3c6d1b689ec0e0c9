// Package validators attaches JSON-Schema validation to the app's collections.
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
//
// The schemas mirror the write-time checks in domain/validate; they are a
// second line of defense at the store, not the primary validation path.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("tasks", tasksSchema())
	ensure("projects", projectsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"username", "email"},
			"properties": bson.M{
				"username":    bson.M{"bsonType": "string", "minLength": 1, "maxLength": 50},
				"email":       bson.M{"bsonType": "string", "minLength": 1},
				"first_name":  bson.M{"bsonType": "string", "maxLength": 30},
				"last_name":   bson.M{"bsonType": "string", "maxLength": 30},
				"date_joined": bson.M{"bsonType": "date"},
				"is_active":   bson.M{"bsonType": "bool"},
				// profile_data is an open object on purpose; no field schema.
				"profile_data": bson.M{"bsonType": "object"},
				"tags": bson.M{
					"bsonType": "array",
					"items":    bson.M{"bsonType": "string", "maxLength": 20},
				},
			},
		},
	}
}

func tasksSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "created_by", "status", "priority"},
			"properties": bson.M{
				"title":       bson.M{"bsonType": "string", "minLength": 1, "maxLength": 200},
				"description": bson.M{"bsonType": "string"},
				"created_by":  bson.M{"bsonType": "objectId"},
				"assigned_to": bson.M{
					"bsonType": "array",
					"items":    bson.M{"bsonType": "objectId"},
				},
				"status":   bson.M{"enum": bson.A{"pending", "in_progress", "completed", "cancelled"}},
				"priority": bson.M{"bsonType": "int", "minimum": 1, "maximum": 5},
				"metadata": bson.M{
					"bsonType": "object",
					"properties": bson.M{
						"estimated_hours": bson.M{"bsonType": bson.A{"double", "int"}, "minimum": 0},
						"actual_hours":    bson.M{"bsonType": bson.A{"double", "int"}, "minimum": 0},
						"difficulty":      bson.M{"enum": bson.A{"easy", "medium", "hard"}},
						"category":        bson.M{"bsonType": "string", "maxLength": 50},
						"external_links": bson.M{
							"bsonType": "array",
							"items":    bson.M{"bsonType": "string"},
						},
					},
				},
				"created_at":    bson.M{"bsonType": "date"},
				"updated_at":    bson.M{"bsonType": "date"},
				"due_date":      bson.M{"bsonType": "date"},
				"custom_fields": bson.M{"bsonType": "object"},
			},
		},
	}
}

func projectsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "owner"},
			"properties": bson.M{
				"name":        bson.M{"bsonType": "string", "minLength": 1, "maxLength": 100},
				"description": bson.M{"bsonType": "string"},
				"owner":       bson.M{"bsonType": "objectId"},
				"team_members": bson.M{
					"bsonType": "array",
					"items":    bson.M{"bsonType": "objectId"},
				},
				"settings": bson.M{"bsonType": "object"},
				"milestones": bson.M{
					"bsonType": "array",
					"items": bson.M{
						"bsonType": "object",
						"required": bson.A{"title"},
						"properties": bson.M{
							"title":           bson.M{"bsonType": "string", "minLength": 1, "maxLength": 100},
							"description":     bson.M{"bsonType": "string"},
							"target_date":     bson.M{"bsonType": "date"},
							"completed":       bson.M{"bsonType": "bool"},
							"completion_date": bson.M{"bsonType": "date"},
						},
					},
				},
				"created_at": bson.M{"bsonType": "date"},
				"is_active":  bson.M{"bsonType": "bool"},
			},
		},
	}
}
