package taskstore

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter is a composable predicate over the tasks collection. Zero-value
// fields contribute no clause; set fields are ANDed together.
//
// AssignedTo must hold an id that was already resolved against the users
// collection. When a request names a user that does not exist, the caller
// leaves AssignedTo nil, which drops the clause and leaves the rest of the
// filter intact (the listing is then unfiltered by assignee rather than
// empty).
type Filter struct {
	Status     string
	Priority   *int
	AssignedTo *primitive.ObjectID
}

// query builds the Mongo filter document for f.
func (f Filter) query() bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Priority != nil {
		q["priority"] = *f.Priority
	}
	if f.AssignedTo != nil {
		q["assigned_to"] = *f.AssignedTo
	}
	return q
}
