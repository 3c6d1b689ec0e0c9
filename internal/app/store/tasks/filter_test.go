package taskstore

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFilter_Empty(t *testing.T) {
	q := Filter{}.query()
	if len(q) != 0 {
		t.Errorf("empty filter should produce an empty query, got %v", q)
	}
}

func TestFilter_StatusOnly(t *testing.T) {
	q := Filter{Status: "pending"}.query()
	if len(q) != 1 {
		t.Fatalf("expected 1 clause, got %v", q)
	}
	if q["status"] != "pending" {
		t.Errorf("status clause: got %v", q["status"])
	}
}

func TestFilter_AllClauses(t *testing.T) {
	p := 3
	id := primitive.NewObjectID()
	q := Filter{Status: "completed", Priority: &p, AssignedTo: &id}.query()

	if len(q) != 3 {
		t.Fatalf("expected 3 clauses, got %v", q)
	}
	if q["status"] != "completed" {
		t.Errorf("status clause: got %v", q["status"])
	}
	if q["priority"] != 3 {
		t.Errorf("priority clause: got %v", q["priority"])
	}
	if q["assigned_to"] != id {
		t.Errorf("assigned_to clause: got %v", q["assigned_to"])
	}
}

func TestFilter_NilFieldsDropClauses(t *testing.T) {
	p := 2
	q := Filter{Priority: &p}.query()

	if len(q) != 1 {
		t.Fatalf("expected only the priority clause, got %v", q)
	}
	if _, ok := q["assigned_to"]; ok {
		t.Error("nil AssignedTo should contribute no clause")
	}
	if _, ok := q["status"]; ok {
		t.Error("empty Status should contribute no clause")
	}
}
