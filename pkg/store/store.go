// Package store persists computed packings so they can be retrieved later
// by ID, listed, and deleted.
//
// Two backends are provided: an in-memory store for development and tests,
// and a MongoDB store for server deployments.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/circlepack/pkg/circle"
)

// Packing is a saved layout: the engine that produced it, the resulting
// circles, and bookkeeping metadata.
type Packing struct {
	ID        string          `json:"id" bson:"_id"`
	Name      string          `json:"name,omitempty" bson:"name,omitempty"`
	Engine    string          `json:"engine" bson:"engine"`
	Circles   []circle.Circle `json:"circles" bson:"circles"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
}

// New creates a packing with a fresh ID and creation timestamp.
func New(name, engine string, circles []circle.Circle) Packing {
	return Packing{
		ID:        uuid.NewString(),
		Name:      name,
		Engine:    engine,
		Circles:   circles,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the interface for packing persistence backends.
type Store interface {
	// Save stores a packing under its ID, overwriting any previous
	// version.
	Save(ctx context.Context, p Packing) error

	// Get retrieves a packing by ID. A missing ID yields a NOT_FOUND
	// error.
	Get(ctx context.Context, id string) (Packing, error)

	// List returns all packings ordered by creation time, newest first.
	List(ctx context.Context) ([]Packing, error)

	// Delete removes a packing. Deleting a missing ID yields a
	// NOT_FOUND error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
