// Package store archives analysis documents so they can be fetched again by ID.
//
// Two backends are provided:
//   - [MemoryStore]: in-process map, for tests and single-instance servers
//   - [MongoStore]: MongoDB collection, for deployments sharing an archive
//
// Records are immutable once saved. Saving a record with an existing ID
// replaces it.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/graph"
)

// Record is one archived analysis.
type Record struct {
	ID        string          `json:"id" bson:"_id"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	Hash      string          `json:"hash" bson:"hash"`
	Document  *graph.Document `json:"document" bson:"document"`
}

// NewRecord wraps doc in a record with a fresh ID.
func NewRecord(hash string, doc *graph.Document) *Record {
	return &Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Hash:      hash,
		Document:  doc,
	}
}

// Store is the interface for analysis archives.
type Store interface {
	// Save stores rec. It fills in ID and CreatedAt when they are empty.
	Save(ctx context.Context, rec *Record) error

	// Get returns the record with the given ID, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)

	// Close releases the backend.
	Close() error
}

func prepare(rec *Record) error {
	if rec == nil || rec.Document == nil {
		return errors.New(errors.ErrCodeInvalidInput, "record has no document")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "analysis %q not found", id)
}
