// Package store persists completed dimensioning runs.
//
// Persistence is optional: the CLI saves runs only when asked to and
// the API only when a store is configured. A missing store is not an
// error anywhere in the pipeline.
package store

import (
	"context"
	"time"

	"github.com/dimchain/dimchain/pkg/pipeline"
)

// Summary is the listing view of a stored run.
type Summary struct {
	RunID        string    `json:"run_id" bson:"_id"`
	DocumentName string    `json:"document_name,omitempty" bson:"document_name,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	Views        int       `json:"views" bson:"views"`
	Chains       int       `json:"chains" bson:"chains"`
}

// Store is the persistence interface for run results.
type Store interface {
	// Save stores a completed run.
	Save(ctx context.Context, run *pipeline.Result) error

	// Get retrieves a run by id.
	Get(ctx context.Context, runID string) (*pipeline.Result, error)

	// List returns summaries of the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
