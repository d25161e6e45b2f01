package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/dimchain/dimchain/pkg/errors"
	"github.com/dimchain/dimchain/pkg/observability"
	"github.com/dimchain/dimchain/pkg/pipeline"
)

// Default database and collection names.
const (
	DefaultDatabase   = "dimchain"
	DefaultCollection = "runs"
)

// MongoStore persists runs in a MongoDB collection, one document per
// run keyed by the run id.
type MongoStore struct {
	client *mongo.Client
	runs   *mongo.Collection
}

// NewMongoStore connects to MongoDB at the given URI and verifies the
// connection with a ping before returning. Empty database or collection
// names fall back to the defaults.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	if collection == "" {
		collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "connect %s", uri)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "ping %s", uri)
	}

	return &MongoStore{
		client: client,
		runs:   client.Database(database).Collection(collection),
	}, nil
}

// Save stores a completed run. Saving the same run id twice replaces
// the stored document.
func (s *MongoStore) Save(ctx context.Context, run *pipeline.Result) error {
	start := time.Now()
	_, err := s.runs.ReplaceOne(ctx,
		bson.M{"_id": run.RunID},
		run,
		options.Replace().SetUpsert(true))
	observability.Store().OnSave(ctx, run.RunID, time.Since(start), err)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "save run %s", run.RunID)
	}
	return nil
}

// Get retrieves a run by id.
func (s *MongoStore) Get(ctx context.Context, runID string) (*pipeline.Result, error) {
	start := time.Now()
	var run pipeline.Result
	err := s.runs.FindOne(ctx, bson.M{"_id": runID}).Decode(&run)
	observability.Store().OnLoad(ctx, runID, time.Since(start), err)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.New(apperrors.ErrCodeRunNotFound, "run %s not found", runID)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "load run %s", runID)
	}
	return &run, nil
}

// List returns summaries of the most recent runs, newest first.
func (s *MongoStore) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	cur, err := s.runs.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(int64(limit)))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "list runs")
	}
	defer cur.Close(ctx)

	var out []Summary
	for cur.Next(ctx) {
		var run pipeline.Result
		if err := cur.Decode(&run); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "decode run")
		}
		out = append(out, summarize(&run))
	}
	if err := cur.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "list runs")
	}
	return out, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func summarize(run *pipeline.Result) Summary {
	return Summary{
		RunID:        run.RunID,
		DocumentName: run.DocumentName,
		CreatedAt:    run.CreatedAt,
		Views:        len(run.Views),
		Chains:       run.TotalChains(),
	}
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
