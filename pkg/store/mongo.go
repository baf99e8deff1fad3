// Package store persists generated puzzles as named datasets.
//
// The backing store is MongoDB: puzzles serialize naturally as documents,
// dataset names map to collections, and batch generation jobs can insert
// from several workers without coordination. Exports to flat files live in
// pkg/io; this package is only concerned with the database.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	enigmaerrors "github.com/ianfhunter/enigma/pkg/errors"
	"github.com/ianfhunter/enigma/pkg/observability"
	"github.com/ianfhunter/enigma/pkg/puzzle"
)

// connectTimeout bounds the initial server handshake.
const connectTimeout = 10 * time.Second

// MongoStore is a dataset store backed by a MongoDB database. One store
// serves many datasets; each dataset is a collection.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to the given URI and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, enigmaerrors.Wrap(enigmaerrors.ErrCodeStore, err, "connect to %s", uri)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, enigmaerrors.Wrap(enigmaerrors.ErrCodeStore, err, "ping %s", uri)
	}
	return &MongoStore{client: client, db: client.Database(database)}, nil
}

// Save inserts one puzzle into the named dataset.
func (s *MongoStore) Save(ctx context.Context, dataset string, p *puzzle.Puzzle) error {
	if err := enigmaerrors.ValidateDatasetName(dataset); err != nil {
		return err
	}
	start := time.Now()
	_, err := s.db.Collection(dataset).InsertOne(ctx, p)
	observability.Store().OnSave(ctx, dataset, time.Since(start), err)
	if err != nil {
		return enigmaerrors.Wrap(enigmaerrors.ErrCodeStore, err, "save puzzle %s", p.ID)
	}
	return nil
}

// SaveBatch inserts many puzzles in one round trip.
func (s *MongoStore) SaveBatch(ctx context.Context, dataset string, ps []*puzzle.Puzzle) error {
	if err := enigmaerrors.ValidateDatasetName(dataset); err != nil {
		return err
	}
	if len(ps) == 0 {
		return nil
	}
	docs := make([]interface{}, len(ps))
	for i, p := range ps {
		docs[i] = p
	}
	start := time.Now()
	_, err := s.db.Collection(dataset).InsertMany(ctx, docs)
	observability.Store().OnSave(ctx, dataset, time.Since(start), err)
	if err != nil {
		return enigmaerrors.Wrap(enigmaerrors.ErrCodeStore, err, "save %d puzzles", len(ps))
	}
	return nil
}

// Load fetches one puzzle by ID from the named dataset.
func (s *MongoStore) Load(ctx context.Context, dataset, id string) (*puzzle.Puzzle, error) {
	if err := enigmaerrors.ValidateDatasetName(dataset); err != nil {
		return nil, err
	}
	if err := enigmaerrors.ValidatePuzzleID(id); err != nil {
		return nil, err
	}

	start := time.Now()
	var p puzzle.Puzzle
	err := s.db.Collection(dataset).FindOne(ctx, bson.M{"id": id}).Decode(&p)
	observability.Store().OnLoad(ctx, dataset, time.Since(start), err)
	if err == mongo.ErrNoDocuments {
		return nil, enigmaerrors.New(enigmaerrors.ErrCodePuzzleNotFound, "puzzle %s not in dataset %s", id, dataset)
	}
	if err != nil {
		return nil, enigmaerrors.Wrap(enigmaerrors.ErrCodeStore, err, "load puzzle %s", id)
	}
	return &p, nil
}

// ListOpts filter a List call. Zero values mean "no filter".
type ListOpts struct {
	Family string
	Limit  int64
}

// List returns puzzles from the named dataset, newest first.
func (s *MongoStore) List(ctx context.Context, dataset string, opts ListOpts) ([]*puzzle.Puzzle, error) {
	if err := enigmaerrors.ValidateDatasetName(dataset); err != nil {
		return nil, err
	}

	filter := bson.M{}
	if opts.Family != "" {
		filter["family"] = opts.Family
	}
	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	start := time.Now()
	cur, err := s.db.Collection(dataset).Find(ctx, filter, findOpts)
	observability.Store().OnLoad(ctx, dataset, time.Since(start), err)
	if err != nil {
		return nil, enigmaerrors.Wrap(enigmaerrors.ErrCodeStore, err, "list dataset %s", dataset)
	}
	defer cur.Close(ctx)

	var out []*puzzle.Puzzle
	for cur.Next(ctx) {
		var p puzzle.Puzzle
		if err := cur.Decode(&p); err != nil {
			return nil, enigmaerrors.Wrap(enigmaerrors.ErrCodeStore, err, "decode puzzle")
		}
		out = append(out, &p)
	}
	if err := cur.Err(); err != nil {
		return nil, enigmaerrors.Wrap(enigmaerrors.ErrCodeStore, err, "iterate dataset %s", dataset)
	}
	return out, nil
}

// Count returns the number of puzzles in the named dataset.
func (s *MongoStore) Count(ctx context.Context, dataset string) (int64, error) {
	if err := enigmaerrors.ValidateDatasetName(dataset); err != nil {
		return 0, err
	}
	n, err := s.db.Collection(dataset).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, enigmaerrors.Wrap(enigmaerrors.ErrCodeStore, err, "count dataset %s", dataset)
	}
	return n, nil
}

// EnsureIndexes creates the id index a dataset needs for Load.
func (s *MongoStore) EnsureIndexes(ctx context.Context, dataset string) error {
	if err := enigmaerrors.ValidateDatasetName(dataset); err != nil {
		return err
	}
	_, err := s.db.Collection(dataset).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return enigmaerrors.Wrap(enigmaerrors.ErrCodeStore, err, "index dataset %s", dataset)
	}
	return nil
}

// Close disconnects from the database.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
