package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/circlepack/pkg/errors"
)

// MongoStore persists packings in a MongoDB collection, keyed by the
// packing ID.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and uses the "packings"
// collection of the named database. The connection is verified with a
// ping before returning.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection("packings"),
	}, nil
}

// Save stores a packing, replacing any existing document with the same ID.
func (s *MongoStore) Save(ctx context.Context, p Packing) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, opts); err != nil {
		return fmt.Errorf("mongo save: %w", err)
	}
	return nil
}

// Get retrieves a packing by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (Packing, error) {
	var p Packing
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return Packing{}, errors.New(errors.ErrCodeNotFound, "packing %s not found", id)
	}
	if err != nil {
		return Packing{}, fmt.Errorf("mongo get: %w", err)
	}
	return p, nil
}

// List returns all packings, newest first.
func (s *MongoStore) List(ctx context.Context) ([]Packing, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo list: %w", err)
	}
	defer cursor.Close(ctx)

	var out []Packing
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("mongo decode: %w", err)
	}
	return out, nil
}

// Delete removes a packing by ID.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeNotFound, "packing %s not found", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
