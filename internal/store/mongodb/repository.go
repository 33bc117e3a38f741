// Package mongodb implements the DocumentStore contract on MongoDB, the
// primary backend.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/patisserie-app/admin/internal/store"
)

// Repository is a mongo-backed DocumentStore. One database holds all six
// dashboard collections.
type Repository struct {
	client *mongo.Client
	dbName string
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, uri, dbName string) (*Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", store.ErrUnavailable, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%w: ping: %v", store.ErrUnavailable, err)
	}

	return &Repository{client: client, dbName: dbName}, nil
}

// Close disconnects the underlying client.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *Repository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// List returns every document in the collection. Order follows natural
// collection order and carries no guarantee.
func (r *Repository) List(ctx context.Context, collection string) ([]store.Document, error) {
	cursor, err := r.collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []store.Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", collection, err)
		}
		docs = append(docs, store.Document{ID: extractID(raw), Fields: map[string]any(raw)})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return docs, nil
}

// Create inserts the fields and returns the assigned id.
func (r *Repository) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	res, err := r.collection(collection).InsertOne(ctx, bson.M(fields))
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

// Update applies a $set of exactly the given fields.
func (r *Repository) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	res, err := r.collection(collection).UpdateOne(ctx, idFilter(id), bson.M{"$set": bson.M(fields)})
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Delete removes one document by id.
func (r *Repository) Delete(ctx context.Context, collection, id string) error {
	res, err := r.collection(collection).DeleteOne(ctx, idFilter(id))
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// idFilter accepts both driver-assigned ObjectIDs and plain string ids left
// behind by other tooling.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid}
	}
	return bson.M{"_id": id}
}

func extractID(raw bson.M) string {
	id := raw["_id"]
	delete(raw, "_id")
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}
