// Package mongodb implements the data.Collection contract on MongoDB, one
// Mongo collection per catalog entity kind.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aoideee/locallibrary/internal/data"
)

// Ensure Collection implements data.Collection.
var _ data.Collection[data.Author] = (*Collection[data.Author])(nil)

// Store owns a connected client and the database holding the catalog.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri, verifies the server answers, and ensures unique indexes.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	s := &Store{client: client, db: client.Database(database)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	for coll, fields := range data.UniqueFields {
		for _, field := range fields {
			_, err := s.db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
				Keys:    bson.D{{Key: field, Value: 1}},
				Options: options.Index().SetUnique(true),
			})
			if err != nil {
				return fmt.Errorf("create %s.%s index: %w", coll, field, err)
			}
		}
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Models returns a data.Models backed by this database.
func (s *Store) Models() data.Models {
	return data.Models{
		Authors:       &Collection[data.Author]{coll: s.db.Collection(data.AuthorCollection)},
		Genres:        &Collection[data.Genre]{coll: s.db.Collection(data.GenreCollection)},
		Books:         &Collection[data.Book]{coll: s.db.Collection(data.BookCollection)},
		BookInstances: &Collection[data.BookInstance]{coll: s.db.Collection(data.BookInstanceCollection)},
	}
}

// Collection adapts a *mongo.Collection to data.Collection.
type Collection[T data.Document[T]] struct {
	coll *mongo.Collection
}

// FindByID returns the document with _id equal to id.
func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, error) {
	var doc T
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, data.ErrRecordNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("find %s %s: %w", c.coll.Name(), id, err)
	}
	return doc, nil
}

// FindAll returns matching documents in natural order unless q.Sort is set.
func (c *Collection[T]) FindAll(ctx context.Context, q data.Query) ([]T, error) {
	opts := options.Find()
	if q.Sort != nil {
		dir := 1
		if q.Sort.Desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.Sort.Field, Value: dir}})
	}
	cur, err := c.coll.Find(ctx, filter(q.Filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.coll.Name(), err)
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return out, nil
}

// Insert stores doc under a fresh ObjectID rendered as hex.
func (c *Collection[T]) Insert(ctx context.Context, doc T) (T, error) {
	var zero T
	stored := doc.WithID(primitive.NewObjectID().Hex())
	if _, err := c.coll.InsertOne(ctx, stored); err != nil {
		return zero, c.writeErr("insert", err)
	}
	return stored, nil
}

// Update replaces the document with doc.GetID().
func (c *Collection[T]) Update(ctx context.Context, doc T) error {
	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": doc.GetID()}, doc)
	if err != nil {
		return c.writeErr("update", err)
	}
	if res.MatchedCount == 0 {
		return data.ErrRecordNotFound
	}
	return nil
}

// Remove deletes the document with id.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", c.coll.Name(), id, err)
	}
	if res.DeletedCount == 0 {
		return data.ErrRecordNotFound
	}
	return nil
}

// Count returns the number of documents matching f.
func (c *Collection[T]) Count(ctx context.Context, f *data.Filter) (int64, error) {
	n, err := c.coll.CountDocuments(ctx, filter(f))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.coll.Name(), err)
	}
	return n, nil
}

func (c *Collection[T]) writeErr(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s %s: %w", op, c.coll.Name(), data.ErrDuplicateRecord)
	}
	return fmt.Errorf("%s %s: %w", op, c.coll.Name(), err)
}

// filter relies on Mongo's equality semantics, which already match array
// fields that contain the value.
func filter(f *data.Filter) bson.M {
	if f == nil {
		return bson.M{}
	}
	return bson.M{f.Field: f.Value}
}
