// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mongostore is the primary document store client. It adapts a
// MongoDB database to the document.Store contract: documents keep their
// application id in an "id" field and MongoDB assigns an ObjectID "_id".
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"devfolio/internal/document"
)

// DefaultConnectTimeout bounds how long Connect waits for the server.
const DefaultConnectTimeout = 5 * time.Second

// Store is a document.Store backed by a MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client for uri and verifies the connection with a ping.
// Only this call is bounded by timeout; later queries use the caller's
// context.
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*Store, error) {
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}

	// Verify the connection is alive.
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	slog.Info("mongodb connected", "database", database)
	return &Store{client: client, db: client.Database(database)}, nil
}

// Name identifies the backend in logs and metrics.
func (s *Store) Name() string { return "mongodb" }

// NativeKeyFilter returns an _id filter when id is a hex ObjectID.
func (s *Store) NativeKeyFilter(id string) (document.Filter, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	return document.Filter{document.FieldKey: oid}, true
}

// Insert stores doc under a fresh ObjectID.
func (s *Store) Insert(ctx context.Context, collection string, doc document.Doc) error {
	m := toBSON(doc)
	m[document.FieldKey] = primitive.NewObjectID()

	if _, err := s.db.Collection(collection).InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert %s: %w", collection, err)
	}
	return nil
}

// Find returns the matching documents with ObjectIDs and dates converted
// back to their JSON shape.
func (s *Store) Find(ctx context.Context, collection string, filter document.Filter, opts document.FindOptions) ([]document.Doc, error) {
	fo := options.Find()
	if opts.SortField != "" {
		dir := 1
		if opts.Descending {
			dir = -1
		}
		fo.SetSort(bson.D{{Key: opts.SortField, Value: dir}, {Key: document.FieldKey, Value: dir}})
	}
	if opts.Skip > 0 {
		fo.SetSkip(int64(opts.Skip))
	}
	if opts.Limit > 0 {
		fo.SetLimit(int64(opts.Limit))
	}

	cur, err := s.db.Collection(collection).Find(ctx, filterBSON(filter), fo)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	var rows []bson.M
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}

	docs := make([]document.Doc, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, fromBSON(r))
	}
	return docs, nil
}

// UpdateOne sets the patch fields on the first matching document.
func (s *Store) UpdateOne(ctx context.Context, collection string, filter document.Filter, patch document.Doc) (bool, error) {
	set := toBSON(patch)
	delete(set, document.FieldID)
	delete(set, document.FieldKey)
	if len(set) == 0 {
		n, err := s.db.Collection(collection).CountDocuments(ctx, filterBSON(filter), options.Count().SetLimit(1))
		if err != nil {
			return false, fmt.Errorf("update %s: %w", collection, err)
		}
		return n > 0, nil
	}

	res, err := s.db.Collection(collection).UpdateOne(ctx, filterBSON(filter), bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("update %s: %w", collection, err)
	}
	return res.MatchedCount > 0, nil
}

// DeleteOne removes the first matching document.
func (s *Store) DeleteOne(ctx context.Context, collection string, filter document.Filter) (bool, error) {
	res, err := s.db.Collection(collection).DeleteOne(ctx, filterBSON(filter))
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", collection, err)
	}
	return res.DeletedCount > 0, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("mongodb disconnect: %w", err)
	}
	return nil
}

func filterBSON(f document.Filter) bson.M {
	if f == nil {
		return bson.M{}
	}
	return toBSON(document.Doc(f))
}
