// Package mongodb stores events and participations as MongoDB documents.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect dials uri and verifies the primary is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the indexes the repositories rely on. The partial
// unique index on dedupeKey is what rejects a second participation by the
// same user while leaving resubmissions without a key unconstrained.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(eventsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create events index: %w", err)
	}
	_, err := db.Collection(participantsCollection).Indexes().CreateMany(ctx, participantIndexes())
	if err != nil {
		return fmt.Errorf("create participants indexes: %w", err)
	}
	return nil
}

func participantIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "eventId", Value: 1}}},
		{
			Keys: bson.D{{Key: "dedupeKey", Value: 1}},
			Options: options.Index().
				SetName("dedupeKey_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"dedupeKey": bson.M{"$exists": true}}),
		},
	}
}
