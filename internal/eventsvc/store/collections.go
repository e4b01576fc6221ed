package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection         = "users"
	EventsCollection        = "events"
	RegistrationsCollection = "registrations"
	DonationsCollection     = "donations"
)

// EnsureIndexes creates the indexes the services rely on. The unique
// (event_id, user_id) index is what makes duplicate registrations fail
// under concurrency, so it must exist before the service accepts traffic.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_user_email")},
			{Keys: leaderboardSort, Options: options.Index().SetName("leaderboard_order")},
		},
		EventsCollection: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "event_date", Value: 1}}},
			{Keys: bson.D{{Key: "organizer_id", Value: 1}}},
		},
		RegistrationsCollection: {
			{Keys: bson.D{{Key: "event_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_event_user")},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		DonationsCollection: {
			{Keys: bson.D{{Key: "event_id", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func mapFindErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
