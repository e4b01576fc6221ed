package store

import (
	"context"
	"fmt"

	"github.com/avvvet/sportshub-services/internal/eventsvc/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DonationStore struct {
	coll *mongo.Collection
}

func NewDonationStore(db *mongo.Database) *DonationStore {
	return &DonationStore{coll: db.Collection(DonationsCollection)}
}

func (s *DonationStore) CreateDonation(ctx context.Context, d *models.Donation) error {
	if _, err := s.coll.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("could not create donation: %w", mapWriteErr(err))
	}
	return nil
}

func (s *DonationStore) ListByEvent(ctx context.Context, eventID string, limit int) ([]*models.Donation, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := s.coll.Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, err
	}
	donations := []*models.Donation{}
	if err := cur.All(ctx, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}

func (s *DonationStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}
