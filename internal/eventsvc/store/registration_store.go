package store

import (
	"context"
	"fmt"

	"github.com/avvvet/sportshub-services/internal/eventsvc/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RegistrationStore struct {
	coll *mongo.Collection
}

func NewRegistrationStore(db *mongo.Database) *RegistrationStore {
	return &RegistrationStore{coll: db.Collection(RegistrationsCollection)}
}

// CreateRegistration fails with ErrDuplicate if the user already holds a
// registration for the event (unique_event_user).
func (s *RegistrationStore) CreateRegistration(ctx context.Context, reg *models.Registration) error {
	if _, err := s.coll.InsertOne(ctx, reg); err != nil {
		return fmt.Errorf("could not create registration: %w", mapWriteErr(err))
	}
	return nil
}

func (s *RegistrationStore) DeleteRegistration(ctx context.Context, id string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *RegistrationStore) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"event_id": eventID, "user_id": userID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RegistrationStore) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Registration, error) {
	return s.list(ctx, bson.M{"user_id": userID}, limit)
}

func (s *RegistrationStore) ListByEvent(ctx context.Context, eventID string, limit int) ([]*models.Registration, error) {
	return s.list(ctx, bson.M{"event_id": eventID}, limit)
}

func (s *RegistrationStore) list(ctx context.Context, filter bson.M, limit int) ([]*models.Registration, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "registered_at", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	regs := []*models.Registration{}
	if err := cur.All(ctx, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

func (s *RegistrationStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}
