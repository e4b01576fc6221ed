package store

import (
	"context"
	"fmt"
	"regexp"

	"github.com/avvvet/sportshub-services/internal/eventsvc/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventStore struct {
	coll *mongo.Collection
}

func NewEventStore(db *mongo.Database) *EventStore {
	return &EventStore{coll: db.Collection(EventsCollection)}
}

func (s *EventStore) CreateEvent(ctx context.Context, event *models.Event) error {
	if _, err := s.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("could not create event: %w", mapWriteErr(err))
	}
	return nil
}

func (s *EventStore) GetByID(ctx context.Context, id string) (*models.Event, error) {
	e := &models.Event{}
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(e); err != nil {
		return nil, mapFindErr(err)
	}
	return e, nil
}

// ListEvents returns events matching f ordered by event date.
func (s *EventStore) ListEvents(ctx context.Context, f models.EventFilter) ([]*models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "event_date", Value: 1}, {Key: "_id", Value: 1}})
	if f.Skip > 0 {
		opts.SetSkip(int64(f.Skip))
	}
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cur, err := s.coll.Find(ctx, eventFilter(f), opts)
	if err != nil {
		return nil, err
	}
	events := []*models.Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func eventFilter(f models.EventFilter) bson.M {
	q := bson.M{}
	if f.SportType != nil {
		q["sport_type"] = *f.SportType
	}
	if f.Location != "" {
		q["location"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Location), Options: "i"}
	}
	if f.Status != nil {
		q["status"] = *f.Status
	}
	return q
}

// UpdateEvent applies the non-nil fields of patch and returns the stored event.
func (s *EventStore) UpdateEvent(ctx context.Context, id string, patch models.EventUpdate) (*models.Event, error) {
	if patch.Empty() {
		return s.GetByID(ctx, id)
	}

	e := &models.Event{}
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		eventPatchUpdate(patch),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(e)
	if err != nil {
		return nil, mapFindErr(err)
	}
	return e, nil
}

func (s *EventStore) SetStatus(ctx context.Context, id string, status models.EventStatus) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ReserveSeat increments current_participants only while the event has
// room. The capacity check and the increment happen in one document update,
// so two concurrent callers cannot both take the last seat.
func (s *EventStore) ReserveSeat(ctx context.Context, id string) error {
	res, err := s.coll.UpdateOne(ctx, reserveSeatFilter(id), bson.M{"$inc": bson.M{"current_participants": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoCapacity
	}
	return nil
}

// reserveSeatFilter matches the event only if it is unlimited or still
// below max_participants.
func reserveSeatFilter(id string) bson.M {
	return bson.M{
		"_id": id,
		"$or": bson.A{
			bson.M{"max_participants": nil},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$current_participants", "$max_participants"}}},
		},
	}
}

// eventPatchUpdate sets only the fields present in patch; nil fields are
// dropped by their omitempty tags.
func eventPatchUpdate(patch models.EventUpdate) bson.M {
	if patch.EventDate != nil {
		utc := patch.EventDate.UTC()
		patch.EventDate = &utc
	}
	return bson.M{"$set": patch}
}

func (s *EventStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}
