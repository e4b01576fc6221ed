package store

import (
	"context"
	"fmt"

	"github.com/avvvet/sportshub-services/internal/eventsvc/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// leaderboardSort matches the leaderboard_order index.
var leaderboardSort = bson.D{{Key: "points", Value: -1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}

type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection(UsersCollection)}
}

// CreateUser fails with ErrDuplicate when the email is taken (unique_user_email).
func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("could not create user: %w", mapWriteErr(err))
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	u := &models.User{}
	if err := s.coll.FindOne(ctx, filter).Decode(u); err != nil {
		return nil, mapFindErr(err)
	}
	return u, nil
}

// AddParticipation bumps participation_count by one and points by the given reward.
func (s *UserStore) AddParticipation(ctx context.Context, id string, points int) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"participation_count": 1, "points": points}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// TopByPoints returns users ordered by points descending. Equal totals are
// ordered by created_at ascending, then id, so ranks are stable.
func (s *UserStore) TopByPoints(ctx context.Context, limit int) ([]*models.User, error) {
	opts := options.Find().SetSort(leaderboardSort)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	users := []*models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}
