package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/avvvet/sportshub-services/internal/eventsvc/models"
)

func TestReserveSeatFilter(t *testing.T) {
	raw, err := bson.Marshal(reserveSeatFilter("evt-1"))
	require.NoError(t, err)
	doc := bson.Raw(raw)

	require.Equal(t, "evt-1", doc.Lookup("_id").StringValue())

	unlimited, err := doc.LookupErr("$or", "0", "max_participants")
	require.NoError(t, err)
	require.Equal(t, bsontype.Null, unlimited.Type)

	lt, err := doc.LookupErr("$or", "1", "$expr", "$lt")
	require.NoError(t, err)
	operands, err := lt.Array().Values()
	require.NoError(t, err)
	require.Len(t, operands, 2)
	require.Equal(t, "$current_participants", operands[0].StringValue())
	require.Equal(t, "$max_participants", operands[1].StringValue())
}

func TestEventPatchUpdate_SetsOnlyGivenFields(t *testing.T) {
	title := "Valley Run"
	kathmandu := time.FixedZone("NPT", 5*3600+45*60)
	date := time.Date(2026, 11, 2, 9, 0, 0, 0, kathmandu)

	raw, err := bson.Marshal(eventPatchUpdate(models.EventUpdate{Title: &title, EventDate: &date}))
	require.NoError(t, err)
	doc := bson.Raw(raw)

	require.Equal(t, "Valley Run", doc.Lookup("$set", "title").StringValue())
	require.Equal(t, date.UTC(), doc.Lookup("$set", "event_date").Time().UTC())

	for _, absent := range []string{"description", "sport_type", "location", "status"} {
		_, err := doc.LookupErr("$set", absent)
		require.Error(t, err, "%s must not be overwritten", absent)
	}
}

func TestLeaderboardSortMatchesIndex(t *testing.T) {
	require.Equal(t, bson.D{
		{Key: "points", Value: -1},
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	}, leaderboardSort)
}

func TestEventStoreAgainstMockDeployment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reserve seat takes a seat", func(mt *mtest.T) {
		s := &EventStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		require.NoError(mt, s.ReserveSeat(context.Background(), "evt-1"))

		cmd := mt.GetStartedEvent().Command
		_, err := cmd.LookupErr("updates", "0", "q", "$or", "1", "$expr")
		require.NoError(mt, err, "capacity check must travel with the update")
		require.EqualValues(mt, 1, cmd.Lookup("updates", "0", "u", "$inc", "current_participants").AsInt64())
	})

	mt.Run("reserve seat on a full event", func(mt *mtest.T) {
		s := &EventStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		require.ErrorIs(mt, s.ReserveSeat(context.Background(), "evt-1"), ErrNoCapacity)
	})

	mt.Run("update of a missing event", func(mt *mtest.T) {
		s := &EventStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		loc := "Dharan"
		_, err := s.UpdateEvent(context.Background(), "evt-404", models.EventUpdate{Location: &loc})
		require.ErrorIs(mt, err, ErrNotFound)

		cmd := mt.GetStartedEvent().Command
		require.Equal(mt, "Dharan", cmd.Lookup("update", "$set", "location").StringValue())
		_, err = cmd.LookupErr("update", "$set", "title")
		require.Error(mt, err)
	})
}

func TestUserStoreAgainstMockDeployment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("top by points sends the leaderboard order", func(mt *mtest.T) {
		s := &UserStore{coll: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "u1"}, {Key: "points", Value: 50}},
			bson.D{{Key: "_id", Value: "u2"}, {Key: "points", Value: 30}},
		))

		users, err := s.TopByPoints(context.Background(), 10)
		require.NoError(mt, err)
		require.Len(mt, users, 2)
		require.Equal(mt, "u1", users[0].ID)

		cmd := mt.GetStartedEvent().Command
		keys, err := cmd.Lookup("sort").Document().Elements()
		require.NoError(mt, err)
		var order []string
		for _, k := range keys {
			order = append(order, k.Key())
		}
		require.Equal(mt, []string{"points", "created_at", "_id"}, order)
		require.EqualValues(mt, -1, cmd.Lookup("sort", "points").AsInt64())
		require.EqualValues(mt, 10, cmd.Lookup("limit").AsInt64())
	})

	mt.Run("add participation on a missing user", func(mt *mtest.T) {
		s := &UserStore{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		require.ErrorIs(mt, s.AddParticipation(context.Background(), "ghost", 10), ErrNotFound)
	})
}
