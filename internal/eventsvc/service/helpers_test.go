package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/avvvet/sportshub-services/internal/comm"
	"github.com/avvvet/sportshub-services/internal/eventsvc/auth"
	"github.com/avvvet/sportshub-services/internal/eventsvc/models"
	"github.com/avvvet/sportshub-services/internal/eventsvc/storetest"
)

type recorder struct {
	mu      sync.Mutex
	notices []comm.Notice
}

func (r *recorder) Notify(_ context.Context, n comm.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recorder) types() []comm.NoticeType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]comm.NoticeType, 0, len(r.notices))
	for _, n := range r.notices {
		out = append(out, n.Type)
	}
	return out
}

type fixture struct {
	stores        *storetest.Stores
	notices       *recorder
	auth          *AuthService
	events        *EventService
	registrations *RegistrationService
	leaderboard   *LeaderboardService
	donations     *DonationService
	stats         *StatsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := storetest.New()
	rec := &recorder{}
	return &fixture{
		stores:        st,
		notices:       rec,
		auth:          NewAuthService(st.Users, auth.NewTokens("test-secret", auth.TokenTTL), false),
		events:        NewEventService(st.Events, rec),
		registrations: NewRegistrationService(st.Events, st.Registrations, st.Users, rec),
		leaderboard:   NewLeaderboardService(st.Users),
		donations:     NewDonationService(st.Donations, st.Events, rec),
		stats:         NewStatsService(st.Users, st.Events, st.Registrations, st.Donations),
	}
}

var userSeq, eventSeq int

func (f *fixture) user(t *testing.T, role models.Role) *models.User {
	t.Helper()
	userSeq++
	u := &models.User{
		ID:        fmt.Sprintf("user-%03d", userSeq),
		Email:     fmt.Sprintf("user%03d@example.com", userSeq),
		FullName:  fmt.Sprintf("User %d", userSeq),
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, f.stores.Users.CreateUser(context.Background(), u))
	return u
}

// event stores an approved event directly, bypassing the role checks.
func (f *fixture) event(t *testing.T, maxParticipants *int, fee string) *models.Event {
	t.Helper()
	eventSeq++
	e := &models.Event{
		ID:              fmt.Sprintf("event-%03d", eventSeq),
		Title:           "Valley Futsal Cup",
		SportType:       models.SportFootball,
		OrganizerID:     "organizer-1",
		Location:        "Lalitpur",
		EventDate:       time.Now().Add(72 * time.Hour).UTC(),
		MaxParticipants: maxParticipants,
		EntryFee:        decimal.RequireFromString(fee),
		Status:          models.EventApproved,
		CreatedAt:       time.Now().UTC(),
	}
	require.NoError(t, f.stores.Events.CreateEvent(context.Background(), e))
	return e
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }
