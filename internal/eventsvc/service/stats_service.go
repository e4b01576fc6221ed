package service

import (
	"context"
	"fmt"

	"github.com/avvvet/sportshub-services/internal/eventsvc/models"
)

type StatsService struct {
	users         UserStore
	events        EventStore
	registrations RegistrationStore
	donations     DonationStore
}

func NewStatsService(users UserStore, events EventStore, registrations RegistrationStore, donations DonationStore) *StatsService {
	return &StatsService{users: users, events: events, registrations: registrations, donations: donations}
}

func (s *StatsService) GetStats(ctx context.Context) (*models.Stats, error) {
	var (
		st  models.Stats
		err error
	)
	if st.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if st.TotalEvents, err = s.events.Count(ctx); err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	if st.TotalRegistrations, err = s.registrations.Count(ctx); err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	if st.TotalDonations, err = s.donations.Count(ctx); err != nil {
		return nil, fmt.Errorf("count donations: %w", err)
	}
	return &st, nil
}
