// Package storetest provides in-memory record stores for tests. They honour
// the same uniqueness and capacity guarantees as the MongoDB stores.
package storetest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/avvvet/sportshub-services/internal/eventsvc/models"
	"github.com/avvvet/sportshub-services/internal/eventsvc/store"
)

// Stores bundles one of each in-memory store.
type Stores struct {
	Users         *UserStore
	Events        *EventStore
	Registrations *RegistrationStore
	Donations     *DonationStore
}

func New() *Stores {
	return &Stores{
		Users:         &UserStore{byID: map[string]models.User{}},
		Events:        &EventStore{byID: map[string]models.Event{}},
		Registrations: &RegistrationStore{byID: map[string]models.Registration{}},
		Donations:     &DonationStore{},
	}
}

type UserStore struct {
	mu    sync.Mutex
	byID  map[string]models.User
	order []string
}

func (s *UserStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[user.ID]; ok {
		return store.ErrDuplicate
	}
	for _, u := range s.byID {
		if u.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	s.byID[user.ID] = *user
	s.order = append(s.order, user.ID)
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *UserStore) AddParticipation(_ context.Context, id string, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return store.ErrNotFound
	}
	u.ParticipationCount++
	u.Points += points
	s.byID[id] = u
	return nil
}

func (s *UserStore) TopByPoints(_ context.Context, limit int) ([]*models.User, error) {
	s.mu.Lock()
	users := make([]*models.User, 0, len(s.byID))
	for _, id := range s.order {
		u := s.byID[id]
		users = append(users, &u)
	}
	s.mu.Unlock()

	sort.SliceStable(users, func(i, j int) bool {
		a, b := users[i], users[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (s *UserStore) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.byID)), nil
}

type EventStore struct {
	mu    sync.Mutex
	byID  map[string]models.Event
	order []string
}

func (s *EventStore) CreateEvent(_ context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[event.ID]; ok {
		return store.ErrDuplicate
	}
	s.byID[event.ID] = *event
	s.order = append(s.order, event.ID)
	return nil
}

func (s *EventStore) GetByID(_ context.Context, id string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &e, nil
}

func (s *EventStore) ListEvents(_ context.Context, f models.EventFilter) ([]*models.Event, error) {
	s.mu.Lock()
	events := []*models.Event{}
	for _, id := range s.order {
		e := s.byID[id]
		if f.SportType != nil && e.SportType != *f.SportType {
			continue
		}
		if f.Status != nil && e.Status != *f.Status {
			continue
		}
		if f.Location != "" && !strings.Contains(strings.ToLower(e.Location), strings.ToLower(f.Location)) {
			continue
		}
		events = append(events, &e)
	}
	s.mu.Unlock()

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EventDate.Before(events[j].EventDate)
	})
	if f.Skip > 0 {
		if f.Skip >= len(events) {
			return []*models.Event{}, nil
		}
		events = events[f.Skip:]
	}
	if f.Limit > 0 && len(events) > f.Limit {
		events = events[:f.Limit]
	}
	return events, nil
}

func (s *EventStore) UpdateEvent(_ context.Context, id string, patch models.EventUpdate) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	patch.Apply(&e)
	s.byID[id] = e
	return &e, nil
}

func (s *EventStore) SetStatus(_ context.Context, id string, status models.EventStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[id]
	if !ok {
		return store.ErrNotFound
	}
	e.Status = status
	s.byID[id] = e
	return nil
}

func (s *EventStore) ReserveSeat(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[id]
	if !ok || e.Full() {
		return store.ErrNoCapacity
	}
	e.CurrentParticipants++
	s.byID[id] = e
	return nil
}

func (s *EventStore) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.byID)), nil
}

type RegistrationStore struct {
	mu    sync.Mutex
	byID  map[string]models.Registration
	order []string
}

func (s *RegistrationStore) CreateRegistration(_ context.Context, reg *models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.byID {
		if r.EventID == reg.EventID && r.UserID == reg.UserID {
			return store.ErrDuplicate
		}
	}
	s.byID[reg.ID] = *reg
	s.order = append(s.order, reg.ID)
	return nil
}

func (s *RegistrationStore) DeleteRegistration(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
	for i, rid := range s.order {
		if rid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *RegistrationStore) Exists(_ context.Context, eventID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.byID {
		if r.EventID == eventID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *RegistrationStore) ListByUser(_ context.Context, userID string, limit int) ([]*models.Registration, error) {
	return s.list(func(r models.Registration) bool { return r.UserID == userID }, limit), nil
}

func (s *RegistrationStore) ListByEvent(_ context.Context, eventID string, limit int) ([]*models.Registration, error) {
	return s.list(func(r models.Registration) bool { return r.EventID == eventID }, limit), nil
}

func (s *RegistrationStore) list(match func(models.Registration) bool, limit int) []*models.Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	regs := []*models.Registration{}
	for _, id := range s.order {
		r := s.byID[id]
		if match(r) {
			regs = append(regs, &r)
		}
		if limit > 0 && len(regs) == limit {
			break
		}
	}
	return regs
}

func (s *RegistrationStore) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.byID)), nil
}

type DonationStore struct {
	mu        sync.Mutex
	donations []models.Donation
}

func (s *DonationStore) CreateDonation(_ context.Context, d *models.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.donations = append(s.donations, *d)
	return nil
}

func (s *DonationStore) ListByEvent(_ context.Context, eventID string, limit int) ([]*models.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Donation{}
	for i := len(s.donations) - 1; i >= 0; i-- {
		d := s.donations[i]
		if d.EventID != nil && *d.EventID == eventID {
			out = append(out, &d)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *DonationStore) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.donations)), nil
}
