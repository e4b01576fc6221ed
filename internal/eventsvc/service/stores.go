package service

import (
	"context"

	"github.com/avvvet/sportshub-services/internal/comm"
	"github.com/avvvet/sportshub-services/internal/eventsvc/models"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	AddParticipation(ctx context.Context, id string, points int) error
	TopByPoints(ctx context.Context, limit int) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
}

type EventStore interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context, f models.EventFilter) ([]*models.Event, error)
	UpdateEvent(ctx context.Context, id string, patch models.EventUpdate) (*models.Event, error)
	SetStatus(ctx context.Context, id string, status models.EventStatus) error
	ReserveSeat(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type RegistrationStore interface {
	CreateRegistration(ctx context.Context, reg *models.Registration) error
	DeleteRegistration(ctx context.Context, id string) error
	Exists(ctx context.Context, eventID, userID string) (bool, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.Registration, error)
	ListByEvent(ctx context.Context, eventID string, limit int) ([]*models.Registration, error)
	Count(ctx context.Context) (int64, error)
}

type DonationStore interface {
	CreateDonation(ctx context.Context, d *models.Donation) error
	ListByEvent(ctx context.Context, eventID string, limit int) ([]*models.Donation, error)
	Count(ctx context.Context) (int64, error)
}

// Notifier receives domain notices after a mutation commits. Delivery is
// best effort; implementations must not block the request for long.
type Notifier interface {
	Notify(ctx context.Context, n comm.Notice)
}

// Notifiers fans a notice out to every notifier in the list.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, n comm.Notice) {
	for _, nt := range ns {
		if nt != nil {
			nt.Notify(ctx, n)
		}
	}
}
