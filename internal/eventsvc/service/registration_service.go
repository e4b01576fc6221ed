package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/sportshub-services/internal/comm"
	"github.com/avvvet/sportshub-services/internal/eventsvc/models"
	"github.com/avvvet/sportshub-services/internal/eventsvc/store"
)

const (
	// PointsPerRegistration is credited to a user for every event they join.
	PointsPerRegistration = 10

	userRegistrationsLimit  = 100
	eventRegistrationsLimit = 1000
)

type RegistrationService struct {
	events        EventStore
	registrations RegistrationStore
	users         UserStore
	notifier      Notifier
	now           func() time.Time
}

func NewRegistrationService(events EventStore, registrations RegistrationStore, users UserStore, notifier Notifier) *RegistrationService {
	return &RegistrationService{
		events:        events,
		registrations: registrations,
		users:         users,
		notifier:      notifier,
		now:           time.Now,
	}
}

// RegisterForEvent enrolls caller in the event.
//
// It fails with NotFound when the event does not exist, and with Conflict
// when caller is already registered or the event is full, checked in that
// order. The up-front checks only give early answers; the unique
// (event_id, user_id) index and the conditional seat reservation are what
// hold the invariants when requests race.
func (s *RegistrationService) RegisterForEvent(ctx context.Context, eventID string, caller *models.User) (*models.Registration, error) {
	if caller == nil {
		return nil, newError(ErrUnauthorized, "Invalid authentication credentials")
	}

	event, err := s.events.GetByID(ctx, eventID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(ErrNotFound, "Event not found")
	}
	if err != nil {
		return nil, err
	}

	exists, err := s.registrations.Exists(ctx, eventID, caller.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errAlreadyRegistered()
	}
	if event.Full() {
		return nil, errEventFull()
	}

	reg := &models.Registration{
		ID:            uuid.NewString(),
		EventID:       eventID,
		UserID:        caller.ID,
		UserName:      caller.FullName,
		RegisteredAt:  s.now().UTC(),
		PaymentStatus: paymentStatusFor(event),
	}
	if err := s.registrations.CreateRegistration(ctx, reg); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, errAlreadyRegistered()
		}
		return nil, err
	}

	if err := s.events.ReserveSeat(ctx, eventID); err != nil {
		if !errors.Is(err, store.ErrNoCapacity) {
			// the seat may have been taken before the error, so the
			// registration stays
			return nil, fmt.Errorf("reserve seat for registration %s: %w", reg.ID, err)
		}
		// the seat went to someone else; drop the registration so the
		// pair can try again later
		if derr := s.registrations.DeleteRegistration(ctx, reg.ID); derr != nil {
			log.Errorf("registration %s left without a seat: %v", reg.ID, derr)
		}
		return nil, errEventFull()
	}

	if err := s.users.AddParticipation(ctx, caller.ID, PointsPerRegistration); err != nil {
		return nil, fmt.Errorf("credit points for registration %s: %w", reg.ID, err)
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, comm.Notice{
			Type:    comm.NoticeRegistrationCreated,
			EventID: eventID,
			UserID:  caller.ID,
			Payload: reg,
			At:      reg.RegisteredAt,
		})
	}
	return reg, nil
}

func paymentStatusFor(event *models.Event) models.PaymentStatus {
	if event.EntryFee.IsZero() {
		return models.PaymentCompleted
	}
	return models.PaymentPending
}

func errAlreadyRegistered() error {
	return newError(ErrConflict, "Already registered for this event")
}

func errEventFull() error {
	return newError(ErrConflict, "Event is full")
}

func (s *RegistrationService) ListUserRegistrations(ctx context.Context, caller *models.User) ([]*models.Registration, error) {
	if caller == nil {
		return nil, newError(ErrUnauthorized, "Invalid authentication credentials")
	}
	return s.registrations.ListByUser(ctx, caller.ID, userRegistrationsLimit)
}

func (s *RegistrationService) ListEventRegistrations(ctx context.Context, eventID string) ([]*models.Registration, error) {
	return s.registrations.ListByEvent(ctx, eventID, eventRegistrationsLimit)
}
