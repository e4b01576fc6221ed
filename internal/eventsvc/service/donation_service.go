package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/avvvet/sportshub-services/internal/comm"
	"github.com/avvvet/sportshub-services/internal/eventsvc/models"
	"github.com/avvvet/sportshub-services/internal/eventsvc/store"
)

const eventDonationsLimit = 100

type DonationService struct {
	donations DonationStore
	events    EventStore
	notifier  Notifier
	now       func() time.Time
}

func NewDonationService(donations DonationStore, events EventStore, notifier Notifier) *DonationService {
	return &DonationService{donations: donations, events: events, notifier: notifier, now: time.Now}
}

// CreateDonation records a donation. No payment gateway is consulted, so
// the donation is stored as completed whatever the payment method.
func (s *DonationService) CreateDonation(ctx context.Context, in models.DonationCreate) (*models.Donation, error) {
	if !in.Amount.IsPositive() {
		return nil, newError(ErrValidation, "amount must be greater than zero")
	}
	if !in.PaymentMethod.Valid() {
		return nil, newError(ErrValidation, "payment_method must be one of esewa, khalti, stripe")
	}
	if in.EventID != nil && *in.EventID != "" {
		if _, err := s.events.GetByID(ctx, *in.EventID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, newError(ErrNotFound, "Event not found")
			}
			return nil, err
		}
	} else {
		in.EventID = nil
	}

	donation := &models.Donation{
		ID:            uuid.NewString(),
		EventID:       in.EventID,
		DonorName:     in.DonorName,
		DonorEmail:    in.DonorEmail,
		Amount:        in.Amount,
		Message:       in.Message,
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: models.PaymentCompleted,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.donations.CreateDonation(ctx, donation); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		n := comm.Notice{Type: comm.NoticeDonationRecorded, Payload: donation, At: donation.CreatedAt}
		if donation.EventID != nil {
			n.EventID = *donation.EventID
		}
		s.notifier.Notify(ctx, n)
	}
	return donation, nil
}

func (s *DonationService) ListEventDonations(ctx context.Context, eventID string) ([]*models.Donation, error) {
	return s.donations.ListByEvent(ctx, eventID, eventDonationsLimit)
}
