package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/avvvet/sportshub-services/internal/comm"
	"github.com/avvvet/sportshub-services/internal/eventsvc/models"
	"github.com/avvvet/sportshub-services/internal/eventsvc/store"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
	pendingListLimit = 100
)

type EventService struct {
	events   EventStore
	notifier Notifier
	now      func() time.Time
}

func NewEventService(events EventStore, notifier Notifier) *EventService {
	return &EventService{events: events, notifier: notifier, now: time.Now}
}

// CreateEvent stores a new event owned by caller. Admin events are approved
// immediately; organizer events wait for approval.
func (s *EventService) CreateEvent(ctx context.Context, in models.EventCreate, caller *models.User) (*models.Event, error) {
	if caller == nil {
		return nil, newError(ErrUnauthorized, "Invalid authentication credentials")
	}
	if !caller.Role.CanCreateEvents() {
		return nil, newError(ErrForbidden, "Only organizers can create events")
	}
	if in.EntryFee.IsNegative() {
		return nil, newError(ErrValidation, "entry_fee must not be negative")
	}

	status := models.EventPending
	if caller.Role == models.RoleAdmin {
		status = models.EventApproved
	}

	event := &models.Event{
		ID:                   uuid.NewString(),
		Title:                strings.TrimSpace(in.Title),
		Slug:                 slug.Make(in.Title),
		Description:          in.Description,
		SportType:            in.SportType,
		OrganizerID:          caller.ID,
		OrganizerName:        caller.FullName,
		Location:             in.Location,
		Latitude:             in.Latitude,
		Longitude:            in.Longitude,
		EventDate:            in.EventDate.UTC(),
		RegistrationDeadline: in.RegistrationDeadline.UTC(),
		MaxParticipants:      in.MaxParticipants,
		EntryFee:             in.EntryFee,
		PrizePool:            in.PrizePool,
		ImageURL:             in.ImageURL,
		Status:               status,
		CreatedAt:            s.now().UTC(),
	}
	if err := s.events.CreateEvent(ctx, event); err != nil {
		return nil, err
	}

	s.notify(ctx, comm.NoticeEventCreated, event.ID, event)
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(ErrNotFound, "Event not found")
	}
	return event, err
}

// UpdateEvent applies the non-nil fields of patch. Only the organizer who
// owns the event or an admin may update it.
func (s *EventService) UpdateEvent(ctx context.Context, id string, patch models.EventUpdate, caller *models.User) (*models.Event, error) {
	if caller == nil {
		return nil, newError(ErrUnauthorized, "Invalid authentication credentials")
	}
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(caller, event) {
		return nil, newError(ErrForbidden, "Not authorized to update this event")
	}

	updated, err := s.events.UpdateEvent(ctx, id, patch)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(ErrNotFound, "Event not found")
	}
	if err != nil {
		return nil, err
	}

	s.notify(ctx, comm.NoticeEventUpdated, updated.ID, updated)
	return updated, nil
}

func canManage(caller *models.User, event *models.Event) bool {
	switch caller.Role {
	case models.RoleAdmin:
		return true
	case models.RoleOrganizer, models.RolePlayer:
		return event.OrganizerID == caller.ID
	}
	return false
}

func (s *EventService) ApproveEvent(ctx context.Context, id string, caller *models.User) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	err := s.events.SetStatus(ctx, id, models.EventApproved)
	if errors.Is(err, store.ErrNotFound) {
		return newError(ErrNotFound, "Event not found")
	}
	if err != nil {
		return err
	}

	s.notify(ctx, comm.NoticeEventApproved, id, nil)
	return nil
}

// ListEvents returns public events. Without a status filter only approved
// events are listed, so pending and cancelled events stay hidden.
func (s *EventService) ListEvents(ctx context.Context, f models.EventFilter) ([]*models.Event, error) {
	if f.Status == nil {
		approved := models.EventApproved
		f.Status = &approved
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
	f.Limit = clampLimit(f.Limit)
	return s.events.ListEvents(ctx, f)
}

func (s *EventService) ListPendingEvents(ctx context.Context, caller *models.User) ([]*models.Event, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	pending := models.EventPending
	return s.events.ListEvents(ctx, models.EventFilter{Status: &pending, Limit: pendingListLimit})
}

func (s *EventService) notify(ctx context.Context, t comm.NoticeType, eventID string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, comm.Notice{Type: t, EventID: eventID, Payload: payload, At: s.now().UTC()})
}

func requireAdmin(caller *models.User) error {
	if caller == nil {
		return newError(ErrUnauthorized, "Invalid authentication credentials")
	}
	switch caller.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleOrganizer, models.RolePlayer:
		return newError(ErrForbidden, "Admin access required")
	}
	return newError(ErrForbidden, "Admin access required")
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
