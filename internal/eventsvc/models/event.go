package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Event struct {
	ID                   string          `bson:"_id" json:"id"`
	Title                string          `bson:"title" json:"title"`
	Slug                 string          `bson:"slug" json:"slug"`
	Description          string          `bson:"description" json:"description"`
	SportType            SportType       `bson:"sport_type" json:"sport_type"`
	OrganizerID          string          `bson:"organizer_id" json:"organizer_id"`
	OrganizerName        string          `bson:"organizer_name" json:"organizer_name"`
	Location             string          `bson:"location" json:"location"`
	Latitude             *float64        `bson:"latitude" json:"latitude"`
	Longitude            *float64        `bson:"longitude" json:"longitude"`
	EventDate            time.Time       `bson:"event_date" json:"event_date"`
	RegistrationDeadline time.Time       `bson:"registration_deadline" json:"registration_deadline"`
	MaxParticipants      *int            `bson:"max_participants" json:"max_participants"` // nil means unlimited
	CurrentParticipants  int             `bson:"current_participants" json:"current_participants"`
	EntryFee             decimal.Decimal `bson:"entry_fee" json:"entry_fee"`
	PrizePool            *string         `bson:"prize_pool" json:"prize_pool"`
	ImageURL             *string         `bson:"image_url" json:"image_url"`
	Status               EventStatus     `bson:"status" json:"status"`
	CreatedAt            time.Time       `bson:"created_at" json:"created_at"`
}

// Full reports whether no seat is left.
func (e *Event) Full() bool {
	return e.MaxParticipants != nil && e.CurrentParticipants >= *e.MaxParticipants
}

type EventCreate struct {
	Title                string          `json:"title" validate:"required,max=200"`
	Description          string          `json:"description" validate:"required"`
	SportType            SportType       `json:"sport_type" validate:"required"`
	Location             string          `json:"location" validate:"required"`
	Latitude             *float64        `json:"latitude" validate:"omitempty,latitude"`
	Longitude            *float64        `json:"longitude" validate:"omitempty,longitude"`
	EventDate            time.Time       `json:"event_date" validate:"required"`
	RegistrationDeadline time.Time       `json:"registration_deadline" validate:"required"`
	MaxParticipants      *int            `json:"max_participants" validate:"omitempty,min=1"`
	EntryFee             decimal.Decimal `json:"entry_fee"`
	PrizePool            *string         `json:"prize_pool"`
	ImageURL             *string         `json:"image_url" validate:"omitempty,url"`
}

// EventUpdate carries a partial update; nil fields are left untouched.
type EventUpdate struct {
	Title       *string      `json:"title" bson:"title,omitempty"`
	Description *string      `json:"description" bson:"description,omitempty"`
	SportType   *SportType   `json:"sport_type" bson:"sport_type,omitempty"`
	Location    *string      `json:"location" bson:"location,omitempty"`
	EventDate   *time.Time   `json:"event_date" bson:"event_date,omitempty"`
	Status      *EventStatus `json:"status" bson:"status,omitempty"`
}

func (u EventUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.SportType == nil &&
		u.Location == nil && u.EventDate == nil && u.Status == nil
}

// Apply copies the non-nil fields of u onto e.
func (u EventUpdate) Apply(e *Event) {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.SportType != nil {
		e.SportType = *u.SportType
	}
	if u.Location != nil {
		e.Location = *u.Location
	}
	if u.EventDate != nil {
		e.EventDate = u.EventDate.UTC()
	}
	if u.Status != nil {
		e.Status = *u.Status
	}
}

// EventFilter narrows public event listings.
type EventFilter struct {
	SportType *SportType
	Location  string
	Status    *EventStatus
	Skip      int
	Limit     int
}
