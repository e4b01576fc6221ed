package models

import "fmt"

// Role gates what a user may do.
type Role string

const (
	RolePlayer    Role = "player"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RolePlayer, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// CanCreateEvents reports whether the role may create events.
func (r Role) CanCreateEvents() bool {
	switch r {
	case RoleOrganizer, RoleAdmin:
		return true
	case RolePlayer:
		return false
	}
	return false
}

func (r *Role) UnmarshalText(b []byte) error {
	v := Role(b)
	if !v.Valid() {
		return fmt.Errorf("invalid role %q", string(b))
	}
	*r = v
	return nil
}

type SportType string

const (
	SportFootball   SportType = "Football"
	SportVolleyball SportType = "Volleyball"
	SportBadminton  SportType = "Badminton"
	SportBasketball SportType = "Basketball"
	SportMarathon   SportType = "Marathon"
	SportCricket    SportType = "Cricket"
	SportESports    SportType = "E-Sports"
	SportOther      SportType = "Other"
)

func (s SportType) Valid() bool {
	switch s {
	case SportFootball, SportVolleyball, SportBadminton, SportBasketball,
		SportMarathon, SportCricket, SportESports, SportOther:
		return true
	}
	return false
}

func (s *SportType) UnmarshalText(b []byte) error {
	v := SportType(b)
	if !v.Valid() {
		return fmt.Errorf("invalid sport type %q", string(b))
	}
	*s = v
	return nil
}

// EventStatus is the lifecycle state of an event. New organizer events
// start pending and become visible in public listings once approved.
type EventStatus string

const (
	EventPending   EventStatus = "pending"
	EventApproved  EventStatus = "approved"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventPending, EventApproved, EventCancelled, EventCompleted:
		return true
	}
	return false
}

func (s *EventStatus) UnmarshalText(b []byte) error {
	v := EventStatus(b)
	if !v.Valid() {
		return fmt.Errorf("invalid event status %q", string(b))
	}
	*s = v
	return nil
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

type PaymentMethod string

const (
	PaymentEsewa  PaymentMethod = "esewa"
	PaymentKhalti PaymentMethod = "khalti"
	PaymentStripe PaymentMethod = "stripe"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentEsewa, PaymentKhalti, PaymentStripe:
		return true
	}
	return false
}

func (m *PaymentMethod) UnmarshalText(b []byte) error {
	v := PaymentMethod(b)
	if !v.Valid() {
		return fmt.Errorf("invalid payment method %q", string(b))
	}
	*m = v
	return nil
}
