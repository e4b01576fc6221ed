package models

import "time"

type Registration struct {
	ID            string        `bson:"_id" json:"id"`
	EventID       string        `bson:"event_id" json:"event_id"`
	UserID        string        `bson:"user_id" json:"user_id"`
	UserName      string        `bson:"user_name" json:"user_name"`
	RegisteredAt  time.Time     `bson:"registered_at" json:"registered_at"`
	PaymentStatus PaymentStatus `bson:"payment_status" json:"payment_status"`
}

type RegistrationCreate struct {
	EventID string `json:"event_id" validate:"required"`
}
