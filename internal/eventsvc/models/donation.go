package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Donation struct {
	ID            string          `bson:"_id" json:"id"`
	EventID       *string         `bson:"event_id" json:"event_id"`
	DonorName     string          `bson:"donor_name" json:"donor_name"`
	DonorEmail    *string         `bson:"donor_email" json:"donor_email"`
	Amount        decimal.Decimal `bson:"amount" json:"amount"`
	Message       *string         `bson:"message" json:"message"`
	PaymentMethod PaymentMethod   `bson:"payment_method" json:"payment_method"`
	PaymentStatus PaymentStatus   `bson:"payment_status" json:"payment_status"`
	CreatedAt     time.Time       `bson:"created_at" json:"created_at"`
}

type DonationCreate struct {
	EventID       *string         `json:"event_id"`
	DonorName     string          `json:"donor_name" validate:"required,max=120"`
	DonorEmail    *string         `json:"donor_email" validate:"omitempty,email"`
	Amount        decimal.Decimal `json:"amount"`
	Message       *string         `json:"message"`
	PaymentMethod PaymentMethod   `json:"payment_method" validate:"required"`
}
