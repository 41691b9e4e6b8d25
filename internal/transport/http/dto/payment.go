package dto

import "github.com/google/uuid"

type CreatePaymentRequest struct {
	ReservationID uuid.UUID `json:"reservation_id" validate:"required"`
	AmountCents   int64     `json:"amount_cents" validate:"required,gt=0"`
	Currency      string    `json:"currency" validate:"required,iso4217"`
	Method        string    `json:"method" validate:"required,oneof=cash card transfer channel"`
	Capture       bool      `json:"capture"`
}
