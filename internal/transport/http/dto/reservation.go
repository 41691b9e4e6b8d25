package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	PropertyID uuid.UUID  `json:"property_id" validate:"required"`
	RoomID     uuid.UUID  `json:"room_id" validate:"required"`
	ChannelID  *uuid.UUID `json:"channel_id,omitempty"`
	CheckIn    time.Time  `json:"check_in" validate:"required"`
	CheckOut   time.Time  `json:"check_out" validate:"required"`
	TotalCents int64      `json:"total_cents" validate:"gte=0"`
	Currency   string     `json:"currency" validate:"required,iso4217"`
	Notes      string     `json:"notes"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=booked checked_in checked_out cancelled"`
}

type AddGuestRequest struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	DocumentID string `json:"document_id"`
}
