package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReservationStatusBooked     = "booked"
	ReservationStatusCheckedIn  = "checked_in"
	ReservationStatusCheckedOut = "checked_out"
	ReservationStatusCancelled  = "cancelled"
)

type Reservation struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	PropertyID uuid.UUID  `db:"property_id" json:"property_id"`
	RoomID     uuid.UUID  `db:"room_id" json:"room_id"`
	ChannelID  *uuid.UUID `db:"channel_id" json:"channel_id,omitempty"`
	Status     string     `db:"status" json:"status"`
	CheckIn    time.Time  `db:"check_in" json:"check_in"`
	CheckOut   time.Time  `db:"check_out" json:"check_out"`
	TotalCents int64      `db:"total_cents" json:"total_cents"`
	Currency   string     `db:"currency" json:"currency"`
	Notes      string     `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

type Guest struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ReservationID uuid.UUID `db:"reservation_id" json:"reservation_id"`
	FirstName     string    `db:"first_name" json:"first_name"`
	LastName      string    `db:"last_name" json:"last_name"`
	Email         string    `db:"email" json:"email,omitempty"`
	Phone         string    `db:"phone" json:"phone,omitempty"`
	DocumentID    string    `db:"document_id" json:"document_id,omitempty"`
}

// ReservationFilter narrows List queries; zero values mean "no filter".
type ReservationFilter struct {
	PropertyID uuid.UUID
	Status     string
	From       time.Time
	To         time.Time
}
