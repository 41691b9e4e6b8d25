package models

import (
	"time"

	"github.com/google/uuid"
)

type Property struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	City      string    `db:"city" json:"city"`
	Country   string    `db:"country" json:"country"`
	Timezone  string    `db:"timezone" json:"timezone"`
	Stars     int       `db:"stars" json:"stars"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Room struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PropertyID     uuid.UUID `db:"property_id" json:"property_id"`
	Number         string    `db:"number" json:"number"`
	Type           string    `db:"type" json:"type"`
	Capacity       int       `db:"capacity" json:"capacity"`
	BasePriceCents int64     `db:"base_price_cents" json:"base_price_cents"`
	Description    string    `db:"description" json:"description,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// RoomAvailability is a single room/date cell of the availability calendar.
type RoomAvailability struct {
	RoomID     uuid.UUID `db:"room_id" json:"room_id"`
	Date       time.Time `db:"date" json:"date"`
	Allotment  int       `db:"allotment" json:"allotment"`
	PriceCents int64     `db:"price_cents" json:"price_cents"`
	Closed     bool      `db:"closed" json:"closed"`
}
