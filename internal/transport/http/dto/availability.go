package dto

import (
	"time"

	"github.com/google/uuid"
)

type AvailabilityCell struct {
	Date       time.Time `json:"date" validate:"required"`
	Allotment  int       `json:"allotment" validate:"gte=0"`
	PriceCents int64     `json:"price_cents" validate:"gte=0"`
	Closed     bool      `json:"closed"`
}

type UpsertAvailabilityRequest struct {
	RoomID uuid.UUID          `json:"room_id" validate:"required"`
	Cells  []AvailabilityCell `json:"cells" validate:"required,min=1,dive"`
}

// BulkAvailabilityRequest fills a whole date span with the same values.
type BulkAvailabilityRequest struct {
	RoomID     uuid.UUID `json:"room_id" validate:"required"`
	From       time.Time `json:"from" validate:"required"`
	To         time.Time `json:"to" validate:"required,gtfield=From"`
	Allotment  int       `json:"allotment" validate:"gte=0"`
	PriceCents int64     `json:"price_cents" validate:"gte=0"`
	Closed     bool      `json:"closed"`
}
