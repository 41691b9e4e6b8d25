package dto

import "github.com/google/uuid"

type CreatePropertyRequest struct {
	TenantID uuid.UUID `json:"tenant_id" validate:"required"`
	Name     string    `json:"name" validate:"required"`
	Address  string    `json:"address"`
	City     string    `json:"city"`
	Country  string    `json:"country" validate:"omitempty,iso3166_1_alpha2"`
	Timezone string    `json:"timezone"`
	Stars    int       `json:"stars" validate:"gte=0,lte=5"`
}

type UpdatePropertyRequest struct {
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country" validate:"omitempty,iso3166_1_alpha2"`
	Timezone string `json:"timezone"`
	Stars    int    `json:"stars" validate:"gte=0,lte=5"`
}

type CreateRoomRequest struct {
	Number         string `json:"number" validate:"required"`
	Type           string `json:"type" validate:"required"`
	Capacity       int    `json:"capacity" validate:"required,gte=1"`
	BasePriceCents int64  `json:"base_price_cents" validate:"gte=0"`
	Description    string `json:"description"`
}

type UpdateRoomRequest struct {
	Number         string `json:"number" validate:"required"`
	Type           string `json:"type" validate:"required"`
	Capacity       int    `json:"capacity" validate:"required,gte=1"`
	BasePriceCents int64  `json:"base_price_cents" validate:"gte=0"`
	Description    string `json:"description"`
}
