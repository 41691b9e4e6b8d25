package pmsclient

import (
	"time"

	"github.com/google/uuid"
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type User struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  uuid.UUID  `json:"tenant_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	IsAdmin   bool       `json:"is_admin"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type Tenant struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type Property struct {
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Name     string    `json:"name"`
	Address  string    `json:"address,omitempty"`
	City     string    `json:"city,omitempty"`
	Country  string    `json:"country,omitempty"`
	Timezone string    `json:"timezone,omitempty"`
	Stars    int       `json:"stars,omitempty"`
}

type Room struct {
	ID             uuid.UUID `json:"id"`
	PropertyID     uuid.UUID `json:"property_id"`
	Number         string    `json:"number"`
	Type           string    `json:"type"`
	Capacity       int       `json:"capacity"`
	BasePriceCents int64     `json:"base_price_cents"`
	Description    string    `json:"description,omitempty"`
}

type Reservation struct {
	ID         uuid.UUID  `json:"id"`
	PropertyID uuid.UUID  `json:"property_id"`
	RoomID     uuid.UUID  `json:"room_id"`
	ChannelID  *uuid.UUID `json:"channel_id,omitempty"`
	Status     string     `json:"status"`
	CheckIn    time.Time  `json:"check_in"`
	CheckOut   time.Time  `json:"check_out"`
	TotalCents int64      `json:"total_cents"`
	Currency   string     `json:"currency"`
	Notes      string     `json:"notes,omitempty"`
}

type Guest struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	DocumentID    string    `json:"document_id,omitempty"`
}

type Payment struct {
	ID            uuid.UUID  `json:"id"`
	ReservationID uuid.UUID  `json:"reservation_id"`
	AmountCents   int64      `json:"amount_cents"`
	Currency      string     `json:"currency"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

type SalesChannel struct {
	ID                uuid.UUID `json:"id"`
	TenantID          uuid.UUID `json:"tenant_id"`
	Name              string    `json:"name"`
	Code              string    `json:"code"`
	CommissionPercent float64   `json:"commission_percent"`
	Active            bool      `json:"active"`
}

type AvailabilityCell struct {
	RoomID     uuid.UUID `json:"room_id,omitempty"`
	Date       time.Time `json:"date"`
	Allotment  int       `json:"allotment"`
	PriceCents int64     `json:"price_cents"`
	Closed     bool      `json:"closed"`
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	User   User       `json:"user"`
	Tenant Tenant     `json:"tenant"`
	Token  *TokenPair `json:"token"`
}

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

type AddGuestRequest struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	DocumentID string `json:"document_id"`
}

type CreatePaymentRequest struct {
	ReservationID uuid.UUID `json:"reservation_id" validate:"required"`
	AmountCents   int64     `json:"amount_cents" validate:"required,gt=0"`
	Currency      string    `json:"currency" validate:"required,iso4217"`
	Method        string    `json:"method" validate:"required,oneof=cash card transfer channel"`
	Capture       bool      `json:"capture"`
}

type CreateChannelRequest struct {
	TenantID          uuid.UUID `json:"tenant_id" validate:"required"`
	Name              string    `json:"name" validate:"required"`
	Code              string    `json:"code" validate:"required,lowercase,alphanum"`
	CommissionPercent float64   `json:"commission_percent" validate:"gte=0,lte=100"`
	Active            bool      `json:"active"`
}

type UpdateChannelRequest struct {
	Name              string  `json:"name" validate:"required"`
	CommissionPercent float64 `json:"commission_percent" validate:"gte=0,lte=100"`
	Active            bool    `json:"active"`
}

type UpsertAvailabilityRequest struct {
	RoomID uuid.UUID          `json:"room_id" validate:"required"`
	Cells  []AvailabilityCell `json:"cells" validate:"required,min=1,dive"`
}

type BulkAvailabilityRequest struct {
	RoomID     uuid.UUID `json:"room_id" validate:"required"`
	From       time.Time `json:"from" validate:"required"`
	To         time.Time `json:"to" validate:"required,gtfield=From"`
	Allotment  int       `json:"allotment" validate:"gte=0"`
	PriceCents int64     `json:"price_cents" validate:"gte=0"`
	Closed     bool      `json:"closed"`
}

type ReservationFilter struct {
	PropertyID uuid.UUID
	Status     string
	From       time.Time
	To         time.Time
}
