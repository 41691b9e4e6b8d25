package repository

import (
	"context"
	"time"

	"stayflow/internal/domain/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (uuid.UUID, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	TenantById(ctx context.Context, tenantID uuid.UUID) (models.Tenant, error)
	TouchLastLogin(ctx context.Context, userID uuid.UUID) error
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error
	GetRefreshToken(ctx context.Context, userID, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID, token string) error
	DeleteAllUserTokens(ctx context.Context, userID string) error
}

type PropertyRepository interface {
	SaveProperty(ctx context.Context, p models.Property) (uuid.UUID, error)
	UpdateProperty(ctx context.Context, p models.Property) error
	GetPropertyById(ctx context.Context, id uuid.UUID) (models.Property, error)
	ListProperties(ctx context.Context, tenantID uuid.UUID) ([]models.Property, error)
	DeleteProperty(ctx context.Context, id uuid.UUID) error

	SaveRoom(ctx context.Context, r models.Room) (uuid.UUID, error)
	UpdateRoom(ctx context.Context, r models.Room) error
	GetRoomById(ctx context.Context, id uuid.UUID) (models.Room, error)
	ListRooms(ctx context.Context, propertyID uuid.UUID) ([]models.Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
}

type ReservationRepository interface {
	SaveReservation(ctx context.Context, r models.Reservation) (uuid.UUID, error)
	GetReservationById(ctx context.Context, id uuid.UUID) (models.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id uuid.UUID, status string) error
	ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)

	AddGuest(ctx context.Context, g models.Guest) (uuid.UUID, error)
	ListGuests(ctx context.Context, reservationID uuid.UUID) ([]models.Guest, error)
	DeleteGuest(ctx context.Context, id uuid.UUID) error
}

type PaymentRepository interface {
	SavePayment(ctx context.Context, p models.Payment) (uuid.UUID, error)
	GetPaymentById(ctx context.Context, id uuid.UUID) (models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error
	ListPayments(ctx context.Context, reservationID uuid.UUID) ([]models.Payment, error)
}

type SalesChannelRepository interface {
	SaveChannel(ctx context.Context, c models.SalesChannel) (uuid.UUID, error)
	UpdateChannel(ctx context.Context, c models.SalesChannel) error
	GetChannelById(ctx context.Context, id uuid.UUID) (models.SalesChannel, error)
	ListChannels(ctx context.Context, tenantID uuid.UUID) ([]models.SalesChannel, error)
	DeleteChannel(ctx context.Context, id uuid.UUID) error
}

type AvailabilityRepository interface {
	UpsertAvailability(ctx context.Context, rows []models.RoomAvailability) error
	GetAvailability(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]models.RoomAvailability, error)
}
