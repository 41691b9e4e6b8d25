package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"stayflow/internal/domain/models"
	"stayflow/internal/lib/logger/sl"
	"stayflow/internal/repository"
	"stayflow/internal/transport/http/dto"

	"github.com/google/uuid"
)

var (
	ErrInvalidDates      = errors.New("check-out must be after check-in")
	ErrInvalidTransition = errors.New("invalid reservation status transition")
)

type ReservationService struct {
	log        *slog.Logger
	repo       repository.ReservationRepository
	properties repository.PropertyRepository
}

func NewReservationService(log *slog.Logger, repo repository.ReservationRepository, properties repository.PropertyRepository) *ReservationService {
	return &ReservationService{
		log:        log,
		repo:       repo,
		properties: properties,
	}
}

func (s *ReservationService) CreateReservation(ctx context.Context, req dto.CreateReservationRequest) (models.Reservation, error) {
	const op = "reservation_service.CreateReservation"
	log := s.log.With(
		slog.String("op", op),
		slog.String("property_id", req.PropertyID.String()),
	)

	if !req.CheckOut.After(req.CheckIn) {
		return models.Reservation{}, fmt.Errorf("%s: %w", op, ErrInvalidDates)
	}

	room, err := s.properties.GetRoomById(ctx, req.RoomID)
	if err != nil {
		log.Warn("room lookup failed", sl.Err(err))
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}
	if room.PropertyID != req.PropertyID {
		return models.Reservation{}, fmt.Errorf("%s: room does not belong to property", op)
	}

	log.Info("creating reservation",
		slog.Time("check_in", req.CheckIn),
		slog.Time("check_out", req.CheckOut),
	)

	id, err := s.repo.SaveReservation(ctx, models.Reservation{
		PropertyID: req.PropertyID,
		RoomID:     req.RoomID,
		ChannelID:  req.ChannelID,
		Status:     models.ReservationStatusBooked,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		TotalCents: req.TotalCents,
		Currency:   req.Currency,
		Notes:      req.Notes,
	})
	if err != nil {
		log.Error("failed to save reservation", sl.Err(err))
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.repo.GetReservationById(ctx, id)
}

// allowed transitions; cancelled and checked_out are terminal
var statusTransitions = map[string][]string{
	models.ReservationStatusBooked:    {models.ReservationStatusCheckedIn, models.ReservationStatusCancelled},
	models.ReservationStatusCheckedIn: {models.ReservationStatusCheckedOut},
}

func (s *ReservationService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (models.Reservation, error) {
	const op = "reservation_service.UpdateStatus"

	current, err := s.repo.GetReservationById(ctx, id)
	if err != nil {
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}

	allowed := false
	for _, next := range statusTransitions[current.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return models.Reservation{}, fmt.Errorf("%s: %s -> %s: %w", op, current.Status, status, ErrInvalidTransition)
	}

	if err := s.repo.UpdateReservationStatus(ctx, id, status); err != nil {
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("reservation status changed",
		slog.String("op", op),
		slog.String("reservation_id", id.String()),
		slog.String("status", status),
	)

	return s.repo.GetReservationById(ctx, id)
}

func (s *ReservationService) GetReservation(ctx context.Context, id uuid.UUID) (models.Reservation, error) {
	return s.repo.GetReservationById(ctx, id)
}

func (s *ReservationService) ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	return s.repo.ListReservations(ctx, filter)
}

func (s *ReservationService) AddGuest(ctx context.Context, reservationID uuid.UUID, req dto.AddGuestRequest) (models.Guest, error) {
	const op = "reservation_service.AddGuest"

	if _, err := s.repo.GetReservationById(ctx, reservationID); err != nil {
		return models.Guest{}, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.AddGuest(ctx, models.Guest{
		ReservationID: reservationID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		DocumentID:    req.DocumentID,
	})
	if err != nil {
		return models.Guest{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.Guest{
		ID:            id,
		ReservationID: reservationID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		DocumentID:    req.DocumentID,
	}, nil
}

func (s *ReservationService) ListGuests(ctx context.Context, reservationID uuid.UUID) ([]models.Guest, error) {
	return s.repo.ListGuests(ctx, reservationID)
}

func (s *ReservationService) RemoveGuest(ctx context.Context, guestID uuid.UUID) error {
	const op = "reservation_service.RemoveGuest"

	if err := s.repo.DeleteGuest(ctx, guestID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
