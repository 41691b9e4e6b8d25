package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stayflow/internal/domain/models"
	"stayflow/internal/lib/logger/sl"
	"stayflow/internal/repository"
	"stayflow/internal/transport/http/dto"

	"github.com/google/uuid"
)

// maxBulkSpanDays caps a single bulk fill, one row per day is written.
const maxBulkSpanDays = 366

var ErrSpanTooWide = errors.New("availability span exceeds one year")

type AvailabilityService struct {
	log        *slog.Logger
	repo       repository.AvailabilityRepository
	properties repository.PropertyRepository
}

func NewAvailabilityService(log *slog.Logger, repo repository.AvailabilityRepository, properties repository.PropertyRepository) *AvailabilityService {
	return &AvailabilityService{
		log:        log,
		repo:       repo,
		properties: properties,
	}
}

func (s *AvailabilityService) UpsertCells(ctx context.Context, req dto.UpsertAvailabilityRequest) error {
	const op = "availability_service.UpsertCells"

	if _, err := s.properties.GetRoomById(ctx, req.RoomID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows := make([]models.RoomAvailability, 0, len(req.Cells))
	for _, cell := range req.Cells {
		rows = append(rows, models.RoomAvailability{
			RoomID:     req.RoomID,
			Date:       truncateToDay(cell.Date),
			Allotment:  cell.Allotment,
			PriceCents: cell.PriceCents,
			Closed:     cell.Closed,
		})
	}

	if err := s.repo.UpsertAvailability(ctx, rows); err != nil {
		s.log.Error("failed to upsert availability", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// BulkFill writes one row per day over [from, to), all with the same values.
func (s *AvailabilityService) BulkFill(ctx context.Context, req dto.BulkAvailabilityRequest) (int, error) {
	const op = "availability_service.BulkFill"

	if _, err := s.properties.GetRoomById(ctx, req.RoomID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	from := truncateToDay(req.From)
	to := truncateToDay(req.To)
	if to.Sub(from) > maxBulkSpanDays*24*time.Hour {
		return 0, fmt.Errorf("%s: %w", op, ErrSpanTooWide)
	}

	var rows []models.RoomAvailability
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		rows = append(rows, models.RoomAvailability{
			RoomID:     req.RoomID,
			Date:       d,
			Allotment:  req.Allotment,
			PriceCents: req.PriceCents,
			Closed:     req.Closed,
		})
	}

	if err := s.repo.UpsertAvailability(ctx, rows); err != nil {
		s.log.Error("failed to bulk fill availability", slog.String("op", op), sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("availability filled",
		slog.String("room_id", req.RoomID.String()),
		slog.Int("days", len(rows)),
	)

	return len(rows), nil
}

func (s *AvailabilityService) Calendar(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]models.RoomAvailability, error) {
	const op = "availability_service.Calendar"

	rows, err := s.repo.GetAvailability(ctx, roomID, truncateToDay(from), truncateToDay(to))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rows, nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
