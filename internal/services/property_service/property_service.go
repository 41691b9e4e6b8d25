package services

import (
	"context"
	"fmt"
	"log/slog"

	"stayflow/internal/domain/models"
	"stayflow/internal/lib/logger/sl"
	"stayflow/internal/repository"
	"stayflow/internal/transport/http/dto"

	"github.com/google/uuid"
)

type PropertyService struct {
	log  *slog.Logger
	repo repository.PropertyRepository
}

func NewPropertyService(log *slog.Logger, repo repository.PropertyRepository) *PropertyService {
	return &PropertyService{log: log, repo: repo}
}

func (s *PropertyService) CreateProperty(ctx context.Context, req dto.CreatePropertyRequest) (models.Property, error) {
	const op = "property_service.CreateProperty"
	log := s.log.With(
		slog.String("op", op),
		slog.String("tenant_id", req.TenantID.String()),
	)

	log.Info("creating property", slog.String("name", req.Name))

	p := models.Property{
		TenantID: req.TenantID,
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
		Timezone: req.Timezone,
		Stars:    req.Stars,
	}
	if p.Timezone == "" {
		p.Timezone = "UTC"
	}

	id, err := s.repo.SaveProperty(ctx, p)
	if err != nil {
		log.Error("failed to save property", sl.Err(err))
		return models.Property{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.repo.GetPropertyById(ctx, id)
}

func (s *PropertyService) UpdateProperty(ctx context.Context, id uuid.UUID, req dto.UpdatePropertyRequest) (models.Property, error) {
	const op = "property_service.UpdateProperty"

	current, err := s.repo.GetPropertyById(ctx, id)
	if err != nil {
		return models.Property{}, fmt.Errorf("%s: %w", op, err)
	}

	current.Name = req.Name
	current.Address = req.Address
	current.City = req.City
	current.Country = req.Country
	current.Stars = req.Stars
	if req.Timezone != "" {
		current.Timezone = req.Timezone
	}

	if err := s.repo.UpdateProperty(ctx, current); err != nil {
		s.log.Error("failed to update property", slog.String("op", op), sl.Err(err))
		return models.Property{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.repo.GetPropertyById(ctx, id)
}

func (s *PropertyService) GetProperty(ctx context.Context, id uuid.UUID) (models.Property, error) {
	return s.repo.GetPropertyById(ctx, id)
}

func (s *PropertyService) ListProperties(ctx context.Context, tenantID uuid.UUID) ([]models.Property, error) {
	return s.repo.ListProperties(ctx, tenantID)
}

func (s *PropertyService) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	const op = "property_service.DeleteProperty"

	if err := s.repo.DeleteProperty(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("property deleted", slog.String("op", op), slog.String("property_id", id.String()))

	return nil
}

func (s *PropertyService) CreateRoom(ctx context.Context, propertyID uuid.UUID, req dto.CreateRoomRequest) (models.Room, error) {
	const op = "property_service.CreateRoom"

	// room numbers are unique per property, the insert enforces it
	if _, err := s.repo.GetPropertyById(ctx, propertyID); err != nil {
		return models.Room{}, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.SaveRoom(ctx, models.Room{
		PropertyID:     propertyID,
		Number:         req.Number,
		Type:           req.Type,
		Capacity:       req.Capacity,
		BasePriceCents: req.BasePriceCents,
		Description:    req.Description,
	})
	if err != nil {
		s.log.Error("failed to save room", slog.String("op", op), sl.Err(err))
		return models.Room{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.repo.GetRoomById(ctx, id)
}

func (s *PropertyService) UpdateRoom(ctx context.Context, roomID uuid.UUID, req dto.UpdateRoomRequest) (models.Room, error) {
	const op = "property_service.UpdateRoom"

	room, err := s.repo.GetRoomById(ctx, roomID)
	if err != nil {
		return models.Room{}, fmt.Errorf("%s: %w", op, err)
	}

	room.Number = req.Number
	room.Type = req.Type
	room.Capacity = req.Capacity
	room.BasePriceCents = req.BasePriceCents
	room.Description = req.Description

	if err := s.repo.UpdateRoom(ctx, room); err != nil {
		return models.Room{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.repo.GetRoomById(ctx, roomID)
}

func (s *PropertyService) ListRooms(ctx context.Context, propertyID uuid.UUID) ([]models.Room, error) {
	return s.repo.ListRooms(ctx, propertyID)
}

func (s *PropertyService) DeleteRoom(ctx context.Context, roomID uuid.UUID) error {
	const op = "property_service.DeleteRoom"

	if err := s.repo.DeleteRoom(ctx, roomID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
