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

type SalesChannelService struct {
	log  *slog.Logger
	repo repository.SalesChannelRepository
}

func NewSalesChannelService(log *slog.Logger, repo repository.SalesChannelRepository) *SalesChannelService {
	return &SalesChannelService{log: log, repo: repo}
}

func (s *SalesChannelService) CreateChannel(ctx context.Context, req dto.CreateChannelRequest) (models.SalesChannel, error) {
	const op = "sales_channel_service.CreateChannel"

	id, err := s.repo.SaveChannel(ctx, models.SalesChannel{
		TenantID:          req.TenantID,
		Name:              req.Name,
		Code:              req.Code,
		CommissionPercent: req.CommissionPercent,
		Active:            req.Active,
	})
	if err != nil {
		s.log.Error("failed to save channel", slog.String("op", op), sl.Err(err))
		return models.SalesChannel{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("sales channel created",
		slog.String("channel_id", id.String()),
		slog.String("code", req.Code),
	)

	return s.repo.GetChannelById(ctx, id)
}

func (s *SalesChannelService) UpdateChannel(ctx context.Context, id uuid.UUID, req dto.UpdateChannelRequest) (models.SalesChannel, error) {
	const op = "sales_channel_service.UpdateChannel"

	channel, err := s.repo.GetChannelById(ctx, id)
	if err != nil {
		return models.SalesChannel{}, fmt.Errorf("%s: %w", op, err)
	}

	channel.Name = req.Name
	channel.CommissionPercent = req.CommissionPercent
	channel.Active = req.Active

	if err := s.repo.UpdateChannel(ctx, channel); err != nil {
		return models.SalesChannel{}, fmt.Errorf("%s: %w", op, err)
	}

	return channel, nil
}

func (s *SalesChannelService) GetChannel(ctx context.Context, id uuid.UUID) (models.SalesChannel, error) {
	return s.repo.GetChannelById(ctx, id)
}

func (s *SalesChannelService) ListChannels(ctx context.Context, tenantID uuid.UUID) ([]models.SalesChannel, error) {
	return s.repo.ListChannels(ctx, tenantID)
}

func (s *SalesChannelService) DeleteChannel(ctx context.Context, id uuid.UUID) error {
	const op = "sales_channel_service.DeleteChannel"

	if err := s.repo.DeleteChannel(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
