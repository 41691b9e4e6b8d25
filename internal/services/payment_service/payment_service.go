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

var (
	ErrCurrencyMismatch   = errors.New("payment currency differs from reservation currency")
	ErrAlreadyRefunded    = errors.New("payment already refunded")
	ErrPaymentNotCaptured = errors.New("only captured payments can be refunded")
)

type PaymentService struct {
	log          *slog.Logger
	repo         repository.PaymentRepository
	reservations repository.ReservationRepository
}

func NewPaymentService(log *slog.Logger, repo repository.PaymentRepository, reservations repository.ReservationRepository) *PaymentService {
	return &PaymentService{
		log:          log,
		repo:         repo,
		reservations: reservations,
	}
}

func (s *PaymentService) RecordPayment(ctx context.Context, req dto.CreatePaymentRequest) (models.Payment, error) {
	const op = "payment_service.RecordPayment"
	log := s.log.With(
		slog.String("op", op),
		slog.String("reservation_id", req.ReservationID.String()),
	)

	reservation, err := s.reservations.GetReservationById(ctx, req.ReservationID)
	if err != nil {
		log.Warn("reservation lookup failed", sl.Err(err))
		return models.Payment{}, fmt.Errorf("%s: %w", op, err)
	}
	if reservation.Currency != req.Currency {
		return models.Payment{}, fmt.Errorf("%s: %w", op, ErrCurrencyMismatch)
	}

	payment := models.Payment{
		ReservationID: req.ReservationID,
		AmountCents:   req.AmountCents,
		Currency:      req.Currency,
		Method:        req.Method,
		Status:        models.PaymentStatusPending,
	}
	if req.Capture {
		now := time.Now().UTC()
		payment.Status = models.PaymentStatusCaptured
		payment.PaidAt = &now
	}

	id, err := s.repo.SavePayment(ctx, payment)
	if err != nil {
		log.Error("failed to save payment", sl.Err(err))
		return models.Payment{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("payment recorded",
		slog.String("payment_id", id.String()),
		slog.Int64("amount_cents", req.AmountCents),
	)

	return s.repo.GetPaymentById(ctx, id)
}

func (s *PaymentService) CapturePayment(ctx context.Context, id uuid.UUID) (models.Payment, error) {
	const op = "payment_service.CapturePayment"

	if err := s.repo.UpdatePaymentStatus(ctx, id, models.PaymentStatusCaptured); err != nil {
		return models.Payment{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.repo.GetPaymentById(ctx, id)
}

func (s *PaymentService) RefundPayment(ctx context.Context, id uuid.UUID) (models.Payment, error) {
	const op = "payment_service.RefundPayment"

	payment, err := s.repo.GetPaymentById(ctx, id)
	if err != nil {
		return models.Payment{}, fmt.Errorf("%s: %w", op, err)
	}

	switch payment.Status {
	case models.PaymentStatusRefunded:
		return models.Payment{}, fmt.Errorf("%s: %w", op, ErrAlreadyRefunded)
	case models.PaymentStatusPending:
		return models.Payment{}, fmt.Errorf("%s: %w", op, ErrPaymentNotCaptured)
	}

	if err := s.repo.UpdatePaymentStatus(ctx, id, models.PaymentStatusRefunded); err != nil {
		return models.Payment{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("payment refunded",
		slog.String("op", op),
		slog.String("payment_id", id.String()),
	)

	return s.repo.GetPaymentById(ctx, id)
}

func (s *PaymentService) ListPayments(ctx context.Context, reservationID uuid.UUID) ([]models.Payment, error) {
	return s.repo.ListPayments(ctx, reservationID)
}
