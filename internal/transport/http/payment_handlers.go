package http

import (
	"errors"
	"log/slog"
	"net/http"

	"stayflow/internal/lib/logger/sl"
	paymentservice "stayflow/internal/services/payment_service"
	"stayflow/internal/storage"
	"stayflow/internal/transport/http/dto"
	"stayflow/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RecordPayment godoc
// @Summary Record a payment against a reservation
// @Description Stores a payment. With capture=true the payment is captured immediately, otherwise it stays pending.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body dto.CreatePaymentRequest true "Payment data"
// @Success 201 {object} models.Payment
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/payments [post]
func (r *Routers) RecordPayment(c echo.Context) error {
	const op = "http.routers.RecordPayment"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreatePaymentRequest

	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	payment, err := r.PaymentService.RecordPayment(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, paymentservice.ErrCurrencyMismatch):
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("currency_mismatch", err.Error()))
		}
		log.Error("error record payment", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, payment)
}

// CapturePayment godoc
// @Summary Capture a pending payment
// @Tags payments
// @Produce json
// @Param id path string true "Payment UUID" format(uuid)
// @Success 200 {object} models.Payment
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/payments/{id}/capture [patch]
func (r *Routers) CapturePayment(c echo.Context) error {
	const op = "http.routers.CapturePayment"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid payment ID format"})
	}

	payment, err := r.PaymentService.CapturePayment(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed capture payment", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, payment)
}

// RefundPayment godoc
// @Summary Refund a captured payment
// @Tags payments
// @Produce json
// @Param id path string true "Payment UUID" format(uuid)
// @Success 200 {object} models.Payment
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Payment not refundable"
// @Security ApiKeyAuth
// @Router /api/v1/payments/{id}/refund [patch]
func (r *Routers) RefundPayment(c echo.Context) error {
	const op = "http.routers.RefundPayment"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid payment ID format"})
	}

	payment, err := r.PaymentService.RefundPayment(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrPaymentNotFound):
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, paymentservice.ErrAlreadyRefunded),
			errors.Is(err, paymentservice.ErrPaymentNotCaptured):
			return c.JSON(http.StatusConflict, response.ErrorResponseWithDetails("not_refundable", err.Error()))
		}
		log.Error("failed refund payment", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, payment)
}

// ListPayments godoc
// @Summary List payments of a reservation
// @Tags payments
// @Produce json
// @Param reservation_id query string true "Reservation UUID" format(uuid)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/payments [get]
func (r *Routers) ListPayments(c echo.Context) error {
	const op = "http.routers.ListPayments"

	log := r.log.With(
		slog.String("op", op),
	)

	reservationID, err := uuid.Parse(c.QueryParam("reservation_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid reservation ID format"})
	}

	payments, err := r.PaymentService.ListPayments(c.Request().Context(), reservationID)
	if err != nil {
		log.Error("failed list payments", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(payments))
}
