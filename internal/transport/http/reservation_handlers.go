package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"stayflow/internal/domain/models"
	"stayflow/internal/lib/logger/sl"
	reservationservice "stayflow/internal/services/reservation_service"
	"stayflow/internal/storage"
	"stayflow/internal/transport/http/dto"
	"stayflow/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CreateReservation godoc
// @Summary Create a reservation
// @Description Books a room for a date range. The reservation starts in the "booked" state.
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Reservation data"
// @Success 201 {object} models.Reservation
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/reservations [post]
func (r *Routers) CreateReservation(c echo.Context) error {
	const op = "http.routers.CreateReservation"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateReservationRequest

	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	reservation, err := r.ReservationService.CreateReservation(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservationservice.ErrInvalidDates):
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_dates", err.Error()))
		case errors.Is(err, storage.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("error create reservation", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, reservation)
}

// GetReservation godoc
// @Summary Get a reservation
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation UUID" format(uuid)
// @Success 200 {object} models.Reservation
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/reservations/{id} [get]
func (r *Routers) GetReservation(c echo.Context) error {
	const op = "http.routers.GetReservation"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid reservation ID format"})
	}

	reservation, err := r.ReservationService.GetReservation(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("error get reservation", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, reservation)
}

// UpdateReservationStatus godoc
// @Summary Change reservation status
// @Description Moves the reservation through its lifecycle: booked, checked_in, checked_out, cancelled.
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation UUID" format(uuid)
// @Param request body dto.UpdateReservationStatusRequest true "Target status"
// @Success 200 {object} models.Reservation
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Transition not allowed"
// @Security ApiKeyAuth
// @Router /api/v1/reservations/{id}/status [patch]
func (r *Routers) UpdateReservationStatus(c echo.Context) error {
	const op = "http.routers.UpdateReservationStatus"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid reservation ID format"})
	}

	var req dto.UpdateReservationStatusRequest
	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	reservation, err := r.ReservationService.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, reservationservice.ErrInvalidTransition):
			return c.JSON(http.StatusConflict, response.ErrorResponseWithDetails("invalid_transition", err.Error()))
		}
		log.Error("failed update reservation status", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, reservation)
}

// ListReservations godoc
// @Summary List reservations
// @Description Filters by property, status and check-in window. All filters are optional.
// @Tags reservations
// @Produce json
// @Param property_id query string false "Property UUID" format(uuid)
// @Param status query string false "Status filter (booked, checked_in, checked_out, cancelled)"
// @Param from query string false "Check-in window start (RFC 3339 date)"
// @Param to query string false "Check-in window end (RFC 3339 date)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/reservations [get]
func (r *Routers) ListReservations(c echo.Context) error {
	const op = "http.routers.ListReservations"

	log := r.log.With(
		slog.String("op", op),
	)

	var filter models.ReservationFilter

	if raw := c.QueryParam("property_id"); raw != "" {
		propertyID, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid property ID format"})
		}
		filter.PropertyID = propertyID
	}

	filter.Status = c.QueryParam("status")

	if raw := c.QueryParam("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid from date"})
		}
		filter.From = from
	}

	if raw := c.QueryParam("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid to date"})
		}
		filter.To = to
	}

	reservations, err := r.ReservationService.ListReservations(c.Request().Context(), filter)
	if err != nil {
		log.Error("failed list reservations", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(reservations))
}

// AddGuest godoc
// @Summary Add a guest to a reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation UUID" format(uuid)
// @Param request body dto.AddGuestRequest true "Guest data"
// @Success 201 {object} models.Guest
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/reservations/{id}/guests [post]
func (r *Routers) AddGuest(c echo.Context) error {
	const op = "http.routers.AddGuest"

	log := r.log.With(
		slog.String("op", op),
	)

	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid reservation ID format"})
	}

	var req dto.AddGuestRequest
	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	guest, err := r.ReservationService.AddGuest(c.Request().Context(), reservationID, req)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed add guest", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, guest)
}

// ListGuests godoc
// @Summary List guests of a reservation
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation UUID" format(uuid)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/reservations/{id}/guests [get]
func (r *Routers) ListGuests(c echo.Context) error {
	const op = "http.routers.ListGuests"

	log := r.log.With(
		slog.String("op", op),
	)

	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid reservation ID format"})
	}

	guests, err := r.ReservationService.ListGuests(c.Request().Context(), reservationID)
	if err != nil {
		log.Error("failed list guests", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(guests))
}

// RemoveGuest godoc
// @Summary Remove a guest
// @Tags reservations
// @Param guest_id path string true "Guest UUID" format(uuid)
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/guests/{guest_id} [delete]
func (r *Routers) RemoveGuest(c echo.Context) error {
	const op = "http.routers.RemoveGuest"

	log := r.log.With(
		slog.String("op", op),
	)

	guestID, err := uuid.Parse(c.Param("guest_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid guest ID format"})
	}

	if err := r.ReservationService.RemoveGuest(c.Request().Context(), guestID); err != nil {
		if errors.Is(err, storage.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed remove guest", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.NoContent(http.StatusNoContent)
}
