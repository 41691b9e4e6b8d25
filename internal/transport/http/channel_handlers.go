package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"stayflow/internal/lib/logger/sl"
	"stayflow/internal/storage"
	"stayflow/internal/transport/http/dto"
	"stayflow/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CreateChannel godoc
// @Summary Create a sales channel
// @Description Registers a distribution channel (OTA, direct web, walk-in) for a tenant.
// @Tags channels
// @Accept json
// @Produce json
// @Param request body dto.CreateChannelRequest true "Channel data"
// @Success 201 {object} models.SalesChannel
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Channel code already taken"
// @Security ApiKeyAuth
// @Router /api/v1/channels [post]
func (r *Routers) CreateChannel(c echo.Context) error {
	const op = "http.routers.CreateChannel"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateChannelRequest

	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	channel, err := r.ChannelService.CreateChannel(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, storage.ErrChannelCodeTaken) {
			return c.JSON(http.StatusConflict, response.ErrorResponseWithDetails("channel_code_taken", err.Error()))
		}
		log.Error("error create channel", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, channel)
}

// GetChannel godoc
// @Summary Get a sales channel
// @Tags channels
// @Produce json
// @Param id path string true "Channel UUID" format(uuid)
// @Success 200 {object} models.SalesChannel
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/channels/{id} [get]
func (r *Routers) GetChannel(c echo.Context) error {
	const op = "http.routers.GetChannel"

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_id", err.Error()))
	}

	channel, err := r.ChannelService.GetChannel(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrChannelNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		r.log.Error("error get channel", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, channel)
}

// UpdateChannel godoc
// @Summary Update a sales channel
// @Tags channels
// @Accept json
// @Produce json
// @Param id path string true "Channel UUID" format(uuid)
// @Param request body dto.UpdateChannelRequest true "Channel data"
// @Success 200 {object} models.SalesChannel
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/channels/{id} [put]
func (r *Routers) UpdateChannel(c echo.Context) error {
	const op = "http.routers.UpdateChannel"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid channel ID format"})
	}

	var req dto.UpdateChannelRequest
	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	channel, err := r.ChannelService.UpdateChannel(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, storage.ErrChannelNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed update channel", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, channel)
}

// ListChannels godoc
// @Summary List tenant sales channels
// @Tags channels
// @Produce json
// @Param tenant_id query string true "Tenant UUID" format(uuid)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/channels [get]
func (r *Routers) ListChannels(c echo.Context) error {
	const op = "http.routers.ListChannels"

	log := r.log.With(
		slog.String("op", op),
	)

	tenantID, err := uuid.Parse(c.QueryParam("tenant_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid tenant ID format"})
	}

	channels, err := r.ChannelService.ListChannels(c.Request().Context(), tenantID)
	if err != nil {
		log.Error("failed list channels", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(channels))
}

// DeleteChannel godoc
// @Summary Delete a sales channel
// @Tags channels
// @Param id path string true "Channel UUID" format(uuid)
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/channels/{id} [delete]
func (r *Routers) DeleteChannel(c echo.Context) error {
	const op = "http.routers.DeleteChannel"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid channel ID format"})
	}

	if err := r.ChannelService.DeleteChannel(c.Request().Context(), id); err != nil {
		if errors.Is(err, storage.ErrChannelNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed delete channel", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.NoContent(http.StatusNoContent)
}

// UpsertAvailability godoc
// @Summary Upsert availability cells
// @Description Writes per-day allotment, price and closure for a room. Existing days are overwritten.
// @Tags availability
// @Accept json
// @Produce json
// @Param request body dto.UpsertAvailabilityRequest true "Cells"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/availability [put]
func (r *Routers) UpsertAvailability(c echo.Context) error {
	const op = "http.routers.UpsertAvailability"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.UpsertAvailabilityRequest

	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	if err := r.AvailabilityService.UpsertCells(c.Request().Context(), req); err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed upsert availability", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.NoContent(http.StatusNoContent)
}

// BulkAvailability godoc
// @Summary Fill availability over a date span
// @Description Writes the same allotment, price and closure for every day in [from, to).
// @Tags availability
// @Accept json
// @Produce json
// @Param request body dto.BulkAvailabilityRequest true "Span and values"
// @Success 200 {object} response.Response "Number of days written"
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/availability/bulk [post]
func (r *Routers) BulkAvailability(c echo.Context) error {
	const op = "http.routers.BulkAvailability"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.BulkAvailabilityRequest

	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	days, err := r.AvailabilityService.BulkFill(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed bulk fill availability", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("bulk_fill_failed", err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]int{"days": days}))
}

// GetAvailability godoc
// @Summary Room availability calendar
// @Tags availability
// @Produce json
// @Param room_id path string true "Room UUID" format(uuid)
// @Param from query string true "Range start (RFC 3339 date)"
// @Param to query string true "Range end (RFC 3339 date)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/rooms/{room_id}/availability [get]
func (r *Routers) GetAvailability(c echo.Context) error {
	const op = "http.routers.GetAvailability"

	log := r.log.With(
		slog.String("op", op),
	)

	roomID, err := uuid.Parse(c.Param("room_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid room ID format"})
	}

	from, err := time.Parse("2006-01-02", c.QueryParam("from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid from date"})
	}

	to, err := time.Parse("2006-01-02", c.QueryParam("to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid to date"})
	}

	cells, err := r.AvailabilityService.Calendar(c.Request().Context(), roomID, from, to)
	if err != nil {
		log.Error("failed get availability", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(cells))
}
