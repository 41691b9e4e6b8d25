package http

import (
	"errors"
	"log/slog"
	"net/http"

	"stayflow/internal/lib/logger/sl"
	"stayflow/internal/storage"
	"stayflow/internal/transport/http/dto"
	"stayflow/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CreateProperty godoc
// @Summary Create a property
// @Description Registers a hotel or apartment building inside a tenant.
// @Tags properties
// @Accept json
// @Produce json
// @Param request body dto.CreatePropertyRequest true "Property data"
// @Success 201 {object} models.Property
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/properties [post]
func (r *Routers) CreateProperty(c echo.Context) error {
	const op = "http.routers.CreateProperty"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreatePropertyRequest

	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	property, err := r.PropertyService.CreateProperty(c.Request().Context(), req)
	if err != nil {
		log.Error("error create property", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, property)
}

// GetProperty godoc
// @Summary Get a property
// @Tags properties
// @Produce json
// @Param id path string true "Property UUID" format(uuid)
// @Success 200 {object} models.Property
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/properties/{id} [get]
func (r *Routers) GetProperty(c echo.Context) error {
	const op = "http.routers.GetProperty"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid property id format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid property ID format"})
	}

	property, err := r.PropertyService.GetProperty(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("error get property", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, property)
}

// UpdateProperty godoc
// @Summary Update a property
// @Tags properties
// @Accept json
// @Produce json
// @Param id path string true "Property UUID" format(uuid)
// @Param request body dto.UpdatePropertyRequest true "Property data"
// @Success 200 {object} models.Property
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/properties/{id} [put]
func (r *Routers) UpdateProperty(c echo.Context) error {
	const op = "http.routers.UpdateProperty"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid property ID format"})
	}

	var req dto.UpdatePropertyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	property, err := r.PropertyService.UpdateProperty(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, storage.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed update property", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, property)
}

// ListProperties godoc
// @Summary List tenant properties
// @Tags properties
// @Produce json
// @Param tenant_id query string true "Tenant UUID" format(uuid)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/properties [get]
func (r *Routers) ListProperties(c echo.Context) error {
	const op = "http.routers.ListProperties"

	log := r.log.With(
		slog.String("op", op),
	)

	tenantID, err := uuid.Parse(c.QueryParam("tenant_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid tenant ID format"})
	}

	properties, err := r.PropertyService.ListProperties(c.Request().Context(), tenantID)
	if err != nil {
		log.Error("failed list properties", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(properties))
}

// DeleteProperty godoc
// @Summary Delete a property
// @Tags properties
// @Param id path string true "Property UUID" format(uuid)
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/properties/{id} [delete]
func (r *Routers) DeleteProperty(c echo.Context) error {
	const op = "http.routers.DeleteProperty"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid property ID format"})
	}

	if err := r.PropertyService.DeleteProperty(c.Request().Context(), id); err != nil {
		if errors.Is(err, storage.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed delete property", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateRoom godoc
// @Summary Add a room to a property
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path string true "Property UUID" format(uuid)
// @Param request body dto.CreateRoomRequest true "Room data"
// @Success 201 {object} models.Room
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/properties/{id}/rooms [post]
func (r *Routers) CreateRoom(c echo.Context) error {
	const op = "http.routers.CreateRoom"

	log := r.log.With(
		slog.String("op", op),
	)

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid property ID format"})
	}

	var req dto.CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	room, err := r.PropertyService.CreateRoom(c.Request().Context(), propertyID, req)
	if err != nil {
		if errors.Is(err, storage.ErrPropertyNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("error create room", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, room)
}

// UpdateRoom godoc
// @Summary Update a room
// @Tags rooms
// @Accept json
// @Produce json
// @Param room_id path string true "Room UUID" format(uuid)
// @Param request body dto.UpdateRoomRequest true "Room data"
// @Success 200 {object} models.Room
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/rooms/{room_id} [put]
func (r *Routers) UpdateRoom(c echo.Context) error {
	const op = "http.routers.UpdateRoom"

	log := r.log.With(
		slog.String("op", op),
	)

	roomID, err := uuid.Parse(c.Param("room_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid room ID format"})
	}

	var req dto.UpdateRoomRequest
	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	room, err := r.PropertyService.UpdateRoom(c.Request().Context(), roomID, req)
	if err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed update room", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, room)
}

// ListRooms godoc
// @Summary List rooms of a property
// @Tags rooms
// @Produce json
// @Param id path string true "Property UUID" format(uuid)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/properties/{id}/rooms [get]
func (r *Routers) ListRooms(c echo.Context) error {
	const op = "http.routers.ListRooms"

	log := r.log.With(
		slog.String("op", op),
	)

	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid property ID format"})
	}

	rooms, err := r.PropertyService.ListRooms(c.Request().Context(), propertyID)
	if err != nil {
		log.Error("failed list rooms", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(rooms))
}

// DeleteRoom godoc
// @Summary Delete a room
// @Tags rooms
// @Param room_id path string true "Room UUID" format(uuid)
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/rooms/{room_id} [delete]
func (r *Routers) DeleteRoom(c echo.Context) error {
	const op = "http.routers.DeleteRoom"

	log := r.log.With(
		slog.String("op", op),
	)

	roomID, err := uuid.Parse(c.Param("room_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: "invalid room ID format"})
	}

	if err := r.PropertyService.DeleteRoom(c.Request().Context(), roomID); err != nil {
		if errors.Is(err, storage.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed delete room", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.NoContent(http.StatusNoContent)
}
