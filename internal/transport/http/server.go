package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"stayflow/internal/domain/models"
	"stayflow/internal/lib/logger/sl"
	"stayflow/internal/middleware"
	"stayflow/internal/transport/http/dto"
	"stayflow/internal/transport/http/dto/request"
	"stayflow/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	_ "stayflow/docs"

	userservice "stayflow/internal/services/user_service"
)

type UserService interface {
	Login(ctx context.Context, email, password string) (*userservice.LoginResult, error)
	RegisterNewUser(ctx context.Context, tenantID uuid.UUID, name, email, phone, pass string, isAdmin bool) (uuid.UUID, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type AuthService interface {
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

type PropertyService interface {
	CreateProperty(ctx context.Context, req dto.CreatePropertyRequest) (models.Property, error)
	UpdateProperty(ctx context.Context, id uuid.UUID, req dto.UpdatePropertyRequest) (models.Property, error)
	GetProperty(ctx context.Context, id uuid.UUID) (models.Property, error)
	ListProperties(ctx context.Context, tenantID uuid.UUID) ([]models.Property, error)
	DeleteProperty(ctx context.Context, id uuid.UUID) error

	CreateRoom(ctx context.Context, propertyID uuid.UUID, req dto.CreateRoomRequest) (models.Room, error)
	UpdateRoom(ctx context.Context, roomID uuid.UUID, req dto.UpdateRoomRequest) (models.Room, error)
	ListRooms(ctx context.Context, propertyID uuid.UUID) ([]models.Room, error)
	DeleteRoom(ctx context.Context, roomID uuid.UUID) error
}

type ReservationService interface {
	CreateReservation(ctx context.Context, req dto.CreateReservationRequest) (models.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (models.Reservation, error)
	GetReservation(ctx context.Context, id uuid.UUID) (models.Reservation, error)
	ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
	AddGuest(ctx context.Context, reservationID uuid.UUID, req dto.AddGuestRequest) (models.Guest, error)
	ListGuests(ctx context.Context, reservationID uuid.UUID) ([]models.Guest, error)
	RemoveGuest(ctx context.Context, guestID uuid.UUID) error
}

type PaymentService interface {
	RecordPayment(ctx context.Context, req dto.CreatePaymentRequest) (models.Payment, error)
	CapturePayment(ctx context.Context, id uuid.UUID) (models.Payment, error)
	RefundPayment(ctx context.Context, id uuid.UUID) (models.Payment, error)
	ListPayments(ctx context.Context, reservationID uuid.UUID) ([]models.Payment, error)
}

type ChannelService interface {
	CreateChannel(ctx context.Context, req dto.CreateChannelRequest) (models.SalesChannel, error)
	UpdateChannel(ctx context.Context, id uuid.UUID, req dto.UpdateChannelRequest) (models.SalesChannel, error)
	GetChannel(ctx context.Context, id uuid.UUID) (models.SalesChannel, error)
	ListChannels(ctx context.Context, tenantID uuid.UUID) ([]models.SalesChannel, error)
	DeleteChannel(ctx context.Context, id uuid.UUID) error
}

type AvailabilityService interface {
	UpsertCells(ctx context.Context, req dto.UpsertAvailabilityRequest) error
	BulkFill(ctx context.Context, req dto.BulkAvailabilityRequest) (int, error)
	Calendar(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]models.RoomAvailability, error)
}

type Routers struct {
	log                 *slog.Logger
	UserService         UserService
	AuthService         AuthService
	PropertyService     PropertyService
	ReservationService  ReservationService
	PaymentService      PaymentService
	ChannelService      ChannelService
	AvailabilityService AvailabilityService
}

func NewRouter(
	log *slog.Logger,
	userService UserService,
	authService AuthService,
	propertyService PropertyService,
	reservationService ReservationService,
	paymentService PaymentService,
	channelService ChannelService,
	availabilityService AvailabilityService,
) *Routers {
	return &Routers{
		log:                 log,
		UserService:         userService,
		AuthService:         authService,
		PropertyService:     propertyService,
		ReservationService:  reservationService,
		PaymentService:      paymentService,
		ChannelService:      channelService,
		AvailabilityService: availabilityService,
	}
}

var ErrInvalidUUID = errors.New("not valid UUID")

// Login godoc
// @Summary Authenticate a back-office user
// @Description Signs in with email and password, returns the user, their tenant and a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Credentials"
// @Success 200 {object} response.Response "Login payload"
// @Failure 400 {object} response.ErrorResponse "Malformed request"
// @Failure 401 {object} response.ErrorResponse "Authentication failed"
// @Router /api/v1/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid format request", slog.String("email", req.Email))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	result, err := r.UserService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		log.Warn("login failed", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	sess, _ := session.Get("session", c)
	sess.Values["user_id"] = result.User.ID.String()
	sess.Save(c.Request(), c.Response())

	return c.JSON(http.StatusOK, response.SuccessResponse(result))
}

// Register godoc
// @Summary Register a new back-office user
// @Description Creates an account inside a tenant. Returns the user ID.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.UserRegisterInput true "Registration data"
// @Success 201 {object} response.Response "Created user ID"
// @Failure 400 {object} response.ErrorResponse "Malformed request"
// @Failure 409 {object} response.ErrorResponse "User already exists"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /api/v1/register [post]
func (r *Routers) Register(c echo.Context) error {
	const op = "http.routers.Register"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.UserRegisterInput

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRegisterRequest)
	}

	if err := c.Validate(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_register_request", err.Error()))
	}

	userID, err := r.UserService.RegisterNewUser(
		c.Request().Context(),
		req.TenantID, req.Name, req.Email, req.Phone, req.Password, req.IsAdmin,
	)
	if err != nil {
		if errors.Is(err, userservice.ErrUserExist) {
			log.Warn("user already exists", slog.String("email", req.Email))
			return c.JSON(http.StatusConflict, response.ErrorResponse{
				Status: "error",
				Error:  "user_already_exists",
			})
		}

		log.Error("registration failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	log.Info("user registered successfully", slog.String("user_id", userID.String()))

	return c.JSON(http.StatusCreated, response.Response{
		Status: "success",
		Data: map[string]uuid.UUID{
			"user_id": userID,
		},
	})
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Description Rotates the refresh token. The old refresh token becomes invalid.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshRequest true "Refresh token"
// @Success 200 {object} models.TokenPair
// @Failure 400 {object} response.ErrorResponse "Malformed request"
// @Failure 401 {object} response.ErrorResponse "Refresh token rejected"
// @Router /api/v1/refresh [post]
func (r *Routers) Refresh(c echo.Context) error {
	const op = "http.routers.Refresh"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.RefreshRequest

	if err := c.Bind(&req); err != nil {
		log.Error("validation bind", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	newTokens, err := r.AuthService.RefreshTokens(c.Request().Context(), req.RefreshToken)
	if err != nil {
		log.Warn("refresh rejected", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrRefreshFailed)
	}

	return c.JSON(http.StatusOK, newTokens)
}

// Logout godoc
// @Summary End the current session
// @Description Revokes every refresh token of the authenticated user.
// @Tags auth
// @Produce json
// @Success 204 "Session ended"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Security ApiKeyAuth
// @Router /api/v1/logout [post]
func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	log := r.log.With(
		slog.String("op", op),
	)

	userID, err := authenticatedUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	if err := r.UserService.Logout(c.Request().Context(), userID); err != nil {
		log.Error("logout failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	sess, _ := session.Get("session", c)
	sess.Options.MaxAge = -1
	sess.Save(c.Request(), c.Response())

	return c.NoContent(http.StatusNoContent)
}

// Me godoc
// @Summary Current user profile
// @Description Returns the authenticated user together with the admin flag.
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Security ApiKeyAuth
// @Router /api/v1/me [get]
func (r *Routers) Me(c echo.Context) error {
	const op = "http.routers.Me"

	log := r.log.With(
		slog.String("op", op),
	)

	userID, err := authenticatedUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	user, err := r.UserService.GetUserById(c.Request().Context(), userID)
	if err != nil {
		log.Error("error get user", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	isAdmin, err := r.UserService.IsAdmin(c.Request().Context(), userID)
	if err != nil {
		log.Error("failed to check admin status", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]any{
		"user":     user,
		"is_admin": isAdmin,
	}))
}

// authenticatedUserID pulls the user ID placed into context by the JWT middleware.
func authenticatedUserID(c echo.Context) (uuid.UUID, error) {
	raw, ok := c.Get(middleware.UserIDContextKey).(string)
	if !ok {
		return uuid.Nil, ErrInvalidUUID
	}
	return uuid.Parse(raw)
}
