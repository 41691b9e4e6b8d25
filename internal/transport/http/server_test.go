package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stayflow/internal/domain/models"
	reservationservice "stayflow/internal/services/reservation_service"
	userservice "stayflow/internal/services/user_service"
	"stayflow/internal/storage"
	httpapp "stayflow/internal/transport/http"
	"stayflow/internal/transport/http/dto"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("test"))))
	return e
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*userservice.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userservice.LoginResult), args.Error(1)
}

func (m *MockUserService) RegisterNewUser(ctx context.Context, tenantID uuid.UUID, name, email, phone, pass string, isAdmin bool) (uuid.UUID, error) {
	args := m.Called(ctx, tenantID, name, email, phone, pass, isAdmin)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUserService) Logout(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.User), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenPair), args.Error(1)
}

type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) CreateProperty(ctx context.Context, req dto.CreatePropertyRequest) (models.Property, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Property), args.Error(1)
}

func (m *MockPropertyService) UpdateProperty(ctx context.Context, id uuid.UUID, req dto.UpdatePropertyRequest) (models.Property, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.Property), args.Error(1)
}

func (m *MockPropertyService) GetProperty(ctx context.Context, id uuid.UUID) (models.Property, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Property), args.Error(1)
}

func (m *MockPropertyService) ListProperties(ctx context.Context, tenantID uuid.UUID) ([]models.Property, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyService) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyService) CreateRoom(ctx context.Context, propertyID uuid.UUID, req dto.CreateRoomRequest) (models.Room, error) {
	args := m.Called(ctx, propertyID, req)
	return args.Get(0).(models.Room), args.Error(1)
}

func (m *MockPropertyService) UpdateRoom(ctx context.Context, roomID uuid.UUID, req dto.UpdateRoomRequest) (models.Room, error) {
	args := m.Called(ctx, roomID, req)
	return args.Get(0).(models.Room), args.Error(1)
}

func (m *MockPropertyService) ListRooms(ctx context.Context, propertyID uuid.UUID) ([]models.Room, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]models.Room), args.Error(1)
}

func (m *MockPropertyService) DeleteRoom(ctx context.Context, roomID uuid.UUID) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) CreateReservation(ctx context.Context, req dto.CreateReservationRequest) (models.Reservation, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Reservation), args.Error(1)
}

func (m *MockReservationService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (models.Reservation, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(models.Reservation), args.Error(1)
}

func (m *MockReservationService) GetReservation(ctx context.Context, id uuid.UUID) (models.Reservation, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Reservation), args.Error(1)
}

func (m *MockReservationService) ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockReservationService) AddGuest(ctx context.Context, reservationID uuid.UUID, req dto.AddGuestRequest) (models.Guest, error) {
	args := m.Called(ctx, reservationID, req)
	return args.Get(0).(models.Guest), args.Error(1)
}

func (m *MockReservationService) ListGuests(ctx context.Context, reservationID uuid.UUID) ([]models.Guest, error) {
	args := m.Called(ctx, reservationID)
	return args.Get(0).([]models.Guest), args.Error(1)
}

func (m *MockReservationService) RemoveGuest(ctx context.Context, guestID uuid.UUID) error {
	args := m.Called(ctx, guestID)
	return args.Error(0)
}

func newRouter(users *MockUserService, auth *MockAuthService, props *MockPropertyService, reservations *MockReservationService) *httpapp.Routers {
	return httpapp.NewRouter(testLogger(), users, auth, props, reservations, nil, nil, nil)
}

func TestLogin_Success(t *testing.T) {
	users := new(MockUserService)
	router := newRouter(users, new(MockAuthService), new(MockPropertyService), new(MockReservationService))

	result := &userservice.LoginResult{
		User: models.User{ID: uuid.New(), Email: "front@hotel.test"},
		Token: &models.TokenPair{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresIn:    900,
		},
	}
	users.On("Login", mock.Anything, "front@hotel.test", "secret-password").Return(result, nil)

	e := newTestEcho()
	e.POST("/api/v1/login", router.Login)

	body := `{"email":"front@hotel.test","password":"secret-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Token models.TokenPair `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "access", resp.Data.Token.AccessToken)
	users.AssertExpectations(t)
}

func TestLogin_BadCredentials(t *testing.T) {
	users := new(MockUserService)
	router := newRouter(users, new(MockAuthService), new(MockPropertyService), new(MockReservationService))

	users.On("Login", mock.Anything, "front@hotel.test", "wrong-password").
		Return(nil, userservice.ErrInvalidCredentials)

	e := newTestEcho()
	e.POST("/api/v1/login", router.Login)

	body := `{"email":"front@hotel.test","password":"wrong-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_ValidationFailure(t *testing.T) {
	router := newRouter(new(MockUserService), new(MockAuthService), new(MockPropertyService), new(MockReservationService))

	e := newTestEcho()
	e.POST("/api/v1/login", router.Login)

	body := `{"email":"not-an-email","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefresh_Rejected(t *testing.T) {
	auth := new(MockAuthService)
	router := newRouter(new(MockUserService), auth, new(MockPropertyService), new(MockReservationService))

	auth.On("RefreshTokens", mock.Anything, "stale-token").
		Return(nil, storage.ErrUserNotFound)

	e := newTestEcho()
	e.POST("/api/v1/refresh", router.Refresh)

	body := `{"refresh_token":"stale-token"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "refresh_failed", resp.Error)
}

func TestRefresh_RotatesTokens(t *testing.T) {
	auth := new(MockAuthService)
	router := newRouter(new(MockUserService), auth, new(MockPropertyService), new(MockReservationService))

	auth.On("RefreshTokens", mock.Anything, "good-token").
		Return(&models.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh", ExpiresIn: 900}, nil)

	e := newTestEcho()
	e.POST("/api/v1/refresh", router.Refresh)

	body := `{"refresh_token":"good-token"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var pair models.TokenPair
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))
	assert.Equal(t, "new-access", pair.AccessToken)
	assert.Equal(t, "new-refresh", pair.RefreshToken)
}

func TestGetProperty_NotFound(t *testing.T) {
	props := new(MockPropertyService)
	router := newRouter(new(MockUserService), new(MockAuthService), props, new(MockReservationService))

	id := uuid.New()
	props.On("GetProperty", mock.Anything, id).
		Return(models.Property{}, storage.ErrPropertyNotFound)

	e := newTestEcho()
	e.GET("/api/v1/properties/:id", router.GetProperty)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties/"+id.String(), nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateReservation_InvalidTransitionStatus(t *testing.T) {
	reservations := new(MockReservationService)
	router := newRouter(new(MockUserService), new(MockAuthService), new(MockPropertyService), reservations)

	id := uuid.New()
	reservations.On("UpdateStatus", mock.Anything, id, "checked_in").
		Return(models.Reservation{}, reservationservice.ErrInvalidTransition)

	e := newTestEcho()
	e.PATCH("/api/v1/reservations/:id/status", router.UpdateReservationStatus)

	body := `{"status":"checked_in"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/"+id.String()+"/status", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateReservation_BadDates(t *testing.T) {
	reservations := new(MockReservationService)
	router := newRouter(new(MockUserService), new(MockAuthService), new(MockPropertyService), reservations)

	reservations.On("CreateReservation", mock.Anything, mock.Anything).
		Return(models.Reservation{}, reservationservice.ErrInvalidDates)

	e := newTestEcho()
	e.POST("/api/v1/reservations", router.CreateReservation)

	checkIn := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	payload, _ := json.Marshal(dto.CreateReservationRequest{
		PropertyID: uuid.New(),
		RoomID:     uuid.New(),
		CheckIn:    checkIn,
		CheckOut:   checkIn,
		Currency:   "EUR",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(string(payload)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type MockChannelService struct {
	mock.Mock
}

func (m *MockChannelService) CreateChannel(ctx context.Context, req dto.CreateChannelRequest) (models.SalesChannel, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.SalesChannel), args.Error(1)
}

func (m *MockChannelService) UpdateChannel(ctx context.Context, id uuid.UUID, req dto.UpdateChannelRequest) (models.SalesChannel, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.SalesChannel), args.Error(1)
}

func (m *MockChannelService) GetChannel(ctx context.Context, id uuid.UUID) (models.SalesChannel, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.SalesChannel), args.Error(1)
}

func (m *MockChannelService) ListChannels(ctx context.Context, tenantID uuid.UUID) ([]models.SalesChannel, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]models.SalesChannel), args.Error(1)
}

func (m *MockChannelService) DeleteChannel(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestGetChannel_Success(t *testing.T) {
	channels := new(MockChannelService)
	router := httpapp.NewRouter(testLogger(),
		new(MockUserService), new(MockAuthService), new(MockPropertyService),
		new(MockReservationService), nil, channels, nil)

	id := uuid.New()
	channels.On("GetChannel", mock.Anything, id).Return(models.SalesChannel{
		ID:                id,
		Name:              "Booking.com",
		Code:              "booking",
		CommissionPercent: 15,
		Active:            true,
	}, nil)

	e := newTestEcho()
	e.GET("/api/v1/channels/:id", router.GetChannel)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/channels/"+id.String(), nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.SalesChannel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "booking", got.Code)
}

func TestGetChannel_NotFound(t *testing.T) {
	channels := new(MockChannelService)
	router := httpapp.NewRouter(testLogger(),
		new(MockUserService), new(MockAuthService), new(MockPropertyService),
		new(MockReservationService), nil, channels, nil)

	id := uuid.New()
	channels.On("GetChannel", mock.Anything, id).
		Return(models.SalesChannel{}, storage.ErrChannelNotFound)

	e := newTestEcho()
	e.GET("/api/v1/channels/:id", router.GetChannel)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/channels/"+id.String(), nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
