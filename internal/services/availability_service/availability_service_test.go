package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"stayflow/internal/domain/models"
	"stayflow/internal/storage"
	"stayflow/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) UpsertAvailability(ctx context.Context, rows []models.RoomAvailability) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) GetAvailability(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]models.RoomAvailability, error) {
	args := m.Called(ctx, roomID, from, to)
	return args.Get(0).([]models.RoomAvailability), args.Error(1)
}

type MockRoomReader struct {
	mock.Mock
}

func (m *MockRoomReader) SaveProperty(ctx context.Context, p models.Property) (uuid.UUID, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockRoomReader) UpdateProperty(ctx context.Context, p models.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRoomReader) GetPropertyById(ctx context.Context, id uuid.UUID) (models.Property, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Property), args.Error(1)
}

func (m *MockRoomReader) ListProperties(ctx context.Context, tenantID uuid.UUID) ([]models.Property, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockRoomReader) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomReader) SaveRoom(ctx context.Context, r models.Room) (uuid.UUID, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockRoomReader) UpdateRoom(ctx context.Context, r models.Room) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRoomReader) GetRoomById(ctx context.Context, id uuid.UUID) (models.Room, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Room), args.Error(1)
}

func (m *MockRoomReader) ListRooms(ctx context.Context, propertyID uuid.UUID) ([]models.Room, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]models.Room), args.Error(1)
}

func (m *MockRoomReader) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBulkFill_ExpandsSpanIntoDailyRows(t *testing.T) {
	repo := new(MockAvailabilityRepository)
	rooms := new(MockRoomReader)
	svc := NewAvailabilityService(testLogger(), repo, rooms)

	roomID := uuid.New()
	rooms.On("GetRoomById", mock.Anything, roomID).
		Return(models.Room{ID: roomID}, nil)
	repo.On("UpsertAvailability", mock.Anything, mock.MatchedBy(func(rows []models.RoomAvailability) bool {
		if len(rows) != 7 {
			return false
		}
		for i, row := range rows {
			if row.RoomID != roomID || row.Allotment != 2 || row.PriceCents != 9900 {
				return false
			}
			want := time.Date(2025, 7, 1+i, 0, 0, 0, 0, time.UTC)
			if !row.Date.Equal(want) {
				return false
			}
		}
		return true
	})).Return(nil)

	days, err := svc.BulkFill(context.Background(), dto.BulkAvailabilityRequest{
		RoomID:     roomID,
		From:       time.Date(2025, 7, 1, 10, 30, 0, 0, time.UTC),
		To:         time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC),
		Allotment:  2,
		PriceCents: 9900,
	})

	require.NoError(t, err)
	assert.Equal(t, 7, days)
	repo.AssertExpectations(t)
}

func TestBulkFill_SpanTooWide(t *testing.T) {
	repo := new(MockAvailabilityRepository)
	rooms := new(MockRoomReader)
	svc := NewAvailabilityService(testLogger(), repo, rooms)

	roomID := uuid.New()
	rooms.On("GetRoomById", mock.Anything, roomID).
		Return(models.Room{ID: roomID}, nil)

	_, err := svc.BulkFill(context.Background(), dto.BulkAvailabilityRequest{
		RoomID: roomID,
		From:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSpanTooWide)
	repo.AssertNotCalled(t, "UpsertAvailability", mock.Anything, mock.Anything)
}

func TestUpsertCells_UnknownRoom(t *testing.T) {
	repo := new(MockAvailabilityRepository)
	rooms := new(MockRoomReader)
	svc := NewAvailabilityService(testLogger(), repo, rooms)

	roomID := uuid.New()
	rooms.On("GetRoomById", mock.Anything, roomID).
		Return(models.Room{}, storage.ErrRoomNotFound)

	err := svc.UpsertCells(context.Background(), dto.UpsertAvailabilityRequest{
		RoomID: roomID,
		Cells:  []dto.AvailabilityCell{{Date: time.Now(), Allotment: 1}},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrRoomNotFound)
	repo.AssertNotCalled(t, "UpsertAvailability", mock.Anything, mock.Anything)
}

func TestUpsertCells_NormalizesDates(t *testing.T) {
	repo := new(MockAvailabilityRepository)
	rooms := new(MockRoomReader)
	svc := NewAvailabilityService(testLogger(), repo, rooms)

	roomID := uuid.New()
	rooms.On("GetRoomById", mock.Anything, roomID).
		Return(models.Room{ID: roomID}, nil)
	repo.On("UpsertAvailability", mock.Anything, mock.MatchedBy(func(rows []models.RoomAvailability) bool {
		return len(rows) == 1 &&
			rows[0].Date.Equal(time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)) &&
			rows[0].Closed
	})).Return(nil)

	err := svc.UpsertCells(context.Background(), dto.UpsertAvailabilityRequest{
		RoomID: roomID,
		Cells: []dto.AvailabilityCell{{
			Date:   time.Date(2025, 8, 15, 23, 45, 12, 0, time.UTC),
			Closed: true,
		}},
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
