package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"stayflow/internal/domain/models"
	"stayflow/internal/storage"
	"stayflow/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSalesChannelRepository struct {
	mock.Mock
}

func (m *MockSalesChannelRepository) SaveChannel(ctx context.Context, c models.SalesChannel) (uuid.UUID, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockSalesChannelRepository) UpdateChannel(ctx context.Context, c models.SalesChannel) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockSalesChannelRepository) GetChannelById(ctx context.Context, id uuid.UUID) (models.SalesChannel, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.SalesChannel), args.Error(1)
}

func (m *MockSalesChannelRepository) ListChannels(ctx context.Context, tenantID uuid.UUID) ([]models.SalesChannel, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]models.SalesChannel), args.Error(1)
}

func (m *MockSalesChannelRepository) DeleteChannel(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateChannel_Success(t *testing.T) {
	repo := new(MockSalesChannelRepository)
	svc := NewSalesChannelService(testLogger(), repo)

	tenantID := uuid.New()
	channelID := uuid.New()

	repo.On("SaveChannel", mock.Anything, mock.MatchedBy(func(c models.SalesChannel) bool {
		return c.TenantID == tenantID && c.Code == "booking"
	})).Return(channelID, nil)
	repo.On("GetChannelById", mock.Anything, channelID).Return(models.SalesChannel{
		ID:                channelID,
		TenantID:          tenantID,
		Name:              "Booking.com",
		Code:              "booking",
		CommissionPercent: 15,
		Active:            true,
	}, nil)

	got, err := svc.CreateChannel(context.Background(), dto.CreateChannelRequest{
		TenantID:          tenantID,
		Name:              "Booking.com",
		Code:              "booking",
		CommissionPercent: 15,
		Active:            true,
	})
	require.NoError(t, err)
	assert.Equal(t, channelID, got.ID)
	assert.Equal(t, "booking", got.Code)

	repo.AssertExpectations(t)
}

func TestCreateChannel_CodeTaken(t *testing.T) {
	repo := new(MockSalesChannelRepository)
	svc := NewSalesChannelService(testLogger(), repo)

	repo.On("SaveChannel", mock.Anything, mock.Anything).
		Return(uuid.Nil, storage.ErrChannelCodeTaken)

	_, err := svc.CreateChannel(context.Background(), dto.CreateChannelRequest{
		TenantID: uuid.New(),
		Name:     "Direct Web",
		Code:     "web",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrChannelCodeTaken)
	repo.AssertNotCalled(t, "GetChannelById", mock.Anything, mock.Anything)
}

func TestUpdateChannel_Success(t *testing.T) {
	repo := new(MockSalesChannelRepository)
	svc := NewSalesChannelService(testLogger(), repo)

	id := uuid.New()
	current := models.SalesChannel{
		ID:                id,
		Name:              "Expedia",
		Code:              "expedia",
		CommissionPercent: 18,
		Active:            true,
	}

	repo.On("GetChannelById", mock.Anything, id).Return(current, nil)
	repo.On("UpdateChannel", mock.Anything, mock.MatchedBy(func(c models.SalesChannel) bool {
		// code is immutable, only name/commission/active change
		return c.Code == "expedia" && c.CommissionPercent == 20 && !c.Active
	})).Return(nil)

	got, err := svc.UpdateChannel(context.Background(), id, dto.UpdateChannelRequest{
		Name:              "Expedia Group",
		CommissionPercent: 20,
		Active:            false,
	})
	require.NoError(t, err)
	assert.Equal(t, "Expedia Group", got.Name)
	assert.Equal(t, "expedia", got.Code)

	repo.AssertExpectations(t)
}

func TestUpdateChannel_NotFound(t *testing.T) {
	repo := new(MockSalesChannelRepository)
	svc := NewSalesChannelService(testLogger(), repo)

	id := uuid.New()
	repo.On("GetChannelById", mock.Anything, id).
		Return(models.SalesChannel{}, storage.ErrChannelNotFound)

	_, err := svc.UpdateChannel(context.Background(), id, dto.UpdateChannelRequest{Name: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrChannelNotFound)
	repo.AssertNotCalled(t, "UpdateChannel", mock.Anything, mock.Anything)
}

func TestDeleteChannel_NotFound(t *testing.T) {
	repo := new(MockSalesChannelRepository)
	svc := NewSalesChannelService(testLogger(), repo)

	id := uuid.New()
	repo.On("DeleteChannel", mock.Anything, id).Return(storage.ErrChannelNotFound)

	err := svc.DeleteChannel(context.Background(), id)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrChannelNotFound)
}
