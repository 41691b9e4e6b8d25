package pmsclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type AvailabilityService struct {
	c *Client
}

// Upsert writes individual per-day cells for a room.
func (s *AvailabilityService) Upsert(ctx context.Context, req UpsertAvailabilityRequest) error {
	return s.c.do(ctx, http.MethodPut, "/api/v1/availability", req, nil)
}

// BulkFill writes the same values over every day of [from, to) and returns
// how many days were written.
func (s *AvailabilityService) BulkFill(ctx context.Context, req BulkAvailabilityRequest) (int, error) {
	var resp envelope[struct {
		Days int `json:"days"`
	}]
	err := s.c.do(ctx, http.MethodPost, "/api/v1/availability/bulk", req, &resp)
	return resp.Data.Days, err
}

// Calendar fetches the per-day availability of a room over a date range.
func (s *AvailabilityService) Calendar(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]AvailabilityCell, error) {
	path := fmt.Sprintf(
		"/api/v1/rooms/%s/availability?from=%s&to=%s",
		roomID.String(), from.Format("2006-01-02"), to.Format("2006-01-02"),
	)

	var resp envelope[[]AvailabilityCell]
	err := s.c.do(ctx, http.MethodGet, path, nil, &resp)
	return resp.Data, err
}
