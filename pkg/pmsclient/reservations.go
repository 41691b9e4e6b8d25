package pmsclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// ReservationsService covers reservations and their guests.
type ReservationsService struct {
	c *Client
}

func (s *ReservationsService) Create(ctx context.Context, req CreateReservationRequest) (Reservation, error) {
	var reservation Reservation
	err := s.c.do(ctx, http.MethodPost, "/api/v1/reservations", req, &reservation)
	return reservation, err
}

func (s *ReservationsService) Get(ctx context.Context, id uuid.UUID) (Reservation, error) {
	var reservation Reservation
	err := s.c.do(ctx, http.MethodGet, "/api/v1/reservations/"+id.String(), nil, &reservation)
	return reservation, err
}

func (s *ReservationsService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (Reservation, error) {
	var reservation Reservation
	body := struct {
		Status string `json:"status" validate:"required,oneof=booked checked_in checked_out cancelled"`
	}{Status: status}
	err := s.c.do(ctx, http.MethodPatch, "/api/v1/reservations/"+id.String()+"/status", body, &reservation)
	return reservation, err
}

func (s *ReservationsService) List(ctx context.Context, filter ReservationFilter) ([]Reservation, error) {
	q := url.Values{}
	if filter.PropertyID != uuid.Nil {
		q.Set("property_id", filter.PropertyID.String())
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if !filter.From.IsZero() {
		q.Set("from", filter.From.Format("2006-01-02"))
	}
	if !filter.To.IsZero() {
		q.Set("to", filter.To.Format("2006-01-02"))
	}

	path := "/api/v1/reservations"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp envelope[[]Reservation]
	err := s.c.do(ctx, http.MethodGet, path, nil, &resp)
	return resp.Data, err
}

func (s *ReservationsService) AddGuest(ctx context.Context, reservationID uuid.UUID, req AddGuestRequest) (Guest, error) {
	var guest Guest
	err := s.c.do(ctx, http.MethodPost, "/api/v1/reservations/"+reservationID.String()+"/guests", req, &guest)
	return guest, err
}

func (s *ReservationsService) ListGuests(ctx context.Context, reservationID uuid.UUID) ([]Guest, error) {
	var resp envelope[[]Guest]
	err := s.c.do(ctx, http.MethodGet, "/api/v1/reservations/"+reservationID.String()+"/guests", nil, &resp)
	return resp.Data, err
}

func (s *ReservationsService) RemoveGuest(ctx context.Context, guestID uuid.UUID) error {
	return s.c.do(ctx, http.MethodDelete, "/api/v1/guests/"+guestID.String(), nil, nil)
}
