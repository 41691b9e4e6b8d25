package pmsclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

type PaymentsService struct {
	c *Client
}

func (s *PaymentsService) Record(ctx context.Context, req CreatePaymentRequest) (Payment, error) {
	var payment Payment
	err := s.c.do(ctx, http.MethodPost, "/api/v1/payments", req, &payment)
	return payment, err
}

func (s *PaymentsService) Capture(ctx context.Context, id uuid.UUID) (Payment, error) {
	var payment Payment
	err := s.c.do(ctx, http.MethodPatch, "/api/v1/payments/"+id.String()+"/capture", nil, &payment)
	return payment, err
}

func (s *PaymentsService) Refund(ctx context.Context, id uuid.UUID) (Payment, error) {
	var payment Payment
	err := s.c.do(ctx, http.MethodPatch, "/api/v1/payments/"+id.String()+"/refund", nil, &payment)
	return payment, err
}

func (s *PaymentsService) List(ctx context.Context, reservationID uuid.UUID) ([]Payment, error) {
	var resp envelope[[]Payment]
	err := s.c.do(ctx, http.MethodGet, "/api/v1/payments?reservation_id="+url.QueryEscape(reservationID.String()), nil, &resp)
	return resp.Data, err
}
