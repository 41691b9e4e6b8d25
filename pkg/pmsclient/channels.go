package pmsclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

type ChannelsService struct {
	c *Client
}

func (s *ChannelsService) Create(ctx context.Context, req CreateChannelRequest) (SalesChannel, error) {
	var channel SalesChannel
	err := s.c.do(ctx, http.MethodPost, "/api/v1/channels", req, &channel)
	return channel, err
}

func (s *ChannelsService) Get(ctx context.Context, id uuid.UUID) (SalesChannel, error) {
	var channel SalesChannel
	err := s.c.do(ctx, http.MethodGet, "/api/v1/channels/"+id.String(), nil, &channel)
	return channel, err
}

func (s *ChannelsService) Update(ctx context.Context, id uuid.UUID, req UpdateChannelRequest) (SalesChannel, error) {
	var channel SalesChannel
	err := s.c.do(ctx, http.MethodPut, "/api/v1/channels/"+id.String(), req, &channel)
	return channel, err
}

func (s *ChannelsService) List(ctx context.Context, tenantID uuid.UUID) ([]SalesChannel, error) {
	var resp envelope[[]SalesChannel]
	err := s.c.do(ctx, http.MethodGet, "/api/v1/channels?tenant_id="+url.QueryEscape(tenantID.String()), nil, &resp)
	return resp.Data, err
}

func (s *ChannelsService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.c.do(ctx, http.MethodDelete, "/api/v1/channels/"+id.String(), nil, nil)
}
