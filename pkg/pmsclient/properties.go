package pmsclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// PropertiesService covers properties and their rooms.
type PropertiesService struct {
	c *Client
}

func (s *PropertiesService) Create(ctx context.Context, req CreatePropertyRequest) (Property, error) {
	var property Property
	err := s.c.do(ctx, http.MethodPost, "/api/v1/properties", req, &property)
	return property, err
}

func (s *PropertiesService) Get(ctx context.Context, id uuid.UUID) (Property, error) {
	var property Property
	err := s.c.do(ctx, http.MethodGet, "/api/v1/properties/"+id.String(), nil, &property)
	return property, err
}

func (s *PropertiesService) Update(ctx context.Context, id uuid.UUID, req UpdatePropertyRequest) (Property, error) {
	var property Property
	err := s.c.do(ctx, http.MethodPut, "/api/v1/properties/"+id.String(), req, &property)
	return property, err
}

func (s *PropertiesService) List(ctx context.Context, tenantID uuid.UUID) ([]Property, error) {
	var resp envelope[[]Property]
	err := s.c.do(ctx, http.MethodGet, "/api/v1/properties?tenant_id="+url.QueryEscape(tenantID.String()), nil, &resp)
	return resp.Data, err
}

func (s *PropertiesService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.c.do(ctx, http.MethodDelete, "/api/v1/properties/"+id.String(), nil, nil)
}

func (s *PropertiesService) CreateRoom(ctx context.Context, propertyID uuid.UUID, req CreateRoomRequest) (Room, error) {
	var room Room
	err := s.c.do(ctx, http.MethodPost, "/api/v1/properties/"+propertyID.String()+"/rooms", req, &room)
	return room, err
}

func (s *PropertiesService) UpdateRoom(ctx context.Context, roomID uuid.UUID, req CreateRoomRequest) (Room, error) {
	var room Room
	err := s.c.do(ctx, http.MethodPut, "/api/v1/rooms/"+roomID.String(), req, &room)
	return room, err
}

func (s *PropertiesService) ListRooms(ctx context.Context, propertyID uuid.UUID) ([]Room, error) {
	var resp envelope[[]Room]
	err := s.c.do(ctx, http.MethodGet, "/api/v1/properties/"+propertyID.String()+"/rooms", nil, &resp)
	return resp.Data, err
}

func (s *PropertiesService) DeleteRoom(ctx context.Context, roomID uuid.UUID) error {
	return s.c.do(ctx, http.MethodDelete, "/api/v1/rooms/"+roomID.String(), nil, nil)
}
