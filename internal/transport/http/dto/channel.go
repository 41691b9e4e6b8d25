package dto

import "github.com/google/uuid"

type CreateChannelRequest struct {
	TenantID          uuid.UUID `json:"tenant_id" validate:"required"`
	Name              string    `json:"name" validate:"required"`
	Code              string    `json:"code" validate:"required,lowercase,alphanum"`
	CommissionPercent float64   `json:"commission_percent" validate:"gte=0,lte=100"`
	Active            bool      `json:"active"`
}

type UpdateChannelRequest struct {
	Name              string  `json:"name" validate:"required"`
	CommissionPercent float64 `json:"commission_percent" validate:"gte=0,lte=100"`
	Active            bool    `json:"active"`
}
