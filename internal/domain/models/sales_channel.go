package models

import (
	"time"

	"github.com/google/uuid"
)

type SalesChannel struct {
	ID                uuid.UUID `db:"id" json:"id"`
	TenantID          uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name              string    `db:"name" json:"name"`
	Code              string    `db:"code" json:"code"`
	CommissionPercent float64   `db:"commission_percent" json:"commission_percent"`
	Active            bool      `db:"active" json:"active"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
