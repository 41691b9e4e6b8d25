package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID `db:"id" json:"id"`
	TenantID         uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name             string    `db:"name" json:"name"`
	Email            string    `db:"email" json:"email"`
	Phone            string    `db:"phone" json:"phone"`
	Password         []byte    `db:"password" json:"-"`
	IsAdmin          bool      `db:"is_admin" json:"is_admin"`
	RegistrationDate time.Time `db:"registration_date,omitempty" json:"registration_date,omitempty"`
	LastLogin        time.Time `db:"last_login,omitempty" json:"last_login,omitempty"`
}

type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Plan      string    `db:"plan" json:"plan"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
