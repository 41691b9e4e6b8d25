package dto

import "github.com/google/uuid"

type UserRegisterInput struct {
	TenantID uuid.UUID `json:"tenant_id" validate:"required"`
	Name     string    `json:"name" validate:"required"`
	Email    string    `json:"email" validate:"required,email"`
	Phone    string    `json:"phone"`
	Password string    `json:"password" validate:"required,min=8"`
	IsAdmin  bool      `json:"is_admin"`
}
