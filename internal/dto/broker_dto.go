package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBrokerRequest struct {
	CompanyName   string   `json:"company_name" validate:"required,max=150"`
	DisplayName   string   `json:"display_name" validate:"required,max=100"`
	Bio           string   `json:"bio" validate:"omitempty,max=2000"`
	LicenseNumber string   `json:"license_number" validate:"required,max=50"`
	Specialties   []string `json:"specialties" validate:"omitempty,dive,max=60"`
	ContactEmail  string   `json:"contact_email" validate:"required,email"`
	ContactPhone  string   `json:"contact_phone" validate:"omitempty,max=20"`
	Featured      bool     `json:"featured"`
	UserId        *string  `json:"user_id" validate:"omitempty,uuid"`
}

type UpdateBrokerRequest struct {
	CompanyName   string   `json:"company_name" validate:"omitempty,max=150"`
	DisplayName   string   `json:"display_name" validate:"omitempty,max=100"`
	Bio           string   `json:"bio" validate:"omitempty,max=2000"`
	LicenseNumber string   `json:"license_number" validate:"omitempty,max=50"`
	Specialties   []string `json:"specialties" validate:"omitempty,dive,max=60"`
	ContactEmail  string   `json:"contact_email" validate:"omitempty,email"`
	ContactPhone  string   `json:"contact_phone" validate:"omitempty,max=20"`
	Featured      *bool    `json:"featured"`
}

type BrokerResponse struct {
	Id            uuid.UUID `json:"id"`
	CompanyName   string    `json:"company_name"`
	DisplayName   string    `json:"display_name"`
	Bio           string    `json:"bio"`
	LicenseNumber string    `json:"license_number"`
	Specialties   []string  `json:"specialties"`
	ContactEmail  string    `json:"contact_email"`
	ContactPhone  string    `json:"contact_phone"`
	AvatarURL     *string   `json:"avatar_url,omitempty"`
	Featured      bool      `json:"featured"`
	CreatedAt     time.Time `json:"created_at"`
}
