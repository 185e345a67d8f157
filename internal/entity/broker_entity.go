package entity

import (
	"time"

	"github.com/google/uuid"
)

// BrokerProfile is an admin-managed directory entry. UserId links the profile
// to a login account when the broker has one; public listings never expose it.
type BrokerProfile struct {
	Id              uuid.UUID
	UserId          *uuid.UUID
	CompanyName     string
	DisplayName     string
	Bio             string
	LicenseNumber   string
	Specialties     []string
	ContactEmail    string
	ContactPhone    string
	AvatarObjectKey *string
	Featured        bool
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}
