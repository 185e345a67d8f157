package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BrokerProfile struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          *uuid.UUID     `gorm:"type:uuid;index"`
	CompanyName     string         `gorm:"type:varchar(255);not null"`
	DisplayName     string         `gorm:"type:varchar(255);not null"`
	Bio             string         `gorm:"type:text"`
	LicenseNumber   string         `gorm:"type:varchar(100)"`
	Specialties     datatypes.JSON `gorm:"type:jsonb"`
	ContactEmail    string         `gorm:"type:varchar(255);not null"`
	ContactPhone    string         `gorm:"type:varchar(45)"`
	AvatarObjectKey *string        `gorm:"type:text"`
	Featured        bool           `gorm:"default:false;index"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (BrokerProfile) TableName() string {
	return "broker_profiles"
}
