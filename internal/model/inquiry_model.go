package model

import (
	"time"

	"github.com/google/uuid"
)

type Inquiry struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LoanCaseId   uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	Message      string    `gorm:"type:text;not null"`
	ContactPhone string    `gorm:"type:varchar(45)"`
	Status       string    `gorm:"type:varchar(20);not null;default:'new';index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Inquiry) TableName() string {
	return "inquiries"
}
