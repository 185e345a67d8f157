package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoanCase struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title        string     `gorm:"type:varchar(255);not null"`
	Summary      string     `gorm:"type:text;not null"`
	Description  string     `gorm:"type:text"`
	LoanAmount   float64    `gorm:"type:numeric(14,2);not null"`
	InterestRate float64    `gorm:"type:numeric(5,2)"`
	TermMonths   int        `gorm:"not null;default:0"`
	PropertyType string     `gorm:"type:varchar(100)"`
	Region       string     `gorm:"type:varchar(100);index"`
	Status       string     `gorm:"type:varchar(20);not null;default:'draft';index"`
	BrokerId     *uuid.UUID `gorm:"type:uuid;index"`
	PublishedAt  *time.Time
	Images       []CaseImage    `gorm:"foreignKey:LoanCaseId;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (LoanCase) TableName() string {
	return "loan_cases"
}

type CaseImage struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LoanCaseId  uuid.UUID `gorm:"type:uuid;not null;index"`
	ObjectKey   string    `gorm:"type:text;not null"`
	ContentType string    `gorm:"type:varchar(100)"`
	SizeBytes   int64     `gorm:"not null;default:0"`
	Position    int       `gorm:"not null;default:0"`
	Caption     string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (CaseImage) TableName() string {
	return "case_images"
}
