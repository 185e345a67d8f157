package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByLoanCaseID struct {
	LoanCaseID uuid.UUID
}

func (s ByLoanCaseID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("loan_case_id = ?", s.LoanCaseID)
}

type ByCaseStatus struct {
	Status string
}

func (s ByCaseStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByBrokerID struct {
	BrokerID uuid.UUID
}

func (s ByBrokerID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("broker_id = ?", s.BrokerID)
}

type ByRegion struct {
	Region string
}

func (s ByRegion) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("region = ?", s.Region)
}

type FeaturedOnly struct{}

func (s FeaturedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("featured = ?", true)
}
