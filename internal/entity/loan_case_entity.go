package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	CaseStatusDraft     = "draft"
	CaseStatusPublished = "published"
	CaseStatusClosed    = "closed"
)

// LoanCase is a lending case listing curated by admins. Only published cases
// are visible to borrowers.
type LoanCase struct {
	Id           uuid.UUID
	Title        string
	Summary      string
	Description  string
	LoanAmount   float64
	InterestRate float64
	TermMonths   int
	PropertyType string
	Region       string
	Status       string
	BrokerId     *uuid.UUID
	PublishedAt  *time.Time
	Images       []*CaseImage
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}
