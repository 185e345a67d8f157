package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	InquiryStatusNew       = "new"
	InquiryStatusContacted = "contacted"
	InquiryStatusClosed    = "closed"
)

// Inquiry is a borrower's request for contact about a published loan case.
type Inquiry struct {
	Id           uuid.UUID
	LoanCaseId   uuid.UUID
	UserId       uuid.UUID
	Message      string
	ContactPhone string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
