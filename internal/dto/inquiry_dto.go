package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateInquiryRequest struct {
	CaseId       string `json:"case_id" validate:"required,uuid"`
	Message      string `json:"message" validate:"required,min=5,max=2000"`
	ContactPhone string `json:"contact_phone" validate:"omitempty,max=20"`
}

type UpdateInquiryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted closed"`
}

// InquiryQueuedMessage is the payload handed to the consumer that delivers
// the broker notification email.
type InquiryQueuedMessage struct {
	InquiryId uuid.UUID `json:"inquiry_id"`
}

type InquiryResponse struct {
	Id           uuid.UUID `json:"id"`
	CaseId       uuid.UUID `json:"case_id"`
	UserId       uuid.UUID `json:"user_id"`
	Message      string    `json:"message"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
