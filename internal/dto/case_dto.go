package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCaseRequest struct {
	Title        string  `json:"title" validate:"required,max=200"`
	Summary      string  `json:"summary" validate:"omitempty,max=500"`
	Description  string  `json:"description" validate:"omitempty,max=10000"`
	LoanAmount   float64 `json:"loan_amount" validate:"required,gt=0"`
	InterestRate float64 `json:"interest_rate" validate:"required,gt=0"`
	TermMonths   int     `json:"term_months" validate:"required,gt=0"`
	PropertyType string  `json:"property_type" validate:"required,max=60"`
	Region       string  `json:"region" validate:"required,max=100"`
	BrokerId     *string `json:"broker_id" validate:"omitempty,uuid"`
}

type UpdateCaseRequest struct {
	Title        string   `json:"title" validate:"omitempty,max=200"`
	Summary      string   `json:"summary" validate:"omitempty,max=500"`
	Description  string   `json:"description" validate:"omitempty,max=10000"`
	LoanAmount   *float64 `json:"loan_amount" validate:"omitempty,gt=0"`
	InterestRate *float64 `json:"interest_rate" validate:"omitempty,gt=0"`
	TermMonths   *int     `json:"term_months" validate:"omitempty,gt=0"`
	PropertyType string   `json:"property_type" validate:"omitempty,max=60"`
	Region       string   `json:"region" validate:"omitempty,max=100"`
	BrokerId     *string  `json:"broker_id" validate:"omitempty,uuid"`
}

type CaseListQuery struct {
	Region       string `query:"region"`
	PropertyType string `query:"property_type"`
	Status       string `query:"status" validate:"omitempty,oneof=draft published closed"`
	Limit        int    `query:"limit"`
	Offset       int    `query:"offset"`
}

type CaseImageResponse struct {
	Id       uuid.UUID `json:"id"`
	URL      string    `json:"url"`
	Position int       `json:"position"`
	Caption  string    `json:"caption,omitempty"`
}

type CaseResponse struct {
	Id           uuid.UUID           `json:"id"`
	Title        string              `json:"title"`
	Summary      string              `json:"summary"`
	Description  string              `json:"description,omitempty"`
	LoanAmount   float64             `json:"loan_amount"`
	InterestRate float64             `json:"interest_rate"`
	TermMonths   int                 `json:"term_months"`
	PropertyType string              `json:"property_type"`
	Region       string              `json:"region"`
	Status       string              `json:"status"`
	BrokerId     *uuid.UUID          `json:"broker_id,omitempty"`
	PublishedAt  *time.Time          `json:"published_at,omitempty"`
	Images       []CaseImageResponse `json:"images,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

type UpdateImageRequest struct {
	Position *int   `json:"position" validate:"omitempty,gte=0"`
	Caption  string `json:"caption" validate:"omitempty,max=300"`
}
