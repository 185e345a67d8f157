package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Message string `json:"message" validate:"required,min=1,max=4000"`
}

type SendMessageResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Reply     string    `json:"reply"`
	Remaining int       `json:"remaining_today"`
}

type QuotaStatusResponse struct {
	Remaining int `json:"remaining_today"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID       `json:"id"`
	Sender    string          `json:"sender"`
	Content   string          `json:"content"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type ChatSessionResponse struct {
	Id        uuid.UUID             `json:"id"`
	Status    string                `json:"status"`
	Context   json.RawMessage       `json:"context,omitempty"`
	Messages  []ChatMessageResponse `json:"messages,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

type ResetSessionResponse struct {
	Session  ChatSessionResponse `json:"session"`
	Archived int64               `json:"archived"`
}

type UpdateContextRequest struct {
	Context json.RawMessage `json:"context" validate:"required"`
}
