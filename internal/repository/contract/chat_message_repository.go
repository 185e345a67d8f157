package contract

import (
	"context"

	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindRecentBySession returns up to take messages ordered newest first.
	// The store is queried descending so the created_at index is used; the
	// caller reverses for reading order.
	FindRecentBySession(ctx context.Context, sessionId uuid.UUID, take int) ([]*entity.ChatMessage, error)
}
