package contract

import (
	"context"
	"encoding/json"

	"lending-concierge-be/internal/entity"
	"lending-concierge-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ChatSessionRepository persists chat sessions. The bespoke finders exist so
// the session lifecycle service can run against an in-memory fake; the
// specification variants serve ad-hoc listing queries.
type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	Update(ctx context.Context, session *entity.ChatSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindByIdForUser returns nil, nil when no session matches both ids.
	FindByIdForUser(ctx context.Context, id, userId uuid.UUID) (*entity.ChatSession, error)
	// FindLatestActiveByUser returns the most recently created ACTIVE
	// session, or nil, nil when the user has none.
	FindLatestActiveByUser(ctx context.Context, userId uuid.UUID) (*entity.ChatSession, error)
	// FindLatestActiveByUserWithMessages eager-loads up to messageLimit
	// messages in chronological order.
	FindLatestActiveByUserWithMessages(ctx context.Context, userId uuid.UUID, messageLimit int) (*entity.ChatSession, error)
	// UpdateStatus writes the status unconditionally; updating a
	// nonexistent id affects zero rows and is not an error.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.SessionStatus) error
	// ArchiveAllActiveByUser batch-archives every ACTIVE session of the
	// user and reports how many rows changed.
	ArchiveAllActiveByUser(ctx context.Context, userId uuid.UUID) (int64, error)
	// UpdateContext replaces the context blob wholesale.
	UpdateContext(ctx context.Context, id uuid.UUID, context json.RawMessage) error
}
