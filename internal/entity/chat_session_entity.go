package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the lifecycle state of a chat session.
type SessionStatus string

const (
	SessionStatusActive   SessionStatus = "active"
	SessionStatusArchived SessionStatus = "archived"
)

// Valid reports whether s is a known status value.
func (s SessionStatus) Valid() bool {
	return s == SessionStatusActive || s == SessionStatusArchived
}

// CanTransitionTo reports whether the status change is allowed.
// active -> archived happens on archive/reset; archived -> active is the
// explicit-sessionId reactivation path and the only way back.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	switch {
	case s == SessionStatusActive && next == SessionStatusArchived:
		return true
	case s == SessionStatusArchived && next == SessionStatusActive:
		return true
	}
	return false
}

// ChatSession is one conversational thread between a user and the concierge
// assistant. Context is an opaque blob owned by the caller and replaced
// wholesale on update.
type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Status    SessionStatus
	Context   json.RawMessage
	Messages  []*ChatMessage
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
