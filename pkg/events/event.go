package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is a domain event published to the message bus. Subject determines
// the NATS subject under the events stream.
type Event interface {
	Subject() string
	OccurredAt() time.Time
}

type BaseEvent struct {
	EventId   uuid.UUID `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
}

func newBaseEvent() BaseEvent {
	return BaseEvent{
		EventId:   uuid.New(),
		Timestamp: time.Now().UTC(),
	}
}

func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

type UserRegistered struct {
	BaseEvent
	UserId uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}

func NewUserRegistered(userId uuid.UUID, email, role string) UserRegistered {
	return UserRegistered{
		BaseEvent: newBaseEvent(),
		UserId:    userId,
		Email:     email,
		Role:      role,
	}
}

func (UserRegistered) Subject() string { return "events.user.registered" }

type CasePublished struct {
	BaseEvent
	CaseId   uuid.UUID  `json:"case_id"`
	BrokerId *uuid.UUID `json:"broker_id,omitempty"`
	Title    string     `json:"title"`
}

func NewCasePublished(caseId uuid.UUID, brokerId *uuid.UUID, title string) CasePublished {
	return CasePublished{
		BaseEvent: newBaseEvent(),
		CaseId:    caseId,
		BrokerId:  brokerId,
		Title:     title,
	}
}

func (CasePublished) Subject() string { return "events.case.published" }

type InquiryCreated struct {
	BaseEvent
	InquiryId     uuid.UUID  `json:"inquiry_id"`
	CaseId        uuid.UUID  `json:"case_id"`
	BrokerId      *uuid.UUID `json:"broker_id,omitempty"`
	BorrowerName  string     `json:"borrower_name"`
	BorrowerEmail string     `json:"borrower_email"`
	Message       string     `json:"message"`
}

func NewInquiryCreated(inquiryId, caseId uuid.UUID, brokerId *uuid.UUID, borrowerName, borrowerEmail, message string) InquiryCreated {
	return InquiryCreated{
		BaseEvent:     newBaseEvent(),
		InquiryId:     inquiryId,
		CaseId:        caseId,
		BrokerId:      brokerId,
		BorrowerName:  borrowerName,
		BorrowerEmail: borrowerEmail,
		Message:       message,
	}
}

func (InquiryCreated) Subject() string { return "events.inquiry.created" }

type SessionReset struct {
	BaseEvent
	UserId       uuid.UUID `json:"user_id"`
	NewSessionId uuid.UUID `json:"new_session_id"`
	Archived     int64     `json:"archived"`
}

func NewSessionReset(userId, newSessionId uuid.UUID, archived int64) SessionReset {
	return SessionReset{
		BaseEvent:    newBaseEvent(),
		UserId:       userId,
		NewSessionId: newSessionId,
		Archived:     archived,
	}
}

func (SessionReset) Subject() string { return "events.chat.session_reset" }
