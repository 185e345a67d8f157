package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MessageSender identifies which side of the conversation produced a message.
type MessageSender string

const (
	MessageSenderUser      MessageSender = "user"
	MessageSenderAssistant MessageSender = "assistant"
)

// ChatMessage is a single turn in a chat session. Messages are append only;
// Metadata is immutable once written.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Sender        MessageSender
	Content       string
	Metadata      json.RawMessage
	CreatedAt     time.Time
}
