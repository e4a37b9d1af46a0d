package event

import (
	"time"

	"github.com/google/uuid"
)

// MessageLog records one in-flight message. Every message delivered during a
// workflow run has exactly one MessageLog; MessageID is generated at
// emission time, not by the caller.
type MessageLog struct {
	Timestamp time.Time
	FromAgent string
	ToAgent   string
	Message   string
	MessageID string
	Metadata  map[string]any
}

// NewMessageLog builds a MessageLog with a fresh UUIDv4 MessageID.
func NewMessageLog(from, to, message string, metadata map[string]any) MessageLog {
	return MessageLog{
		Timestamp: time.Now(),
		FromAgent: from,
		ToAgent:   to,
		Message:   message,
		MessageID: uuid.NewString(),
		Metadata:  metadata,
	}
}
