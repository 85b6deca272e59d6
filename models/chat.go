package models

import (
	"time"
)

// Chat roles stored on ChatMessage.Role.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the coach conversation.
type ChatMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content" gorm:"type:text"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}

// TableName specifies the table name for the ChatMessage model.
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// CoachReply is what the chat endpoint returns for one user message.
type CoachReply struct {
	Reply          string        `json:"reply"`                     // Text shown in the chat bubble
	CommandKind    CommandKind   `json:"command_kind,omitempty"`    // Set when a command was found
	CommandOutcome string        `json:"command_outcome,omitempty"` // One-line result of the command
	CommandApplied bool          `json:"command_applied"`
	Context        *CoachContext `json:"context,omitempty"`         // Reloaded context after the turn
}
