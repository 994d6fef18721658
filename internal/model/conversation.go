package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message one turn of a transcript. Stored inline in the conversation row.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation chat transcript owned by one user (table conversations)
type Conversation struct {
	ConversationID string                       `gorm:"type:uuid;primaryKey"          json:"id"`
	UserID         string                       `gorm:"type:uuid;not null;index"      json:"userId"`
	Title          string                       `gorm:"type:varchar(200);not null"    json:"title"`
	Messages       datatypes.JSONSlice[Message] `gorm:"not null"                      json:"messages"`
	VersionedModel
}

// TableName table name
func (Conversation) TableName() string { return "conversations" }

// BeforeCreate assigns the id.
func (c *Conversation) BeforeCreate(_ *gorm.DB) error {
	newID(&c.ConversationID)
	return nil
}

// Append adds a turn at the end of the transcript.
func (c *Conversation) Append(role, content string) {
	c.Messages = append(c.Messages, Message{Role: role, Content: content})
}
