package dto

import "time"

// ── chat & conversations ──

// ChatMessage one transcript turn on the wire
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest POST /api/chat
type ChatRequest struct {
	Message        string        `json:"message"        binding:"max=4000"`
	History        []ChatMessage `json:"history"`
	ConversationID string        `json:"conversationId"`
	UserID         string        `json:"userId"`
}

// ChatResponse POST /api/chat result
type ChatResponse struct {
	Reply          string `json:"reply"`
	ConversationID string `json:"conversationId"`
}

// ConversationSummary list entry
type ConversationSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConversationDetail full transcript
type ConversationDetail struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
