package client

import (
	"context"
	"errors"
	"strings"

	"github.com/chlyn/COSC369-Final-Project/internal/dto"
)

// ErrEmptyMessage is returned by Send for blank input; nothing is sent.
var ErrEmptyMessage = errors.New("message must not be empty")

// ChatSession is the state of one chat window: the user, the open
// conversation and its local transcript. It is not safe for concurrent use.
type ChatSession struct {
	client         *Client
	userID         string
	conversationID string
	history        []dto.ChatMessage
}

func NewChatSession(c *Client, userID string) *ChatSession {
	return &ChatSession{client: c, userID: userID}
}

// ConversationID of the open conversation; empty before the first reply.
func (s *ChatSession) ConversationID() string { return s.conversationID }

// History returns a copy of the local transcript.
func (s *ChatSession) History() []dto.ChatMessage {
	return append([]dto.ChatMessage(nil), s.history...)
}

// Send posts one turn. On success the returned conversation id is adopted
// and both turns are appended; on failure the state is unchanged so the
// message can be resent.
func (s *ChatSession) Send(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	resp, err := s.client.Chat(ctx, dto.ChatRequest{
		Message:        message,
		History:        s.History(),
		ConversationID: s.conversationID,
		UserID:         s.userID,
	})
	if err != nil {
		return "", err
	}

	s.conversationID = resp.ConversationID
	s.history = append(s.history,
		dto.ChatMessage{Role: "user", Content: message},
		dto.ChatMessage{Role: "assistant", Content: resp.Reply},
	)
	return resp.Reply, nil
}

// Reset starts a new chat.
func (s *ChatSession) Reset() {
	s.conversationID = ""
	s.history = nil
}

// Load replaces the state with a saved conversation.
func (s *ChatSession) Load(ctx context.Context, id string) error {
	detail, err := s.client.Conversation(ctx, s.userID, id)
	if err != nil {
		return err
	}
	s.conversationID = detail.ID
	s.history = append([]dto.ChatMessage(nil), detail.Messages...)
	return nil
}
