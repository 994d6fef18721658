package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chlyn/COSC369-Final-Project/config"
	"github.com/chlyn/COSC369-Final-Project/internal/dto"
	"github.com/chlyn/COSC369-Final-Project/internal/model"
	"github.com/chlyn/COSC369-Final-Project/internal/repository"
	pkgerrors "github.com/chlyn/COSC369-Final-Project/pkg/errors"
	"github.com/chlyn/COSC369-Final-Project/pkg/llm"
	"github.com/chlyn/COSC369-Final-Project/pkg/telemetry"
)

var (
	ErrEmptyMessage         = errors.New("message must not be empty")
	ErrMissingUser          = errors.New("user id is required")
	ErrGenerationFailed     = errors.New("model generation failed")
	ErrConversationConflict = errors.New("conversation was updated by another request")
)

// DefaultConversationTitle is used when the first message yields no title.
const DefaultConversationTitle = "New Chat"

// ChatService runs one chat turn.
type ChatService interface {
	Send(ctx context.Context, userID string, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	cfg      *config.ChatConfig
	repo     *repository.Repository
	catalog  CatalogService
	schedule ScheduleService
	model    llm.Provider
	logger   *zap.Logger
}

func NewChatService(
	cfg *config.ChatConfig,
	repo *repository.Repository,
	catalog CatalogService,
	schedule ScheduleService,
	model llm.Provider,
	logger *zap.Logger,
) ChatService {
	return &chatService{
		cfg:      cfg,
		repo:     repo,
		catalog:  catalog,
		schedule: schedule,
		model:    model,
		logger:   logger,
	}
}

// Send validates, resolves the conversation, prompts the model and persists
// both new turns in a single write. Nothing is written when the model fails.
func (s *chatService) Send(ctx context.Context, userID string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if userID == "" {
		return nil, ErrMissingUser
	}
	if message == "" {
		return nil, ErrEmptyMessage
	}

	conv, isNew, err := s.resolve(ctx, userID, req.ConversationID)
	if err != nil {
		return nil, err
	}

	var transcript []model.Message
	if isNew {
		conv.Title = ConversationTitle(message, s.cfg.TitleLimit)
		transcript = historyFromRequest(req.History)
	} else {
		transcript = append([]model.Message(nil), conv.Messages...)
	}

	semester := s.schedule.Semester("")
	catalog, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	enrolled, err := s.schedule.Enrolled(ctx, userID, semester)
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(PromptInput{
		Semester:   semester,
		Catalog:    catalog,
		Enrolled:   enrolled,
		Transcript: transcript,
		Message:    message,
	})

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		s.logger.Error("model generation failed",
			zap.String("user_id", userID),
			zap.String("conversation_id", conv.ConversationID),
			zap.Error(err),
		)
		return nil, ErrGenerationFailed
	}

	conv.Append(model.RoleUser, message)
	conv.Append(model.RoleAssistant, reply)

	if isNew {
		if err := s.repo.Conversation.Create(ctx, conv); err != nil {
			s.logger.Error("create conversation failed", zap.String("user_id", userID), zap.Error(err))
			return nil, err
		}
	} else if err := s.repo.Conversation.UpdateMessages(ctx, conv); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrConversationConflict
		}
		s.logger.Error("update conversation failed",
			zap.String("conversation_id", conv.ConversationID),
			zap.Error(err),
		)
		return nil, err
	}

	return &dto.ChatResponse{Reply: reply, ConversationID: conv.ConversationID}, nil
}

// resolve looks the conversation up within the user's own conversations.
// A miss starts a new, unsaved conversation.
func (s *chatService) resolve(ctx context.Context, userID, conversationID string) (*model.Conversation, bool, error) {
	if conversationID = strings.TrimSpace(conversationID); conversationID != "" {
		conv, err := s.repo.Conversation.GetByIDAndUser(ctx, conversationID, userID)
		if err == nil {
			return conv, false, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("load conversation failed", zap.String("conversation_id", conversationID), zap.Error(err))
			return nil, false, err
		}
	}

	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrUserNotFound
		}
		s.logger.Error("load user failed", zap.String("user_id", userID), zap.Error(err))
		return nil, false, err
	}

	return &model.Conversation{UserID: userID, Messages: []model.Message{}}, true, nil
}

func (s *chatService) generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "chat.generate")
	defer span.End()
	span.SetAttributes(attribute.Int("prompt.bytes", len(prompt)))

	reply, err := s.model.Generate(ctx, prompt)
	if err == nil && strings.TrimSpace(reply) == "" {
		err = llm.ErrGeneration
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return "", err
	}
	return reply, nil
}

// ConversationTitle derives a title from the first message. Messages longer
// than limit runes keep limit-3 runes followed by "...".
func ConversationTitle(message string, limit int) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return DefaultConversationTitle
	}
	if limit <= 3 {
		limit = 40
	}
	if utf8.RuneCountInString(message) <= limit {
		return message
	}
	runes := []rune(message)
	return string(runes[:limit-3]) + "..."
}

// historyFromRequest keeps well-formed client-supplied turns.
func historyFromRequest(history []dto.ChatMessage) []model.Message {
	out := make([]model.Message, 0, len(history))
	for _, h := range history {
		content := strings.TrimSpace(h.Content)
		if content == "" {
			continue
		}
		switch h.Role {
		case model.RoleUser, model.RoleAssistant:
			out = append(out, model.Message{Role: h.Role, Content: content})
		}
	}
	return out
}
