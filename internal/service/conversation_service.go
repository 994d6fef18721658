package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chlyn/COSC369-Final-Project/internal/dto"
	"github.com/chlyn/COSC369-Final-Project/internal/model"
	"github.com/chlyn/COSC369-Final-Project/internal/repository"
)

var ErrConversationNotFound = errors.New("conversation not found")

// ConversationService owner-scoped conversation reads and deletes.
type ConversationService interface {
	List(ctx context.Context, userID string) ([]dto.ConversationSummary, error)
	Get(ctx context.Context, userID, id string) (*dto.ConversationDetail, error)
	Delete(ctx context.Context, userID, id string) error
}

type conversationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewConversationService(repo *repository.Repository, logger *zap.Logger) ConversationService {
	return &conversationService{repo: repo, logger: logger}
}

func (s *conversationService) List(ctx context.Context, userID string) ([]dto.ConversationSummary, error) {
	convs, err := s.repo.Conversation.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list conversations failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	out := make([]dto.ConversationSummary, 0, len(convs))
	for _, c := range convs {
		out = append(out, dto.ConversationSummary{
			ID:        c.ConversationID,
			Title:     c.Title,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return out, nil
}

func (s *conversationService) Get(ctx context.Context, userID, id string) (*dto.ConversationDetail, error) {
	conv, err := s.repo.Conversation.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		s.logger.Error("get conversation failed", zap.String("conversation_id", id), zap.Error(err))
		return nil, err
	}
	return toConversationDetail(conv), nil
}

func (s *conversationService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Conversation.DeleteByIDAndUser(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConversationNotFound
		}
		s.logger.Error("delete conversation failed", zap.String("conversation_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("conversation deleted", zap.String("user_id", userID), zap.String("conversation_id", id))
	return nil
}

func toConversationDetail(c *model.Conversation) *dto.ConversationDetail {
	msgs := make([]dto.ChatMessage, 0, len(c.Messages))
	for _, m := range c.Messages {
		msgs = append(msgs, dto.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return &dto.ConversationDetail{
		ID:        c.ConversationID,
		Title:     c.Title,
		Messages:  msgs,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
