package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chlyn/COSC369-Final-Project/internal/model"
	pkgerrors "github.com/chlyn/COSC369-Final-Project/pkg/errors"
)

// ConversationRepository conversations. Every call is scoped by owner.
type ConversationRepository interface {
	Create(ctx context.Context, conv *model.Conversation) error
	GetByIDAndUser(ctx context.Context, id, userID string) (*model.Conversation, error)
	ListByUser(ctx context.Context, userID string) ([]model.Conversation, error)
	UpdateMessages(ctx context.Context, conv *model.Conversation) error
	DeleteByIDAndUser(ctx context.Context, id, userID string) error
}

type conversationRepo struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepository {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) Create(ctx context.Context, conv *model.Conversation) error {
	if conv.Version == 0 {
		conv.Version = 1
	}
	if conv.Messages == nil {
		conv.Messages = []model.Message{}
	}
	return r.db.WithContext(ctx).Create(conv).Error
}

func (r *conversationRepo) GetByIDAndUser(ctx context.Context, id, userID string) (*model.Conversation, error) {
	if !validID(id, userID) {
		return nil, gorm.ErrRecordNotFound
	}
	var conv model.Conversation
	err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", id, userID).
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListByUser returns summaries, most recently updated first. Messages are not loaded.
func (r *conversationRepo) ListByUser(ctx context.Context, userID string) ([]model.Conversation, error) {
	if !validID(userID) {
		return []model.Conversation{}, nil
	}
	var convs []model.Conversation
	err := r.db.WithContext(ctx).
		Select("conversation_id", "user_id", "title", "version", "created_at", "updated_at").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&convs).Error
	return convs, err
}

// UpdateMessages replaces the transcript if nobody else wrote since conv was read.
func (r *conversationRepo) UpdateMessages(ctx context.Context, conv *model.Conversation) error {
	if !validID(conv.ConversationID, conv.UserID) {
		return pkgerrors.ErrOptimisticLock
	}
	oldVersion := conv.Version
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Conversation{}).
		Where("conversation_id = ? AND user_id = ? AND version = ?", conv.ConversationID, conv.UserID, oldVersion).
		Updates(map[string]interface{}{
			"messages":   conv.Messages,
			"title":      conv.Title,
			"version":    oldVersion + 1,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	conv.Version = oldVersion + 1
	conv.UpdatedAt = now
	return nil
}

// DeleteByIDAndUser hard-deletes; gorm.ErrRecordNotFound when nothing matched.
func (r *conversationRepo) DeleteByIDAndUser(ctx context.Context, id, userID string) error {
	if !validID(id, userID) {
		return gorm.ErrRecordNotFound
	}
	result := r.db.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", id, userID).
		Delete(&model.Conversation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
