// File: internal/repository/chat/chat_repository.go
package chat

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"docuchat/internal/domain"
)

// ErrChatNotFound satisfies errors.Is(err, domain.ErrNotFound).
var ErrChatNotFound = fmt.Errorf("chat: %w", domain.ErrNotFound)

type gormChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &gormChatRepository{db: db}
}

func (r *gormChatRepository) Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error) {
	if err := r.db.WithContext(ctx).Create(chat).Error; err != nil {
		return nil, &domain.StorageError{Op: "create chat", Err: err}
	}
	return chat, nil
}

// FindAll returns every chat, most recently created first.
func (r *gormChatRepository) FindAll(ctx context.Context) ([]domain.Chat, error) {
	var chats []domain.Chat
	err := r.db.WithContext(ctx).Order("id DESC").Find(&chats).Error
	if err != nil {
		return nil, &domain.StorageError{Op: "list chats", Err: err}
	}
	return chats, nil
}

func (r *gormChatRepository) FindByID(ctx context.Context, id uint) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.db.WithContext(ctx).First(&chat, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChatNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "find chat", Err: err}
	}
	return &chat, nil
}

// UpdateMessages replaces the stored message blob wholesale. Concurrent
// writers race with last-write-wins; see DESIGN.md.
func (r *gormChatRepository) UpdateMessages(ctx context.Context, chatID uint, rawMessages string) error {
	result := r.db.WithContext(ctx).Model(&domain.Chat{}).Where("id = ?", chatID).
		Update("messages", rawMessages)
	if result.Error != nil {
		return &domain.StorageError{Op: "update chat messages", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return ErrChatNotFound
	}
	return nil
}

func (r *gormChatRepository) Rename(ctx context.Context, chatID uint, title string) error {
	result := r.db.WithContext(ctx).Model(&domain.Chat{}).Where("id = ?", chatID).
		Update("title", title)
	if result.Error != nil {
		return &domain.StorageError{Op: "rename chat", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return ErrChatNotFound
	}
	return nil
}

// Delete removes the chat; the store cascades to its attachments.
func (r *gormChatRepository) Delete(ctx context.Context, chatID uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Chat{}, chatID)
	if result.Error != nil {
		return &domain.StorageError{Op: "delete chat", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return ErrChatNotFound
	}
	return nil
}

func (r *gormChatRepository) ExistsByID(ctx context.Context, chatID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Chat{}).Where("id = ?", chatID).Count(&count).Error
	if err != nil {
		return false, &domain.StorageError{Op: "check chat existence", Err: err}
	}
	return count > 0, nil
}
