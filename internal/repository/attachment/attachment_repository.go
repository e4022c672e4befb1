// File: internal/repository/attachment/attachment_repository.go
package attachment

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"docuchat/internal/domain"
)

var ErrAttachmentNotFound = fmt.Errorf("attachment: %w", domain.ErrNotFound)

type gormAttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &gormAttachmentRepository{db: db}
}

func (r *gormAttachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) (*domain.Attachment, error) {
	if err := r.db.WithContext(ctx).Create(attachment).Error; err != nil {
		return nil, &domain.StorageError{Op: "create attachment", Err: err}
	}
	return attachment, nil
}

// FindByChatID returns the chat's attachments, most recently uploaded
// first. The id tiebreak keeps the order stable for same-second uploads.
func (r *gormAttachmentRepository) FindByChatID(ctx context.Context, chatID uint) ([]domain.Attachment, error) {
	var attachments []domain.Attachment
	err := r.db.WithContext(ctx).Where("chat_id = ?", chatID).
		Order("uploaded_at DESC, id DESC").Find(&attachments).Error
	if err != nil {
		return nil, &domain.StorageError{Op: "list attachments", Err: err}
	}
	return attachments, nil
}

func (r *gormAttachmentRepository) FindLatestByChatID(ctx context.Context, chatID uint) (*domain.Attachment, error) {
	var attachment domain.Attachment
	err := r.db.WithContext(ctx).Where("chat_id = ?", chatID).
		Order("uploaded_at DESC, id DESC").First(&attachment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAttachmentNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "find latest attachment", Err: err}
	}
	return &attachment, nil
}

func (r *gormAttachmentRepository) FindByID(ctx context.Context, id uint) (*domain.Attachment, error) {
	var attachment domain.Attachment
	err := r.db.WithContext(ctx).First(&attachment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAttachmentNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "find attachment", Err: err}
	}
	return &attachment, nil
}

func (r *gormAttachmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Attachment{}, id)
	if result.Error != nil {
		return &domain.StorageError{Op: "delete attachment", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return ErrAttachmentNotFound
	}
	return nil
}
