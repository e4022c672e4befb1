// File: internal/repository/attachment/interface.go
package attachment

import (
	"context"

	"docuchat/internal/domain"
)

// AttachmentRepository handles attachment data operations.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) (*domain.Attachment, error)
	FindByChatID(ctx context.Context, chatID uint) ([]domain.Attachment, error)
	FindLatestByChatID(ctx context.Context, chatID uint) (*domain.Attachment, error)
	FindByID(ctx context.Context, id uint) (*domain.Attachment, error)
	Delete(ctx context.Context, id uint) error
}
