// File: internal/repository/chat/interface.go
package chat

import (
	"context"

	"docuchat/internal/domain"
)

// ChatRepository handles chat data operations.
type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error)
	FindAll(ctx context.Context) ([]domain.Chat, error)
	FindByID(ctx context.Context, id uint) (*domain.Chat, error)
	UpdateMessages(ctx context.Context, chatID uint, rawMessages string) error
	Rename(ctx context.Context, chatID uint, title string) error
	Delete(ctx context.Context, chatID uint) error
	ExistsByID(ctx context.Context, chatID uint) (bool, error)
}
