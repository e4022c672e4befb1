// File: internal/services/file_service.go
package services

import (
	"context"
	"os"

	"docuchat/internal/domain"
	"docuchat/internal/repository/attachment"
	"docuchat/internal/repository/chat"
)

// FileService stores and retrieves chat attachments. New uploads keep
// their bytes inline in the store; rows migrated from older installations
// may still point at an on-disk file until the migrator inlines them.
type FileService struct {
	attachRepo attachment.AttachmentRepository
	chatRepo   chat.ChatRepository
	logger     Logger
}

func NewFileService(attachRepo attachment.AttachmentRepository, chatRepo chat.ChatRepository, logger Logger) *FileService {
	if logger == nil {
		logger = NoOpLogger{}
	}
	return &FileService{attachRepo: attachRepo, chatRepo: chatRepo, logger: logger}
}

// Upload validates the owning chat and persists the file bytes inline.
func (s *FileService) Upload(ctx context.Context, chatID uint, data []byte, filename, mimetype string) (*domain.Attachment, error) {
	if len(data) == 0 {
		return nil, domain.NewValidationError("no file uploaded")
	}
	exists, err := s.chatRepo.ExistsByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, chat.ErrChatNotFound
	}

	att := &domain.Attachment{
		ChatID:   chatID,
		Filename: filename,
		Mimetype: mimetype,
		Content:  data,
	}
	created, err := s.attachRepo.Create(ctx, att)
	if err != nil {
		return nil, err
	}
	s.logger.Info("attachment uploaded", "chat_id", chatID, "attachment_id", created.ID, "bytes", len(data))
	return created, nil
}

// ListForChat returns the chat's attachments, most recently uploaded first.
func (s *FileService) ListForChat(ctx context.Context, chatID uint) ([]domain.Attachment, error) {
	return s.attachRepo.FindByChatID(ctx, chatID)
}

// Get returns the attachment with its bytes, reading the legacy on-disk
// file when the row has not been inlined yet.
func (s *FileService) Get(ctx context.Context, fileID uint) (*domain.Attachment, error) {
	att, err := s.attachRepo.FindByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if len(att.Content) == 0 && att.Filepath != "" {
		data, err := os.ReadFile(att.Filepath)
		if err != nil {
			s.logger.Warn("could not read legacy attachment file", "attachment_id", att.ID, "path", att.Filepath, "error", err)
		} else {
			att.Content = data
		}
	}
	return att, nil
}

// Delete removes the attachment row and, best-effort, any legacy on-disk
// file. A failed disk removal is logged but does not fail the request.
// Deleting a chat's last attachment never deletes the chat itself.
func (s *FileService) Delete(ctx context.Context, fileID uint) error {
	att, err := s.attachRepo.FindByID(ctx, fileID)
	if err != nil {
		return err
	}

	if att.Filepath != "" {
		if err := os.Remove(att.Filepath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("could not remove legacy attachment file", "attachment_id", att.ID, "path", att.Filepath, "error", err)
		}
	}
	return s.attachRepo.Delete(ctx, fileID)
}
