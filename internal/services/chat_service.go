// File: internal/services/chat_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"docuchat/internal/domain"
	"docuchat/internal/repository/chat"
	"docuchat/internal/repository/project"
)

// ChatService manages conversation threads and their serialized message
// logs.
type ChatService struct {
	chatRepo    chat.ChatRepository
	projectRepo project.ProjectRepository
	logger      Logger
}

func NewChatService(chatRepo chat.ChatRepository, projectRepo project.ProjectRepository, logger Logger) *ChatService {
	if logger == nil {
		logger = NoOpLogger{}
	}
	return &ChatService{chatRepo: chatRepo, projectRepo: projectRepo, logger: logger}
}

// Create starts an empty chat. The title falls back to a placeholder and
// project_id, when given, must reference an existing project.
func (s *ChatService) Create(ctx context.Context, title string, projectID *uint) (*domain.Chat, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = domain.DefaultChatTitle
	}
	if projectID != nil {
		if _, err := s.projectRepo.FindByID(ctx, *projectID); err != nil {
			return nil, err
		}
	}

	newChat := &domain.Chat{Title: title, RawMessages: "[]", ProjectID: projectID}
	created, err := s.chatRepo.Create(ctx, newChat)
	if err != nil {
		return nil, err
	}
	created.Messages = []domain.Message{}
	return created, nil
}

// ListAll returns every chat, newest first, with the message log decoded.
// A chat whose stored blob is malformed comes back with an empty sequence;
// the corruption is logged, never surfaced.
func (s *ChatService) ListAll(ctx context.Context) ([]domain.Chat, error) {
	chats, err := s.chatRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range chats {
		msgs, ok := domain.DecodeMessages(chats[i].RawMessages)
		if !ok {
			s.logger.Warn("stored message log is malformed, returning empty sequence", "chat_id", chats[i].ID)
		}
		chats[i].Messages = msgs
	}
	return chats, nil
}

func (s *ChatService) Get(ctx context.Context, chatID uint) (*domain.Chat, error) {
	record, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	msgs, ok := domain.DecodeMessages(record.RawMessages)
	if !ok {
		s.logger.Warn("stored message log is malformed, returning empty sequence", "chat_id", chatID)
	}
	record.Messages = msgs
	return record, nil
}

// SetMessages replaces the stored sequence wholesale. Concurrent callers
// race with last-write-wins.
func (s *ChatService) SetMessages(ctx context.Context, chatID uint, msgs []domain.Message) error {
	for _, m := range msgs {
		if !domain.KnownRole(m.Role) {
			return domain.NewValidationError("unrecognized message role %q", m.Role)
		}
	}
	raw, err := domain.EncodeMessages(msgs)
	if err != nil {
		return domain.NewValidationError("messages could not be serialized: %v", err)
	}
	return s.chatRepo.UpdateMessages(ctx, chatID, raw)
}

func (s *ChatService) Rename(ctx context.Context, chatID uint, title string) error {
	if strings.TrimSpace(title) == "" {
		return domain.NewValidationError("chat title is required")
	}
	return s.chatRepo.Rename(ctx, chatID, title)
}

// Delete removes the chat; its attachments go with it via cascade.
func (s *ChatService) Delete(ctx context.Context, chatID uint) error {
	return s.chatRepo.Delete(ctx, chatID)
}

// ExportHTML renders the chat transcript as HTML. Assistant replies are
// markdown, so the transcript is assembled as markdown and converted in
// one pass. Structured entries (file banners, infographics) are skipped.
func (s *ChatService) ExportHTML(ctx context.Context, chatID uint) ([]byte, error) {
	record, err := s.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", record.Title)
	for _, m := range record.Messages {
		text, ok := m.Text()
		if !ok {
			continue
		}
		fmt.Fprintf(&md, "**%s**\n\n%s\n\n---\n\n", m.Role, text)
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md.String()), &buf); err != nil {
		return nil, fmt.Errorf("render transcript: %w", err)
	}
	return buf.Bytes(), nil
}
