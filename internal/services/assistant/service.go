// File: internal/services/assistant/service.go
package assistant

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"docuchat/internal/domain"
	"docuchat/internal/repository/attachment"
	"docuchat/internal/repository/chat"
	"docuchat/internal/services"
	"docuchat/internal/services/ai"
	"docuchat/internal/services/extract"
)

// Answer is the result of a question round-trip: the assistant's reply plus
// suggested follow-up questions.
type Answer struct {
	Answer    string   `json:"answer"`
	Followups []string `json:"followups"`
}

// Service builds prompts from chat history plus optional document or image
// context, forwards them to the completion API, and persists replies.
type Service struct {
	config       *Config
	provider     ai.Provider
	chatRepo     chat.ChatRepository
	attachRepo   attachment.AttachmentRepository
	extractor    extract.Extractor
	isDocRelated RelevancePredicate
	logger       services.Logger
}

func NewService(
	config *Config,
	provider ai.Provider,
	chatRepo chat.ChatRepository,
	attachRepo attachment.AttachmentRepository,
	extractor extract.Extractor,
	predicate RelevancePredicate,
	logger services.Logger,
) (*Service, error) {
	if provider == nil {
		return nil, fmt.Errorf("AI provider is required")
	}
	if chatRepo == nil {
		return nil, fmt.Errorf("chat repository is required")
	}
	if attachRepo == nil {
		return nil, fmt.Errorf("attachment repository is required")
	}
	if extractor == nil {
		return nil, fmt.Errorf("text extractor is required")
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if predicate == nil {
		predicate = DocumentRelated
	}
	if logger == nil {
		logger = services.NoOpLogger{}
	}
	return &Service{
		config:       config,
		provider:     provider,
		chatRepo:     chatRepo,
		attachRepo:   attachRepo,
		extractor:    extractor,
		isDocRelated: predicate,
		logger:       logger,
	}, nil
}

// SetAPIKey replaces the upstream credential for the rest of the process
// lifetime.
func (s *Service) SetAPIKey(key string) error {
	return s.provider.SetAPIKey(key)
}

// Ask answers a question, optionally in the context of a chat. A chatID of
// zero means no chat: nothing is loaded and nothing is persisted.
//
// When the question looks document-related and the chat has an attachment,
// the latest attachment rides along: document text as prepended system
// context, or image bytes inline on the user message (switching to the
// vision model for this call only).
func (s *Service) Ask(ctx context.Context, question string, chatID uint) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.NewValidationError("question is required")
	}

	history := s.loadHistory(ctx, chatID)

	useVision := false
	contextText := ""
	if chatID != 0 && s.isDocRelated(question) {
		att, err := s.attachRepo.FindLatestByChatID(ctx, chatID)
		switch {
		case err == nil:
			data := s.attachmentBytes(att)
			switch {
			case len(data) == 0:
				// Attachment row without readable bytes; proceed text-only.
			case extract.IsDocument(att.Mimetype):
				text, err := s.extractor.Text(data)
				if err != nil {
					s.logger.Warn("document text extraction failed", "chat_id", chatID, "attachment_id", att.ID, "error", err)
				} else {
					contextText = fmt.Sprintf(documentContextFormat, truncate(text, s.config.ContextCharLimit))
				}
			case extract.IsImage(att.Mimetype):
				dataURL := fmt.Sprintf("data:%s;base64,%s", att.Mimetype, base64.StdEncoding.EncodeToString(data))
				history = append(history, visionMessage(question, dataURL))
				useVision = true
			}
		case errors.Is(err, domain.ErrNotFound):
			// No attachments on this chat; proceed text-only.
		default:
			s.logger.Warn("could not load latest attachment", "chat_id", chatID, "error", err)
		}
	}

	if !useVision {
		if contextText != "" {
			history = append([]domain.Message{domain.NewTextMessage(domain.RoleSystem, contextText)}, history...)
		}
		history = append(history, domain.NewTextMessage(domain.RoleUser, question))
	}

	kept, outgoing := completionMessages(history)

	model := s.config.ChatModel
	if useVision {
		model = s.config.VisionModel
	}
	answer, err := s.provider.Complete(ctx, ai.CompletionRequest{
		Model:     model,
		Messages:  outgoing,
		MaxTokens: s.config.AnswerMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	kept = append(kept, domain.NewTextMessage(domain.RoleAssistant, answer))
	if chatID != 0 {
		if raw, err := domain.EncodeMessages(kept); err != nil {
			s.logger.Error("could not encode messages for persistence", "chat_id", chatID, "error", err)
		} else if err := s.chatRepo.UpdateMessages(ctx, chatID, raw); err != nil {
			s.logger.Error("could not persist assistant reply", "chat_id", chatID, "error", err)
		}
	}

	return &Answer{Answer: answer, Followups: s.followupQuestions(ctx, kept)}, nil
}

// loadHistory returns the chat's stored messages. Any failure, including a
// corrupt message blob, yields an empty history rather than an error.
func (s *Service) loadHistory(ctx context.Context, chatID uint) []domain.Message {
	if chatID == 0 {
		return []domain.Message{}
	}
	record, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		s.logger.Warn("could not load chat history", "chat_id", chatID, "error", err)
		return []domain.Message{}
	}
	msgs, ok := domain.DecodeMessages(record.RawMessages)
	if !ok {
		s.logger.Warn("stored message log is malformed, treating as empty", "chat_id", chatID)
	}
	return msgs
}

// attachmentBytes returns the attachment's bytes: inline content when
// populated, otherwise a best-effort read of the legacy on-disk file.
func (s *Service) attachmentBytes(att *domain.Attachment) []byte {
	if len(att.Content) > 0 {
		return att.Content
	}
	if att.Filepath == "" {
		return nil
	}
	data, err := os.ReadFile(att.Filepath)
	if err != nil {
		s.logger.Warn("could not read legacy attachment file", "attachment_id", att.ID, "path", att.Filepath, "error", err)
		return nil
	}
	return data
}

// followupQuestions asks for suggested next questions and parses them one
// per line. Best-effort: any failure yields an empty list.
func (s *Service) followupQuestions(ctx context.Context, history []domain.Message) []string {
	_, outgoing := completionMessages(history)
	outgoing = append(outgoing, ai.Message{Role: domain.RoleUser, Content: followupPrompt})

	reply, err := s.provider.Complete(ctx, ai.CompletionRequest{
		Model:     s.config.ChatModel,
		Messages:  outgoing,
		MaxTokens: s.config.FollowupMaxTokens,
	})
	if err != nil {
		s.logger.Warn("follow-up question generation failed", "error", err)
		return []string{}
	}

	followups := []string{}
	for _, line := range strings.Split(reply, "\n") {
		if q := strings.TrimSpace(line); q != "" {
			followups = append(followups, q)
		}
	}
	return followups
}

// truncate cuts s to at most limit bytes, backing off to a rune boundary so
// the cut never leaves an invalid UTF-8 tail.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
