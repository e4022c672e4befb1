// File: internal/services/assistant/config.go
package assistant

import "fmt"

type Config struct {
	// Model selection per call type. VisionModel is used only when an image
	// attachment rides along with the question.
	ChatModel    string
	VisionModel  string
	ContentModel string

	// ContextCharLimit caps how much extracted document text is prepended
	// as system context on a question. SummaryCharLimit caps the document
	// window fed to the infographic summarizer.
	ContextCharLimit int
	SummaryCharLimit int

	// Token budgets per upstream call.
	AnswerMaxTokens   int
	FollowupMaxTokens int
	SummaryMaxTokens  int
	ContentMaxTokens  int
}

func (c *Config) Validate() error {
	if c.ChatModel == "" {
		return fmt.Errorf("chat_model is required")
	}
	if c.VisionModel == "" {
		return fmt.Errorf("vision_model is required")
	}
	if c.ContentModel == "" {
		return fmt.Errorf("content_model is required")
	}
	if c.ContextCharLimit <= 0 {
		return fmt.Errorf("context_char_limit must be positive")
	}
	if c.SummaryCharLimit <= 0 {
		return fmt.Errorf("summary_char_limit must be positive")
	}
	if c.AnswerMaxTokens <= 0 || c.FollowupMaxTokens <= 0 || c.SummaryMaxTokens <= 0 || c.ContentMaxTokens <= 0 {
		return fmt.Errorf("token budgets must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		ChatModel:         "gpt-3.5-turbo",
		VisionModel:       "gpt-4-vision-preview",
		ContentModel:      "gpt-4o-mini",
		ContextCharLimit:  3000,
		SummaryCharLimit:  6000,
		AnswerMaxTokens:   512,
		FollowupMaxTokens: 100,
		SummaryMaxTokens:  1000,
		ContentMaxTokens:  600,
	}
}
