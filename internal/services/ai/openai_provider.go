// File: internal/services/ai/openai_provider.go
package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"docuchat/internal/domain"
)

type OpenAIProvider struct {
	config *Config

	mu     sync.RWMutex
	client *openai.Client // nil until a key is configured
}

func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	p := &OpenAIProvider{config: config}
	if config.APIKey != "" {
		p.client = p.newClient(config.APIKey)
	}
	return p, nil
}

func (p *OpenAIProvider) newClient(key string) *openai.Client {
	cc := openai.DefaultConfig(key)
	if p.config.BaseURL != "" {
		cc.BaseURL = p.config.BaseURL
	}
	return openai.NewClientWithConfig(cc)
}

func (p *OpenAIProvider) SetAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return domain.NewValidationError("API key required")
	}
	p.mu.Lock()
	p.client = p.newClient(key)
	p.mu.Unlock()
	return nil
}

func (p *OpenAIProvider) HasAPIKey() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client != nil
}

func (p *OpenAIProvider) currentClient() (*openai.Client, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.client == nil {
		return nil, ErrNoAPIKey
	}
	return p.client, nil
}

func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	client, err := p.currentClient()
	if err != nil {
		return "", err
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     req.Model,
		Messages:  toOpenAIMessages(req.Messages),
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return "", &domain.UpstreamError{Op: "chat completion", Err: err}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &domain.UpstreamError{Op: "chat completion", Err: fmt.Errorf("no usable content in response")}
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) GenerateImage(ctx context.Context, prompt string) (string, error) {
	client, err := p.currentClient()
	if err != nil {
		return "", err
	}

	resp, err := client.CreateImage(ctx, openai.ImageRequest{
		Model:   p.config.ImageModel,
		Prompt:  prompt,
		Size:    p.config.ImageSize,
		Quality: "high",
		N:       1,
	})
	if err != nil {
		return "", &domain.UpstreamError{Op: "image generation", Err: err}
	}
	if len(resp.Data) == 0 {
		return "", &domain.UpstreamError{Op: "image generation", Err: fmt.Errorf("no image in response")}
	}

	// The API answers with a hosted URL or inline base64 depending on model.
	if resp.Data[0].URL != "" {
		return resp.Data[0].URL, nil
	}
	if resp.Data[0].B64JSON != "" {
		return "data:image/png;base64," + resp.Data[0].B64JSON, nil
	}
	return "", &domain.UpstreamError{Op: "image generation", Err: fmt.Errorf("response carried neither URL nor image data")}
}

func toOpenAIMessages(msgs []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		if len(m.Parts) == 0 {
			out = append(out, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
			continue
		}
		parts := make([]openai.ChatMessagePart, 0, len(m.Parts))
		for _, part := range m.Parts {
			if part.ImageDataURL != "" {
				parts = append(parts, openai.ChatMessagePart{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: part.ImageDataURL},
				})
				continue
			}
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: part.Text,
			})
		}
		out = append(out, openai.ChatCompletionMessage{Role: m.Role, MultiContent: parts})
	}
	return out
}
