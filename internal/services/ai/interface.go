// File: internal/services/ai/interface.go
package ai

import "context"

// Part is one segment of a multi-part user message. ImageDataURL carries an
// inline base64 data URL when an image accompanies the text.
type Part struct {
	Text         string
	ImageDataURL string
}

// Message is a provider-neutral chat message. Parts, when set, takes
// precedence over Content and produces a multi-part (vision) message.
type Message struct {
	Role    string
	Content string
	Parts   []Part
}

type CompletionRequest struct {
	Model     string
	Messages  []Message
	MaxTokens int
}

// Provider is the boundary to the external completion and image-generation
// APIs. Implementations must be safe for concurrent use.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// GenerateImage returns either a hosted URL or a base64 data URL,
	// whichever the upstream responds with.
	GenerateImage(ctx context.Context, prompt string) (string, error)
	// SetAPIKey replaces the credential used by subsequent calls for the
	// lifetime of the process. It is never persisted.
	SetAPIKey(key string) error
	HasAPIKey() bool
}
