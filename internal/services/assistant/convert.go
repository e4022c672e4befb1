// File: internal/services/assistant/convert.go
package assistant

import (
	"encoding/json"

	"docuchat/internal/domain"
	"docuchat/internal/services/ai"
)

// contentPart mirrors the wire shape of a multi-part message entry as the
// completion API expects it: {"type":"text",...} or {"type":"image_url",...}.
type contentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL *struct {
		URL string `json:"url"`
	} `json:"image_url,omitempty"`
}

// visionMessage builds the user message carrying both the question text and
// an inline image, in the same array-content shape it is persisted in.
func visionMessage(question, imageDataURL string) domain.Message {
	parts := []contentPart{
		{Type: "text", Text: question},
		{Type: "image_url", ImageURL: &struct {
			URL string `json:"url"`
		}{URL: imageDataURL}},
	}
	content, _ := json.Marshal(parts)
	return domain.Message{Role: domain.RoleUser, Content: content}
}

// toAIMessage converts a stored message for the upstream call. It reports
// false for entries that are not well formed: unrecognized role, or content
// that is neither a plain string nor a parseable parts array.
func toAIMessage(m domain.Message) (ai.Message, bool) {
	switch m.Role {
	case domain.RoleUser, domain.RoleAssistant, domain.RoleSystem:
	default:
		return ai.Message{}, false
	}

	if text, ok := m.Text(); ok {
		return ai.Message{Role: m.Role, Content: text}, true
	}

	var raw []contentPart
	if err := json.Unmarshal(m.Content, &raw); err != nil {
		return ai.Message{}, false
	}
	parts := make([]ai.Part, 0, len(raw))
	for _, p := range raw {
		switch {
		case p.ImageURL != nil:
			parts = append(parts, ai.Part{ImageDataURL: p.ImageURL.URL})
		default:
			parts = append(parts, ai.Part{Text: p.Text})
		}
	}
	return ai.Message{Role: m.Role, Parts: parts}, true
}

// completionMessages filters the sequence down to well-formed entries,
// returning both the surviving stored messages (what gets persisted after
// the reply arrives) and their upstream representation.
func completionMessages(history []domain.Message) ([]domain.Message, []ai.Message) {
	kept := make([]domain.Message, 0, len(history))
	out := make([]ai.Message, 0, len(history))
	for _, m := range history {
		converted, ok := toAIMessage(m)
		if !ok {
			continue
		}
		kept = append(kept, m)
		out = append(out, converted)
	}
	return kept, out
}
