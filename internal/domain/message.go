// File: internal/domain/message.go
package domain

import "encoding/json"

// Message roles recognized in a stored chat log. Only the first three are
// ever forwarded to the completion API; the rest are client-side entries
// (file banners, infographic results, follow-up suggestion lists).
const (
	RoleUser        = "user"
	RoleAssistant   = "assistant"
	RoleSystem      = "system"
	RoleFile        = "file"
	RoleInfographic = "infographic"
	RoleFollowups   = "followup-questions"
)

// Message is one entry in a chat's log. Content stays raw JSON so that
// structured payloads (file metadata, infographic URLs, question lists)
// round-trip byte-for-byte through storage.
type Message struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// NewTextMessage builds a message with a plain string content.
func NewTextMessage(role, text string) Message {
	content, _ := json.Marshal(text)
	return Message{Role: role, Content: content}
}

// Text returns the content as a plain string, reporting false for
// structured payloads.
func (m Message) Text() (string, bool) {
	var s string
	if err := json.Unmarshal(m.Content, &s); err != nil {
		return "", false
	}
	return s, true
}

// KnownRole reports whether role is one of the recognized message tags.
func KnownRole(role string) bool {
	switch role {
	case RoleUser, RoleAssistant, RoleSystem, RoleFile, RoleInfographic, RoleFollowups:
		return true
	}
	return false
}

// DecodeMessages parses a stored message blob. A missing blob decodes as an
// empty sequence; a blob that is not a JSON array (garbage, an object, a
// bare null) also yields an empty sequence but reports ok=false so callers
// can route the corruption to a log line.
func DecodeMessages(raw string) (msgs []Message, ok bool) {
	if raw == "" {
		return []Message{}, true
	}
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		return []Message{}, false
	}
	if msgs == nil {
		return []Message{}, false
	}
	return msgs, true
}

// EncodeMessages serializes a message sequence for storage. A nil sequence
// encodes as an empty array.
func EncodeMessages(msgs []Message) (string, error) {
	if msgs == nil {
		msgs = []Message{}
	}
	data, err := json.Marshal(msgs)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
