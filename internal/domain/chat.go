// File: internal/domain/chat.go
package domain

import "time"

// DefaultChatTitle is used when a chat is created without a title.
const DefaultChatTitle = "Untitled"

// Chat represents a single conversation thread, optionally filed under a
// project. The message log is stored as one serialized text blob in the
// "messages" column; Messages carries the decoded form and is populated by
// the chat service on read.
type Chat struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Title       string    `json:"title"`
	RawMessages string    `json:"-" gorm:"column:messages"`
	Messages    []Message `json:"messages" gorm:"-"`
	ProjectID   *uint     `json:"project_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
