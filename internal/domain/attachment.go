// File: internal/domain/attachment.go
package domain

import "time"

// Attachment is a binary file (document or image) owned by exactly one chat.
// Content holds the bytes inline, the canonical storage mode. Filepath is a
// legacy on-disk reference kept only until the migrator backfills Content;
// at most one of the two is authoritative at any time.
type Attachment struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	ChatID     uint      `json:"chat_id" gorm:"not null"`
	Filename   string    `json:"filename"`
	Mimetype   string    `json:"mimetype"`
	Filepath   string    `json:"-"`
	Content    []byte    `json:"-" gorm:"type:blob"`
	UploadedAt time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}

// TableName keeps the table the original installations created, so legacy
// databases migrate in place.
func (Attachment) TableName() string { return "pdfs" }
