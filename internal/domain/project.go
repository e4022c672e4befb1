// File: internal/domain/project.go
package domain

import "time"

// Project is a named grouping that owns zero or more chats. Deleting a
// project cascades to its chats and, through them, their attachments.
type Project struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
