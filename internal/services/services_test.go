// File: internal/services/services_test.go
package services_test

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"docuchat/internal/database"
	"docuchat/internal/repository/attachment"
	"docuchat/internal/repository/chat"
	"docuchat/internal/repository/project"
	"docuchat/internal/services"
)

type testEnv struct {
	db       *gorm.DB
	projects *services.ProjectService
	chats    *services.ChatService
	files    *services.FileService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db, services.NoOpLogger{}))

	projectRepo := project.NewProjectRepository(db)
	chatRepo := chat.NewChatRepository(db)
	attachRepo := attachment.NewAttachmentRepository(db)

	return &testEnv{
		db:       db,
		projects: services.NewProjectService(projectRepo, services.NoOpLogger{}),
		chats:    services.NewChatService(chatRepo, projectRepo, services.NoOpLogger{}),
		files:    services.NewFileService(attachRepo, chatRepo, services.NoOpLogger{}),
	}
}
